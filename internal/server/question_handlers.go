package server

import (
	"sanxing/internal/models"
	"sanxing/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetRandomQuestion handles GET /api/question
func (s *Server) GetRandomQuestion(c *fiber.Ctx) error {
	question, err := s.dailyService.Random(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(question)
}

// GetAllQuestions handles GET /api/all_questions
func (s *Server) GetAllQuestions(c *fiber.Ctx) error {
	questions, err := s.questionService.ListPublic(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(questions)
}

// GetDailyQuestions handles GET /api/daily-questions
func (s *Server) GetDailyQuestions(c *fiber.Ctx) error {
	questions, err := s.dailyService.Daily(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(questions)
}

// GetQuestion handles GET /api/question/:id
func (s *Server) GetQuestion(c *fiber.Ctx) error {
	question, err := s.questionService.Get(c.Context(), c.Params("id"), maybeUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(question)
}

// CreateMyQuestion handles POST /api/my-questions
func (s *Server) CreateMyQuestion(c *fiber.Ctx) error {
	var req service.CreateQuestionInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	question, err := s.questionService.CreateOwn(c.Context(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

// GetMyQuestions handles GET /api/my-questions
func (s *Server) GetMyQuestions(c *fiber.Ctx) error {
	questions, err := s.questionService.ListMine(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(questions)
}

// ShareMyQuestion handles PUT /api/my-questions/:id/share
func (s *Server) ShareMyQuestion(c *fiber.Ctx) error {
	if err := s.questionService.Share(c.Context(), c.Params("id"), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Question shared"})
}
