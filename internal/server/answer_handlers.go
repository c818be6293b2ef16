package server

import (
	"sanxing/internal/models"
	"sanxing/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateAnswer handles POST /api/answer
func (s *Server) CreateAnswer(c *fiber.Ctx) error {
	var req service.CreateAnswerInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	answer, err := s.answerService.Create(c.Context(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(answer)
}

// GetAnswers handles GET /api/answer, optionally filtered by question_id.
func (s *Server) GetAnswers(c *fiber.Ctx) error {
	answers, err := s.answerService.List(c.Context(), currentUserID(c), c.Query("question_id"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(answers)
}

// UpdateAnswer handles PUT /api/answer/:id
func (s *Server) UpdateAnswer(c *fiber.Ctx) error {
	var req service.UpdateAnswerInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.answerService.Update(c.Context(), currentUserID(c), c.Params("id"), req); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Answer updated"})
}

// GetActivity handles GET /api/user/activity?year=YYYY&month=MM
func (s *Server) GetActivity(c *fiber.Ctx) error {
	year := c.QueryInt("year")
	month := c.QueryInt("month")
	if year == 0 || month == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("year and month query parameters are required"))
	}

	counts, err := s.answerService.Activity(c.Context(), currentUserID(c), year, month)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(counts)
}

// GetAnswersByDate handles GET /api/user/answers/by-date?date=YYYY-MM-DD
func (s *Server) GetAnswersByDate(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("date query parameter is required"))
	}

	answers, err := s.answerService.ByDate(c.Context(), currentUserID(c), date)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(answers)
}
