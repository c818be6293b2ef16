package server

import (
	"sanxing/internal/models"
	"sanxing/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateFolder handles POST /api/folders
func (s *Server) CreateFolder(c *fiber.Ctx) error {
	var req service.FolderNameInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	folder, err := s.folderService.Create(c.Context(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(folder)
}

// GetFolders handles GET /api/folders
func (s *Server) GetFolders(c *fiber.Ctx) error {
	folders, err := s.folderService.List(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(folders)
}

// RenameFolder handles PUT /api/folders/:id
func (s *Server) RenameFolder(c *fiber.Ctx) error {
	var req service.FolderNameInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.folderService.Rename(c.Context(), currentUserID(c), c.Params("id"), req); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Folder renamed"})
}

// DeleteFolder handles DELETE /api/folders/:id
func (s *Server) DeleteFolder(c *fiber.Ctx) error {
	if err := s.folderService.Delete(c.Context(), currentUserID(c), c.Params("id")); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Folder deleted"})
}

// AddQuestionToFolder handles POST /api/folders/:id/questions
func (s *Server) AddQuestionToFolder(c *fiber.Ctx) error {
	var req service.FolderQuestionInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.folderService.AddQuestion(c.Context(), currentUserID(c), c.Params("id"), req); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Question added to folder"})
}

// RemoveQuestionFromFolder handles DELETE /api/folders/:id/questions/:questionId
func (s *Server) RemoveQuestionFromFolder(c *fiber.Ctx) error {
	err := s.folderService.RemoveQuestion(c.Context(), currentUserID(c), c.Params("id"), c.Params("questionId"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Question removed from folder"})
}

// GetFolderQuestions handles GET /api/folders/:id/questions
func (s *Server) GetFolderQuestions(c *fiber.Ctx) error {
	questions, err := s.folderService.ListQuestions(c.Context(), currentUserID(c), c.Params("id"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(questions)
}
