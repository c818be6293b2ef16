package service

import (
	"context"
	"strings"

	"sanxing/internal/models"
	"sanxing/internal/repository"
	"sanxing/internal/validation"
)

type FolderNameInput struct {
	Name string `json:"name"`
}

type FolderQuestionInput struct {
	QuestionID string `json:"question_id"`
}

// FolderService manages a user's folders and their question memberships.
// Folders are invisible to everyone but their owner; an outsider touching
// one gets the same NotFound as for a folder that never existed.
type FolderService struct {
	folderRepo   repository.FolderRepository
	questionRepo repository.QuestionRepository
}

func NewFolderService(folderRepo repository.FolderRepository, questionRepo repository.QuestionRepository) *FolderService {
	return &FolderService{folderRepo: folderRepo, questionRepo: questionRepo}
}

func (s *FolderService) Create(ctx context.Context, userID uint, in FolderNameInput) (*models.Folder, error) {
	if err := validation.ValidateFolderName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	folder := &models.Folder{
		Name:   strings.TrimSpace(in.Name),
		UserID: userID,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *FolderService) List(ctx context.Context, userID uint) ([]models.Folder, error) {
	return s.folderRepo.ListByOwner(ctx, userID)
}

func (s *FolderService) Rename(ctx context.Context, userID uint, folderID string, in FolderNameInput) error {
	if err := validation.ValidateFolderName(in.Name); err != nil {
		return models.NewValidationError(err.Error())
	}
	return s.folderRepo.Rename(ctx, folderID, userID, strings.TrimSpace(in.Name))
}

// Delete removes a folder and all of its memberships atomically.
func (s *FolderService) Delete(ctx context.Context, userID uint, folderID string) error {
	return s.folderRepo.Delete(ctx, folderID, userID)
}

// AddQuestion files a question into one of the caller's folders. The
// question must exist; its visibility is not re-checked here, so a
// membership survives even if the caller could not read the question
// today.
func (s *FolderService) AddQuestion(ctx context.Context, userID uint, folderID string, in FolderQuestionInput) error {
	if in.QuestionID == "" {
		return models.NewValidationError("question_id is required")
	}
	question, err := s.questionRepo.GetByID(ctx, in.QuestionID)
	if err != nil {
		return err
	}
	return s.folderRepo.AddQuestion(ctx, folderID, userID, question.ID)
}

func (s *FolderService) RemoveQuestion(ctx context.Context, userID uint, folderID, questionID string) error {
	return s.folderRepo.RemoveQuestion(ctx, folderID, userID, questionID)
}

func (s *FolderService) ListQuestions(ctx context.Context, userID uint, folderID string) ([]models.Question, error) {
	return s.folderRepo.ListQuestions(ctx, folderID, userID)
}
