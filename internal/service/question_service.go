package service

import (
	"context"
	"strings"

	"sanxing/internal/models"
	"sanxing/internal/repository"
)

type CreateQuestionInput struct {
	QuestionText   string `json:"question_text"`
	Tag            string `json:"tag"`
	InspiringWords string `json:"inspiring_words"`
}

// QuestionService exposes the question corpus: the seeded prompts, shared
// user questions, and each user's private ones.
type QuestionService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// ListPublic returns every question the given user can browse without
// owning it.
func (s *QuestionService) ListPublic(ctx context.Context) ([]models.Question, error) {
	return s.questionRepo.ListPublic(ctx)
}

// Get returns one question if userID may see it. A private question owned
// by someone else reads as absent, not forbidden.
func (s *QuestionService) Get(ctx context.Context, id string, userID uint) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !question.VisibleTo(userID) {
		return nil, models.NewNotFoundError("Question")
	}
	return question, nil
}

// CreateOwn stores a user-authored question, private by default.
func (s *QuestionService) CreateOwn(ctx context.Context, userID uint, in CreateQuestionInput) (*models.Question, error) {
	text := strings.TrimSpace(in.QuestionText)
	if text == "" {
		return nil, models.NewValidationError("Question text is required")
	}
	if len(text) > 2000 {
		return nil, models.NewValidationError("Question text too long (max 2000 characters)")
	}

	question := &models.Question{
		QuestionText:   text,
		Tag:            strings.TrimSpace(in.Tag),
		InspiringWords: strings.TrimSpace(in.InspiringWords),
		AuthorID:       &userID,
		IsPublic:       false,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// ListMine returns the questions userID authored, private ones included.
func (s *QuestionService) ListMine(ctx context.Context, userID uint) ([]models.Question, error) {
	return s.questionRepo.ListByAuthor(ctx, userID)
}

// Share makes one of userID's questions public. Only the author can share;
// anyone else's attempt reads as the question not existing.
func (s *QuestionService) Share(ctx context.Context, id string, userID uint) error {
	return s.questionRepo.Share(ctx, id, userID)
}
