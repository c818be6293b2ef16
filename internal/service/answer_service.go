package service

import (
	"context"
	"strings"
	"time"

	"sanxing/internal/models"
	"sanxing/internal/repository"
)

type CreateAnswerInput struct {
	QuestionID string `json:"question_id"`
	Content    string `json:"content"`
}

type UpdateAnswerInput struct {
	Content string `json:"content"`
}

const maxAnswerLen = 50000

// AnswerService manages journal entries. Answers are strictly private:
// every read and write is scoped to the answer's owner.
type AnswerService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
}

func NewAnswerService(answerRepo repository.AnswerRepository, questionRepo repository.QuestionRepository) *AnswerService {
	return &AnswerService{answerRepo: answerRepo, questionRepo: questionRepo}
}

// Create records a new answer. The referenced question must exist and be
// visible to the writer; answering someone else's private question fails
// the same way as answering a question that does not exist.
func (s *AnswerService) Create(ctx context.Context, userID uint, in CreateAnswerInput) (*models.Answer, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxAnswerLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	if in.QuestionID == "" {
		return nil, models.NewValidationError("question_id is required")
	}

	question, err := s.questionRepo.GetByID(ctx, in.QuestionID)
	if err != nil {
		return nil, err
	}
	if !question.VisibleTo(userID) {
		return nil, models.NewNotFoundError("Question")
	}

	answer := &models.Answer{
		UserID:     userID,
		QuestionID: question.ID,
		Content:    content,
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// List returns the caller's own answers, newest first, optionally narrowed
// to one question. Nobody ever sees another user's answers.
func (s *AnswerService) List(ctx context.Context, userID uint, questionID string) ([]models.Answer, error) {
	if questionID == "" {
		return s.answerRepo.ListByUser(ctx, userID)
	}
	return s.answerRepo.ListByUserAndQuestion(ctx, userID, questionID)
}

// Update rewrites an answer's content for its owner.
func (s *AnswerService) Update(ctx context.Context, userID uint, answerID string, in UpdateAnswerInput) error {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxAnswerLen {
		return models.NewValidationError("Content too long (max 50000 characters)")
	}
	return s.answerRepo.UpdateContent(ctx, answerID, userID, content)
}

// Activity returns per-day answer counts for one calendar month, for the
// streak view.
func (s *AnswerService) Activity(ctx context.Context, userID uint, year, month int) ([]repository.DayCount, error) {
	if year < 1970 || year > 9999 {
		return nil, models.NewValidationError("Invalid year")
	}
	if month < 1 || month > 12 {
		return nil, models.NewValidationError("Invalid month")
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	return s.answerRepo.CountByDay(ctx, userID, from, to)
}

// ByDate returns the caller's answers written on one calendar day. The
// date is YYYY-MM-DD.
func (s *AnswerService) ByDate(ctx context.Context, userID uint, date string) ([]models.Answer, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, models.NewValidationError("Invalid date, expected YYYY-MM-DD")
	}
	return s.answerRepo.ListByUserBetween(ctx, userID, day, day.AddDate(0, 0, 1))
}
