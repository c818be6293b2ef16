package repository

import (
	"context"
	"time"

	"sanxing/internal/models"

	"gorm.io/gorm"
)

// DayCount is the number of answers a user wrote on one calendar day.
type DayCount struct {
	Day   string `json:"date"`
	Count int    `json:"count"`
}

// AnswerRepository defines persistence operations for answers.
type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	// ListByUserAndQuestion returns the caller's answers to one question,
	// newest first.
	ListByUserAndQuestion(ctx context.Context, userID uint, questionID string) ([]models.Answer, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Answer, error)
	// UpdateContent mutates an answer scoped to its owner; a miss is
	// NotFound whether the answer is absent or owned by someone else.
	UpdateContent(ctx context.Context, id string, userID uint, content string) error
	// ListByUserBetween returns answers created in [from, to).
	ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.Answer, error)
	// CountByDay aggregates answers per calendar day in [from, to).
	CountByDay(ctx context.Context, userID uint, from, to time.Time) ([]DayCount, error)
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository returns a new AnswerRepository implementation.
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(ctx context.Context, answer *models.Answer) error {
	if err := r.db.WithContext(ctx).Create(answer).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *answerRepository) ListByUserAndQuestion(ctx context.Context, userID uint, questionID string) ([]models.Answer, error) {
	var answers []models.Answer
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Order("created_at DESC").
		Find(&answers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return answers, nil
}

func (r *answerRepository) ListByUser(ctx context.Context, userID uint) ([]models.Answer, error) {
	var answers []models.Answer
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&answers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return answers, nil
}

func (r *answerRepository) UpdateContent(ctx context.Context, id string, userID uint, content string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Answer{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("content", content)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Answer")
	}
	return nil
}

func (r *answerRepository) ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.Answer, error) {
	var answers []models.Answer
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from.UTC(), to.UTC()).
		Order("created_at ASC").
		Find(&answers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return answers, nil
}

func (r *answerRepository) CountByDay(ctx context.Context, userID uint, from, to time.Time) ([]DayCount, error) {
	var counts []DayCount
	// DATE() truncates to the calendar day on both PostgreSQL and SQLite.
	if err := r.db.WithContext(ctx).
		Model(&models.Answer{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from.UTC(), to.UTC()).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&counts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return counts, nil
}
