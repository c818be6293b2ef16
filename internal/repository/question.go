package repository

import (
	"context"
	"errors"

	"sanxing/internal/models"

	"gorm.io/gorm"
)

// QuestionRepository defines persistence operations for questions.
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id string) (*models.Question, error)
	// ListPublic returns seeded content plus shared user questions in
	// stored order (creation order, ties broken by id).
	ListPublic(ctx context.Context) ([]models.Question, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]models.Question, error)
	// Share flips the public flag for a question owned by authorID.
	// The transition is one-way; sharing an already-public question is a
	// no-op that still succeeds for the owner.
	Share(ctx context.Context, id string, authorID uint) error
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository returns a new QuestionRepository implementation.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Question")
		}
		return nil, models.NewInternalError(err)
	}
	return &question, nil
}

func (r *questionRepository) ListPublic(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.WithContext(ctx).
		Where("is_public = ? OR author_id IS NULL", true).
		Order("created_at ASC, id ASC").
		Find(&questions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return questions, nil
}

func (r *questionRepository) ListByAuthor(ctx context.Context, authorID uint) ([]models.Question, error) {
	var questions []models.Question
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at ASC, id ASC").
		Find(&questions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return questions, nil
}

func (r *questionRepository) Share(ctx context.Context, id string, authorID uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Update("is_public", true)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	// Zero rows means absent or not owned; the two are indistinguishable
	// on purpose.
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Question")
	}
	return nil
}
