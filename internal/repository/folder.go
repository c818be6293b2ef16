package repository

import (
	"context"
	"errors"

	"sanxing/internal/models"
	"sanxing/internal/observability"

	"gorm.io/gorm"
)

// FolderRepository defines persistence operations for folders and their
// question memberships. Every mutating method is scoped to the folder's
// owner; a scope miss surfaces as NotFound so non-owners cannot probe for
// existence.
type FolderRepository interface {
	Create(ctx context.Context, folder *models.Folder) error
	ListByOwner(ctx context.Context, userID uint) ([]models.Folder, error)
	Rename(ctx context.Context, id string, userID uint, name string) error
	// Delete removes the folder and all of its memberships in one
	// transaction. Partial deletion is never observable.
	Delete(ctx context.Context, id string, userID uint) error
	AddQuestion(ctx context.Context, folderID string, userID uint, questionID string) error
	RemoveQuestion(ctx context.Context, folderID string, userID uint, questionID string) error
	ListQuestions(ctx context.Context, folderID string, userID uint) ([]models.Question, error)
}

type folderRepository struct {
	db *gorm.DB
}

// NewFolderRepository returns a new FolderRepository implementation.
func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Create(ctx context.Context, folder *models.Folder) error {
	if err := r.db.WithContext(ctx).Create(folder).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *folderRepository) ListByOwner(ctx context.Context, userID uint) ([]models.Folder, error) {
	var folders []models.Folder
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&folders).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return folders, nil
}

func (r *folderRepository) Rename(ctx context.Context, id string, userID uint, name string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Folder{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Folder")
	}
	return nil
}

func (r *folderRepository) Delete(ctx context.Context, id string, userID uint) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "delete_cascade", "folders")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Folder{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Folder")
		}
		// Memberships go in the same transaction; a crash between the two
		// deletes cannot leave orphans behind.
		if err := tx.Where("folder_id = ?", id).Delete(&models.FolderQuestion{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	return err
}

// ownedFolder loads a folder scoped to its owner, for membership operations.
func (r *folderRepository) ownedFolder(ctx context.Context, id string, userID uint) (*models.Folder, error) {
	var folder models.Folder
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&folder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Folder")
		}
		return nil, models.NewInternalError(err)
	}
	return &folder, nil
}

func (r *folderRepository) AddQuestion(ctx context.Context, folderID string, userID uint, questionID string) error {
	if _, err := r.ownedFolder(ctx, folderID, userID); err != nil {
		return err
	}
	membership := models.FolderQuestion{FolderID: folderID, QuestionID: questionID}
	if err := r.db.WithContext(ctx).Create(&membership).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Question already in folder")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *folderRepository) RemoveQuestion(ctx context.Context, folderID string, userID uint, questionID string) error {
	if _, err := r.ownedFolder(ctx, folderID, userID); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Where("folder_id = ? AND question_id = ?", folderID, questionID).
		Delete(&models.FolderQuestion{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Question")
	}
	return nil
}

func (r *folderRepository) ListQuestions(ctx context.Context, folderID string, userID uint) ([]models.Question, error) {
	if _, err := r.ownedFolder(ctx, folderID, userID); err != nil {
		return nil, err
	}
	var questions []models.Question
	if err := r.db.WithContext(ctx).
		Joins("JOIN folder_questions ON folder_questions.question_id = questions.id").
		Where("folder_questions.folder_id = ?", folderID).
		Order("folder_questions.created_at ASC").
		Find(&questions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return questions, nil
}
