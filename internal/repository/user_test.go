package repository

import (
	"context"
	"errors"
	"testing"

	"sanxing/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "username"}).
			AddRow(1, "writer@example.com", "writer")
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email =`).
			WithArgs("writer@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, "writer@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "writer", user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Absent Returns Nil Nil", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email =`).
			WithArgs("nobody@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uni_users_email" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.User{Email: "exists@example.com", Username: "dup", Password: "x"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
