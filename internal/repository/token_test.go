package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestTokenRepository_GetByValue(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	expiry := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"value", "user_id", "expires_at"}).
			AddRow("a3f2b1c4d5e6f7a8b9c0d1e2f3a4b5c6", 7, expiry)
		mock.ExpectQuery(`SELECT \* FROM "tokens" WHERE value =`).
			WithArgs("a3f2b1c4d5e6f7a8b9c0d1e2f3a4b5c6", 1).
			WillReturnRows(rows)

		token, err := repo.GetByValue(ctx, "a3f2b1c4d5e6f7a8b9c0d1e2f3a4b5c6")
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, uint(7), token.UserID)
		assert.True(t, expiry.Equal(token.ExpiresAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Absent Returns Nil Nil", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "tokens" WHERE value =`).
			WithArgs("ffffffffffffffffffffffffffffffff", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		token, err := repo.GetByValue(ctx, "ffffffffffffffffffffffffffffffff")
		require.NoError(t, err)
		assert.Nil(t, token)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTokenRepository_DeleteExpired(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tokens" WHERE expires_at <=`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	removed, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
