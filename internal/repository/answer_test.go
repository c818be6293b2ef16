package repository

import (
	"context"
	"testing"
	"time"

	"sanxing/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerRepository_UpdateContent_OwnerScoped(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAnswerRepository(db)
	ctx := context.Background()

	t.Run("Owner Updates", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "answers" SET "content"=`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateContent(ctx, "a-1", 5, "revised")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Non-Owner Gets NotFound", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "answers" SET "content"=`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.UpdateContent(ctx, "a-1", 6, "revised")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAnswerRepository_CountByDay(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAnswerRepository(db)
	ctx := context.Background()

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"day", "count"}).
		AddRow("2025-02-03", 2).
		AddRow("2025-02-04", 1)
	mock.ExpectQuery(`SELECT DATE\(created_at\) AS day, COUNT\(\*\) AS count FROM "answers"`).
		WithArgs(5, from, to).
		WillReturnRows(rows)

	counts, err := repo.CountByDay(ctx, 5, from, to)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "2025-02-03", counts[0].Day)
	assert.Equal(t, 2, counts[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
