package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"sanxing/internal/models"
	"sanxing/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Function-field stubs keep each test focused on the behavior it exercises;
// unset fields panic so a test cannot silently depend on a path it never
// declared.

type tokenRepoStub struct {
	createFn        func(ctx context.Context, token *models.Token) error
	getByValueFn    func(ctx context.Context, value string) (*models.Token, error)
	deleteExpiredFn func(ctx context.Context, now time.Time) (int64, error)
}

func (s *tokenRepoStub) Create(ctx context.Context, token *models.Token) error {
	return s.createFn(ctx, token)
}

func (s *tokenRepoStub) GetByValue(ctx context.Context, value string) (*models.Token, error) {
	return s.getByValueFn(ctx, value)
}

func (s *tokenRepoStub) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.deleteExpiredFn(ctx, now)
}

type userRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	createFn     func(ctx context.Context, user *models.User) error
	updateFn     func(ctx context.Context, user *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

type questionRepoStub struct {
	createFn       func(ctx context.Context, question *models.Question) error
	getByIDFn      func(ctx context.Context, id string) (*models.Question, error)
	listPublicFn   func(ctx context.Context) ([]models.Question, error)
	listByAuthorFn func(ctx context.Context, authorID uint) ([]models.Question, error)
	shareFn        func(ctx context.Context, id string, authorID uint) error
}

func (s *questionRepoStub) Create(ctx context.Context, question *models.Question) error {
	return s.createFn(ctx, question)
}

func (s *questionRepoStub) GetByID(ctx context.Context, id string) (*models.Question, error) {
	return s.getByIDFn(ctx, id)
}

func (s *questionRepoStub) ListPublic(ctx context.Context) ([]models.Question, error) {
	return s.listPublicFn(ctx)
}

func (s *questionRepoStub) ListByAuthor(ctx context.Context, authorID uint) ([]models.Question, error) {
	return s.listByAuthorFn(ctx, authorID)
}

func (s *questionRepoStub) Share(ctx context.Context, id string, authorID uint) error {
	return s.shareFn(ctx, id, authorID)
}

type answerRepoStub struct {
	createFn                func(ctx context.Context, answer *models.Answer) error
	listByUserAndQuestionFn func(ctx context.Context, userID uint, questionID string) ([]models.Answer, error)
	listByUserFn            func(ctx context.Context, userID uint) ([]models.Answer, error)
	updateContentFn         func(ctx context.Context, id string, userID uint, content string) error
	listByUserBetweenFn     func(ctx context.Context, userID uint, from, to time.Time) ([]models.Answer, error)
	countByDayFn            func(ctx context.Context, userID uint, from, to time.Time) ([]repository.DayCount, error)
}

func (s *answerRepoStub) Create(ctx context.Context, answer *models.Answer) error {
	return s.createFn(ctx, answer)
}

func (s *answerRepoStub) ListByUserAndQuestion(ctx context.Context, userID uint, questionID string) ([]models.Answer, error) {
	return s.listByUserAndQuestionFn(ctx, userID, questionID)
}

func (s *answerRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Answer, error) {
	return s.listByUserFn(ctx, userID)
}

func (s *answerRepoStub) UpdateContent(ctx context.Context, id string, userID uint, content string) error {
	return s.updateContentFn(ctx, id, userID, content)
}

func (s *answerRepoStub) ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.Answer, error) {
	return s.listByUserBetweenFn(ctx, userID, from, to)
}

func (s *answerRepoStub) CountByDay(ctx context.Context, userID uint, from, to time.Time) ([]repository.DayCount, error) {
	return s.countByDayFn(ctx, userID, from, to)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "UNAUTHORIZED")
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "NOT_FOUND")
}
