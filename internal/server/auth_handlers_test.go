package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sanxing/internal/config"
	"sanxing/internal/models"
	"sanxing/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHandlerTestServer(users *MockUserRepository, tokens *MockTokenRepository) *Server {
	s := &Server{
		config:    &config.Config{TokenTTL: time.Hour, DailyQuestionCount: 3, DailySeedSkewDays: 2},
		userRepo:  users,
		tokenRepo: tokens,
	}
	s.tokenService = service.NewTokenService(tokens, time.Hour)
	s.authService = service.NewAuthService(users, s.tokenService)
	s.userService = service.NewUserService(users)
	return s
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(users *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "testwriter",
				"email":    "writer@example.com",
				"password": "correct-horse",
			},
			mockSetup: func(users *MockUserRepository) {
				users.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate Email",
			body: map[string]string{
				"username": "testwriter",
				"email":    "exists@example.com",
				"password": "correct-horse",
			},
			mockSetup: func(users *MockUserRepository) {
				users.On("Create", mock.Anything, mock.Anything).
					Return(models.NewConflictError("Email already registered"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "No Username",
			body: map[string]string{
				"email":    "writer@example.com",
				"password": "correct-horse",
			},
			mockSetup: func(users *MockUserRepository) {
				users.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"email": "writer@example.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid Email",
			body: map[string]string{
				"username": "testwriter",
				"email":    "not-an-email",
				"password": "correct-horse",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			if tt.mockSetup != nil {
				tt.mockSetup(users)
			}
			s := newHandlerTestServer(users, new(MockTokenRepository))
			app := fiber.New()
			app.Post("/signup", s.Signup)

			resp := postJSON(t, app, "/signup", tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var body map[string]any
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, "writer@example.com", body["email"])
				_, exposed := body["password"]
				assert.False(t, exposed)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	existing := &models.User{ID: 9, Email: "writer@example.com", Password: string(hashed)}

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepository)
		tokens := new(MockTokenRepository)
		users.On("GetByEmail", mock.Anything, "writer@example.com").Return(existing, nil)
		tokens.On("Create", mock.Anything, mock.Anything).Return(nil)

		s := newHandlerTestServer(users, tokens)
		app := fiber.New()
		app.Post("/login", s.Login)

		resp := postJSON(t, app, "/login", map[string]string{
			"email":    "writer@example.com",
			"password": "correct-horse",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "bearer", body["token_type"])
		assert.Len(t, body["access_token"], 32)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "writer@example.com").Return(existing, nil)

		s := newHandlerTestServer(users, new(MockTokenRepository))
		app := fiber.New()
		app.Post("/login", s.Login)

		resp := postJSON(t, app, "/login", map[string]string{
			"email":    "writer@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

		s := newHandlerTestServer(users, new(MockTokenRepository))
		app := fiber.New()
		app.Post("/login", s.Login)

		resp := postJSON(t, app, "/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "correct-horse",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
