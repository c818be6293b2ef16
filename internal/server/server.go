// Package server contains the HTTP handlers for the journaling API.
package server

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"sanxing/internal/cache"
	"sanxing/internal/config"
	"sanxing/internal/database"
	"sanxing/internal/middleware"
	"sanxing/internal/models"
	"sanxing/internal/repository"
	"sanxing/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	userRepo     repository.UserRepository
	tokenRepo    repository.TokenRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	folderRepo   repository.FolderRepository

	tokenService    *service.TokenService
	authService     *service.AuthService
	dailyService    *service.DailyService
	questionService *service.QuestionService
	answerService   *service.AnswerService
	folderService   *service.FolderService
	userService     *service.UserService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("sanxing-api"),
		userRepo:       repository.NewUserRepository(db),
		tokenRepo:      repository.NewTokenRepository(db),
		questionRepo:   repository.NewQuestionRepository(db),
		answerRepo:     repository.NewAnswerRepository(db),
		folderRepo:     repository.NewFolderRepository(db),
	}

	server.tokenService = service.NewTokenService(server.tokenRepo, cfg.TokenTTL)
	server.authService = service.NewAuthService(server.userRepo, server.tokenService)
	server.dailyService = service.NewDailyService(server.questionRepo, cfg.DailyQuestionCount, cfg.DailySeedSkewDays)
	server.questionService = service.NewQuestionService(server.questionRepo)
	server.answerService = service.NewAnswerService(server.answerRepo, server.questionRepo)
	server.folderService = service.NewFolderService(server.folderRepo, server.questionRepo)
	server.userService = service.NewUserService(server.userRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Question browsing serves public content without a token. A bearer
	// token is still honored on the by-ID lookup so authors can read
	// their own private questions.
	api.Get("/question", s.GetRandomQuestion)
	api.Get("/all_questions", s.GetAllQuestions)
	api.Get("/daily-questions", s.GetDailyQuestions)
	api.Get("/question/:id", s.AuthOptional(), s.GetQuestion)

	// Everything below requires a valid bearer token.
	protected := api.Group("", s.AuthRequired())

	protected.Get("/me", s.GetMe)

	// User-authored questions
	myQuestions := protected.Group("/my-questions")
	myQuestions.Post("/", s.CreateMyQuestion)
	myQuestions.Get("/", s.GetMyQuestions)
	myQuestions.Put("/:id/share", s.ShareMyQuestion)

	// Answers
	protected.Post("/answer", s.CreateAnswer)
	protected.Get("/answer", s.GetAnswers)
	protected.Put("/answer/:id", s.UpdateAnswer)

	// Folders
	folders := protected.Group("/folders")
	folders.Post("/", s.CreateFolder)
	folders.Get("/", s.GetFolders)
	// Membership routes before the generic /:id routes
	folders.Get("/:id/questions", s.GetFolderQuestions)
	folders.Post("/:id/questions", s.AddQuestionToFolder)
	folders.Delete("/:id/questions/:questionId", s.RemoveQuestionFromFolder)
	folders.Put("/:id", s.RenameFolder)
	folders.Delete("/:id", s.DeleteFolder)

	// User settings and journaling activity
	user := protected.Group("/user")
	user.Get("/settings", s.GetSettings)
	user.Put("/settings", s.UpdateSettings)
	user.Get("/activity", s.GetActivity)
	user.Get("/answers/by-date", s.GetAnswersByDate)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is an optional accelerator here; readiness only requires the
	// database.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It resolves the
// presented bearer token all the way to a live user row; a token whose user
// has disappeared is as dead as an expired one.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid Authorization header format"))
		}

		token, err := s.tokenService.Validate(c.Context(), parts[1])
		if err != nil {
			return models.RespondWithAppError(c, err)
		}

		user, err := s.userRepo.GetByID(c.Context(), token.UserID)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		if user == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		// Store the resolved identity for handlers downstream.
		c.Locals("userID", user.ID)
		c.Locals("currentUser", user)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AuthOptional resolves a bearer token when one is presented but lets
// anonymous requests through. A token that fails to resolve is treated
// as anonymous rather than rejected; the route serves public content
// either way.
func (s *Server) AuthOptional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		parts := strings.Split(c.Get("Authorization"), " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Next()
		}

		token, err := s.tokenService.Validate(c.Context(), parts[1])
		if err != nil {
			return c.Next()
		}

		user, err := s.userRepo.GetByID(c.Context(), token.UserID)
		if err != nil || user == nil {
			return c.Next()
		}

		c.Locals("userID", user.ID)
		c.Locals("currentUser", user)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "Sanxing API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	if s.config.TokenPurgeInterval > 0 {
		go s.tokenService.RunPurgeLoop(s.shutdownCtx, s.config.TokenPurgeInterval)
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
