// Package server contains the HTTP surface: page handlers, session
// middleware, and route wiring.
package server

import (
	"context"
	"sync"
	"time"

	"recurate/internal/config"
	"recurate/internal/middleware"
	"recurate/internal/password"
	"recurate/internal/repository"
	"recurate/internal/service"
	"recurate/internal/session"
	"recurate/internal/upload"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// The Fiber Prometheus middleware registers collectors in the default
// registry, which tolerates exactly one registration per process.
var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

func promMetrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New("recurate")
	})
	return promInstance
}

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       *session.Store
	uploads        *upload.Store
	authService    *service.AuthService
	postService    *service.PostService
	adminService   *service.AdminService
}

// NewServer creates a Server using already-initialized dependencies. The
// bootstrap layer (or a test) establishes DB and Redis first.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	uploads, err := upload.NewStore(cfg.UploadDir, cfg.MaxUploadSizeMB)
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(redisClient, cfg.SessionSecret, cfg.SessionIdleTimeout)
	hasher := password.NewHasher(cfg.BcryptCost)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: promMetrics(),
		sessions:       sessions,
		uploads:        uploads,
		authService:    service.NewAuthService(userRepo, sessions, hasher),
		postService:    service.NewPostService(postRepo),
		adminService:   service.NewAdminService(userRepo, postRepo),
	}, nil
}

// SetupMiddleware configures the global middleware chain. Session loading
// runs before ContextMiddleware so the user ID lands in the request context
// for logging.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(s.SessionMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}
}

// SetupRoutes wires every route of the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Static("/uploads", s.uploads.Dir())

	// Auth pages
	app.Get("/login", s.LoginForm)
	app.Post("/login", middleware.RateLimit(
		s.redis, s.config.LoginRateLimit, s.config.LoginRateWindow, "login"), s.Login)
	app.Get("/register", s.RegisterForm)
	app.Post("/register", s.Register)
	app.Get("/logout", s.AuthRequired(), s.Logout)

	// Feed and post pages
	app.Get("/", s.AuthRequired(), s.Feed)
	app.Get("/main", s.AuthRequired(), s.Feed)
	app.Post("/create-post", s.AuthRequired(), s.CreatePost)
	app.Get("/edit-post/:id", s.AuthRequired(), s.EditPostForm)
	app.Post("/update-post/:id", s.AuthRequired(), s.UpdatePost)
	app.Post("/delete-post/:id", s.AuthRequired(), s.DeletePost)

	// Admin
	app.Get("/admin", s.AuthRequired(), s.AdminRequired(), s.AdminDashboard)
}

// HealthCheck reports readiness of the database and Redis.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if err := s.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}
