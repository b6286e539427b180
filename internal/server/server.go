// Package server contains the HTTP handlers for the application's API
// endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/internal/storage"

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
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	promMiddleware  *fiberprometheus.FiberPrometheus
	images          storage.Store
	userRepo        repository.UserRepository
	postRepo        repository.PostRepository
	categoryRepo    repository.CategoryRepository
	commentRepo     repository.CommentRepository
	postService     *service.PostService
	categoryService *service.CategoryService
	commentService  *service.CommentService
	authService     *service.AuthService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	images, err := storage.NewDiskStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		return nil, err
	}

	return NewServerWithDeps(cfg, db, cache.GetClient(), images)
}

// NewServerWithDeps creates a Server using already-initialized
// dependencies. Tests use this with sqlmock and miniredis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, images storage.Store) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	prom := middleware.InitMetrics("inkwell-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		images:         images,
		userRepo:       userRepo,
		postRepo:       postRepo,
		categoryRepo:   categoryRepo,
		commentRepo:    commentRepo,
	}
	server.postService = service.NewPostService(postRepo, categoryRepo)
	server.categoryService = service.NewCategoryService(categoryRepo, postRepo)
	server.commentService = service.NewCommentService(commentRepo, postRepo, userRepo)
	server.authService = service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS must run before middlewares that can short-circuit (e.g. the
	// limiter) so browser clients still receive CORS headers on errors.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests.
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
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded images
	if disk, ok := s.images.(*storage.DiskStore); ok {
		app.Static(s.config.UploadBaseURL, disk.Dir())
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/admin/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "admin_login"), s.AdminLogin)
	auth.Get("/me", middleware.AuthRequired(s.config), s.Me)
	auth.Post("/reset-password", middleware.AuthRequired(s.config), s.ResetPassword)

	// Post routes. The listing and detail endpoints are public; drafts
	// become visible only to an authenticated admin, so the listing runs
	// behind OptionalAuth.
	posts := api.Group("/posts")
	posts.Get("/", middleware.OptionalAuth(s.config), s.GetPosts)
	posts.Get("/:id", s.GetPost)
	posts.Post("/", middleware.AuthRequired(s.config), s.CreatePost)
	posts.Put("/:id", middleware.AuthRequired(s.config), s.UpdatePost)
	posts.Delete("/:id", middleware.AuthRequired(s.config), s.DeletePost)

	// Category routes; mutations are admin-only
	categories := api.Group("/categories")
	categories.Get("/", s.GetCategories)
	categories.Get("/:id", s.GetCategory)
	categories.Post("/", middleware.AuthRequired(s.config), middleware.AdminRequired(s.db), s.CreateCategory)
	categories.Put("/:id", middleware.AuthRequired(s.config), middleware.AdminRequired(s.db), s.UpdateCategory)
	categories.Delete("/:id", middleware.AuthRequired(s.config), middleware.AdminRequired(s.db), s.DeleteCategory)

	// Status reference routes (read-only)
	api.Get("/statuses", s.GetStatuses)
	api.Get("/statuses/:id", s.GetStatus)

	// Like routes
	likes := api.Group("/likes", middleware.AuthRequired(s.config))
	likes.Post("/toggle", s.ToggleLike)
	likes.Get("/check/:postId", s.CheckLike)
	likes.Get("/user", s.GetUserLikes)

	// Comment routes
	comments := api.Group("/comments")
	comments.Get("/post/:postId", s.GetComments)
	comments.Post("/", middleware.AuthRequired(s.config), middleware.RateLimit(
		s.redis, 20, 1*time.Minute, "comment_create"), s.CreateComment)
	comments.Put("/:id", middleware.AuthRequired(s.config), s.UpdateComment)
	comments.Delete("/:id", middleware.AuthRequired(s.config), s.DeleteComment)
}

// Shutdown releases server-held resources after the Fiber app has
// stopped accepting requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
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

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API degrades gracefully without Redis; readiness only
		// reports it.
		redisStatus = "unavailable"
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
