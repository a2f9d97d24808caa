// Package server contains the HTTP handlers for the application's routes.
package server

import (
	"fmt"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"

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
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository

	postService    *service.PostService
	commentService *service.CommentService
	followService  *service.FollowService
}

// NewServer creates a new server instance, establishing database and Redis
// connections from config.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	s := NewServerWithDeps(cfg, db, cache.GetClient())
	// Route metrics register on the default registry, so they are wired here
	// rather than in NewServerWithDeps, which tests call more than once per
	// process.
	s.promMiddleware = fiberprometheus.New("inkwell")
	return s, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use it with an in-memory database and miniredis; it skips the
// Prometheus route middleware.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	images := service.NewImageService(cfg)

	s := &Server{
		config:      cfg,
		db:          db,
		redis:       redisClient,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
	}
	s.postService = service.NewPostService(postRepo, groupRepo, images)
	s.commentService = service.NewCommentService(commentRepo, postRepo)
	s.followService = service.NewFollowService(followRepo, userRepo)

	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Propagate request ID and user ID into the request context for logging
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
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
	// Health and metrics
	app.Get("/healthz", s.HealthCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := app.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/login/", s.LoginPage)
	auth.Post("/logout", s.Logout)

	// Public pages. OptionalUser resolves the viewer when a session is
	// present so public pages can personalize (e.g. "following" on profiles).
	app.Get("/", middleware.OptionalUser, s.Feed)
	app.Get("/group/:slug/", middleware.OptionalUser, s.GroupFeed)
	app.Get("/profile/:username/", middleware.OptionalUser, s.Profile)

	// Protected actions; unauthenticated requests are redirected to login.
	app.Get("/create/", middleware.LoginRequired, s.PostCreateForm)
	app.Post("/create/", middleware.LoginRequired, s.PostCreate)
	app.Get("/follow/", middleware.LoginRequired, s.FollowFeed)
	app.All("/profile/:username/follow/", middleware.LoginRequired, s.Follow)
	app.All("/profile/:username/unfollow/", middleware.LoginRequired, s.Unfollow)

	// Post routes: specific suffixes before the generic detail route.
	app.Get("/posts/:id/edit/", middleware.LoginRequired, s.PostEditForm)
	app.Post("/posts/:id/edit/", middleware.LoginRequired, s.PostEdit)
	app.Post("/posts/:id/comment/", middleware.LoginRequired, s.AddComment)
	app.Get("/posts/:id/", middleware.OptionalUser, s.PostDetail)
}

// HealthCheck handles GET /healthz
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// App builds the fiber application with middleware and routes attached.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "inkwell",
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Listen starts the HTTP server on the configured port.
func (s *Server) Listen() error {
	return s.App().Listen(":" + s.config.Port)
}
