package router

import (
	"github.com/anonto42/snapfeed/backend/internal/handlers"
	"github.com/anonto42/snapfeed/backend/internal/middleware"
	"github.com/anonto42/snapfeed/backend/internal/repositories"
	"github.com/anonto42/snapfeed/backend/internal/services"
	"github.com/anonto42/snapfeed/backend/pkg/config"
	"github.com/anonto42/snapfeed/backend/pkg/identity"
	"github.com/anonto42/snapfeed/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories groups the storage dependencies of the HTTP API.
type Repositories struct {
	Users    repositories.UserRepository
	Posts    repositories.PostRepository
	Likes    repositories.LikeRepository
	Comments repositories.CommentRepository
}

// PostgresRepositories builds every repository over one gorm connection.
func PostgresRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:    repositories.NewPostgresUserRepository(db),
		Posts:    repositories.NewPostgresPostRepository(db),
		Likes:    repositories.NewPostgresLikeRepository(db),
		Comments: repositories.NewPostgresCommentRepository(db),
	}
}

// New returns a fully configured echo instance.
func New(cfg *config.Config, repos Repositories, verifier identity.Verifier, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(logger)

	config.SetupMiddleware(e, cfg, logger)
	SetupRoutes(e, cfg, repos, verifier, logger)
	return e
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, repos Repositories, verifier identity.Verifier, logger *zap.Logger) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	feedService := services.NewFeedService(repos.Posts, repos.Users, repos.Likes, repos.Comments, logger)
	likeService := services.NewLikeService(repos.Likes, repos.Posts, repos.Users, logger)
	userService := services.NewUserService(repos.Users, logger)
	seedService := services.NewSeedService(repos.Posts, repos.Users, logger)

	// Everything under /api requires a verified session token.
	api := e.Group("/api")
	api.Use(middleware.Authenticate(verifier, logger))

	handlers.NewPostHandler(feedService).RegisterPostRoutes(api)
	handlers.NewLikeHandler(likeService).RegisterLikeRoutes(api)
	handlers.NewUserHandler(userService).RegisterUserRoutes(api)
	handlers.NewAdminHandler(seedService, cfg.SeedEnabled).RegisterAdminRoutes(api)

	logger.Debug("routes configured", zap.Int("count", len(e.Routes())))
}
