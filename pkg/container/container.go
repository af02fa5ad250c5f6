package container

import (
	"context"
	"fmt"

	"library-backend/internal/config"
	bookdomain "library-backend/internal/domains/book"
	bookhandler "library-backend/internal/domains/book/handler"
	bookrepo "library-backend/internal/domains/book/repository"
	bookservice "library-backend/internal/domains/book/service"
	commentdomain "library-backend/internal/domains/comment"
	commenthandler "library-backend/internal/domains/comment/handler"
	commentrepo "library-backend/internal/domains/comment/repository"
	commentservice "library-backend/internal/domains/comment/service"
	lendingdomain "library-backend/internal/domains/lending"
	lendinghandler "library-backend/internal/domains/lending/handler"
	lendingrepo "library-backend/internal/domains/lending/repository"
	lendingservice "library-backend/internal/domains/lending/service"
	ratingdomain "library-backend/internal/domains/rating"
	ratinghandler "library-backend/internal/domains/rating/handler"
	ratingrepo "library-backend/internal/domains/rating/repository"
	ratingservice "library-backend/internal/domains/rating/service"
	userdomain "library-backend/internal/domains/user"
	userhandler "library-backend/internal/domains/user/handler"
	userrepo "library-backend/internal/domains/user/repository"
	userservice "library-backend/internal/domains/user/service"
	"library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/queue"
	"library-backend/internal/infrastructure/storage"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"
)

// Container wires infrastructure, repositories, services and handlers.
type Container struct {
	Config *config.Config

	DB      *database.PostgresDB
	Cache   *cache.RedisCache
	Storage *storage.MinIOStorage
	Queue   *queue.Client
	JWT     *jwt.Manager

	LendingService lendingdomain.Service
	LendingRepo    lendingdomain.Repository
	BookService    bookdomain.Service
	UserService    userdomain.Service
	RatingService  ratingdomain.Service
	CommentService commentdomain.Service

	LendingHandler *lendinghandler.LendingHandler
	BookHandler    *bookhandler.BookHandler
	UserHandler    *userhandler.UserHandler
	RatingHandler  *ratinghandler.RatingHandler
	CommentHandler *commenthandler.CommentHandler
}

// New builds the full dependency graph. Postgres and Redis are
// required; MinIO is optional and only disables cover uploads.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// Infrastructure
	c.DB = database.NewPostgresDB(&cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	logger.Info("🐘 PostgreSQL connected", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	c.Cache = cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("🔴 Redis connected", map[string]interface{}{"host": cfg.Redis.Host})

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		logger.Warn("⚠️  MinIO unavailable, cover uploads disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		c.Storage = minioStorage
		logger.Info("📦 MinIO connected", map[string]interface{}{"bucket": cfg.MinIO.Bucket})
	}

	c.Queue = queue.NewClient(cfg.Redis.Host)
	c.JWT = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Repositories
	pool := c.DB.Pool
	c.LendingRepo = lendingrepo.NewPostgresLendingRepository(pool)
	bookRepository := bookrepo.NewPostgresBookRepository(pool)
	userRepository := userrepo.NewPostgresUserRepository(pool)
	ratingRepository := ratingrepo.NewPostgresRatingRepository(pool)
	commentRepository := commentrepo.NewPostgresCommentRepository(pool)

	// Services
	c.LendingService = lendingservice.NewService(c.LendingRepo, c.Cache, c.Queue, cfg.Lending)
	var uploader bookservice.Uploader
	if c.Storage != nil {
		uploader = c.Storage
	}
	c.BookService = bookservice.NewService(bookRepository, c.Cache, uploader)
	c.UserService = userservice.NewService(userRepository, c.LendingService, c.JWT, c.Cache)
	c.RatingService = ratingservice.NewService(ratingRepository, c.Cache)
	c.CommentService = commentservice.NewService(commentRepository)

	// Handlers
	c.LendingHandler = lendinghandler.NewLendingHandler(c.LendingService)
	c.BookHandler = bookhandler.NewBookHandler(c.BookService)
	c.UserHandler = userhandler.NewUserHandler(c.UserService)
	c.RatingHandler = ratinghandler.NewRatingHandler(c.RatingService)
	c.CommentHandler = commenthandler.NewCommentHandler(c.CommentService)

	logger.Info("✅ Container initialized", nil)
	return c, nil
}

// Close releases infrastructure connections in reverse order.
func (c *Container) Close() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("failed to close queue client", err)
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("👋 Container closed", nil)
}
