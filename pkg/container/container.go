package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	"library-catalog/internal/domains/catalog/store"
	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/jwt"

	authorHandler "library-catalog/internal/domains/author/handler"
	authorRepo "library-catalog/internal/domains/author/repository"
	authorService "library-catalog/internal/domains/author/service"

	bookHandler "library-catalog/internal/domains/book/handler"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"

	genreHandler "library-catalog/internal/domains/genre/handler"
	genreRepo "library-catalog/internal/domains/genre/repository"
	genreService "library-catalog/internal/domains/genre/service"

	userHandler "library-catalog/internal/domains/user/handler"
	"library-catalog/internal/domains/user/password"
	userRepo "library-catalog/internal/domains/user/repository"
	userService "library-catalog/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the whole dependency graph of the application.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.DB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface
	GenreRepo  genreRepo.RepositoryInterface
	UserRepo   userRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface
	GenreService  genreService.ServiceInterface
	AuthService   userService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
	GenreHandler  *genreHandler.GenreHandler
	AuthHandler   *userHandler.AuthHandler
}

// NewContainer loads the configuration, connects the infrastructure and builds
// every layer on top of it.
//
// Initialization order:
// 1. Config
// 2. Infrastructure (DB, Cache)
// 3. Repositories, services, handlers
func NewContainer(ctx context.Context) (*Container, error) {
	log.Info().Msg("Initializing DI container")

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := database.Open(connectCtx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	log.Info().
		Str("driver", db.DriverName()).
		Str("dialect", store.NewBuilder(db.DriverName()).Dialect()).
		Msg("Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	return Build(cfg, db, newCache(ctx, cfg.Redis)), nil
}

// newCache connects Redis when enabled. Redis failures are not fatal: the
// in-process cache takes over.
func newCache(ctx context.Context, cfg config.RedisConfig) cache.Cache {
	if !cfg.Enabled {
		log.Info().Msg("[REDIS] Disabled, using in-memory cache")
		return cache.NewMemoryCache()
	}

	redisCache := infraCache.NewRedisCache(cfg.Host, cfg.Password, cfg.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[REDIS] Connection failed (non-critical), using in-memory cache")
		_ = redisCache.Close()
		return cache.NewMemoryCache()
	}
	return redisCache
}

// Build wires repositories, services and handlers on already connected infrastructure.
func Build(cfg *config.Config, db *database.DB, c cache.Cache) *Container {
	ct := &Container{
		Config:     cfg,
		DB:         db,
		Cache:      c,
		JWTManager: jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute),
	}

	ct.initRepositories()
	ct.initServices()
	ct.initHandlers()

	log.Info().Msg("DI container initialized")
	return ct
}

func (c *Container) initRepositories() {
	c.AuthorRepo = authorRepo.NewSQLRepository(c.DB.DB)
	c.BookRepo = bookRepo.NewSQLRepository(c.DB.DB)
	c.GenreRepo = genreRepo.NewSQLRepository(c.DB.DB)
	c.UserRepo = userRepo.NewSQLRepository(c.DB.DB)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo)
	c.GenreService = genreService.NewGenreService(c.GenreRepo)
	c.AuthService = userService.NewAuthService(
		c.UserRepo,
		password.NewDelegatingEncoder(),
		c.Cache,
		c.JWTManager,
		userService.LockoutPolicy{
			MaxAttempts: c.Config.Security.LoginMaxAttempts,
			Duration:    c.Config.Security.LockoutDuration,
		},
	)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService)
	c.AuthHandler = userHandler.NewAuthHandler(c.AuthService)
}

// Cleanup releases the database and Redis connections.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("[REDIS] Failed to close")
		} else {
			log.Info().Msg("[REDIS] Connection closed")
		}
	}
}
