package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/circuitlab/circuitlab/api/internal/config"
	"github.com/circuitlab/circuitlab/api/internal/handler"
	"github.com/circuitlab/circuitlab/api/internal/middleware"
	"github.com/circuitlab/circuitlab/api/internal/pkg/database"
	"github.com/circuitlab/circuitlab/api/internal/repository/memory"
	"github.com/circuitlab/circuitlab/api/internal/service"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	// Redis backs the rate limiter; nil when rate limiting is disabled
	Redis *database.RedisDB

	// Repositories
	ExperimentRepo *memory.ExperimentRepository
	UserRepo       *memory.UserRepository
	ProgressRepo   *memory.ProgressRepository

	// Services
	ExperimentService *service.ExperimentService
	UserService       *service.UserService
	ProgressService   *service.ProgressService

	// Middleware
	RateLimitMiddleware *middleware.RateLimitMiddleware

	Handlers *Handlers
}

// Handlers groups the HTTP handlers
type Handlers struct {
	Health      *handler.HealthHandler
	Docs        *handler.DocsHandler
	Experiments *handler.ExperimentsHandler
	Users       *handler.UsersHandler
	Progress    *handler.ProgressHandler
}

// initDependencies initializes all application dependencies
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initRepositories(); err != nil {
		return nil, err
	}

	deps.ExperimentService = service.NewExperimentService(deps.ExperimentRepo, cfg.Simulator.EmbedURLTemplate)
	deps.UserService = service.NewUserService(deps.UserRepo)
	deps.ProgressService = service.NewProgressService(deps.ProgressRepo)

	if cfg.RateLimit.Enabled {
		deps.initRateLimiter(ctx)
	}

	deps.initHandlers()

	return deps, nil
}

func (d *Dependencies) initRepositories() error {
	strategy, err := memory.ParseIDStrategy(d.Config.Store.IDStrategy)
	if err != nil {
		return fmt.Errorf("failed to initialize stores: %w", err)
	}

	if d.Config.Store.Seed {
		d.ExperimentRepo = memory.NewExperimentRepository(strategy, memory.SeedExperiments()...)
		d.UserRepo = memory.NewUserRepository(strategy, memory.SeedUsers()...)
		d.ProgressRepo = memory.NewProgressRepository(strategy, memory.SeedProgress()...)
	} else {
		d.ExperimentRepo = memory.NewExperimentRepository(strategy)
		d.UserRepo = memory.NewUserRepository(strategy)
		d.ProgressRepo = memory.NewProgressRepository(strategy)
	}

	d.Logger.Info("in-memory stores ready",
		zap.String("id_strategy", string(strategy)),
		zap.Int("experiments", d.ExperimentRepo.Count()),
		zap.Int("users", d.UserRepo.Count()),
		zap.Int("progress", d.ProgressRepo.Count()),
	)

	return nil
}

// initRateLimiter connects to Redis. An unreachable Redis does not stop start-up:
// the limiter lets requests through and readiness reports the failure.
func (d *Dependencies) initRateLimiter(ctx context.Context) {
	redisDB, err := database.NewRedis(ctx, d.Config.Redis)
	if err != nil {
		d.Logger.Warn("redis unavailable, rate limiting degraded", zap.Error(err))
		redisDB = &database.RedisDB{Client: database.NewRedisClient(d.Config.Redis)}
	}
	d.Redis = redisDB

	d.RateLimitMiddleware = middleware.NewRateLimitMiddleware(redisDB.Client, middleware.RateLimitConfig{
		Max:    d.Config.RateLimit.Max,
		Window: d.Config.RateLimit.Window,
		Skip:   middleware.CombinedSkipper(middleware.HealthSkipper, middleware.MetricsSkipper),
		Logger: d.Logger,
	})
}

func (d *Dependencies) initHandlers() {
	var redisClient *redis.Client
	if d.Redis != nil {
		redisClient = d.Redis.Client
	}

	d.Handlers = &Handlers{
		Health:      handler.NewHealthHandler(redisClient, appVersion),
		Docs:        handler.NewDocsHandler("/openapi.yaml"),
		Experiments: handler.NewExperimentsHandler(d.ExperimentService, d.Logger),
		Users:       handler.NewUsersHandler(d.UserService, d.Logger),
		Progress:    handler.NewProgressHandler(d.ProgressService, d.Logger),
	}
}

// Close releases external connections
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
