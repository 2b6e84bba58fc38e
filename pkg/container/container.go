package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"blueprints-backend/internal/config"
	"blueprints-backend/internal/domains/blueprint/filter"
	"blueprints-backend/internal/domains/blueprint/handler"
	"blueprints-backend/internal/domains/blueprint/model"
	"blueprints-backend/internal/domains/blueprint/repository"
	"blueprints-backend/internal/domains/blueprint/service"
	infraCache "blueprints-backend/internal/infrastructure/cache"
	"blueprints-backend/internal/infrastructure/database"
	"blueprints-backend/internal/infrastructure/monitoring"
	"blueprints-backend/pkg/cache"
	"blueprints-backend/pkg/logger"
)

const poolMonitorInterval = 30 * time.Second

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the application's dependency graph.
// Initialization order: config, infrastructure, repository, service, handler.
type Container struct {
	// Infrastructure
	Config  *config.Config
	DB      *database.PostgresDB // nil with the memory backend
	Cache   cache.Cache          // nil when disabled or unreachable
	Metrics *monitoring.Metrics

	// Domain
	Filter           filter.Filter
	BlueprintRepo    repository.RepositoryInterface
	BlueprintService service.ServiceInterface
	BlueprintHandler *handler.BlueprintHandler

	stopMonitor context.CancelFunc
	monitorDone chan struct{}
}

// NewContainer loads configuration from the environment and builds the graph
// with metrics on the default Prometheus registry.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Info("Config loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
		"backend":     cfg.Persistence.Backend,
		"filter":      cfg.Persistence.Filter,
	})

	return Build(ctx, cfg, prometheus.DefaultRegisterer)
}

// Build wires every layer from an already validated config
func Build(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*Container, error) {
	c := &Container{
		Config:  cfg,
		Metrics: monitoring.NewMetrics(reg),
	}

	f, err := filter.New(cfg.Persistence.Filter)
	if err != nil {
		return nil, err
	}
	c.Filter = f

	if err := c.initRepository(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init repository: %w", err)
	}

	c.BlueprintService = service.NewBlueprintService(c.BlueprintRepo, c.Filter, c.Metrics)
	c.BlueprintHandler = handler.NewBlueprintHandler(c.BlueprintService)

	logger.Info("Container initialized", map[string]interface{}{
		"backend": cfg.Persistence.Backend,
		"filter":  c.Filter.Name(),
		"cache":   c.Cache != nil,
	})
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepository(ctx context.Context) error {
	if c.Config.Persistence.Backend == config.BackendPostgres {
		return c.initPostgres(ctx)
	}

	var seed []model.Blueprint
	if c.Config.Persistence.SeedData {
		seed = repository.SeedBlueprints()
	}
	c.BlueprintRepo = repository.NewMemoryRepository(seed...)
	return nil
}

func (c *Container) initPostgres(ctx context.Context) error {
	db := database.NewPostgresDB(c.Config.Database)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := repository.EnsureSchema(connectCtx, db.Pool); err != nil {
		return err
	}

	c.startMonitor(db)

	if c.Config.Redis.Enabled {
		c.initCache(connectCtx)
	}

	c.BlueprintRepo = repository.NewPostgresRepository(db.Pool, c.Cache, c.Config.Redis.CacheTTL)

	if c.Config.Persistence.SeedData {
		return seedRepository(connectCtx, c.BlueprintRepo)
	}
	return nil
}

// startMonitor runs the pool health loop until Cleanup stops it
func (c *Container) startMonitor(db *database.PostgresDB) {
	monitorCtx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.stopMonitor = stop
	c.monitorDone = done

	go func() {
		defer close(done)
		db.MonitorPoolHealth(monitorCtx, poolMonitorInterval)
	}()
}

// initCache leaves c.Cache nil when Redis is unreachable; the repository
// then reads straight from PostgreSQL.
func (c *Container) initCache(ctx context.Context) {
	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	rc, ok := redisCache.(*infraCache.RedisCache)
	if !ok {
		return
	}

	if err := rc.Connect(ctx); err != nil {
		logger.Warn("Redis connection failed (non-critical), running without cache", err)
		_ = rc.Close()
		return
	}
	c.Cache = redisCache

	// entries written by a previous process may predate schema or data changes
	if err := repository.PurgeCache(ctx, c.Cache); err != nil {
		logger.Warn("Failed to purge blueprint cache", err)
	}
}

// seedRepository inserts the demo blueprints, skipping ones already stored
func seedRepository(ctx context.Context, repo repository.RepositoryInterface) error {
	for _, bp := range repository.SeedBlueprints() {
		err := repo.Save(ctx, bp)
		if err != nil && !errors.Is(err, model.ErrBlueprintAlreadyExists) {
			return fmt.Errorf("failed to seed %s: %w", bp.Key(), err)
		}
	}
	return nil
}

// Ping checks the store and, when configured, the cache.
// The cache result is informational only.
func (c *Container) Ping(ctx context.Context) (storeErr, cacheErr error) {
	if c.DB != nil {
		storeErr = c.DB.HealthCheck(ctx)
	} else {
		storeErr = c.BlueprintRepo.Ping(ctx)
	}
	if c.Cache != nil {
		cacheErr = c.Cache.Ping(ctx)
	}
	return storeErr, cacheErr
}

// Cleanup releases resources; safe on a partially built container
func (c *Container) Cleanup() {
	if c.stopMonitor != nil {
		c.stopMonitor()
		<-c.monitorDone
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Warn("Failed to close Redis", err)
			}
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Warn("Failed to close database", err)
		}
	}

	logger.Debug("Container cleanup completed")
}
