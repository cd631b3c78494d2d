// Package main is the entry point for the ledger API.
// It loads configuration, opens the database and cache, and serves HTTP
// until interrupted.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobpay/internal/config"
	applogger "jobpay/internal/logger"
	"jobpay/internal/metrics"
	"jobpay/internal/repositories"
	"jobpay/internal/repositories/cache"
	"jobpay/internal/routes"
	"jobpay/internal/services/report"
	"jobpay/internal/tracing"
	"jobpay/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 10 * time.Second
	statsInterval   = time.Minute
)

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	zlog, err := applogger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.OTLPEndpoint, version)
	if err != nil {
		zlog.Fatal("failed to set up tracing", zap.Error(err))
	}

	db, err := repositories.Open(cfg.DB)
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	if err := repositories.Migrate(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}
	zlog.Info("connected to database", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))

	reportCache := openCache(ctx, cfg, zlog)

	go logPoolStats(ctx, db, reportCache, zlog)

	app := fiber.New(fiber.Config{
		AppName:      "jobpay",
		ReadTimeout:  cfg.LedgerTimeout,
		WriteTimeout: cfg.LedgerTimeout,
	})

	app.Use(recover.New())
	app.Use(requestid.New())

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, profile_id",
		AllowMethods:     "GET,POST,HEAD",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(metrics.Middleware())

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.Respond(c, fiber.StatusTooManyRequests, fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, routes.Deps{
		DB:      db,
		Cache:   reportCache,
		Config:  cfg,
		Logger:  zlog,
		Version: version,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Error("server stopped", zap.Error(err))
			stop()
		}
	}()
	zlog.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	<-ctx.Done()
	zlog.Info("shutting down")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		zlog.Warn("failed to drain connections", zap.Error(err))
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		zlog.Warn("failed to flush traces", zap.Error(err))
	}
	if err := reportCache.Close(); err != nil {
		zlog.Warn("failed to close cache", zap.Error(err))
	}
	if err := repositories.Close(db); err != nil {
		zlog.Warn("failed to close database", zap.Error(err))
	}
}

type closableCache interface {
	routes.Cache
	Close() error
}

// openCache connects to redis when enabled. Any failure degrades to an
// uncached service rather than refusing to start.
func openCache(ctx context.Context, cfg *config.Config, zlog *zap.Logger) closableCache {
	if !cfg.Redis.Enabled {
		zlog.Info("redis disabled, reports are not cached")
		return cache.Nop{}
	}

	client, err := cache.Connect(ctx, cfg.Redis)
	if err != nil {
		zlog.Warn("redis unavailable, reports are not cached", zap.Error(err))
		return cache.Nop{}
	}

	svc := cache.NewCacheService(client, cfg.ReportCacheTTL)
	// Reports computed by a previous process may predate its last payments.
	if err := svc.DeletePattern(ctx, report.KeyPattern); err != nil {
		zlog.Warn("failed to clear cached reports", zap.Error(err))
	}
	zlog.Info("connected to redis", zap.String("host", cfg.Redis.Host))
	return svc
}

func logPoolStats(ctx context.Context, db *gorm.DB, c closableCache, zlog *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		zlog.Warn("failed to get database instance", zap.Error(err))
		return
	}

	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := sqlDB.Stats()
			fields := []zap.Field{
				zap.Int("open", stats.OpenConnections),
				zap.Int("idle", stats.Idle),
				zap.Int("in_use", stats.InUse),
				zap.Int64("wait_count", stats.WaitCount),
				zap.Duration("wait_duration", stats.WaitDuration),
			}
			if svc, ok := c.(*cache.CacheService); ok {
				ps := svc.Stats()
				fields = append(fields,
					zap.Uint32("redis_hits", ps.Hits),
					zap.Uint32("redis_misses", ps.Misses),
					zap.Uint32("redis_total_conns", ps.TotalConns),
				)
			}
			zlog.Info("pool stats", fields...)
		}
	}
}
