// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/account"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront/internal/infrastructure/database/redis"
	"github.com/your-org/storefront/internal/infrastructure/seed"
	"github.com/your-org/storefront/internal/interfaces/http"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/pkg/pdf"
	"github.com/your-org/storefront/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg.Logging)
	logg.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	checks := map[string]http.HealthChecker{}
	var (
		catalogSource catalog.Source = seed.NewSource(seed.WithDelay(cfg.Catalog.SeedDelay))
		orderSource   order.Source   = order.NewMemorySource()
		accountStore  account.Store  = account.NewMemoryStore()
	)

	// Connect to database
	if cfg.Database.Enabled {
		db, err := postgres.NewConnection(cfg, logg)
		if err != nil {
			logg.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		checks["database"] = db

		migration := postgres.NewMigration(db.GetDB(), logg)
		if err := migration.RunAutoMigrations(); err != nil {
			logg.Fatalf("Database migration failed: %v", err)
		}
		if err := migration.CreateIndexes(); err != nil {
			logg.Warnf("Index creation failed: %v", err)
		}
		if cfg.Catalog.SeedDB {
			if err := migration.SeedCatalog(ctx, seed.NewSource()); err != nil {
				logg.Warnf("Catalog seeding failed: %v", err)
			}
		}

		if cfg.Catalog.Source == "postgres" {
			catalogSource = postgres.NewCatalogSource(db.GetDB())
		}
		orderSource = postgres.NewOrderRepository(db.GetDB())
		accountStore = postgres.NewAccountRepository(db.GetDB())
	}

	// Connect to Redis
	var (
		deps     http.Dependencies
		sessions session.Repository
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewConnection(cfg, logg)
		if err != nil {
			logg.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		checks["redis"] = redisClient
		deps.Redis = redisClient.GetClient()

		if cfg.Session.Backend == "redis" {
			sessions = redis.NewSessionRepository(redisClient.GetClient())
		}
	}
	if sessions == nil {
		memory := session.NewMemoryRepository()
		go sweepSessions(memory, logg)
		sessions = memory
	}

	manager := session.NewManager(sessions, catalogSource, cfg.Store, cfg.Session, session.WithLogger(logg))
	if err := manager.Warm(ctx); err != nil {
		logg.Fatalf("Failed to load catalog: %v", err)
	}
	cancel()

	deps.Sessions = manager
	deps.Accounts = account.NewService(accountStore, cfg)
	deps.Orders = orderSource
	deps.PDF = pdf.NewService(cfg)
	deps.Checks = checks

	logg.WithFields(logrus.Fields{
		"catalog":  cfg.Catalog.Source,
		"sessions": cfg.Session.Backend,
		"database": cfg.Database.Enabled,
		"redis":    cfg.Redis.Enabled,
	}).Info("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, logg, deps)

	go func() {
		if err := server.Start(); err != nil {
			logg.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logg.Info("👋 Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logg.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	logg.Info("✅ Server shutdown completed")
}

// sweepSessions drops expired in-memory sessions every minute
func sweepSessions(repo *session.MemoryRepository, logg logrus.FieldLogger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		if n := repo.Sweep(); n > 0 {
			logg.WithField("removed", n).Debug("Expired sessions swept")
		}
	}
}
