// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/account"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/pdf"
	"github.com/your-org/storefront/internal/session"
)

// HealthChecker is a backing service the health endpoint pings
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Dependencies are the services the HTTP layer is built on
type Dependencies struct {
	Sessions *session.Manager
	Accounts *account.Service
	Orders   order.Source
	PDF      *pdf.Service

	// Redis enables rate limiting when set
	Redis  *redis.Client
	Checks map[string]HealthChecker
}

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	logger     logrus.FieldLogger
	deps       Dependencies
	gin        *gin.Engine
	httpServer *http.Server
	startedAt  time.Time
}

// NewServer creates a new HTTP server instance with its routes in place
func NewServer(cfg *config.Config, logger logrus.FieldLogger, deps Dependencies) *Server {
	s := &Server{
		config:    cfg,
		logger:    logger,
		deps:      deps,
		gin:       gin.New(),
		startedAt: time.Now(),
	}
	if len(cfg.Security.TrustedProxies) > 0 {
		if err := s.gin.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			logger.WithError(err).Warn("Ignoring invalid trusted proxies")
		}
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.Infof("🚀 HTTP Server starting on port %s", s.config.Server.Port)
	s.logger.Infof("🌐 API Base URL: http://localhost:%s/api/v1", s.config.Server.Port)
	s.logger.Infof("📊 Health Check: http://localhost:%s/health", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("🛑 Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("✅ HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.logger))
	s.gin.Use(middleware.CORS(s.config.Security))
	s.gin.Use(middleware.SecurityHeaders(s.config.App.Name))

	if s.deps.Redis != nil {
		s.gin.Use(middleware.RateLimit(s.config.Security.RateLimitPerMinute, s.deps.Redis, s.logger))
	}

	s.gin.Use(middleware.RequestSizeLimit(s.config.Server.MaxBodyBytes))
	s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
	s.gin.Use(middleware.Session(s.config.Session))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/ready", s.readinessCheck)

	base := handlers.NewSessionHandler(s.deps.Sessions, s.deps.Accounts, s.deps.Orders, s.logger)
	apiV1 := s.gin.Group("/api/v1")
	routes.SetupRoutes(apiV1, base, s.deps.PDF, s.deps.Accounts.JWT())

	if s.config.IsDevelopment() {
		s.gin.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message":     s.config.App.Name,
				"version":     s.config.App.Version,
				"environment": s.config.App.Environment,
				"health":      "/health",
				"endpoints": gin.H{
					"auth":       "/api/v1/auth",
					"products":   "/api/v1/products",
					"categories": "/api/v1/categories",
					"cart":       "/api/v1/cart",
					"favorites":  "/api/v1/favorites",
					"compare":    "/api/v1/compare",
					"user":       "/api/v1/user",
					"orders":     "/api/v1/orders",
					"ui":         "/api/v1/ui",
				},
			})
		})
	}
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	for name, checker := range s.deps.Checks {
		if err := checker.Health(ctx); err != nil {
			s.logger.WithError(err).WithField("service", name).Warn("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  name + " ping failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

// readinessCheck reports ready once the catalog has loaded
func (s *Server) readinessCheck(c *gin.Context) {
	if err := s.deps.Sessions.Warm(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  "catalog unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.startedAt).String(),
	})
}
