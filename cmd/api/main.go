package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cybersec-git-expert/catalog-governance/internal/config"
	activationHandler "github.com/cybersec-git-expert/catalog-governance/internal/handler/activation"
	pageHandler "github.com/cybersec-git-expert/catalog-governance/internal/handler/page"
	principalHandler "github.com/cybersec-git-expert/catalog-governance/internal/handler/principal"
	"github.com/cybersec-git-expert/catalog-governance/internal/middleware"
	"github.com/cybersec-git-expert/catalog-governance/internal/repository/postgres"
	"github.com/cybersec-git-expert/catalog-governance/internal/router"
	activationService "github.com/cybersec-git-expert/catalog-governance/internal/service/activation"
	auditService "github.com/cybersec-git-expert/catalog-governance/internal/service/audit"
	pageService "github.com/cybersec-git-expert/catalog-governance/internal/service/page"
	principalService "github.com/cybersec-git-expert/catalog-governance/internal/service/principal"

	"github.com/cybersec-git-expert/catalog-governance/internal/handler"
	"github.com/cybersec-git-expert/catalog-governance/pkg/auth"
	"github.com/cybersec-git-expert/catalog-governance/pkg/logger"
	"github.com/cybersec-git-expert/catalog-governance/pkg/messaging"
	redisBroker "github.com/cybersec-git-expert/catalog-governance/pkg/messaging/redis"
	"github.com/cybersec-git-expert/catalog-governance/pkg/metrics"
	"github.com/cybersec-git-expert/catalog-governance/pkg/security"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.ApplyEnvOverrides(); err != nil {
		log.Fatal().Err(err).Msg("failed to apply env overrides")
	}

	appLogger := logger.New(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Audit sink: redis broker when configured, log-only otherwise.
	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redisBroker.NewRedisBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, &appLogger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer broker.Close()
	}

	// Initialize repositories
	overrideRepo := postgres.NewOverrideRepository(db)
	pageRepo := postgres.NewPageRepository(db)
	principalRepo := postgres.NewPrincipalRepository(db)

	// Initialize services
	m := metrics.New()
	auditor := auditService.NewEmitter(broker, appLogger).WithFailureCounter(m.AuditPublishFailures)
	activationSvc := activationService.NewService(overrideRepo, auditor, m)
	pageSvc := pageService.NewService(pageRepo, auditor, m)
	hasher := security.NewBcryptHasher(0)
	principalSvc := principalService.NewService(principalRepo, hasher, auditor)

	// Initialize middleware
	tokenSvc := auth.NewJWTService(cfg.JWT.Secret)
	authMiddleware := middleware.NewAuthMiddleware(tokenSvc)

	// Initialize handlers
	h := handler.NewHandler()
	activationH := activationHandler.NewHandler(activationSvc)
	pageH := pageHandler.NewHandler(pageSvc)
	principalH := principalHandler.NewHandler(principalSvc)

	// Setup router
	r := router.NewRouter(
		authMiddleware,
		activationH,
		pageH,
		principalH,
		h,
	).WithTimeout(time.Duration(cfg.Server.TimeoutSeconds) * time.Second)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
