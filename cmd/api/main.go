package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/connect-inmobiliaria/crm-service/internal/api/http"
	"github.com/connect-inmobiliaria/crm-service/internal/api/http/handlers"
	"github.com/connect-inmobiliaria/crm-service/internal/auth"
	"github.com/connect-inmobiliaria/crm-service/internal/config"
	"github.com/connect-inmobiliaria/crm-service/internal/events"
	"github.com/connect-inmobiliaria/crm-service/internal/integration/advisor"
	"github.com/connect-inmobiliaria/crm-service/internal/integration/idecor"
	"github.com/connect-inmobiliaria/crm-service/internal/integration/telemetry"
	"github.com/connect-inmobiliaria/crm-service/internal/mail"
	"github.com/connect-inmobiliaria/crm-service/internal/observability"
	"github.com/connect-inmobiliaria/crm-service/internal/persistence"
	"github.com/connect-inmobiliaria/crm-service/internal/repository"
	"github.com/connect-inmobiliaria/crm-service/internal/service"
	"github.com/connect-inmobiliaria/crm-service/internal/session"
	"github.com/connect-inmobiliaria/crm-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if pool != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		leadRepo     repository.LeadRepository
		activityRepo repository.LeadActivityRepository
		propertyRepo repository.PropertyRepository
	)
	if pool != nil {
		leadRepo = repository.NewLeadRepository(pool)
		activityRepo = repository.NewLeadActivityRepository(pool)
		propertyRepo = repository.NewPropertyRepository(pool)
	} else {
		leadRepo = repository.NewMemoryLeadRepository()
		activityRepo = repository.NewMemoryLeadActivityRepository()
		propertyRepo = repository.NewMemoryPropertyRepository(repository.SeedProperties())
	}

	dispatcher := events.NewInMemoryDispatcher()

	recorder := telemetry.NewClient(cfg.Telemetry.Endpoint, cfg.Telemetry.MeasurementID, cfg.Telemetry.APISecret, logger)
	notifications := service.NewNotificationService(recorder, logger)
	notifications.Register(dispatcher)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	sessions := session.NewManager(cfg.Auth, tokens, dispatcher, logger)
	gate := session.NewMiddleware(sessions)

	cadastral := idecor.NewClient(cfg.Idecor.BaseURL, time.Duration(cfg.Idecor.TimeoutSeconds)*time.Second)
	adv := advisor.NewClient(cfg.Advisor.BaseURL, cfg.Advisor.APIKey, cfg.Advisor.Model,
		time.Duration(cfg.Advisor.TimeoutSeconds)*time.Second, logger)
	mailer := mail.NewEmailSender(cfg.Mail)

	leadService := service.NewLeadService(service.LeadDependencies{
		LeadRepo:     leadRepo,
		ActivityRepo: activityRepo,
		Dispatcher:   dispatcher,
		Visits:       redis,
		Stats:        cfg.Stats,
		Logger:       logger,
	})
	propertyService := service.NewPropertyService(service.PropertyDependencies{
		PropertyRepo: propertyRepo,
		Cadastral:    cadastral,
		Counter:      redis,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	valuationService := service.NewValuationService(adv, leadService, mailer, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Sessions:   handlers.NewSessionHandler(sessions),
		Leads:      handlers.NewLeadsHandler(leadService),
		Properties: handlers.NewPropertiesHandler(propertyService, adv),
		Stats:      handlers.NewStatsHandler(leadService),
		Valuation:  handlers.NewValuationHandler(valuationService),
		Chat:       handlers.NewChatHandler(adv, propertyService),
		Gate:       gate,
	})

	poller := worker.NewBadgePoller(leadService, sessions, cfg.Stats.PollInterval(), logger)
	go poller.Run(ctx)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
