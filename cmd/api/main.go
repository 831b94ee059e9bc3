package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/admin-portal-service/internal/api/http"
	"github.com/spec-kit/admin-portal-service/internal/api/http/handlers"
	"github.com/spec-kit/admin-portal-service/internal/auth"
	"github.com/spec-kit/admin-portal-service/internal/config"
	"github.com/spec-kit/admin-portal-service/internal/domain"
	"github.com/spec-kit/admin-portal-service/internal/events"
	"github.com/spec-kit/admin-portal-service/internal/observability"
	"github.com/spec-kit/admin-portal-service/internal/persistence"
	"github.com/spec-kit/admin-portal-service/internal/repository"
	"github.com/spec-kit/admin-portal-service/internal/service"
	"github.com/spec-kit/admin-portal-service/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	tokenMgr, err := auth.NewTokenManager(
		cfg.Auth.PrivateKeyPEM,
		cfg.Auth.PublicKeyPEM,
		cfg.Auth.AccessTokenTTL(),
		cfg.Auth.RefreshTokenTTL(),
	)
	if err != nil {
		logger.Fatal("failed to parse RSA key material", zap.Error(err))
	}

	pool := pg.PoolHandle()
	adminRepo := repository.NewAdminRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	resetRepo := repository.NewResetTokenRepository(pool)
	skillRepo := repository.NewSkillRepository(pool)
	experienceRepo := repository.NewExperienceRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	mailService := service.NewMailService(dispatcher, logger, cfg.Mail)
	mailService.RegisterHandlers()

	authService := service.NewAuthService(service.AuthDependencies{
		AdminRepo:   adminRepo,
		SessionRepo: sessionRepo,
		TokenMgr:    tokenMgr,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	resetService := service.NewPasswordResetService(
		adminRepo, resetRepo, dispatcher, logger,
		cfg.Auth.PasswordResetTTL(), cfg.Auth.BcryptCost,
	)
	rolePolicy := auth.NewRolePolicy(domain.AdminRole(cfg.Auth.ElevationFallbackRole))
	adminService := service.NewAdminService(adminRepo, rolePolicy, cfg.Auth.BcryptCost)
	skillService := service.NewSkillService(skillRepo, redis, cfg.Redis.CacheTTL(), logger)
	experienceService := service.NewExperienceService(experienceRepo, redis, cfg.Redis.CacheTTL(), logger)

	authMiddleware := auth.NewAuthMiddleware(tokenMgr, authService)

	worker.StartSessionJanitor(ctx, authService, cfg.Janitor, logger)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Sessions:       handlers.NewSessionsHandler(authService, resetService),
		Admins:         handlers.NewAdminsHandler(adminService),
		Skills:         handlers.NewSkillsHandler(skillService),
		Experiences:    handlers.NewExperiencesHandler(experienceService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
