package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/roster-service/internal/api/http"
	"github.com/spec-kit/roster-service/internal/api/http/handlers"
	"github.com/spec-kit/roster-service/internal/auth"
	"github.com/spec-kit/roster-service/internal/config"
	"github.com/spec-kit/roster-service/internal/events"
	"github.com/spec-kit/roster-service/internal/identity"
	"github.com/spec-kit/roster-service/internal/observability"
	"github.com/spec-kit/roster-service/internal/persistence"
	"github.com/spec-kit/roster-service/internal/repository"
	"github.com/spec-kit/roster-service/internal/service"
	"github.com/spec-kit/roster-service/internal/session"
	"github.com/spec-kit/roster-service/internal/worker"
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

	pool := pg.PoolHandle()
	profileRepo := repository.NewProfileRepository(pool)
	restaurantRepo := repository.NewRestaurantRepository(pool)
	leadRepo := repository.NewAreaLeadRepository(pool)
	avatarRepo := repository.NewAvatarRepository(pool)

	identityProvider := identity.NewPostgresProvider(pool, cfg.Auth.BcryptCost)
	activeRestaurants := session.NewActiveRestaurantStore(redis.Client)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	areaLeadService := service.NewAreaLeadService(service.AreaLeadDependencies{
		LeadRepo:       leadRepo,
		ProfileRepo:    profileRepo,
		RestaurantRepo: restaurantRepo,
		Dispatcher:     dispatcher,
	})
	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		ProfileRepo:    profileRepo,
		RestaurantRepo: restaurantRepo,
		LeadRepo:       leadRepo,
		AreaLeads:      areaLeadService,
		Identity:       identityProvider,
		Dispatcher:     dispatcher,
	})
	authService := service.NewAuthService(service.AuthDependencies{
		Identity:    identityProvider,
		ProfileRepo: profileRepo,
		Tokens:      tokens,
	})
	profileService := service.NewProfileService(service.ProfileDependencies{
		ProfileRepo: profileRepo,
		AvatarRepo:  avatarRepo,
		Identity:    identityProvider,
		Avatar:      cfg.Avatar,
	})

	notificationService := service.NewNotificationService(logger)
	worker.NewNotificationWorker(notificationService).Register(dispatcher)

	authMiddleware := auth.NewAuthMiddleware(tokens, profileRepo)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Avatar.MaxBytes) + 1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, activeRestaurants),
		Me:             handlers.NewMeHandler(authService, profileService, areaLeadService),
		Restaurants:    handlers.NewRestaurantsHandler(restaurantRepo, activeRestaurants),
		Employees:      handlers.NewEmployeesHandler(employeeService, activeRestaurants),
		AreaLeads:      handlers.NewAreaLeadsHandler(areaLeadService, employeeService, activeRestaurants),
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
