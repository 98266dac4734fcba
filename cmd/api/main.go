package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/edusekai/platform-api/internal/api/http"
	"github.com/edusekai/platform-api/internal/api/http/handlers"
	"github.com/edusekai/platform-api/internal/auth"
	"github.com/edusekai/platform-api/internal/config"
	"github.com/edusekai/platform-api/internal/events"
	"github.com/edusekai/platform-api/internal/gateway/esewa"
	"github.com/edusekai/platform-api/internal/observability"
	"github.com/edusekai/platform-api/internal/persistence"
	"github.com/edusekai/platform-api/internal/repository"
	"github.com/edusekai/platform-api/internal/service"
	"github.com/edusekai/platform-api/internal/session"
	"github.com/edusekai/platform-api/internal/tenant"
	"github.com/edusekai/platform-api/internal/validation"
	"github.com/edusekai/platform-api/internal/worker"
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
	orgRepo := repository.NewOrganizationRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	academicsRepo := repository.NewAcademicsRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	sessions := session.NewStore(redis.Client, logger)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.RefreshTokenTTLHours)
	validator := validation.New()

	worker.StartSessionWorker(dispatcher, sessions, logger)
	worker.StartAuditWorker(dispatcher, logger)

	orgService := service.NewOrganizationService(*cfg, service.OrganizationDependencies{
		OrgRepo:    orgRepo,
		UserRepo:   userRepo,
		RoleRepo:   roleRepo,
		Validator:  validator,
		Dispatcher: dispatcher,
	})
	if pool != nil {
		if err := orgService.SeedPermissionCatalog(ctx); err != nil {
			logger.Fatal("failed to seed permission catalog", zap.Error(err))
		}
	}

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		RoleRepo:   roleRepo,
		Tokens:     tokens,
		Sessions:   sessions,
		Dispatcher: dispatcher,
	})
	roleService := service.NewRoleService(roleRepo)
	profileService := service.NewProfileService(profileRepo, validator)
	studentService := service.NewStudentService(studentRepo, academicsRepo, validator, dispatcher)
	staffService := service.NewStaffService(staffRepo, validator, dispatcher)
	academicsService := service.NewAcademicsService(academicsRepo, staffRepo, validator)
	credentialService := service.NewCredentialService(*cfg, service.CredentialDependencies{
		StudentRepo: studentRepo,
		StaffRepo:   staffRepo,
		UserRepo:    userRepo,
		RoleRepo:    roleRepo,
		Dispatcher:  dispatcher,
	})
	paymentService := service.NewPaymentService(*cfg, service.PaymentDependencies{
		PaymentRepo: paymentRepo,
		Orgs:        orgService,
		Gateway:     esewa.NewClient(cfg.Esewa),
		Validator:   validator,
		Dispatcher:  dispatcher,
	})

	resolver := tenant.NewResolver(orgRepo, userRepo)
	tenantMiddleware := tenant.NewMiddleware(resolver)
	authMiddleware := auth.NewMiddleware(tokens, userRepo, roleRepo, profileRepo, sessions)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:          handlers.NewAuthHandler(authService),
		Organizations: handlers.NewOrganizationsHandler(orgService, resolver),
		Payments:      handlers.NewPaymentsHandler(paymentService, orgService, cfg.Tenant.RootDomain),
		Profiles:      handlers.NewProfilesHandler(profileService),
		Roles:         handlers.NewRolesHandler(roleService),
		Students:      handlers.NewStudentsHandler(studentService),
		Staff:         handlers.NewStaffHandler(staffService),
		Credentials:   handlers.NewCredentialsHandler(credentialService),
		Academics:     handlers.NewAcademicsHandler(academicsService),

		TenantMiddleware: tenantMiddleware,
		AuthMiddleware:   authMiddleware,
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
