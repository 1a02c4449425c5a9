package app

import (
	"context"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/api"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/auth"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/config"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/database"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/handler"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/repository"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/service"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// MarketplaceApp represents the application with its dependencies.
type MarketplaceApp struct {
	cfg *config.Config

	db *pgxpool.Pool
	r  *echo.Echo

	log *zap.Logger
}

// NewMarketplaceApp initializes the database, repositories, services,
// handlers and routes.
func NewMarketplaceApp(cfg *config.Config, log *zap.Logger) *MarketplaceApp {
	db, err := database.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	r := echo.New()

	retrier := newRepoRetrier(cfg.Retry, repository.IsRetryable)

	serviceRepo := repository.NewServiceRepository(db, trmpgx.DefaultCtxGetter, retrier)
	versionRepo := repository.NewVersionRepository(db, trmpgx.DefaultCtxGetter, retrier)
	pendingRepo := repository.NewPendingChangeRepository(db, trmpgx.DefaultCtxGetter, retrier)
	userRepo := repository.NewUserRepository(db, trmpgx.DefaultCtxGetter, retrier)
	reviewRepo := repository.NewReviewRepository(db, trmpgx.DefaultCtxGetter, retrier)

	trManager := manager.Must(trmpgx.NewDefaultFactory(db))
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	moderationService := service.NewModerationService(
		serviceRepo,
		versionRepo,
		pendingRepo,
		trManager,
		log,
	)
	catalogService := service.NewCatalogService(
		serviceRepo,
		versionRepo,
		reviewRepo,
		trManager,
		log,
	)
	authService := service.NewAuthService(userRepo, issuer, cfg.Auth.Superadmin, log)

	apiHandler := handler.NewAPIHandler(moderationService, catalogService, authService, log)

	api.RegisterHandlers(r, apiHandler)

	r.Use(middleware.Recover())
	r.Use(auth.Authenticate(issuer))

	return &MarketplaceApp{
		cfg: cfg,
		db:  db,
		r:   r,
		log: log,
	}
}

// Run starts the HTTP server and waits for context cancellation.
func (a *MarketplaceApp) Run(ctx context.Context) error {
	go func() {
		if err := a.r.Start(":" + a.cfg.App.Port); err != nil {
			a.log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	return a.Shutdown()
}

// Shutdown closes the server and database connections.
func (a *MarketplaceApp) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.App.ShutdownTimeout)
	defer cancel()

	if err := a.r.Shutdown(ctx); err != nil {
		a.log.Fatal("failed to shutdown server",
			zap.Error(err),
		)
		return err
	}

	a.db.Close()

	return nil
}
