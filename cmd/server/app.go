package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	apiMiddleware "github.com/phrazzld/spot-api/internal/api/middleware"
	"github.com/phrazzld/spot-api/internal/config"
	"github.com/phrazzld/spot-api/internal/platform/postgres"
	"github.com/phrazzld/spot-api/internal/service"
	"github.com/phrazzld/spot-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds the wired dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// registry is nil when metrics are disabled.
	registry    *prometheus.Registry
	httpMetrics *apiMiddleware.HTTPMetrics

	jwtService    auth.JWTService
	userService   service.UserService
	reviewService service.ReviewService
	placeService  service.PlaceService
}

// newApplication wires stores, services and metrics. reg is only used when
// metrics are enabled in cfg.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB, reg *prometheus.Registry) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes),
		slog.Int("refresh_token_lifetime_minutes", cfg.Auth.RefreshTokenLifetimeMinutes))

	userStore := postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost)
	placeStore := postgres.NewPostgresPlaceStore(db, logger)
	reviewStore := postgres.NewPostgresReviewStore(db, logger)

	app.userService = service.NewUserService(userStore, db, auth.NewBcryptVerifier(), logger,
		service.WithBcryptCost(cfg.Auth.BCryptCost))
	app.reviewService = service.NewReviewService(db, placeStore, reviewStore, cfg.Review.MaxTxRetries, logger)
	app.placeService = service.NewPlaceService(placeStore, reviewStore, logger)

	if cfg.Metrics.Enabled {
		if reg == nil {
			reg = prometheus.NewRegistry()
		}
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewDBStatsCollector(db, "spot"),
		)
		m := service.NewMetrics(reg)
		app.reviewService = service.NewReviewServiceMetrics(app.reviewService, m)
		app.placeService = service.NewPlaceServiceMetrics(app.placeService, m)
		app.httpMetrics = apiMiddleware.NewHTTPMetrics(reg)
		app.registry = reg
		logger.Info("metrics enabled", slog.String("path", cfg.Metrics.Path))
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
