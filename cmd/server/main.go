// Command server runs the SAMARTH HTTP API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	appaudit "github.com/samarth/backend/internal/application/audit"
	appcontent "github.com/samarth/backend/internal/application/content"
	appdashboard "github.com/samarth/backend/internal/application/dashboard"
	appidentity "github.com/samarth/backend/internal/application/identity"
	appintegration "github.com/samarth/backend/internal/application/integration"
	appinventory "github.com/samarth/backend/internal/application/inventory"
	apptraining "github.com/samarth/backend/internal/application/training"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/domain/integration"
	"github.com/samarth/backend/internal/infrastructure/auth"
	"github.com/samarth/backend/internal/infrastructure/cache"
	"github.com/samarth/backend/internal/infrastructure/config"
	"github.com/samarth/backend/internal/infrastructure/logger"
	"github.com/samarth/backend/internal/infrastructure/migration"
	"github.com/samarth/backend/internal/infrastructure/ndu"
	"github.com/samarth/backend/internal/infrastructure/persistence"
	"github.com/samarth/backend/internal/infrastructure/telemetry"
	"github.com/samarth/backend/internal/interfaces/http/handler"
	"github.com/samarth/backend/internal/interfaces/http/middleware"
	"github.com/samarth/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const (
	slowQueryThreshold = 200 * time.Millisecond
	shutdownTimeout    = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logCfg := &logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	ctx := context.Background()

	// Telemetry first so the OTLP log bridge can join the main logger
	tel, err := telemetry.Setup(ctx, cfg.Telemetry, bootLog)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			bootLog.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	log, err := logger.New(logCfg, tel.Logs.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting SAMARTH backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), slowQueryThreshold)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := migrateSchema(ctx, cfg, db, log); err != nil {
		return err
	}

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:       cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:    cfg.Telemetry.DBLogFullSQL,
		SlowThreshold: slowQueryThreshold,
		DBSystem:      cfg.Database.Driver,
	}, log); err != nil {
		return err
	}

	meter := tel.Meter.Meter("samarth-backend")
	if tel.Meter.IsEnabled() {
		sqlDB, err := db.DB.DB()
		if err != nil {
			return err
		}
		if _, err := telemetry.RegisterDBPoolMetrics(meter, sqlDB.Stats); err != nil {
			return fmt.Errorf("register pool metrics: %w", err)
		}
	}

	// Redis or in-memory stores for idempotency keys and revoked tokens
	stores, err := cache.NewStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("initialize stores: %w", err)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error("Error closing stores", zap.Error(err))
		}
	}()

	// NDU registry
	progressOutcome, err := ndu.OutcomeFromConfig(cfg.Sync.ProgressOutcome, cfg.Sync.ProgressSuccessRatio, cfg.Sync.ProgressSeed)
	if err != nil {
		return err
	}
	registry := ndu.NewMockRegistry(
		ndu.WithOutcome(integration.EndpointSyncProgress, progressOutcome),
		ndu.WithLogger(log),
	)

	syncMetrics, err := telemetry.NewSyncMetrics(meter)
	if err != nil {
		return fmt.Errorf("register sync metrics: %w", err)
	}

	// Application services
	repos := persistence.Repositories(db.DB)
	txs := persistence.NewGormTransactionScope(db.DB)
	hasher := identity.NewBcryptHasher(cfg.JWT.BcryptCost)
	policy := identity.DefaultPolicy()
	recorder := appaudit.NewRecorder(repos.Audit(), log)
	jwtService := auth.NewJWTService(cfg.JWT)

	authService := appidentity.NewAuthService(repos.Users(), hasher, jwtService, stores.Blacklist, recorder, log)
	userService := appidentity.NewUserService(repos.Users(), hasher, policy, txs, log)
	ledger := appinventory.NewLedger(repos.Items(), repos.Transactions(), txs, recorder, log)
	trainingService := apptraining.NewService(repos.Programs(), repos.Batches(), txs, log)
	contentService := appcontent.NewService(repos.Content(), txs, log)
	dashboardService := appdashboard.NewService(repos.Items(), repos.Batches(), repos.Content(), repos.Audit())
	gateway := appintegration.NewGateway(cfg.Sync, registry, repos, txs, log,
		appintegration.WithIdempotencyStore(stores.Idempotency),
		appintegration.WithSyncMetrics(syncMetrics),
	)

	if cfg.App.SeedEnabled {
		result, err := userService.InitUsers(ctx)
		if err != nil {
			return fmt.Errorf("seed default users: %w", err)
		}
		log.Info("Default users checked", zap.Bool("created", result.Created))
	}

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := router.NewEngine(router.EngineOptions{
		Logger:    log,
		HTTP:      cfg.HTTP,
		Telemetry: cfg.Telemetry,
		Meter:     meter,
	})

	var loginLimiter *middleware.RateLimiter
	if cfg.HTTP.LoginRateLimit > 0 {
		loginLimiter = middleware.NewRateLimiter(cfg.HTTP.LoginRateLimit, cfg.HTTP.LoginRateWindow)
		defer loginLimiter.Stop()
	}

	router.RegisterAPI(engine, router.Handlers{
		System:      handler.NewSystemHandler(db),
		Auth:        handler.NewAuthHandler(authService, userService),
		User:        handler.NewUserHandler(userService),
		Inventory:   handler.NewInventoryHandler(ledger),
		Training:    handler.NewTrainingHandler(trainingService),
		Content:     handler.NewContentHandler(contentService),
		Integration: handler.NewIntegrationHandler(gateway),
		Dashboard:   handler.NewDashboardHandler(dashboardService, recorder),
	}, router.APIOptions{
		Authenticator: authService,
		Policy:        policy,
		Logger:        log,
		LoginLimiter:  loginLimiter,
		SeedEnabled:   cfg.App.SeedEnabled,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Info("Shutting down server...", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited gracefully")
	return nil
}

// migrateSchema brings the schema up to date when auto migration is on.
// SQLite uses the GORM models; PostgreSQL runs the embedded SQL migrations
// over a dedicated connection, since the migrator closes the handle it owns.
func migrateSchema(ctx context.Context, cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	if !cfg.Database.AutoMigrate {
		return nil
	}
	if db.IsSQLite() {
		return db.AutoMigrate(ctx)
	}

	conn, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	m, err := migration.New(conn, log)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Error closing migrator", zap.Error(err))
		}
	}()
	return m.Up()
}
