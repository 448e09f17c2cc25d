package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"college-portal.backend/internal/config"
	"college-portal.backend/internal/domain/entities"
	"college-portal.backend/internal/infrastructure/datasources/postgres"
	"college-portal.backend/internal/infrastructure/jobs"
	"college-portal.backend/internal/infrastructure/repositories"
	"college-portal.backend/internal/interfaces/http/handlers"
	"college-portal.backend/internal/interfaces/http/middleware"
	"college-portal.backend/internal/usecases"
	"college-portal.backend/pkg/crypto"
	"college-portal.backend/pkg/jwt"
	"college-portal.backend/pkg/logger"
	"college-portal.backend/pkg/metrics"
	"college-portal.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	closeRedis = redis.Close
	openDB     = postgres.NewConnection
	migrateDB  = postgres.Migrate
	listen     = func(srv *http.Server) error { return srv.ListenAndServe() }
	// waitForShutdown blocks the returned channel until SIGINT/SIGTERM has
	// been handled by ops
	waitForShutdown = func(timeout time.Duration, ops map[string]gfshutdown.Operation) <-chan int {
		return gfshutdown.GracefulShutdown(context.Background(), timeout, ops)
	}
)

func main() {
	code, err := runMainProcess()
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(code)
}

// application owns everything that has to be stopped on shutdown
type application struct {
	router *gin.Engine
	gate   *usecases.RefreshGate
	job    *jobs.PendingBacklogJob
}

func buildApplication(cfg *config.Config, db *gorm.DB) *application {
	jwtService := jwt.NewJWTService(
		jwt.DomainConfig{Secret: cfg.JWT.AccessSecret, Expiry: cfg.JWT.AccessExpiry},
		jwt.DomainConfig{Secret: cfg.JWT.RefreshSecret, Expiry: cfg.JWT.RefreshExpiry},
	)
	hasher := crypto.NewHasher(cfg.Security.BcryptCost)
	denylist := redis.NewTokenDenylist()

	// Initialize repositories
	uow := repositories.NewUnitOfWork(db)
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	departmentRepo := repositories.NewDepartmentRepository(db)
	requestRepo := repositories.NewVerificationRequestRepository(db)

	// Initialize usecases
	gate := usecases.NewRefreshGate()
	authUsecase := usecases.NewAuthUsecase(uow, userRepo, profileRepo, departmentRepo, requestRepo, hasher, jwtService, gate, denylist)
	verificationUsecase := usecases.NewVerificationUsecase(uow, userRepo, profileRepo, requestRepo, jwtService)

	router := newRouter(routeDeps{
		authHandler:         handlers.NewAuthHandler(authUsecase),
		verificationHandler: handlers.NewVerificationHandler(verificationUsecase),
		authenticate:        middleware.Authenticate(jwtService, userRepo, denylist),
		staffOnly:           middleware.RequireRole(userRepo, entities.RoleHOD, entities.RoleProfessor),
	})

	return &application{
		router: router,
		gate:   gate,
		job:    jobs.NewPendingBacklogJob(requestRepo, cfg.Jobs.PendingMetricsInterval),
	}
}

// shutdown stops intake first, then in-flight refreshes, then background
// work, then storage clients
func (a *application) shutdown(ctx context.Context, srv *http.Server, db *gorm.DB) error {
	var errs []error
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}
	if err := a.gate.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("refresh gate: %w", err))
	}
	a.job.Stop()
	if err := closeRedis(); err != nil {
		errs = append(errs, fmt.Errorf("redis: %w", err))
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func runMainProcess() (int, error) {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	if err := cfg.Validate(); err != nil {
		return 1, fmt.Errorf("invalid configuration: %w", err)
	}

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return 1, fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		_ = closeRedis()
		return 1, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrateDB(db); err != nil {
		_ = closeRedis()
		return 1, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info(ctx, "Connected to PostgreSQL via GORM")

	metrics.MustRegister(prometheus.DefaultRegisterer)

	app := buildApplication(cfg, db)
	app.gate.Start()

	jobCtx, cancelJobs := context.WithCancel(ctx)
	defer cancelJobs()
	go app.job.Start(jobCtx)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "College portal backend starting", zap.String("port", cfg.Server.Port))
		if err := listen(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	wait := waitForShutdown(cfg.Server.ShutdownTimeout, map[string]gfshutdown.Operation{
		"college-portal": func(ctx context.Context) error {
			logger.Info(ctx, "Shutting down server")
			return app.shutdown(ctx, srv, db)
		},
	})

	select {
	case err := <-serveErr:
		stopCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
		defer cancel()
		if stopErr := app.shutdown(stopCtx, srv, db); stopErr != nil {
			logger.Warn(ctx, "Shutdown after listen failure was incomplete", zap.Error(stopErr))
		}
		return 1, fmt.Errorf("failed to start server: %w", err)
	case code := <-wait:
		return code, nil
	}
}
