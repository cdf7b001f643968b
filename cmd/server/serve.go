package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/todo-service/api/handler"
	"github.com/fastygo/todo-service/internal/infrastructure/journal"
	"github.com/fastygo/todo-service/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/todo-service/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/todo-service/internal/infrastructure/redis"
	"github.com/fastygo/todo-service/internal/middleware"
	"github.com/fastygo/todo-service/internal/router"
	"github.com/fastygo/todo-service/internal/services"
	"github.com/fastygo/todo-service/internal/services/lifecycle"
	"github.com/fastygo/todo-service/pkg/httpcontext"
	"github.com/fastygo/todo-service/repository/postgres"
	redisRepo "github.com/fastygo/todo-service/repository/redis"
	activityUC "github.com/fastygo/todo-service/usecase/activity"
	authUC "github.com/fastygo/todo-service/usecase/auth"
	profileUC "github.com/fastygo/todo-service/usecase/profile"
	todoUC "github.com/fastygo/todo-service/usecase/todo"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, zapLogger, err := bootstrap()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, stop := manager.WithSignals(cmd.Context())
	defer stop()

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		return fmt.Errorf("postgres connection failed: %w", err)
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pgInfra.Close(pool, zapLogger)
		return nil
	})

	redisClient, err := redisInfra.NewClient(appCtx, cfg.Redis, zapLogger)
	if err != nil {
		_ = manager.Shutdown(context.Background())
		return fmt.Errorf("redis connection failed: %w", err)
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	journalStore, err := journal.Open(cfg.Journal.Path, cfg.Journal.Bucket)
	if err != nil {
		_ = manager.Shutdown(context.Background())
		return fmt.Errorf("open activity journal: %w", err)
	}
	manager.Register("journal", func(ctx context.Context) error {
		return journalStore.Close()
	})

	mon := monitor.New(monitor.Checks{
		Postgres: monitor.PostgresCheck(pool),
		Redis:    monitor.RedisCheck(redisClient),
		Journal:  journalStore,
	}, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	todoRepo := postgres.NewTodoRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.JWT.AccessTokenTTL)

	journalProcessor := services.NewJournalProcessor(
		journalStore,
		mon,
		activityRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Journal.SyncInterval,
			BatchSize:  cfg.Journal.BatchSize,
			MaxRetries: cfg.Journal.MaxRetry,
			Retention:  cfg.Journal.Retention,
		},
	)
	journalProcessor.Start()
	manager.Register("journal_processor", func(ctx context.Context) error {
		journalProcessor.Stop(ctx)
		return nil
	})

	authUseCase := authUC.New(userRepo, sessionRepo, authUC.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  cfg.JWT.AccessTokenTTL,
		BcryptCost: cfg.JWT.BcryptCost,
	}, zapLogger)
	profileUseCase := profileUC.New(userRepo, zapLogger)
	todoUseCase := todoUC.New(todoRepo, services.NewActivityJournal(journalProcessor), zapLogger)
	activityUseCase := activityUC.New(todoRepo, activityRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Profile: apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Todo:    apiHandler.NewTodoHandler(todoUseCase, activityUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.Auth(authUseCase, ctxAdapter, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:            r.Handler,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		Concurrency:        cfg.HTTP.MaxConn,
		MaxRequestBodySize: cfg.HTTP.MaxBodySize,
		Name:               cfg.AppName,
	}

	serveErr := make(chan error, 1)
	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		serveErr <- server.ListenAndServe(cfg.Address())
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	var runErr error
	select {
	case <-appCtx.Done():
	case err := <-serveErr:
		if err != nil {
			zapLogger.Error("server crashed", zap.Error(err))
			runErr = err
		}
	}

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
	return runErr
}
