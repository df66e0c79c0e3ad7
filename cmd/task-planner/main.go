package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/SergeyKozhin/task-planner-backend/internal/api"
	tasks_service "github.com/SergeyKozhin/task-planner-backend/internal/business/tasks"
	"github.com/SergeyKozhin/task-planner-backend/internal/config"
	"github.com/SergeyKozhin/task-planner-backend/internal/database"
	"github.com/SergeyKozhin/task-planner-backend/internal/database/tasks"
	"github.com/SergeyKozhin/task-planner-backend/internal/redis"
	"github.com/SergeyKozhin/task-planner-backend/internal/scheduler"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	loc, err := config.Location()
	if err != nil {
		logger.Fatalw("invalid timezone", "err", err)
	}

	db, err := database.NewPGX(ctx, config.PostgresURL())
	if err != nil {
		logger.Fatalw("unable to initializae db", "err", err)
	}
	tasksRepository := tasks.NewRepository()

	tasksService := tasks_service.NewService(db, logger, tasksRepository,
		tasks_service.WithClock(func() time.Time { return time.Now().In(loc) }),
		tasks_service.WithDeduplication(config.DeduplicateInstances()),
		tasks_service.WithWorkers(config.MaterializeWorkers()),
		tasks_service.WithLookahead(config.LookaheadDays()),
	)

	redisPool := redis.NewRedisPool(config.RedisURL(), logger)
	runLocks := redis.NewRunLocks(redisPool, logger, config.RunLockTTL())

	sched := scheduler.New(loc, logger, tasksService, runLocks, config.RunTimeout())
	if err := sched.Schedule(config.MaterializeSchedule()); err != nil {
		logger.Fatalw("unable to schedule materialization", "err", err)
	}
	sched.Start()

	api := api.NewApi(logger, tasksService)

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	closer.Bind(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("server shutdown", "err", err)
		}
	})

	go func() {
		logger.Infow("Started server", "port", config.Port())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorw("server error", "err", err)
			closer.Close()
		}
	}()

	closer.Hold()
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
