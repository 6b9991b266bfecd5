package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/anastheace/faultandtms/config"
	"github.com/anastheace/faultandtms/internal/api/handler"
	"github.com/anastheace/faultandtms/internal/api/router"
	"github.com/anastheace/faultandtms/internal/repository"
	"github.com/anastheace/faultandtms/internal/service"
	"github.com/anastheace/faultandtms/internal/telemetry"
	"github.com/anastheace/faultandtms/pkg/database"
	"github.com/anastheace/faultandtms/pkg/jwt"
	applogger "github.com/anastheace/faultandtms/pkg/logger"
	"github.com/anastheace/faultandtms/pkg/mailer"
	"github.com/anastheace/faultandtms/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// 1. config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting lab fault tms",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database + schema
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, cfg.Database.Driver, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. redis is optional; without it logout is a no-op and rate limiting
	// stays in-process
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, token blacklist disabled", zap.Error(err))
			rdb = nil
		}
	}
	var revoker service.TokenRevoker
	if rdb != nil {
		revoker = rdb
	}

	// 5. wiring: Repository -> Service -> Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	mail := mailer.NewMailer(&cfg.Mail, logger)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, revoker, mail, logger)

	if cfg.Seed.Enabled {
		seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
		if err := svc.Seed.Seed(seedCtx); err != nil {
			logger.Error("seed demo data failed", zap.Error(err))
		}
		cancelSeed()
	}

	h := handler.NewHandler(svc)
	engine, err := router.Setup(cfg, h, jwtMgr, rdb, db, logger)
	if err != nil {
		logger.Fatal("router setup failed", zap.Error(err))
	}

	// 6. telemetry simulator
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var telemetryDone <-chan struct{}
	if cfg.Telemetry.Enabled {
		sim := telemetry.NewSimulator(repo.Computer, svc.Ticket, cfg.Telemetry, logger)
		telemetryDone = sim.Start(ctx)
	}

	// 7. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	stop()
	if telemetryDone != nil {
		<-telemetryDone
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("close database failed", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("server stopped")
}
