package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/twentyab/stammtisch-tracker/internal/config"
	"github.com/twentyab/stammtisch-tracker/internal/handler"
	"github.com/twentyab/stammtisch-tracker/internal/logger"
	"github.com/twentyab/stammtisch-tracker/internal/repository"
	"github.com/twentyab/stammtisch-tracker/internal/repository/postgres"
	"github.com/twentyab/stammtisch-tracker/internal/service"
	"github.com/twentyab/stammtisch-tracker/internal/watch"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := repository.RunMigrations(cfg.Postgres.DSN(), cfg.Postgres.MigrationsDir); err != nil {
		appLogger.Fatal().Err(err).Msg("migrations failed")
	}

	repo, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer repo.Close()

	pool := repo.Pool()
	playerRepo := postgres.NewPlayerRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	gameRepo := postgres.NewGameRepository(pool)
	txManager := postgres.NewTxManager(pool)
	pinger := postgres.NewPinger(pool)

	sessionSvc := service.NewSessionService(sessionRepo, gameRepo, playerRepo, txManager, appLogger)
	gameSvc := service.NewGameService(gameRepo, txManager, appLogger)
	playerSvc := service.NewPlayerService(playerRepo, appLogger)
	statsSvc := service.NewStatsService(gameRepo, playerRepo, appLogger)

	hub := watch.NewHub(sessionSvc, statsSvc, appLogger)
	go hub.Run(ctx)
	go watch.Listen(ctx, cfg.Postgres.DSN(), hub, appLogger)

	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(handler.RateLimit(cfg.Server.RateLimitPerMin))
	handler.Register(engine, pinger, sessionSvc, gameSvc, playerSvc, statsSvc, hub)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		appLogger.Info().Int("port", cfg.Server.Port).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
