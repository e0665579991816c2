package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/stemsi/exstem-survey/internal/config"
	"github.com/stemsi/exstem-survey/internal/database"
	"github.com/stemsi/exstem-survey/internal/handler"
	"github.com/stemsi/exstem-survey/internal/logger"
	"github.com/stemsi/exstem-survey/internal/middleware"
	"github.com/stemsi/exstem-survey/internal/repository"
	"github.com/stemsi/exstem-survey/internal/router"
	"github.com/stemsi/exstem-survey/internal/service"
	"github.com/stemsi/exstem-survey/internal/survey"
	"github.com/stemsi/exstem-survey/internal/validator"
	"github.com/stemsi/exstem-survey/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("submission_order", cfg.SubmissionOrder).
		Msg("Starting survey service")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	questionRepo := repository.NewQuestionRepository(pool)
	responseRepo := repository.NewResponseRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	catalogService := service.NewCatalogService(questionRepo, service.NewRedisCatalogCache(rdb), cfg.CatalogCacheTTL, log)
	sessionService := service.NewSessionService(catalogService, survey.SubmissionOrder(cfg.SubmissionOrder), cfg.SessionIdleTTL, log)
	responseService := service.NewResponseService(sessionService, responseRepo, rdb, cfg.ResponsesPageLimit, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogService),
		Session:  handler.NewSessionHandler(sessionService, responseService),
		Response: handler.NewResponseHandler(responseService),
		WS:       handler.NewWSHandler(sessionService, responseService, log, cfg.AllowedOrigins),
		System:   handler.NewSystemHandler(database.NewChecker(pool, rdb), sessionService, rdb, log),
		Limiter:  middleware.NewRateLimiter(cfg.SessionRateLimit, time.Minute),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	responseWorker := worker.NewResponseWorker(responseRepo, rdb, log)
	workers.Add(1)
	go func() {
		defer workers.Done()
		responseWorker.Start(workerCtx)
	}()
	go sessionService.Run(workerCtx)
	go handlers.Limiter.Run(workerCtx)

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// A failed prewarm is not fatal: the catalog loads lazily on first use.
	if err := catalogService.Prewarm(ctx); err != nil {
		log.Warn().Err(err).Msg("Catalog prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg, log)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for the intake queue to drain.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}
