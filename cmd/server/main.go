package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/quizlive/quizlive-backend/internal/config"
	"github.com/quizlive/quizlive-backend/internal/handler"
	"github.com/quizlive/quizlive-backend/internal/logger"
	"github.com/quizlive/quizlive-backend/internal/repository"
	"github.com/quizlive/quizlive-backend/internal/router"
	"github.com/quizlive/quizlive-backend/internal/service"
	"github.com/quizlive/quizlive-backend/internal/validator"
	ws "github.com/quizlive/quizlive-backend/internal/websocket"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("session_dir", cfg.SessionDir).
		Msg("Starting QuizLive Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Initialize Repositories ───────────────────────────────────────
	sessionRepo, err := repository.NewSessionRepository(cfg.SessionDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open session store")
	}
	if err := sessionRepo.LoadAll(); err != nil {
		log.Fatal().Err(err).Msg("Failed to rehydrate sessions")
	}
	leaderboardRepo, err := repository.NewLeaderboardRepository(cfg.LeaderboardFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open leaderboard store")
	}
	questionRepo := repository.NewQuestionRepository(cfg.QuestionsFile)

	// ─── Initialize Hub & Services ─────────────────────────────────────
	registry := ws.NewRegistry()
	hub := ws.NewHub(sessionRepo, registry, log)

	authService := service.NewAuthService(cfg)
	gameService := service.NewGameService(sessionRepo, leaderboardRepo, hub, service.AllowAllNames, log)
	leaderboardService := service.NewLeaderboardService(leaderboardRepo, log)

	hub.SetGameService(gameService)
	go hub.Run()

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Session:     handler.NewSessionHandler(gameService, questionRepo, log),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardService),
		WS:          handler.NewWSHandler(hub, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
