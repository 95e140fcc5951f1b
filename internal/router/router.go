package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quizlive/quizlive-backend/internal/config"
	"github.com/quizlive/quizlive-backend/internal/handler"
	"github.com/quizlive/quizlive-backend/internal/middleware"
	"github.com/quizlive/quizlive-backend/internal/response"
	"github.com/quizlive/quizlive-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Session     *handler.SessionHandler
	Leaderboard *handler.LeaderboardHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(authService *service.AuthService, handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Real-time channel. Audience roles are declared at connect time.
	router.GET("/ws", handlers.WS.Stream)

	// ─── Public API ────────────────────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.POST("/auth/admin/login", handlers.Auth.AdminLogin)
		api.POST("/sessions/join", handlers.Session.JoinSession)
	}

	// ─── Admin API (JWT) ───────────────────────────────────────────────
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.RequireAdminJWT(authService))
	{
		admin.POST("/sessions", handlers.Session.CreateSession)
		admin.GET("/sessions", handlers.Session.ListSessions)
		admin.DELETE("/sessions/:id", handlers.Session.DeleteSession)

		admin.GET("/leaderboard", handlers.Leaderboard.Top)
		admin.POST("/leaderboard/reset", handlers.Leaderboard.Reset)
		admin.POST("/prizes/draw", handlers.Leaderboard.DrawPrizes)
	}

	return router
}
