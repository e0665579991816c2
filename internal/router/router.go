package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-survey/internal/config"
	"github.com/stemsi/exstem-survey/internal/handler"
	"github.com/stemsi/exstem-survey/internal/middleware"
	"github.com/stemsi/exstem-survey/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Session  *handler.SessionHandler
	Response *handler.ResponseHandler
	WS       *handler.WSHandler
	System   *handler.SystemHandler
	Limiter  *middleware.RateLimiter
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// Restrict to AllowedOrigins when configured, otherwise allow all.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: middleware.DefaultBrotliConfig.MinLength,
		SkipPaths: []string{"/api/v1/system/metrics", "/ws/v1/sessions/:id/stream"},
	}))

	router.GET("/health", handlers.System.Health)

	api := router.Group("/api/v1")
	{
		// Catalog changes rarely; let clients hold it for a minute.
		api.GET("/questions", middleware.CacheControl(60), handlers.Catalog.ListQuestions)

		sessions := api.Group("/sessions")
		sessions.Use(middleware.NoStore())
		{
			sessions.POST("", handlers.Limiter.Middleware(), handlers.Session.StartSession)
			sessions.GET("/:id", handlers.Session.GetSession)
			sessions.DELETE("/:id", handlers.Session.EndSession)
			sessions.PUT("/:id/answers/:question_id", handlers.Session.Answer)
			sessions.POST("/:id/next", handlers.Session.Next)
			sessions.POST("/:id/previous", handlers.Session.Previous)
			sessions.POST("/:id/submit", handlers.Session.Submit)
		}

		responses := api.Group("/responses")
		{
			responses.GET("", handlers.Response.ListResponses)
			responses.GET("/:id", handlers.Response.GetResponse)
			responses.DELETE("/:id", handlers.Response.DeleteResponse)
		}

		api.GET("/system/metrics", handlers.System.MetricsSSE)
	}

	ws := router.Group("/ws/v1")
	{
		ws.GET("/sessions/:id/stream", handlers.WS.SessionStream)
	}

	return router
}
