package app

import (
	"github.com/Insane-9/Thinkboard-X/internal/cache"
	"github.com/Insane-9/Thinkboard-X/internal/config"
	"github.com/Insane-9/Thinkboard-X/internal/handlers"
	"github.com/Insane-9/Thinkboard-X/internal/ratelimit"
	"github.com/Insane-9/Thinkboard-X/internal/repo"
	"github.com/Insane-9/Thinkboard-X/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Setup registers all routes on the given engine.
// Health and docs endpoints live outside the rate-limited group so
// probes do not spend the API budget.
func Setup(r *gin.Engine, cfg config.Config, log *zap.Logger, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	limiter := ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window.Duration())
	var keyFn ratelimit.KeyFunc
	if cfg.RateLimit.KeyBy == "ip" {
		keyFn = ratelimit.ByClientIP()
	} else {
		keyFn = ratelimit.FixedKey(ratelimit.GlobalKey)
	}

	api := r.Group("/api", ratelimit.Middleware(limiter, keyFn, log))

	noteRepo := repo.NewPGNoteRepo(db)
	noteCache := cache.NewNoteCache(rdb, cfg.Redis.DefaultTTL.Duration())
	noteSvc := service.NewNoteService(noteRepo, noteCache)
	noteHandler := handlers.NewNoteHandler(noteSvc, log)
	RegisterNoteRoutes(api, noteHandler)
}

// RegisterNoteRoutes mounts the note CRUD routes on the given group.
func RegisterNoteRoutes(api *gin.RouterGroup, h *handlers.NoteHandler) {
	api.GET("/notes", h.List)
	api.POST("/notes", h.Create)
	api.GET("/notes/:id", h.GetByID)
	api.PUT("/notes/:id", h.Update)
	api.DELETE("/notes/:id", h.Delete)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Thinkboard API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/notes",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
