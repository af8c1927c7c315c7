package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rlcurrall/collection-example/internal/shared/middleware"
	"github.com/rlcurrall/collection-example/pkg/container"
)

// SetupRouter mounts every route under the API root. Every collection
// operation requires a verified bearer token; ownership is enforced deeper
// down, in the service layer.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		protected := v1.Group("")
		protected.Use(middleware.RequireAuth(c.Tokens))
		{
			protected.GET("/me", c.AuthHandler.GetMe)

			protected.GET("/comics", c.ComicHandler.ListComics)
			protected.POST("/comics", c.ComicHandler.CreateComic)
			protected.GET("/comics/:id", c.ComicHandler.GetComic)
			protected.PUT("/comics/:id", c.ComicHandler.ReplaceComic)
			protected.PATCH("/comics/:id", c.ComicHandler.UpdateComic)
			protected.DELETE("/comics/:id", c.ComicHandler.DeleteComic)
		}
	}

	return router
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"services":  gin.H{},
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = err.Error()
			health["status"] = "degraded"
		}

		cacheStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			cacheStatus = err.Error()
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
