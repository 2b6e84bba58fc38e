package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blueprints-backend/internal/infrastructure/monitoring"
	"blueprints-backend/internal/shared/middleware"
	"blueprints-backend/internal/shared/response"
	"blueprints-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = c.Config.CORS.AllowOrigins

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		monitoring.Middleware(c.Metrics),
		middleware.Recovery(),
		middleware.CORS(corsConfig),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "route not found: "+ctx.Request.Method+" "+ctx.Request.URL.Path)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
		c.BlueprintHandler.RegisterRoutes(v1)
	}

	return router
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================

// healthCheckHandler reports 503 only when the store is down; a missing or
// failing cache degrades nothing since reads fall back to the store.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		storeErr, cacheErr := appCtx.Ping(ctx)

		storeStatus := "ok"
		if storeErr != nil {
			storeStatus = "error: " + storeErr.Error()
		}

		cacheStatus := "disabled"
		if appCtx.Cache != nil {
			cacheStatus = "ok"
			if cacheErr != nil {
				cacheStatus = "error: " + cacheErr.Error()
			}
		}

		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"backend":   appCtx.Config.Persistence.Backend,
			"filter":    appCtx.Filter.Name(),
			"services": gin.H{
				"store": storeStatus,
				"cache": cacheStatus,
			},
		}
		if stats := appCtx.DB.Stats(); stats != nil {
			health["pool"] = stats
		}

		if storeErr != nil {
			health["status"] = "degraded"
			response.Success(c, http.StatusServiceUnavailable, "degraded", health)
			return
		}

		response.Success(c, http.StatusOK, "ok", health)
	}
}
