package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
	"library-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIPMiddleware(),
		middleware.Logger(),
	)

	router.GET("/health", healthCheckHandler(c))
	c.AuthHandler.RegisterRoutes(router)

	authed := router.Group("/", middleware.AuthMiddleware(c.AuthService))
	{
		// ========================================
		// GENRE ROUTES (any authenticated user)
		// ========================================
		c.GenreHandler.RegisterRoutes(authed)

		// ========================================
		// BOOK ROUTES (reader)
		// ========================================
		c.BookHandler.RegisterRoutes(authed.Group("/", middleware.RequireRole(model.RoleReader)))

		// ========================================
		// AUTHOR ROUTES (admin)
		// ========================================
		c.AuthorHandler.RegisterRoutes(authed.Group("/", middleware.RequireRole(model.RoleAdmin)))
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	return router
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			health["status"] = "degraded"
		}

		cacheStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			cacheStatus = "error: " + err.Error()
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
