package api

import (
	"alcyxob/physio-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	sessionService service.SessionService,
	catalogService service.CatalogService,
	gatherer prometheus.Gatherer,
) {
	sessionHandler := NewSessionHandler(sessionService)
	catalogHandler := NewCatalogHandler(catalogService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	apiV1 := router.Group("/api/v1")
	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Session Routes ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.POST("", sessionHandler.CreateSession)
			sessionGroup.GET("", sessionHandler.ListSessions)
			sessionGroup.GET("/:id", sessionHandler.GetSession)
		}

		// --- Catalog Routes ---
		protected.GET("/body-parts", catalogHandler.ListBodyParts)
		protected.GET("/body-parts/:id/muscle-tests", catalogHandler.ListMuscleTests)
		protected.GET("/muscle-tests/:id/exercises", catalogHandler.ListExercises)
	}
}
