package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/", h.root)

	// Health-check не ограничивается: по нему клиент отличает недоступный сервер от перегруженного
	api.GET("/health", h.healthCheck)

	// Маршруты для приема и просмотра тревог
	emergencies := api.Group("/emergencies")
	emergencies.Use(RateLimitMiddleware(h.cfg.RateLimitRPS))
	{
		emergencies.POST("", h.submitAlert)
		emergencies.GET("", h.listAlerts)
		emergencies.GET("/categories", h.listCategories)
		emergencies.GET("/user/:reporterContact", h.listReporterAlerts)
		emergencies.GET("/:id", h.getAlert)
		emergencies.POST("/:id/acknowledge", h.acknowledgeAlert)
	}
}
