package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/emergency_alert_system/internal/config"
	"github.com/shenikar/emergency_alert_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	alertService service.AlertService
	logger       *logrus.Logger
	cfg          *config.Config
}

func NewHandler(alertService service.AlertService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		alertService: alertService,
		logger:       logger,
		cfg:          cfg,
	}
}

// @Summary Submit an emergency alert
// @Description Accept an alert from a reporter. Position and reporter contact are optional.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Param alert body SubmitAlertRequest true "Alert payload"
// @Success 200 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies [post]
func (h *Handler) submitAlert(c *gin.Context) {
	var input SubmitAlertRequest
	log := h.logger.WithField("method", "submitAlert")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	payload, err := DTOToAlertPayload(&input)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	record, err := h.alertService.Submit(c.Request.Context(), payload)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(record))
}

// @Summary List all alerts
// @Description Get every stored alert in acceptance order.
// @Tags Emergencies
// @Produce json
// @Success 200 {array} AlertResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies [get]
func (h *Handler) listAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listAlerts")

	records, err := h.alertService.List(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertResponses(records))
}

// @Summary List alerts of a reporter
// @Description Get alerts whose reporterContact exactly matches the path value.
// @Tags Emergencies
// @Produce json
// @Param reporterContact path string true "Reporter contact"
// @Success 200 {array} AlertResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/user/{reporterContact} [get]
func (h *Handler) listReporterAlerts(c *gin.Context) {
	contact := c.Param("reporterContact")
	log := h.logger.WithField("method", "listReporterAlerts").WithField("reporter", contact)

	records, err := h.alertService.ListByReporter(c.Request.Context(), contact)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertResponses(records))
}

// @Summary Get alert by ID
// @Description Get a single alert by its ID.
// @Tags Emergencies
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id} [get]
func (h *Handler) getAlert(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getAlert").WithField("id", id)

	record, err := h.alertService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(record))
}

// @Summary Acknowledge an alert
// @Description Move an alert from Reported to Acknowledged.
// @Tags Emergencies
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 409 {object} map[string]string "Alert already acknowledged"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergencies/{id}/acknowledge [post]
func (h *Handler) acknowledgeAlert(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "acknowledgeAlert").WithField("id", id)

	record, err := h.alertService.Acknowledge(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(record))
}

// @Summary List alert categories
// @Description Get the recognised alert categories in display order.
// @Tags Emergencies
// @Produce json
// @Success 200 {object} CategoriesResponse
// @Router /emergencies/categories [get]
func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesToResponse(h.alertService.Categories()))
}

// @Summary Health check
// @Description Report liveness and the number of stored alerts.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	log := h.logger.WithField("method", "healthCheck")

	health, err := h.alertService.Health(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, HealthToResponse(health))
}

// @Summary Service banner
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Emergency Alert API is running!"})
}

// respondError переводит ошибку сервиса в HTTP статус
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, service.ErrNotFound):
		log.WithError(err).Warn("Alert not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
	case errors.Is(err, service.ErrAlreadyAcknowledged):
		log.WithError(err).Warn("Alert already acknowledged")
		c.JSON(http.StatusConflict, gin.H{"error": "alert already acknowledged"})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
