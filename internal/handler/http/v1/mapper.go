package v1

import (
	"github.com/shenikar/emergency_alert_system/internal/models"
	"github.com/shenikar/emergency_alert_system/internal/service"
)

// DTOToAlertPayload преобразует DTO запроса в доменную модель.
// Здесь проверяется только наличие координат, диапазоны проверяет сервис.
func DTOToAlertPayload(dto *SubmitAlertRequest) (*models.AlertPayload, error) {
	payload := &models.AlertPayload{
		Category:    models.AlertCategory(dto.Category),
		Description: dto.Description,
	}
	if dto.ReporterContact != nil {
		payload.ReporterContact = *dto.ReporterContact
	}
	if dto.SubmittedAt != nil {
		payload.SubmittedAt = *dto.SubmittedAt
	}
	if dto.Position != nil {
		// объект без координат не должен превратиться в точку (0, 0)
		if dto.Position.Latitude == nil {
			return nil, &service.ValidationError{Field: "position.latitude", Reason: "is required"}
		}
		if dto.Position.Longitude == nil {
			return nil, &service.ValidationError{Field: "position.longitude", Reason: "is required"}
		}
		payload.Position = &models.PositionReading{
			Latitude:  *dto.Position.Latitude,
			Longitude: *dto.Position.Longitude,
			Accuracy:  dto.Position.Accuracy,
		}
		if dto.Position.CapturedAt != nil {
			payload.Position.CapturedAt = *dto.Position.CapturedAt
		}
	}
	return payload, nil
}

// ModelToAlertResponse преобразует доменную модель в DTO для ответа
func ModelToAlertResponse(model *models.AlertRecord) *AlertResponse {
	resp := &AlertResponse{
		ID:              model.ID,
		Category:        string(model.Category),
		ReporterContact: model.ReporterContact,
		Description:     model.Description,
		ReportedAt:      model.ReportedAt,
		SubmittedAt:     model.SubmittedAt,
		Status:          string(model.Status),
		AcknowledgedAt:  model.AcknowledgedAt,
	}
	if model.Position != nil {
		resp.Position = &PositionResponse{
			Latitude:  model.Position.Latitude,
			Longitude: model.Position.Longitude,
			Accuracy:  model.Position.Accuracy,
		}
		if !model.Position.CapturedAt.IsZero() {
			capturedAt := model.Position.CapturedAt
			resp.Position.CapturedAt = &capturedAt
		}
	}
	return resp
}

// ModelsToAlertResponses преобразует слайс моделей в слайс DTO
func ModelsToAlertResponses(models []*models.AlertRecord) []*AlertResponse {
	responses := make([]*AlertResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToAlertResponse(model)
	}
	return responses
}

func HealthToResponse(health *service.HealthStatus) *HealthResponse {
	return &HealthResponse{
		Status:      health.Status,
		RecordCount: health.RecordCount,
		Timestamp:   health.Timestamp,
	}
}

func CategoriesToResponse(categories []models.AlertCategory) *CategoriesResponse {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return &CategoriesResponse{Categories: names}
}
