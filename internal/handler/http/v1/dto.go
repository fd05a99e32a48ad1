package v1

import (
	"time"
)

// PositionRequest DTO координат в запросе
// @Description DTO координат в запросе
type PositionRequest struct {
	Latitude   *float64   `json:"latitude" example:"6.2"`
	Longitude  *float64   `json:"longitude" example:"5.3"`
	Accuracy   float64    `json:"accuracy" example:"10"`
	CapturedAt *time.Time `json:"capturedAt,omitempty"`
}

// SubmitAlertRequest DTO для отправки тревоги
// @Description DTO для отправки тревоги
type SubmitAlertRequest struct {
	Category        string           `json:"category" example:"Fire Outbreak"`
	Position        *PositionRequest `json:"position"`
	ReporterContact *string          `json:"reporterContact" example:"08012345678"`
	Description     string           `json:"description,omitempty"`
	SubmittedAt     *time.Time       `json:"submittedAt"`
}

// PositionResponse DTO координат в ответе
// @Description DTO координат в ответе
type PositionResponse struct {
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Accuracy   float64    `json:"accuracy"`
	CapturedAt *time.Time `json:"capturedAt,omitempty"`
}

// AlertResponse DTO для ответа с информацией о тревоге
// @Description DTO для ответа с информацией о тревоге
type AlertResponse struct {
	ID              string            `json:"id"`
	Category        string            `json:"category"`
	ReporterContact string            `json:"reporterContact"`
	Description     string            `json:"description,omitempty"`
	Position        *PositionResponse `json:"position"`
	ReportedAt      *time.Time        `json:"reportedAt,omitempty"`
	SubmittedAt     time.Time         `json:"submittedAt"`
	Status          string            `json:"status" example:"Reported"`
	AcknowledgedAt  *time.Time        `json:"acknowledgedAt,omitempty"`
}

// HealthResponse DTO для проверки работоспособности
// @Description DTO для проверки работоспособности
type HealthResponse struct {
	Status      string    `json:"status" example:"OK"`
	RecordCount int       `json:"recordCount"`
	Timestamp   time.Time `json:"timestamp"`
}

// CategoriesResponse DTO со списком категорий
// @Description DTO со списком категорий
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
