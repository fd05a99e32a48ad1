package models

import (
	"errors"
	"time"
)

// UnknownReporter - значение контакта, если заявитель не указал номер телефона
const UnknownReporter = "unknown"

// AlertStatus - статус записи о тревоге
type AlertStatus string

const (
	AlertStatusReported     AlertStatus = "Reported"
	AlertStatusAcknowledged AlertStatus = "Acknowledged"
)

var ErrInvalidCategory = errors.New("invalid alert category")

// AlertCategory - тип экстренной ситуации из закрытого списка
type AlertCategory string

const (
	CategoryArmedRobbery     AlertCategory = "Armed Robbery"
	CategoryKidnapping       AlertCategory = "Kidnapping"
	CategoryFireOutbreak     AlertCategory = "Fire Outbreak"
	CategoryMotorAccident    AlertCategory = "Motor Accident"
	CategoryMedicalEmergency AlertCategory = "Medical Emergency"
	CategoryFlooding         AlertCategory = "Flooding"
	CategoryCrudeOilTheft    AlertCategory = "Crude Oil Theft"
	CategoryRiots            AlertCategory = "Riots"
	CategoryCommunalCrisis   AlertCategory = "Communal Crisis"
	CategoryProtest          AlertCategory = "Protest"
	CategoryMurderCases      AlertCategory = "Murder Cases"
	CategoryAgentsBrutality  AlertCategory = "Law-enforcement Agents Brutality"
	CategoryOthers           AlertCategory = "Others"
)

// порядок совпадает с порядком кнопок на клиенте
var categories = []AlertCategory{
	CategoryArmedRobbery,
	CategoryKidnapping,
	CategoryFireOutbreak,
	CategoryMotorAccident,
	CategoryMedicalEmergency,
	CategoryFlooding,
	CategoryCrudeOilTheft,
	CategoryRiots,
	CategoryCommunalCrisis,
	CategoryProtest,
	CategoryMurderCases,
	CategoryAgentsBrutality,
	CategoryOthers,
}

// Categories возвращает копию закрытого списка категорий
func Categories() []AlertCategory {
	out := make([]AlertCategory, len(categories))
	copy(out, categories)
	return out
}

// Valid проверяет, входит ли категория в закрытый список
func (c AlertCategory) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory преобразует строку в категорию, неизвестные значения отклоняются
func ParseCategory(s string) (AlertCategory, error) {
	c := AlertCategory(s)
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// PositionReading - одно измерение местоположения. Не изменяется после создания.
type PositionReading struct {
	Latitude   float64   `json:"latitude" validate:"min=-90,max=90"`
	Longitude  float64   `json:"longitude" validate:"min=-180,max=180"`
	Accuracy   float64   `json:"accuracy" validate:"gte=0"`
	CapturedAt time.Time `json:"capturedAt,omitzero"`
}

// AlertPayload - нормализованное сообщение о тревоге, которое клиент отправляет сервису
type AlertPayload struct {
	Category        AlertCategory    `json:"category" validate:"required,alert_category"`
	Position        *PositionReading `json:"position"`
	ReporterContact string           `json:"reporterContact" validate:"max=64"`
	Description     string           `json:"description,omitempty" validate:"max=1000"`
	SubmittedAt     time.Time        `json:"submittedAt"`
}

// AlertRecord - сохраненная запись о тревоге
type AlertRecord struct {
	ID              string           `json:"id"`
	Category        AlertCategory    `json:"category"`
	ReporterContact string           `json:"reporterContact"`
	Description     string           `json:"description,omitempty"`
	Position        *PositionReading `json:"position"`
	ReportedAt      *time.Time       `json:"reportedAt,omitempty"`
	SubmittedAt     time.Time        `json:"submittedAt"`
	Status          AlertStatus      `json:"status"`
	AcknowledgedAt  *time.Time       `json:"acknowledgedAt,omitempty"`
}

// Clone возвращает глубокую копию записи
func (r *AlertRecord) Clone() *AlertRecord {
	c := *r
	if r.Position != nil {
		p := *r.Position
		c.Position = &p
	}
	if r.ReportedAt != nil {
		t := *r.ReportedAt
		c.ReportedAt = &t
	}
	if r.AcknowledgedAt != nil {
		t := *r.AcknowledgedAt
		c.AcknowledgedAt = &t
	}
	return &c
}
