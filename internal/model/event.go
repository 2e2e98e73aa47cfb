package model

import (
	"time"

	"gorm.io/datatypes"
)

// Event — мероприятие провайдера (мастер-класс, открытые двери и т.п.).
// StartDate обязателен и хранится как календарная дата без времени;
// EndDate опционален.
type Event struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"not null;index" json:"providerId"`

	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`

	StartDate datatypes.Date  `gorm:"not null" json:"startDate"`
	EndDate   *datatypes.Date `json:"endDate"`

	City    *string `gorm:"type:varchar(128)" json:"city"`
	State   *string `gorm:"type:varchar(64)" json:"state"`
	Country string  `gorm:"type:varchar(64);not null;default:US" json:"country"`
	Zip     *string `gorm:"type:varchar(16)" json:"zip"`
	Hidden  bool    `gorm:"not null;default:false" json:"hidden"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
