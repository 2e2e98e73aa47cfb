package model

import "time"

// Статусы отзыва.
const (
	ReviewStatusActive = "active"
	ReviewStatusHidden = "hidden"
)

// Review — отзыв о провайдере. Из легаси переносятся только
// активные отзывы; модерация живёт в статусе.
type Review struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"not null;index" json:"providerId"`

	Content string `gorm:"type:text;not null" json:"content"`
	Status  string `gorm:"type:varchar(32);not null;default:active;index" json:"status"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
