package model

import "time"

// Service — позиция прайс-листа провайдера.
// Price может отсутствовать: в легаси цены были свободным текстом
// («Call for pricing»), из которого не всегда извлекается число.
type Service struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"not null;index" json:"providerId"`

	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Type        *string `gorm:"type:varchar(128)" json:"type"`
	Price       *float64 `json:"price"`
	Description *string `gorm:"type:text" json:"description"`
	IsSpecial   bool    `gorm:"not null;default:false" json:"isSpecial"`
	SortOrder   int     `gorm:"not null;default:0" json:"sortOrder"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
