package model

import "time"

// Photo — фотография в галерее провайдера.
type Photo struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"not null;index" json:"providerId"`

	Name      *string `gorm:"type:varchar(255)" json:"name"`
	Caption   *string `gorm:"type:varchar(512)" json:"caption"`
	URL       string  `gorm:"type:varchar(512);not null" json:"url"`
	ThumbURL  *string `gorm:"type:varchar(512)" json:"thumbUrl"`
	SortOrder int     `gorm:"not null;default:0" json:"sortOrder"`
	Hidden    bool    `gorm:"not null;default:false" json:"hidden"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
