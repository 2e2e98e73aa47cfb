package model

import "time"

// Location — адрес приёма. Провайдер может иметь несколько адресов;
// для карточек без отдельных адресов миграция синтезирует один
// из адресных полей самого листинга.
type Location struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"not null;index" json:"providerId"`

	Name     *string `gorm:"type:varchar(255)" json:"name"`
	Address1 string  `gorm:"type:varchar(255);not null" json:"address1"`
	Address2 *string `gorm:"type:varchar(255)" json:"address2"`
	City     string  `gorm:"type:varchar(128);not null" json:"city"`
	State    string  `gorm:"type:varchar(64);not null;index" json:"state"`
	Zip      string  `gorm:"type:varchar(16);not null" json:"zip"`
	Country  string  `gorm:"type:varchar(64);not null;default:US" json:"country"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Hidden   bool `gorm:"not null;default:false" json:"hidden"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
