package model

import (
	"time"

	"gorm.io/datatypes"
)

// Coupon — купон/акция провайдера.
type Coupon struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"not null;index" json:"providerId"`

	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	SmallPrint  *string `gorm:"type:text" json:"smallPrint"`
	PromoCode   *string `gorm:"type:varchar(64)" json:"promoCode"`

	ExpirationDate *datatypes.Date `json:"expirationDate"`

	FirstTimeOnly   bool `gorm:"not null;default:false" json:"firstTimeOnly"`
	AppointmentOnly bool `gorm:"not null;default:false" json:"appointmentOnly"`
	Hidden          bool `gorm:"not null;default:false" json:"hidden"`
	SortOrder       int  `gorm:"not null;default:0" json:"sortOrder"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
