package model

import "time"

// users
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string `gorm:"type:varchar(255);not null" json:"firstName"`
	LastName     string `gorm:"type:varchar(255)" json:"lastName"`
	Role         string `gorm:"type:varchar(32);not null;default:provider" json:"role"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	// Навигационное поле: у пользователя не больше одного профиля провайдера.
	Provider *Provider `gorm:"foreignKey:UserID" json:"provider,omitempty"`
}
