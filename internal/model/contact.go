package model

import "time"

// Contact — контактное лицо провайдера.
// IsPublic = false, если в легаси хотя бы одно из четырёх полей
// (email/телефон/имя/фамилия) было помечено приватным.
type Contact struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"not null;index" json:"providerId"`

	FirstName string  `gorm:"type:varchar(255);not null" json:"firstName"`
	LastName  string  `gorm:"type:varchar(255)" json:"lastName"`
	Email     *string `gorm:"type:varchar(255)" json:"email"`
	Phone     *string `gorm:"type:varchar(64)" json:"phone"`
	// Без default-тега: GORM пропускает zero-value поля с default
	// при Create, и false никогда бы не доехал до базы.
	IsPublic  bool    `gorm:"not null" json:"isPublic"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
