package model

import "time"

// Category — рубрика каталога (вид услуг: массаж, спа и т.п.).
// Slug глобально уникален и используется в URL.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	Slug string `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	Providers []Provider `gorm:"many2many:provider_categories;" json:"-"`
}

// Specialty — специализация (показание/направление: боли в спине и т.п.).
// Отдельный от Category справочник с тем же устройством.
type Specialty struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	Slug string `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	Providers []Provider `gorm:"many2many:provider_specialties;" json:"-"`
}
