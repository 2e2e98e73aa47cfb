package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию схемы всех сущностей каталога.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Specialty{},
		&User{},
		&Provider{},
		&ProviderCategory{},
		&ProviderSpecialty{},
		&Contact{},
		&Location{},
		&Service{},
		&Photo{},
		&Event{},
		&Coupon{},
		&Review{},
	)
}
