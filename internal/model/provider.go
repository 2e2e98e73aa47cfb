package model

import "time"

// Статусы провайдера. Легаси-записи мигрируются только в active.
const (
	ProviderStatusActive   = "active"
	ProviderStatusInactive = "inactive"
)

// Provider — карточка специалиста в каталоге.
// Может быть привязан к пользователю (владельцу), но не обязан:
// часть мигрированных карточек осталась без аккаунта.
type Provider struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Slug   string  `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Name   string  `gorm:"type:varchar(255);not null" json:"name"`
	Bio    *string `gorm:"type:text" json:"bio"`
	Status string  `gorm:"type:varchar(32);not null;default:active;index" json:"status"`

	// Внешний ключ на users; уникальный, чтобы один пользователь
	// не владел двумя карточками. NULL-значения под индекс не попадают.
	UserID *uint `gorm:"uniqueIndex" json:"userId"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`

	Categories  []Category  `gorm:"many2many:provider_categories;" json:"categories,omitempty"`
	Specialties []Specialty `gorm:"many2many:provider_specialties;" json:"specialties,omitempty"`

	Contacts  []Contact  `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"contacts,omitempty"`
	Locations []Location `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"locations,omitempty"`
	Services  []Service  `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"services,omitempty"`
	Photos    []Photo    `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	Events    []Event    `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"events,omitempty"`
	Coupons   []Coupon   `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"coupons,omitempty"`
	Reviews   []Review   `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

// provider_categories — join-таблица провайдер↔рубрика.
type ProviderCategory struct {
	ProviderID uint `gorm:"primaryKey" json:"providerId"`
	CategoryID uint `gorm:"primaryKey" json:"categoryId"`

	Provider *Provider `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

// provider_specialties — join-таблица провайдер↔специализация.
type ProviderSpecialty struct {
	ProviderID  uint `gorm:"primaryKey" json:"providerId"`
	SpecialtyID uint `gorm:"primaryKey" json:"specialtyId"`

	Provider  *Provider  `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"-"`
	Specialty *Specialty `gorm:"foreignKey:SpecialtyID;constraint:OnDelete:CASCADE" json:"-"`
}
