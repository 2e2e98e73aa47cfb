package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rubhub/provider-directory/internal/model"
)

// SearchFilter — фильтры каталога. Пустые поля не участвуют в запросе.
type SearchFilter struct {
	Query         string // подстрока в имени или биографии
	CategorySlug  string
	SpecialtySlug string
	State         string // точное совпадение штата локации
	City          string // подстрока города локации
}

type ProviderRepository interface {
	GetBySlug(ctx context.Context, slug string) (*model.Provider, error)
	GetByUserID(ctx context.Context, userID uint) (*model.Provider, error)
	Search(ctx context.Context, f SearchFilter, limit, offset int) ([]model.Provider, int64, error)
	UpdateBio(ctx context.Context, providerID uint, name string, bio *string) error
}

type GormProviderRepository struct {
	db *gorm.DB
}

func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// GetBySlug возвращает карточку со всеми секциями для страницы профиля.
func (r *GormProviderRepository) GetBySlug(ctx context.Context, slug string) (*model.Provider, error) {
	var p model.Provider
	err := r.db.WithContext(ctx).
		Preload("Contacts").
		Preload("Locations", "hidden = ?", false).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Where("hidden = ?", false).Order("sort_order ASC")
		}).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Where("hidden = ?", false).Order("start_date ASC")
		}).
		Preload("Coupons", func(db *gorm.DB) *gorm.DB {
			return db.Where("hidden = ?", false).Order("sort_order ASC")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", model.ReviewStatusActive).Order("created_at DESC")
		}).
		Preload("Categories").
		Preload("Specialties").
		Where("slug = ?", slug).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProviderRepository) GetByUserID(ctx context.Context, userID uint) (*model.Provider, error) {
	var p model.Provider
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Search выполняет фильтрованный запрос каталога: только активные карточки,
// сортировка по имени, limit/offset плюс общий счётчик для пагинации.
// Связи с рубриками/специализациями/локациями выражены подзапросами,
// чтобы не плодить JOIN'ы и дубли строк в основной выборке.
func (r *GormProviderRepository) Search(ctx context.Context, f SearchFilter, limit, offset int) ([]model.Provider, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Provider{}).
		Where("status = ?", model.ProviderStatusActive)

	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("name LIKE ? OR bio LIKE ?", like, like)
	}

	if f.CategorySlug != "" {
		q = q.Where("id IN (?)", r.db.Table("provider_categories").
			Select("provider_categories.provider_id").
			Joins("JOIN categories ON categories.id = provider_categories.category_id").
			Where("categories.slug = ?", f.CategorySlug))
	}

	if f.SpecialtySlug != "" {
		q = q.Where("id IN (?)", r.db.Table("provider_specialties").
			Select("provider_specialties.provider_id").
			Joins("JOIN specialties ON specialties.id = provider_specialties.specialty_id").
			Where("specialties.slug = ?", f.SpecialtySlug))
	}

	if f.State != "" || f.City != "" {
		sub := r.db.Table("locations").Select("locations.provider_id")
		if f.State != "" {
			sub = sub.Where("locations.state = ?", f.State)
		}
		if f.City != "" {
			sub = sub.Where("locations.city LIKE ?", "%"+f.City+"%")
		}
		q = q.Where("id IN (?)", sub)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var providers []model.Provider
	err := q.
		Preload("Categories").
		Preload("Locations", "hidden = ?", false).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&providers).Error
	if err != nil {
		return nil, 0, err
	}
	return providers, total, nil
}

// UpdateBio обновляет редактируемую «шапку» карточки: имя и биографию.
func (r *GormProviderRepository) UpdateBio(ctx context.Context, providerID uint, name string, bio *string) error {
	return r.db.WithContext(ctx).Model(&model.Provider{}).
		Where("id = ?", providerID).
		Updates(map[string]any{"name": name, "bio": bio}).Error
}
