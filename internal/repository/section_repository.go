package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rubhub/provider-directory/internal/model"
)

// SectionRepository — пер-секционные операции «заменить всех детей»:
// редактор профиля сохраняет секцию целиком, частичных патчей нет.
// Каждая замена — одна транзакция: удалить всё по provider_id,
// вставить новый набор.
type SectionRepository interface {
	ReplaceContacts(ctx context.Context, providerID uint, items []model.Contact) error
	ReplaceLocations(ctx context.Context, providerID uint, items []model.Location) error
	ReplaceServices(ctx context.Context, providerID uint, items []model.Service) error
	ReplacePhotos(ctx context.Context, providerID uint, items []model.Photo) error
	ReplaceEvents(ctx context.Context, providerID uint, items []model.Event) error
	ReplaceCoupons(ctx context.Context, providerID uint, items []model.Coupon) error
}

type GormSectionRepository struct {
	db *gorm.DB
}

func NewGormSectionRepository(db *gorm.DB) *GormSectionRepository {
	return &GormSectionRepository{db: db}
}

// replaceAll — общий каркас замены: целиком в транзакции, владелец
// проставляется принудительно, чужие provider_id из входа не переживают.
func replaceAll[T any](ctx context.Context, db *gorm.DB, providerID uint, items []T, prepare func(*T, int)) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zero T
		if err := tx.Where("provider_id = ?", providerID).Delete(&zero).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			prepare(&items[i], i)
		}
		return tx.Create(&items).Error
	})
}

func (r *GormSectionRepository) ReplaceContacts(ctx context.Context, providerID uint, items []model.Contact) error {
	return replaceAll(ctx, r.db, providerID, items, func(c *model.Contact, _ int) {
		c.ID = 0
		c.ProviderID = providerID
	})
}

func (r *GormSectionRepository) ReplaceLocations(ctx context.Context, providerID uint, items []model.Location) error {
	return replaceAll(ctx, r.db, providerID, items, func(l *model.Location, _ int) {
		l.ID = 0
		l.ProviderID = providerID
	})
}

// Для секций с пользовательским порядком SortOrder перенумеровывается
// с позиции в массиве при каждом сохранении — это каноничное соглашение,
// легаси-значения переживают только до первого редактирования.
func (r *GormSectionRepository) ReplaceServices(ctx context.Context, providerID uint, items []model.Service) error {
	return replaceAll(ctx, r.db, providerID, items, func(s *model.Service, i int) {
		s.ID = 0
		s.ProviderID = providerID
		s.SortOrder = i
	})
}

func (r *GormSectionRepository) ReplacePhotos(ctx context.Context, providerID uint, items []model.Photo) error {
	return replaceAll(ctx, r.db, providerID, items, func(p *model.Photo, i int) {
		p.ID = 0
		p.ProviderID = providerID
		p.SortOrder = i
	})
}

func (r *GormSectionRepository) ReplaceEvents(ctx context.Context, providerID uint, items []model.Event) error {
	return replaceAll(ctx, r.db, providerID, items, func(e *model.Event, _ int) {
		e.ID = 0
		e.ProviderID = providerID
	})
}

func (r *GormSectionRepository) ReplaceCoupons(ctx context.Context, providerID uint, items []model.Coupon) error {
	return replaceAll(ctx, r.db, providerID, items, func(c *model.Coupon, i int) {
		c.ID = 0
		c.ProviderID = providerID
		c.SortOrder = i
	})
}
