package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rubhub/provider-directory/internal/model"
)

// TaxonomyRepository — чтение справочников каталога для фильтров поиска
// и страниц рубрик.
type TaxonomyRepository interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListSpecialties(ctx context.Context) ([]model.Specialty, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	GetSpecialtyBySlug(ctx context.Context, slug string) (*model.Specialty, error)
	DistinctStates(ctx context.Context) ([]string, error)
}

type GormTaxonomyRepository struct {
	db *gorm.DB
}

func NewGormTaxonomyRepository(db *gorm.DB) *GormTaxonomyRepository {
	return &GormTaxonomyRepository{db: db}
}

func (r *GormTaxonomyRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormTaxonomyRepository) ListSpecialties(ctx context.Context) ([]model.Specialty, error) {
	var out []model.Specialty
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormTaxonomyRepository) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormTaxonomyRepository) GetSpecialtyBySlug(ctx context.Context, slug string) (*model.Specialty, error) {
	var s model.Specialty
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// DistinctStates — список штатов, в которых есть хоть одна локация;
// источник значений для фильтра каталога.
func (r *GormTaxonomyRepository) DistinctStates(ctx context.Context) ([]string, error) {
	var states []string
	err := r.db.WithContext(ctx).Model(&model.Location{}).
		Distinct("state").
		Where("state != ''").
		Order("state ASC").
		Pluck("state", &states).Error
	if err != nil {
		return nil, err
	}
	return states, nil
}
