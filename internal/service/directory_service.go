package service

import (
	"context"
	"fmt"

	"github.com/rubhub/provider-directory/internal/directory"
	"github.com/rubhub/provider-directory/internal/model"
	"github.com/rubhub/provider-directory/internal/repository"
)

// PageSize — размер страницы каталога.
const PageSize = 20

// DirectoryService — публичная читающая сторона каталога: поиск,
// профили, справочники фильтров.
type DirectoryService struct {
	providers repository.ProviderRepository
	taxonomy  repository.TaxonomyRepository
}

func NewDirectoryService(providers repository.ProviderRepository, taxonomy repository.TaxonomyRepository) *DirectoryService {
	return &DirectoryService{providers: providers, taxonomy: taxonomy}
}

// Search выполняет фильтрованный запрос каталога и собирает страницу.
func (s *DirectoryService) Search(ctx context.Context, f repository.SearchFilter, page int) (directory.Page[model.Provider], error) {
	page, pageSize := directory.Clamp(page, PageSize)

	providers, total, err := s.providers.Search(ctx, f, pageSize, (page-1)*pageSize)
	if err != nil {
		return directory.Page[model.Provider]{}, fmt.Errorf("search providers: %w", err)
	}
	return directory.NewPage(providers, page, pageSize, int(total)), nil
}

// Profile возвращает карточку со всеми секциями по слагу.
func (s *DirectoryService) Profile(ctx context.Context, slug string) (*model.Provider, error) {
	return s.providers.GetBySlug(ctx, slug)
}

// Categories возвращает все категории для навигации по каталогу.
func (s *DirectoryService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.taxonomy.ListCategories(ctx)
}

// Specialties возвращает все специализации.
func (s *DirectoryService) Specialties(ctx context.Context) ([]model.Specialty, error) {
	return s.taxonomy.ListSpecialties(ctx)
}

// FilterOptions — данные для формы поиска.
type FilterOptions struct {
	Categories  []model.Category
	Specialties []model.Specialty
	States      []string
}

func (s *DirectoryService) Filters(ctx context.Context) (*FilterOptions, error) {
	categories, err := s.taxonomy.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	specialties, err := s.taxonomy.ListSpecialties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list specialties: %w", err)
	}
	states, err := s.taxonomy.DistinctStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	return &FilterOptions{Categories: categories, Specialties: specialties, States: states}, nil
}
