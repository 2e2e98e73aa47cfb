package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rubhub/provider-directory/internal/model"
	"github.com/rubhub/provider-directory/internal/repository"
)

var ErrNoProvider = errors.New("no provider profile found")

// ProfileService — операции владельца над собственной карточкой.
// Каждая операция сначала резолвит карточку по userID аутентифицированного
// пользователя: чужие provider_id из запроса не принимаются в принципе.
type ProfileService struct {
	providers repository.ProviderRepository
	sections  repository.SectionRepository
}

func NewProfileService(providers repository.ProviderRepository, sections repository.SectionRepository) *ProfileService {
	return &ProfileService{providers: providers, sections: sections}
}

// ProviderFor возвращает карточку, принадлежащую пользователю.
func (s *ProfileService) ProviderFor(ctx context.Context, userID uint) (*model.Provider, error) {
	p, err := s.providers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoProvider
		}
		return nil, fmt.Errorf("resolve provider: %w", err)
	}
	return p, nil
}

// UpdateBio обновляет имя и биографию карточки. Имя обязательно.
func (s *ProfileService) UpdateBio(ctx context.Context, userID uint, name, bio string) error {
	p, err := s.ProviderFor(ctx, userID)
	if err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	var bioPtr *string
	if b := strings.TrimSpace(bio); b != "" {
		bioPtr = &b
	}
	return s.providers.UpdateBio(ctx, p.ID, name, bioPtr)
}

func (s *ProfileService) ReplaceContacts(ctx context.Context, userID uint, items []model.Contact) error {
	p, err := s.ProviderFor(ctx, userID)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].FirstName = strings.TrimSpace(items[i].FirstName)
		items[i].LastName = strings.TrimSpace(items[i].LastName)
		items[i].Email = trimPtr(items[i].Email)
		items[i].Phone = trimPtr(items[i].Phone)
	}
	return s.sections.ReplaceContacts(ctx, p.ID, items)
}

func (s *ProfileService) ReplaceLocations(ctx context.Context, userID uint, items []model.Location) error {
	p, err := s.ProviderFor(ctx, userID)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Name = trimPtr(items[i].Name)
		items[i].Address1 = strings.TrimSpace(items[i].Address1)
		items[i].Address2 = trimPtr(items[i].Address2)
		items[i].City = strings.TrimSpace(items[i].City)
		items[i].State = strings.TrimSpace(items[i].State)
		items[i].Zip = strings.TrimSpace(items[i].Zip)
		if items[i].Country = strings.TrimSpace(items[i].Country); items[i].Country == "" {
			items[i].Country = "US"
		}
	}
	return s.sections.ReplaceLocations(ctx, p.ID, items)
}

func (s *ProfileService) ReplaceServices(ctx context.Context, userID uint, items []model.Service) error {
	p, err := s.ProviderFor(ctx, userID)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
		items[i].Type = trimPtr(items[i].Type)
		items[i].Description = trimPtr(items[i].Description)
	}
	return s.sections.ReplaceServices(ctx, p.ID, items)
}

func (s *ProfileService) ReplacePhotos(ctx context.Context, userID uint, items []model.Photo) error {
	p, err := s.ProviderFor(ctx, userID)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Name = trimPtr(items[i].Name)
		items[i].Caption = trimPtr(items[i].Caption)
		items[i].URL = strings.TrimSpace(items[i].URL)
		items[i].ThumbURL = trimPtr(items[i].ThumbURL)
	}
	return s.sections.ReplacePhotos(ctx, p.ID, items)
}

func (s *ProfileService) ReplaceEvents(ctx context.Context, userID uint, items []model.Event) error {
	p, err := s.ProviderFor(ctx, userID)
	if err != nil {
		return err
	}
	for i := range items {
		if time.Time(items[i].StartDate).IsZero() {
			return fmt.Errorf("%w: event start date is required", ErrValidation)
		}
		items[i].Name = strings.TrimSpace(items[i].Name)
		items[i].Description = trimPtr(items[i].Description)
		items[i].City = trimPtr(items[i].City)
		items[i].State = trimPtr(items[i].State)
		items[i].Zip = trimPtr(items[i].Zip)
		if items[i].Country = strings.TrimSpace(items[i].Country); items[i].Country == "" {
			items[i].Country = "US"
		}
	}
	return s.sections.ReplaceEvents(ctx, p.ID, items)
}

func (s *ProfileService) ReplaceCoupons(ctx context.Context, userID uint, items []model.Coupon) error {
	p, err := s.ProviderFor(ctx, userID)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
		items[i].Description = trimPtr(items[i].Description)
		items[i].SmallPrint = trimPtr(items[i].SmallPrint)
		items[i].PromoCode = trimPtr(items[i].PromoCode)
	}
	return s.sections.ReplaceCoupons(ctx, p.ID, items)
}

// trimPtr нормализует опциональную строку: пустая после TrimSpace — nil.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
