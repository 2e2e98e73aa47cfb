package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rubhub/provider-directory/internal/migration"
	"github.com/rubhub/provider-directory/internal/model"
	"github.com/rubhub/provider-directory/internal/repository"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	bcryptCost = 12
	tokenTTL   = 7 * 24 * time.Hour
)

// IdentityService — регистрация владельцев карточек и вход по email/паролю.
// Регистрация сразу создаёт и пользователя, и пустую карточку провайдера,
// поэтому сервису нужна транзакция поверх *gorm.DB, а не только репозитории.
type IdentityService struct {
	db        *gorm.DB
	users     repository.UserRepository
	jwtSecret []byte
}

func NewIdentityService(db *gorm.DB, users repository.UserRepository, jwtSecret []byte) *IdentityService {
	return &IdentityService{db: db, users: users, jwtSecret: jwtSecret}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register создаёт пользователя и его карточку провайдера в одной
// транзакции. Слаг карточки строится из имени со случайным суффиксом:
// коллизии имён при регистрации — штатная ситуация.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)

	if email == "" || in.Password == "" || firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         "provider",
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}

		provider := model.Provider{
			Slug:   registrationSlug(firstName, lastName),
			Name:   firstName + " " + lastName,
			Status: model.ProviderStatusActive,
			UserID: &user.ID,
		}
		return tx.Create(&provider).Error
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	return &user, nil
}

// registrationSlug — слаг новой карточки: имя-фамилия плюс короткий
// случайный суффикс, чтобы тёзки не конфликтовали.
func registrationSlug(firstName, lastName string) string {
	base := migration.Slugify(firstName + " " + lastName)
	if base == "" {
		base = "provider"
	}
	return base + "-" + uuid.NewString()[:4]
}

// Login проверяет пару email/пароль и выдаёт подписанный HS256-токен.
func (s *IdentityService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// ParseToken валидирует токен и возвращает идентификатор пользователя.
func (s *IdentityService) ParseToken(tokenStr string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, fmt.Errorf("invalid token claims")
	}

	var userID uint
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil {
		return 0, fmt.Errorf("invalid token subject: %w", err)
	}
	return userID, nil
}
