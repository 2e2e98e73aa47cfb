package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/rubhub/provider-directory/internal/service"
)

// Handler — HTTP-обвязка каталога поверх сервисного слоя.
// Маршрутизация на стандартном ServeMux с method-паттернами,
// JSON — единственный формат запросов и ответов.
type Handler struct {
	identity  *service.IdentityService
	profile   *service.ProfileService
	directory *service.DirectoryService
	log       *slog.Logger
}

func NewHandler(identity *service.IdentityService, profile *service.ProfileService, directory *service.DirectoryService, log *slog.Logger) *Handler {
	return &Handler{identity: identity, profile: profile, directory: directory, log: log}
}

// Routes собирает все маршруты API. Публичные — регистрация, вход и
// читающая сторона каталога; всё под /api/v1/provider/ требует токен.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/register", h.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", h.handleLogin)

	mux.HandleFunc("GET /api/v1/directory", h.handleSearch)
	mux.HandleFunc("GET /api/v1/directory/filters", h.handleFilters)
	mux.HandleFunc("GET /api/v1/providers/{slug}", h.handleProfile)
	mux.HandleFunc("GET /api/v1/categories", h.handleCategories)
	mux.HandleFunc("GET /api/v1/specialties", h.handleSpecialties)

	mux.Handle("GET /api/v1/provider/me", h.requireAuth(h.handleMe))
	mux.Handle("PUT /api/v1/provider/bio", h.requireAuth(h.handleUpdateBio))
	mux.Handle("PUT /api/v1/provider/contacts", h.requireAuth(h.handleReplaceContacts))
	mux.Handle("PUT /api/v1/provider/locations", h.requireAuth(h.handleReplaceLocations))
	mux.Handle("PUT /api/v1/provider/services", h.requireAuth(h.handleReplaceServices))
	mux.Handle("PUT /api/v1/provider/photos", h.requireAuth(h.handleReplacePhotos))
	mux.Handle("PUT /api/v1/provider/events", h.requireAuth(h.handleReplaceEvents))
	mux.Handle("PUT /api/v1/provider/coupons", h.requireAuth(h.handleReplaceCoupons))

	return mux
}
