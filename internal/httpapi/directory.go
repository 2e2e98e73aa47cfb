package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/rubhub/provider-directory/internal/repository"
)

// handleSearch — поиск по каталогу. Все параметры опциональны:
// q, category, specialty, state, city, page.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.SearchFilter{
		Query:         q.Get("q"),
		CategorySlug:  q.Get("category"),
		SpecialtySlug: q.Get("specialty"),
		State:         q.Get("state"),
		City:          q.Get("city"),
	}
	page, _ := strconv.Atoi(q.Get("page"))

	result, err := h.directory.Search(r.Context(), filter, page)
	if err != nil {
		h.log.Error("directory search", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	provider, err := h.directory.Profile(r.Context(), slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.writeError(w, http.StatusNotFound, "provider not found")
			return
		}
		h.log.Error("load profile", "slug", slug, "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.writeJSON(w, http.StatusOK, provider)
}

func (h *Handler) handleFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := h.directory.Filters(r.Context())
	if err != nil {
		h.log.Error("load filters", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeJSON(w, http.StatusOK, filters)
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.directory.Categories(r.Context())
	if err != nil {
		h.log.Error("list categories", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) handleSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.directory.Specialties(r.Context())
	if err != nil {
		h.log.Error("list specialties", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeJSON(w, http.StatusOK, specialties)
}
