package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/rubhub/provider-directory/internal/model"
	"github.com/rubhub/provider-directory/internal/service"
)

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	provider, err := h.profile.ProviderFor(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		h.writeProfileError(w, "load own provider", err)
		return
	}
	h.writeJSON(w, http.StatusOK, provider)
}

type updateBioRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

func (h *Handler) handleUpdateBio(w http.ResponseWriter, r *http.Request) {
	var req updateBioRequest
	if err := readJSON(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.profile.UpdateBio(r.Context(), userIDFrom(r.Context()), req.Name, req.Bio); err != nil {
		h.writeProfileError(w, "update bio", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// replaceSection — общий каркас PUT-обработчиков секций: декодировать
// массив элементов и отдать сервису на полную замену.
func replaceSection[T any](h *Handler, what string, replace func(ctx context.Context, userID uint, items []T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var items []T
		if err := readJSON(r, &items); err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := replace(r.Context(), userIDFrom(r.Context()), items); err != nil {
			h.writeProfileError(w, what, err)
			return
		}
		h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func (h *Handler) handleReplaceContacts(w http.ResponseWriter, r *http.Request) {
	replaceSection[model.Contact](h, "replace contacts", h.profile.ReplaceContacts)(w, r)
}

func (h *Handler) handleReplaceLocations(w http.ResponseWriter, r *http.Request) {
	replaceSection[model.Location](h, "replace locations", h.profile.ReplaceLocations)(w, r)
}

func (h *Handler) handleReplaceServices(w http.ResponseWriter, r *http.Request) {
	replaceSection[model.Service](h, "replace services", h.profile.ReplaceServices)(w, r)
}

func (h *Handler) handleReplacePhotos(w http.ResponseWriter, r *http.Request) {
	replaceSection[model.Photo](h, "replace photos", h.profile.ReplacePhotos)(w, r)
}

func (h *Handler) handleReplaceEvents(w http.ResponseWriter, r *http.Request) {
	replaceSection[model.Event](h, "replace events", h.profile.ReplaceEvents)(w, r)
}

func (h *Handler) handleReplaceCoupons(w http.ResponseWriter, r *http.Request) {
	replaceSection[model.Coupon](h, "replace coupons", h.profile.ReplaceCoupons)(w, r)
}

// writeProfileError переводит ошибки сервисного слоя в HTTP-статусы.
func (h *Handler) writeProfileError(w http.ResponseWriter, what string, err error) {
	switch {
	case errors.Is(err, service.ErrNoProvider):
		h.writeError(w, http.StatusNotFound, "no provider profile for this user")
	case errors.Is(err, service.ErrValidation):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error(what, "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}
