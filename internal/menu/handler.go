package menu

import (
	"context"
	"errors"
	"net/http"

	"tableorder-be/internal/logger"
	"tableorder-be/internal/transport"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts menu routes. Literal paths go in before parametrized ones so
// "available" is never captured as a menu id.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/menus", h.listMenus).Methods(http.MethodGet)
	r.HandleFunc("/menus/available", h.listAvailableMenus).Methods(http.MethodGet)
	r.HandleFunc("/menus", h.createMenu).Methods(http.MethodPost)
	r.HandleFunc("/menus/{id}/soldout", h.markSoldOut).Methods(http.MethodPatch)
	r.HandleFunc("/menus/{id}/available", h.markAvailable).Methods(http.MethodPatch)
	r.HandleFunc("/menus/{id}", h.updateMenu).Methods(http.MethodPatch)
	r.HandleFunc("/menus/{id}", h.deleteMenu).Methods(http.MethodDelete)
}

func (h *Handler) listMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := h.svc.GetMenus(r.Context())
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Failed to fetch menus")
		return
	}
	transport.WriteJSON(w, http.StatusOK, menus)
}

func (h *Handler) listAvailableMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := h.svc.GetAvailableMenus(r.Context())
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Failed to fetch available menus")
		return
	}
	transport.WriteJSON(w, http.StatusOK, menus)
}

func (h *Handler) createMenu(w http.ResponseWriter, r *http.Request) {
	var in CreateMenuInput
	if !transport.DecodeJSON(w, r, &in) {
		return
	}

	m, err := h.svc.CreateMenu(r.Context(), in)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			transport.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		transport.WriteError(w, http.StatusInternalServerError, "Failed to create menu")
		return
	}

	transport.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) updateMenu(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var in UpdateMenuInput
	if !transport.DecodeJSON(w, r, &in) {
		return
	}

	m, err := h.svc.UpdateMenu(r.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrMenuNotFound):
			transport.WriteError(w, http.StatusNotFound, "Menu not found")
		case errors.Is(err, ErrInvalidInput):
			transport.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			transport.WriteError(w, http.StatusInternalServerError, "Failed to update menu")
		}
		return
	}

	transport.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) deleteMenu(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.DeleteMenu(r.Context(), id); err != nil {
		if errors.Is(err, ErrMenuNotFound) {
			transport.WriteError(w, http.StatusNotFound, "Menu not found")
			return
		}
		logger.FromCtx(r.Context()).Error("delete menu failed",
			zap.String("menu_id", id),
			zap.Error(err),
		)
		transport.WriteError(w, http.StatusInternalServerError, "Failed to delete menu")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) markSoldOut(w http.ResponseWriter, r *http.Request) {
	h.setSaleFlag(w, r, h.svc.MarkSoldOut, "Failed to mark menu as sold out")
}

func (h *Handler) markAvailable(w http.ResponseWriter, r *http.Request) {
	h.setSaleFlag(w, r, h.svc.MarkAvailable, "Failed to mark menu as available")
}

func (h *Handler) setSaleFlag(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, id string) (*Menu, error),
	failMsg string,
) {
	id := mux.Vars(r)["id"]

	m, err := apply(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMenuNotFound) {
			transport.WriteError(w, http.StatusNotFound, "Menu not found")
			return
		}
		transport.WriteError(w, http.StatusInternalServerError, failMsg)
		return
	}

	transport.WriteJSON(w, http.StatusOK, m)
}
