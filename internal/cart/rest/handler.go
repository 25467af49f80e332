package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/solestride/shoe-shop/internal/auth/identity"
	"github.com/solestride/shoe-shop/internal/cart/app"
	"github.com/solestride/shoe-shop/pkg/httpx"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the cart routes. The router is expected to already carry
// the auth middleware; every handler requires a caller identity.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/cart", h.get).Methods(http.MethodGet)
	r.HandleFunc("/cart", h.clear).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items", h.addItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{itemId}", h.updateItem).Methods(http.MethodPut)
	r.HandleFunc("/cart/items/{itemId}", h.removeItem).Methods(http.MethodDelete)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	cart, err := h.svc.GetCart(r.Context(), userID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCartJSON(cart))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req addItemRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.svc.AddItem(r.Context(), userID, req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCartJSON(cart))
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req updateItemRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.svc.UpdateItem(r.Context(), userID, mux.Vars(r)["itemId"], req.Quantity)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCartJSON(cart))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	cart, err := h.svc.RemoveItem(r.Context(), userID, mux.Vars(r)["itemId"])
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCartJSON(cart))
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	cart, err := h.svc.ClearCart(r.Context(), userID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCartJSON(cart))
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrInsufficientStock):
		httpx.WriteError(w, http.StatusBadRequest, "not enough stock available")
	case errors.Is(err, app.ErrProductNotFound):
		httpx.WriteError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, app.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not found")
	default:
		h.log.Error("cart request failed", slog.Any("err", err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
