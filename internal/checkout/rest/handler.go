package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/solestride/shoe-shop/internal/auth/identity"
	"github.com/solestride/shoe-shop/internal/checkout/app"
	"github.com/solestride/shoe-shop/internal/checkout/domain"
	orderapp "github.com/solestride/shoe-shop/internal/order/app"
	"github.com/solestride/shoe-shop/pkg/httpx"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/checkout/quote", h.quote).Methods(http.MethodPost)
	r.HandleFunc("/checkout", h.placeOrder).Methods(http.MethodPost)
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	quote, err := h.svc.Quote(r.Context(), userID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toQuoteJSON(quote))
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req placeOrderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conf, err := h.svc.PlaceOrder(r.Context(), userID, domain.PlaceOrderRequest{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toConfirmationJSON(conf))
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrEmptyCart):
		httpx.WriteError(w, http.StatusBadRequest, "cart is empty")
	case errors.Is(err, orderapp.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("checkout request failed", slog.Any("err", err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
