package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/solestride/shoe-shop/internal/order/app"
	"github.com/solestride/shoe-shop/internal/order/domain"
	"github.com/solestride/shoe-shop/pkg/httpx"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the admin order routes. The fixed-path routes must come
// before /orders/{id} so "statistics" is not read as an order id.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/orders", h.list).Methods(http.MethodGet)
	r.HandleFunc("/orders/statistics", h.statistics).Methods(http.MethodGet)
	r.HandleFunc("/orders/date-range", h.listByDateRange).Methods(http.MethodGet)
	r.HandleFunc("/orders/status/{status}", h.listByStatus).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/status", h.updateStatus).Methods(http.MethodPatch)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrderListJSON(orders))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrderJSON(order))
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.svc.UpdateStatus(r.Context(), mux.Vars(r)["id"], domain.Status(req.Status))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrderJSON(order))
}

func (h *Handler) listByStatus(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(mux.Vars(r)["status"])
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid order status")
		return
	}

	orders, err := h.svc.ListByStatus(r.Context(), domain.Status(code))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrderListJSON(orders))
}

func (h *Handler) listByDateRange(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("startDate"))
	if err != nil {
		// Allow bare dates too.
		start, err = time.Parse("2006-01-02", r.URL.Query().Get("startDate"))
	}
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid startDate")
		return
	}

	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("endDate"))
	if err != nil {
		end, err = time.Parse("2006-01-02", r.URL.Query().Get("endDate"))
		if err == nil {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
	}
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid endDate")
		return
	}

	orders, err := h.svc.ListByDateRange(r.Context(), start, end)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrderListJSON(orders))
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Statistics(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toStatisticsJSON(stats))
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidStatus), errors.Is(err, app.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "order not found")
	default:
		h.log.Error("order request failed", slog.Any("err", err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
