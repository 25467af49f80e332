package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/solestride/shoe-shop/internal/catalog/app"
	"github.com/solestride/shoe-shop/internal/catalog/domain"
	"github.com/solestride/shoe-shop/pkg/httpx"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterPublic mounts the read-only product routes. Order matters:
// /products/featured must be registered before /products/{id}.
func (h *Handler) RegisterPublic(r *mux.Router) {
	r.HandleFunc("/products", h.list).Methods(http.MethodGet)
	r.HandleFunc("/products/featured", h.listFeatured).Methods(http.MethodGet)
	r.HandleFunc("/products/category/{category}", h.listByCategory).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.get).Methods(http.MethodGet)
}

// RegisterAdmin mounts the mutating product routes on an authenticated router.
func (h *Handler) RegisterAdmin(r *mux.Router) {
	h.RegisterPublic(r)
	r.HandleFunc("/products", h.create).Methods(http.MethodPost)
	r.HandleFunc("/products/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/products/{id}", h.delete).Methods(http.MethodDelete)
	r.HandleFunc("/products/{id}/stock", h.updateStock).Methods(http.MethodPatch)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProductListJSON(products))
}

func (h *Handler) listFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListFeatured(r.Context())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProductListJSON(products))
}

func (h *Handler) listByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListByCategory(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProductListJSON(products))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProductJSON(p))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.CreateProduct(r.Context(), req.toDomain())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProductJSON(p))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p := req.toDomain()
	p.ID = mux.Vars(r)["id"]

	updated, err := h.svc.UpdateProduct(r.Context(), p)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProductJSON(updated))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	var req updateStockRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.SetStock(r.Context(), mux.Vars(r)["id"], req.StockQuantity)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProductJSON(p))
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "product not found")
	default:
		h.log.Error("catalog request failed", slog.Any("err", err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func toProductListJSON(products []domain.Product) []productJSON {
	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, toProductJSON(p))
	}
	return out
}
