package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solestride/shoe-shop/internal/catalog/app"
	"github.com/solestride/shoe-shop/internal/catalog/domain"
)

type stubRepo struct {
	products map[string]domain.Product
}

func (s *stubRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.ID = uuid.NewString()
	s.products[p.ID] = p
	return p, nil
}

func (s *stubRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return p, nil
}

func (s *stubRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubRepo) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubRepo) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	if _, ok := s.products[p.ID]; !ok {
		return domain.Product{}, app.ErrNotFound
	}
	s.products[p.ID] = p
	return p, nil
}

func (s *stubRepo) Delete(ctx context.Context, id string) error {
	if _, ok := s.products[id]; !ok {
		return app.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *stubRepo) SetStock(ctx context.Context, id string, quantity int32) (domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	p.StockQuantity = quantity
	p.InStock = quantity > 0
	s.products[id] = p
	return p, nil
}

func newTestRouter(products ...domain.Product) (*mux.Router, *stubRepo) {
	repo := &stubRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}

	h := NewHandler(app.NewService(repo), slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := mux.NewRouter()
	h.RegisterAdmin(r)
	return r, repo
}

func TestGetProduct(t *testing.T) {
	featured := domain.Product{
		ID:       uuid.NewString(),
		Name:     "Trail Runner",
		Price:    decimal.RequireFromString("129.99"),
		Category: "running",
		Featured: true,
	}
	router, _ := newTestRouter(featured)

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/"+featured.ID, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got productJSON
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "Trail Runner", got.Name)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/"+uuid.NewString(), nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "product not found", body["message"])
	})

	t.Run("featured route wins over id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/featured", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got []productJSON
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, featured.ID, got[0].ID)
	})
}

func TestCreateProduct(t *testing.T) {
	router, _ := newTestRouter()

	t.Run("created", func(t *testing.T) {
		body := `{"name":"Court Classic","description":"","price":"89.99","category":"casual","sizes":[10],"colors":["White"],"stockQuantity":3}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)
		var got productJSON
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.NotEmpty(t, got.ID)
		assert.True(t, got.InStock)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown field is 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"bogus":1}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid price is 400", func(t *testing.T) {
		body := `{"name":"X","price":"0","category":"casual","stockQuantity":1}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateStock(t *testing.T) {
	p := domain.Product{
		ID:            uuid.NewString(),
		Name:          "Trail Runner",
		Price:         decimal.RequireFromString("129.99"),
		Category:      "running",
		StockQuantity: 12,
		InStock:       true,
	}
	router, repo := newTestRouter(p)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/products/"+p.ID+"/stock",
		strings.NewReader(`{"stockQuantity":0}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var got productJSON
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, int32(0), got.StockQuantity)
	assert.False(t, got.InStock)
	assert.False(t, repo.products[p.ID].InStock)
}

func TestDeleteProduct(t *testing.T) {
	p := domain.Product{ID: uuid.NewString(), Name: "Trail Runner"}
	router, repo := newTestRouter(p)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products/"+p.ID, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.products)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products/"+p.ID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
