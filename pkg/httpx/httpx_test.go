package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, "product not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"message":"product not found"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("ok", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
		var p payload
		if err := Decode(req, &p); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if p.Name != "x" {
			t.Fatalf("got %q", p.Name)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"bogus":1}`))
		var p payload
		if err := Decode(req, &p); err == nil {
			t.Fatal("expected error for unknown field")
		}
	})

	t.Run("truncated body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var p payload
		if err := Decode(req, &p); err == nil {
			t.Fatal("expected error for truncated body")
		}
	})
}
