package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/saborshop/storefront/internal/core/domain"
)

func loadSeafood(t *testing.T, f *fixture) {
	t.Helper()
	c, _ := f.call(http.MethodPost, "/v1/catalog/load", `{"category":"Seafood"}`)
	if err := NewCatalogHandler(f.catalog, f.sessions).Load(c); err != nil {
		t.Fatalf("load failed: %v", err)
	}
}

func decodeCart(t *testing.T, body []byte) cartResponse {
	t.Helper()
	var resp cartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestCartHandler_AddAdjustRemove(t *testing.T) {
	f := newFixture()
	loadSeafood(t, f)
	h := NewCartHandler(f.sessions)

	c, rec := f.call(http.MethodPost, "/v1/cart/items", `{"id":"52900"}`)
	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeCart(t, rec.Body.Bytes())
	if resp.Cart.Count != 1 || resp.Cart.Total != "$52.90" || resp.Cart.Badge != "1" {
		t.Fatalf("unexpected cart: %+v", resp.Cart)
	}
	if _, ok := f.store.data["cart:alice"]; !ok {
		t.Fatalf("expected cart written through")
	}

	c, rec = f.call(http.MethodPatch, "/v1/cart/items/52900", `{"delta":2}`)
	c.SetParamNames("id")
	c.SetParamValues("52900")
	if err := h.Adjust(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp = decodeCart(t, rec.Body.Bytes()); resp.Cart.Count != 3 {
		t.Fatalf("expected 3 units, got %d", resp.Cart.Count)
	}

	c, rec = f.call(http.MethodDelete, "/v1/cart/items/52900", "")
	c.SetParamNames("id")
	c.SetParamValues("52900")
	if err := h.Remove(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp = decodeCart(t, rec.Body.Bytes()); !resp.Cart.Empty {
		t.Fatalf("expected empty cart, got %+v", resp.Cart)
	}
}

func TestCartHandler_AddUnknownItem(t *testing.T) {
	f := newFixture()
	loadSeafood(t, f)
	h := NewCartHandler(f.sessions)

	c, _ := f.call(http.MethodPost, "/v1/cart/items", `{"id":"1"}`)
	if err := h.Add(c); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestCartHandler_PersistenceFailureWarns(t *testing.T) {
	f := newFixture()
	loadSeafood(t, f)
	f.store.failing = true
	h := NewCartHandler(f.sessions)

	c, rec := f.call(http.MethodPost, "/v1/cart/items", `{"id":"52900"}`)
	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeCart(t, rec.Body.Bytes())
	if resp.Warning == "" || resp.Cart.Count != 1 {
		t.Fatalf("expected kept mutation with warning, got %+v", resp)
	}
}

func TestCartHandler_AdjustValidation(t *testing.T) {
	f := newFixture()
	h := NewCartHandler(f.sessions)

	c, _ := f.call(http.MethodPatch, "/v1/cart/items/52900", `{"delta":0}`)
	if code := httpCode(t, h.Adjust(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}
