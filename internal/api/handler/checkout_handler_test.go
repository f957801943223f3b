package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/service"
)

func TestCheckoutHandler_Checkout(t *testing.T) {
	f := newFixture()
	loadSeafood(t, f)
	orders := &stubOrderRepo{}
	queue := &discardQueue{}
	h := NewCheckoutHandler(f.sessions, service.NewCheckoutService(orders, queue, enabledMailer{}, zerolog.Nop()))

	c, _ := f.call(http.MethodPost, "/v1/cart/items", `{"id":"52900"}`)
	_ = NewCartHandler(f.sessions).Add(c)

	c, rec := f.call(http.MethodPost, "/v1/checkout", "")
	if err := h.Checkout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp receiptResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.OrderID == "" || resp.Total != "$52.90" || !resp.EmailQueued {
		t.Fatalf("unexpected receipt: %+v", resp)
	}
	if queue.n != 1 || len(orders.orders) != 1 {
		t.Fatalf("expected order recorded and email queued")
	}

	c, _ = f.call(http.MethodPost, "/v1/checkout", "")
	if err := h.Checkout(c); !errors.Is(err, domain.ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty on second checkout, got %v", err)
	}
}

func TestCheckoutHandler_ListOrders(t *testing.T) {
	f := newFixture()
	orders := &stubOrderRepo{orders: []*domain.Order{{
		OrderID:     "SN-00042",
		Username:    "alice",
		Lines:       []domain.OrderLine{{ItemID: "52900", Units: 2, UnitPriceCents: 5290}},
		TotalCents:  10580,
		EmailStatus: domain.EmailSent,
		PlacedAt:    placedAt,
	}}}
	h := NewCheckoutHandler(f.sessions, service.NewCheckoutService(orders, &discardQueue{}, enabledMailer{}, zerolog.Nop()))

	c, rec := f.call(http.MethodGet, "/v1/admin/orders?page=1&limit=10", "")
	if err := h.ListOrders(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp ordersPage
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 || resp.TotalPages != 1 || resp.Limit != 10 {
		t.Fatalf("unexpected page: %+v", resp)
	}
	if got := resp.Items[0]; got.Units != 2 || got.Total != "$105.80" || got.EmailStatus != "sent" {
		t.Fatalf("unexpected order summary: %+v", got)
	}
}
