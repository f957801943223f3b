package view

import (
	"errors"
	"testing"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/service"
)

func TestCatalog(t *testing.T) {
	v := Catalog(service.CatalogSnapshot{
		Category:   "Pasta",
		Items:      []domain.CatalogItem{{ID: "12345", Name: "Test Meal", ImageURL: "url"}},
		Total:      5,
		Revealed:   1,
		State:      service.StateIdle,
		Layout:     domain.Classify(500),
		ShowButton: true,
	})

	if len(v.Cards) != 1 || v.Cards[0].Price != "$12.35" {
		t.Fatalf("unexpected cards: %+v", v.Cards)
	}
	if v.Mode != "button" || !v.LoadMore || v.Exhausted {
		t.Fatalf("unexpected reveal state: %+v", v)
	}
}

func TestCatalog_EmptyIsNotNil(t *testing.T) {
	v := Catalog(service.CatalogSnapshot{State: service.StateExhausted, Layout: domain.Classify(1200)})
	if v.Cards == nil || !v.Exhausted || v.Mode != "scroll" {
		t.Fatalf("unexpected empty view: %+v", v)
	}
}

func TestCart(t *testing.T) {
	sum := service.CartSummary{
		Lines: []domain.CartLine{
			{ID: "12345", Name: "Test Meal", Quantity: 2, UnitPriceCents: 1235},
			{ID: "52772", Name: "Teriyaki", Quantity: 1, UnitPriceCents: 5277},
		},
		TotalCents: 2*1235 + 5277,
		Count:      3,
	}

	v := Cart(sum)
	if v.Empty || len(v.Lines) != 2 {
		t.Fatalf("unexpected cart view: %+v", v)
	}
	if v.Lines[0].LineTotal != "$24.70" || v.Lines[0].UnitPrice != "$12.35" {
		t.Fatalf("unexpected line: %+v", v.Lines[0])
	}
	if v.Total != "$77.47" || v.Subtotal != v.Total {
		t.Fatalf("unexpected totals: %s / %s", v.Subtotal, v.Total)
	}
	if v.Badge != "3" {
		t.Fatalf("expected badge 3, got %q", v.Badge)
	}
}

func TestCart_Empty(t *testing.T) {
	v := Cart(service.CartSummary{})
	if !v.Empty || v.Badge != "" || v.Total != "$0.00" || v.Lines == nil {
		t.Fatalf("unexpected empty cart view: %+v", v)
	}
}

func TestDetail(t *testing.T) {
	d := &domain.MealDetail{
		CatalogItem: domain.CatalogItem{ID: "52772", Name: "Teriyaki"},
		Ingredients: []domain.Ingredient{{Measure: "3/4 cup", Name: "soy sauce"}, {Name: "salt"}},
	}
	v := Detail(d, nil)
	if v.Error != "" || v.Price != "$52.77" {
		t.Fatalf("unexpected detail view: %+v", v)
	}
	if len(v.Ingredients) != 2 || v.Ingredients[0] != "3/4 cup soy sauce" || v.Ingredients[1] != "salt" {
		t.Fatalf("unexpected ingredients: %v", v.Ingredients)
	}

	v = Detail(nil, errors.New("timeout"))
	if v.Error == "" || v.Name != "" {
		t.Fatalf("expected inline error, got %+v", v)
	}
}

func TestReveal(t *testing.T) {
	v := Reveal(service.RevealResult{
		Items:         []domain.CatalogItem{},
		Refused:       true,
		RefusedReason: service.RefusedButtonMode,
		State:         service.StateIdle,
	})
	if v.Refused != "button_mode" || v.Cards == nil {
		t.Fatalf("unexpected reveal view: %+v", v)
	}
}
