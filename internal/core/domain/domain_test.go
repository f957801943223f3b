package domain

import (
	"errors"
	"strconv"
	"testing"
)

func TestPriceCents(t *testing.T) {
	cases := []struct {
		id   string
		want int64
	}{
		{"12345", 1235},
		{"52772", 5277},
		{"52959", 5296},
		{"52705", 5270},
		{"52785", 5278},
		{"53049", 5305},
		{"125", 13},
		{"1000", 100},
		{"4", 0},
		{"5", 1},
		{"0", 0},
		{"abc", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := PriceCents(tc.id); got != tc.want {
			t.Errorf("PriceCents(%q): expected %d, got %d", tc.id, tc.want, got)
		}
	}
}

func TestPriceCents_Deterministic(t *testing.T) {
	first := PriceCents("53049")
	for i := 0; i < 100; i++ {
		if got := PriceCents("53049"); got != first {
			t.Fatalf("price changed between calls: %d then %d", first, got)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(1235); got != "$12.35" {
		t.Fatalf("expected $12.35, got %s", got)
	}
	if got := FormatPrice(5); got != "$0.05" {
		t.Fatalf("expected $0.05, got %s", got)
	}
	if got := FormatCents(-250); got != "-2.50" {
		t.Fatalf("expected -2.50, got %s", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		width int
		want  Layout
	}{
		{1200, Layout{BatchInitial: 6, BatchStep: 3}},
		{968, Layout{BatchInitial: 6, BatchStep: 3}},
		{967, Layout{BatchInitial: 4, BatchStep: 2}},
		{800, Layout{BatchInitial: 4, BatchStep: 2}},
		{768, Layout{BatchInitial: 4, BatchStep: 2}},
		{500, Layout{BatchInitial: 3, BatchStep: 3, ButtonMode: true}},
		{0, Layout{BatchInitial: 3, BatchStep: 3, ButtonMode: true}},
	}
	for _, tc := range cases {
		if got := Classify(tc.width); got != tc.want {
			t.Errorf("Classify(%d): expected %+v, got %+v", tc.width, tc.want, got)
		}
	}
}

func items(n int) []CatalogItem {
	out := make([]CatalogItem, n)
	for i := range out {
		id := strconv.Itoa(52700 + i)
		out[i] = CatalogItem{ID: id, Name: "Meal " + id, ImageURL: "img/" + id}
	}
	return out
}

func TestCatalog_LoadRewinds(t *testing.T) {
	c := NewCatalog()
	c.Load("Seafood", items(5))
	c.RevealNext(3)

	c.Load("Pasta", items(4))
	if c.Revealed() != 0 {
		t.Fatalf("expected revealed 0 after load, got %d", c.Revealed())
	}
	if c.Len() != 4 || c.Category() != "Pasta" {
		t.Fatalf("unexpected catalog state: len=%d category=%s", c.Len(), c.Category())
	}
}

func TestCatalog_RevealUntilExhausted(t *testing.T) {
	for _, batch := range []int{1, 2, 3, 7, 50} {
		c := NewCatalog()
		c.Load("Seafood", items(7))

		seen := 0
		for i := 0; i < 100 && !c.Exhausted(); i++ {
			seen += len(c.RevealNext(batch))
		}
		if seen != 7 || c.Revealed() != 7 {
			t.Fatalf("batch %d: expected 7 revealed, got seen=%d revealed=%d", batch, seen, c.Revealed())
		}
		for i := 0; i < 3; i++ {
			if got := c.RevealNext(batch); len(got) != 0 {
				t.Fatalf("batch %d: expected empty reveal after exhaustion, got %d", batch, len(got))
			}
		}
		if c.Revealed() != 7 {
			t.Fatalf("batch %d: exhausted reveal mutated pointer to %d", batch, c.Revealed())
		}
	}
}

func TestCatalog_RevealOrder(t *testing.T) {
	c := NewCatalog()
	all := items(7)
	c.Load("Seafood", all)

	first := c.RevealNext(6)
	second := c.RevealNext(3)
	if len(first) != 6 || len(second) != 1 {
		t.Fatalf("expected batches of 6 and 1, got %d and %d", len(first), len(second))
	}
	got := append(first, second...)
	for i := range all {
		if got[i].ID != all[i].ID {
			t.Fatalf("item %d out of order: %s vs %s", i, got[i].ID, all[i].ID)
		}
	}
}

func TestCatalog_RevealNonPositive(t *testing.T) {
	c := NewCatalog()
	c.Load("Seafood", items(3))
	if got := c.RevealNext(0); len(got) != 0 || c.Revealed() != 0 {
		t.Fatalf("expected no-op for zero batch")
	}
}

func TestCatalog_SortBy(t *testing.T) {
	c := NewCatalog()
	c.Load("Dessert", []CatalogItem{
		{ID: "52900", Name: "Tarta"},
		{ID: "52100", Name: "Ñoquis"},
		{ID: "53000", Name: "apple pie"},
		{ID: "52500", Name: "Nata"},
	})
	c.RevealNext(2)

	if err := c.SortBy(SortPriceAsc); err != nil {
		t.Fatalf("sort: %v", err)
	}
	if ids := idsOf(c.Items()); ids != "52100,52500,52900,53000" {
		t.Fatalf("unexpected price-asc order: %s", ids)
	}
	if c.Revealed() != 2 {
		t.Fatalf("sort must not move the reveal pointer, got %d", c.Revealed())
	}

	_ = c.SortBy(SortPriceDesc)
	if ids := idsOf(c.Items()); ids != "53000,52900,52500,52100" {
		t.Fatalf("unexpected price-desc order: %s", ids)
	}

	_ = c.SortBy(SortNameAZ)
	if ids := idsOf(c.Items()); ids != "53000,52500,52100,52900" {
		t.Fatalf("unexpected name-az order: %s", ids)
	}

	if err := c.SortBy("random"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCatalog_SortByPriceBreaksTiesOnID(t *testing.T) {
	c := NewCatalog()
	// All four price at $52.90.
	c.Load("Seafood", []CatalogItem{
		{ID: "52903", Name: "c"},
		{ID: "52900", Name: "a"},
		{ID: "52904", Name: "d"},
		{ID: "52901", Name: "b"},
	})

	_ = c.SortBy(SortPriceAsc)
	if ids := idsOf(c.Items()); ids != "52900,52901,52903,52904" {
		t.Fatalf("unexpected price-asc order: %s", ids)
	}
	_ = c.SortBy(SortPriceDesc)
	if ids := idsOf(c.Items()); ids != "52904,52903,52901,52900" {
		t.Fatalf("unexpected price-desc order: %s", ids)
	}
}

func idsOf(list []CatalogItem) string {
	s := ""
	for i, it := range list {
		if i > 0 {
			s += ","
		}
		s += it.ID
	}
	return s
}

func TestCart_AddRemoveScenario(t *testing.T) {
	c := NewCart()
	c.Add(CatalogItem{ID: "12345", Name: "Test Meal", ImageURL: "url"})

	if c.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", c.Len())
	}
	line, _ := c.Line("12345")
	if line.Quantity != 1 || line.UnitPriceCents != 1235 {
		t.Fatalf("unexpected line: %+v", line)
	}

	c.Remove("12345")
	if !c.IsEmpty() || c.Total() != 0 {
		t.Fatalf("expected empty cart, got %+v", c.Lines())
	}
}

func TestCart_RoundTripRestoresState(t *testing.T) {
	c := NewCart()
	c.Add(CatalogItem{ID: "52772", Name: "Teriyaki"})
	c.Add(CatalogItem{ID: "52772", Name: "Teriyaki"})
	lenBefore, totalBefore := c.Len(), c.Total()

	c.Add(CatalogItem{ID: "52959", Name: "Baked salmon"})
	c.Remove("52959")

	if c.Len() != lenBefore || c.Total() != totalBefore {
		t.Fatalf("round trip changed cart: len %d→%d total %d→%d", lenBefore, c.Len(), totalBefore, c.Total())
	}
}

func TestCart_AddIncrementsExisting(t *testing.T) {
	c := NewCart()
	c.Add(CatalogItem{ID: "52772"})
	c.Add(CatalogItem{ID: "52959"})
	c.Add(CatalogItem{ID: "52772"})

	lines := c.Lines()
	if len(lines) != 2 || lines[0].ID != "52772" || lines[0].Quantity != 2 {
		t.Fatalf("unexpected lines: %+v", lines)
	}
	if c.Count() != 3 {
		t.Fatalf("expected badge count 3, got %d", c.Count())
	}
	if want := int64(2*5277 + 5296); c.Total() != want {
		t.Fatalf("expected total %d, got %d", want, c.Total())
	}
}

func TestCart_AdjustQuantityFloor(t *testing.T) {
	c := NewCart()
	c.Add(CatalogItem{ID: "52772"})
	c.AdjustQuantity("52772", 4)
	if l, _ := c.Line("52772"); l.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", l.Quantity)
	}

	if !c.AdjustQuantity("52772", -1000) {
		t.Fatalf("expected change")
	}
	if _, ok := c.Line("52772"); ok {
		t.Fatalf("expected line removed, not negative")
	}
	if c.AdjustQuantity("missing", 1) {
		t.Fatalf("adjusting a missing id must be a no-op")
	}
	if c.Remove("missing") {
		t.Fatalf("removing a missing id must be a no-op")
	}
}

func TestCart_SnapshotRoundTrip(t *testing.T) {
	c := NewCart()
	c.Add(CatalogItem{ID: "52772", Name: "Teriyaki", ImageURL: "a"})
	c.Add(CatalogItem{ID: "52959", Name: "Salmon", ImageURL: "b"})
	c.AdjustQuantity("52959", 2)

	snap, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	restored, err := ParseCart(snap)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if restored.Count() != c.Count() || restored.Total() != c.Total() || restored.Lines()[1].ID != "52959" {
		t.Fatalf("restored cart differs: %+v", restored.Lines())
	}

	if _, err := ParseCart("{not json"); err == nil {
		t.Fatalf("expected decode error")
	}
	if s, _ := NewCart().Snapshot(); s != "[]" {
		t.Fatalf("expected empty snapshot [], got %s", s)
	}
}

func TestNewCart_Normalizes(t *testing.T) {
	c := NewCart(
		CartLine{ID: "1", Quantity: 1, UnitPriceCents: 10},
		CartLine{ID: "2", Quantity: 0, UnitPriceCents: 10},
		CartLine{ID: "1", Quantity: 2, UnitPriceCents: 10},
	)
	if c.Len() != 1 || c.Count() != 3 {
		t.Fatalf("unexpected normalized cart: %+v", c.Lines())
	}
}

func TestErrorTaxonomy(t *testing.T) {
	for _, err := range []error{ErrCaptchaMismatch, ErrUserExists, ErrInvalidInput} {
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%v should be a validation error", err)
		}
	}
}
