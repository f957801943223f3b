package service

import (
	"context"
	"errors"
	"testing"

	"github.com/saborshop/storefront/internal/core/domain"
)

func staticFetch(items []domain.CatalogItem) FetchFunc {
	return func(context.Context, string) ([]domain.CatalogItem, error) {
		return items, nil
	}
}

func ids(items []domain.CatalogItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestRevealController_StartsExhausted(t *testing.T) {
	c := NewRevealController(domain.Classify(1200))

	res := c.Reveal(TriggerScroll)
	if !res.Refused || res.RefusedReason != RefusedExhausted {
		t.Fatalf("expected refusal before any load, got %+v", res)
	}
}

func TestRevealController_ScrollToExhaustion(t *testing.T) {
	c := NewRevealController(domain.Classify(1200))
	items := makeItems("Fish", 52900, 7)

	res, err := c.LoadCategory(context.Background(), "Seafood", staticFetch(items))
	if err != nil {
		t.Fatalf("LoadCategory returned error: %v", err)
	}
	if !res.Reset {
		t.Fatalf("expected first batch to reset the surface")
	}
	if len(res.Items) != 6 || res.State != StateIdle {
		t.Fatalf("expected 6 items and idle, got %d items and %s", len(res.Items), res.State)
	}

	res = c.Reveal(TriggerScroll)
	if len(res.Items) != 1 || res.Items[0].ID != "52906" {
		t.Fatalf("expected the seventh item only, got %v", ids(res.Items))
	}
	if res.State != StateIdle {
		t.Fatalf("expected idle after partial batch, got %s", res.State)
	}

	res = c.Reveal(TriggerScroll)
	if res.Refused || len(res.Items) != 0 || res.State != StateExhausted {
		t.Fatalf("expected empty batch to exhaust, got %+v", res)
	}

	res = c.Reveal(TriggerScroll)
	if !res.Refused || res.RefusedReason != RefusedExhausted {
		t.Fatalf("expected refusal once exhausted, got %+v", res)
	}

	snap := c.Snapshot()
	if snap.Revealed != 7 || snap.Total != 7 || len(snap.Items) != 7 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	for i, it := range snap.Items {
		if it.ID != items[i].ID {
			t.Fatalf("item %d out of order: %s", i, it.ID)
		}
	}
}

func TestRevealController_ButtonMode(t *testing.T) {
	c := NewRevealController(domain.Classify(500))
	items := makeItems("Pasta", 52800, 5)

	res, err := c.LoadCategory(context.Background(), "Pasta", staticFetch(items))
	if err != nil {
		t.Fatalf("LoadCategory returned error: %v", err)
	}
	if len(res.Items) != 3 || !res.ShowButton {
		t.Fatalf("expected 3 items with button, got %d items button=%v", len(res.Items), res.ShowButton)
	}

	res = c.Reveal(TriggerScroll)
	if !res.Refused || res.RefusedReason != RefusedButtonMode {
		t.Fatalf("expected scroll to be refused in button mode, got %+v", res)
	}
	if c.Snapshot().Revealed != 3 {
		t.Fatalf("refused trigger must not reveal")
	}

	res = c.Reveal(TriggerButton)
	if len(res.Items) != 2 {
		t.Fatalf("expected remaining 2 items, got %d", len(res.Items))
	}
	if res.ShowButton {
		t.Fatalf("button must hide once every item is revealed")
	}
}

func TestRevealController_ResizeSwitchesMode(t *testing.T) {
	c := NewRevealController(domain.Classify(500))
	_, _ = c.LoadCategory(context.Background(), "Pasta", staticFetch(makeItems("Pasta", 52800, 10)))

	c.SetLayout(domain.Classify(800))
	res := c.Reveal(TriggerScroll)
	if res.Refused || len(res.Items) != 2 {
		t.Fatalf("expected scroll batch of 2 after widening, got %+v", res)
	}
}

func TestRevealController_LoadFailureLeavesEmptyCatalog(t *testing.T) {
	c := NewRevealController(domain.Classify(1200))
	_, _ = c.LoadCategory(context.Background(), "Seafood", staticFetch(makeItems("Fish", 52900, 7)))

	failing := func(context.Context, string) ([]domain.CatalogItem, error) { return nil, errNetwork }
	res, err := c.LoadCategory(context.Background(), "Pasta", failing)
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if !res.Reset || len(res.Items) != 0 || res.State != StateExhausted {
		t.Fatalf("expected cleared exhausted surface, got %+v", res)
	}
	snap := c.Snapshot()
	if snap.Total != 0 || snap.Category != "Pasta" {
		t.Fatalf("unexpected snapshot after failure: %+v", snap)
	}
	if _, ok := c.Find("52900"); ok {
		t.Fatalf("previous category must not survive a failed load")
	}
}

func TestRevealController_StaleLoadDiscarded(t *testing.T) {
	c := NewRevealController(domain.Classify(1200))

	started := make(chan struct{})
	release := make(chan struct{})
	slow := func(context.Context, string) ([]domain.CatalogItem, error) {
		close(started)
		<-release
		return makeItems("Old", 10000, 4), nil
	}

	type outcome struct {
		res RevealResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := c.LoadCategory(context.Background(), "Dessert", slow)
		done <- outcome{res, err}
	}()
	<-started

	if res := c.Reveal(TriggerScroll); !res.Refused || res.RefusedReason != RefusedLoading {
		t.Fatalf("expected refusal while loading, got %+v", res)
	}

	if _, err := c.LoadCategory(context.Background(), "Pasta", staticFetch(makeItems("Pasta", 52800, 2))); err != nil {
		t.Fatalf("newer load failed: %v", err)
	}
	close(release)

	out := <-done
	if !errors.Is(out.err, domain.ErrStaleLoad) {
		t.Fatalf("expected ErrStaleLoad, got %v", out.err)
	}
	snap := c.Snapshot()
	if snap.Category != "Pasta" || snap.Total != 2 {
		t.Fatalf("stale load overwrote catalog: %+v", snap)
	}
}

func TestRevealController_SortRevealsFromStart(t *testing.T) {
	c := NewRevealController(domain.Classify(1200))
	items := []domain.CatalogItem{
		{ID: "53000", Name: "C"}, {ID: "52100", Name: "A"}, {ID: "52900", Name: "B"},
		{ID: "52500", Name: "D"}, {ID: "52200", Name: "E"}, {ID: "52300", Name: "F"},
		{ID: "52400", Name: "G"},
	}
	_, _ = c.LoadCategory(context.Background(), "Seafood", staticFetch(items))
	_ = c.Reveal(TriggerScroll)

	res, err := c.Sort(domain.SortPriceDesc)
	if err != nil {
		t.Fatalf("Sort returned error: %v", err)
	}
	if !res.Reset || len(res.Items) != 6 {
		t.Fatalf("expected fresh initial batch, got %+v", res)
	}
	if res.Items[0].ID != "53000" || res.Items[1].ID != "52900" {
		t.Fatalf("unexpected order: %v", ids(res.Items))
	}
	if snap := c.Snapshot(); snap.Revealed != 6 || snap.Sort != domain.SortPriceDesc {
		t.Fatalf("unexpected snapshot after sort: %+v", snap)
	}

	if _, err := c.Sort("cheapest"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown order, got %v", err)
	}
}

func TestParseTrigger(t *testing.T) {
	if tr, err := ParseTrigger("button"); err != nil || tr != TriggerButton {
		t.Fatalf("expected button trigger, got %q %v", tr, err)
	}
	if _, err := ParseTrigger("swipe"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
