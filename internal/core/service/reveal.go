package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/saborshop/storefront/internal/core/domain"
)

// RevealState is the state of the infinite reveal state machine.
type RevealState string

const (
	StateIdle      RevealState = "idle"
	StateLoading   RevealState = "loading"
	StateExhausted RevealState = "exhausted"
)

// Trigger is what asked for the next batch.
type Trigger string

const (
	TriggerScroll Trigger = "scroll"
	TriggerButton Trigger = "button"
)

// ParseTrigger validates a trigger name.
func ParseTrigger(s string) (Trigger, error) {
	switch Trigger(s) {
	case TriggerScroll, TriggerButton:
		return Trigger(s), nil
	}
	return "", fmt.Errorf("%w: unknown trigger %q", domain.ErrInvalidInput, s)
}

// Reasons a reveal trigger is refused.
const (
	RefusedLoading    = "loading"
	RefusedExhausted  = "exhausted"
	RefusedButtonMode = "button_mode"
)

// FetchFunc fetches the full item list of a category.
type FetchFunc func(ctx context.Context, category string) ([]domain.CatalogItem, error)

// RevealResult describes what a front end must do after a controller call.
type RevealResult struct {
	// Items are appended to the rendered surface, in order.
	Items []domain.CatalogItem
	// Reset means the surface must be cleared before appending Items.
	Reset bool
	// Refused is set when the trigger was ignored; RefusedReason says why.
	Refused       bool
	RefusedReason string
	State         RevealState
	// ShowButton is true when a "load more" button must follow the content.
	ShowButton bool
}

// CatalogSnapshot is a consistent read of the controller for rendering.
type CatalogSnapshot struct {
	Category   string
	Items      []domain.CatalogItem // revealed items in display order
	Total      int
	Revealed   int
	State      RevealState
	Layout     domain.Layout
	ShowButton bool
	Sort       domain.SortOrder
}

// RevealController drives a Catalog through scroll or button triggers. The
// loading flag admits at most one in-flight load or reveal, so batches are
// always appended in the order the catalog produces them. Category loads are
// tagged with a generation; a load that finishes after a newer one started is
// discarded.
type RevealController struct {
	mu         sync.Mutex
	catalog    *domain.Catalog
	layout     domain.Layout
	state      RevealState
	loading    bool
	generation uint64
	sort       domain.SortOrder
}

// NewRevealController returns an idle controller over an empty catalog.
func NewRevealController(layout domain.Layout) *RevealController {
	return &RevealController{
		catalog: domain.NewCatalog(),
		layout:  layout,
		state:   StateExhausted,
	}
}

// SetLayout applies a new responsive layout to future reveals.
func (c *RevealController) SetLayout(l domain.Layout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layout = l
}

func (c *RevealController) Layout() domain.Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout
}

// LoadCategory replaces the catalog with the items fetched for category and
// reveals the initial batch. The fetch runs without holding the lock; if
// another load starts meanwhile this one returns domain.ErrStaleLoad and its
// items are dropped. A failed fetch leaves the catalog empty.
func (c *RevealController) LoadCategory(ctx context.Context, category string, fetch FetchFunc) (RevealResult, error) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	c.state = StateLoading
	c.sort = ""
	c.catalog.Reset(category)
	c.mu.Unlock()

	items, err := fetch(ctx, category)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return RevealResult{Refused: true, RefusedReason: RefusedLoading, State: c.state}, domain.ErrStaleLoad
	}
	c.loading = false
	if err != nil {
		c.catalog.Reset(category)
		c.state = StateExhausted
		return RevealResult{Reset: true, State: c.state, Items: []domain.CatalogItem{}}, fmt.Errorf("load category %s: %w", category, err)
	}

	c.catalog.Load(category, items)
	res := c.revealLocked(c.layout.BatchInitial)
	res.Reset = true
	return res, nil
}

// Reveal handles a scroll or button trigger. Refused triggers change nothing.
func (c *RevealController) Reveal(trigger Trigger) RevealResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.loading:
		return c.refusedLocked(RefusedLoading)
	case c.state == StateExhausted:
		return c.refusedLocked(RefusedExhausted)
	case trigger == TriggerScroll && c.layout.ButtonMode:
		return c.refusedLocked(RefusedButtonMode)
	}
	return c.revealLocked(c.layout.BatchStep)
}

// Sort reorders the catalog and re-runs the reveal from the first item so
// the revealed and displayed items stay consistent.
func (c *RevealController) Sort(order domain.SortOrder) (RevealResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return c.refusedLocked(RefusedLoading), nil
	}
	if err := c.catalog.SortBy(order); err != nil {
		return RevealResult{State: c.state}, err
	}
	c.sort = order
	c.catalog.Rewind()
	res := c.revealLocked(c.layout.BatchInitial)
	res.Reset = true
	return res, nil
}

// Find looks an item up in the loaded catalog.
func (c *RevealController) Find(id string) (domain.CatalogItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog.Find(id)
}

// Snapshot returns the state needed to render the catalog from scratch.
func (c *RevealController) Snapshot() CatalogSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CatalogSnapshot{
		Category:   c.catalog.Category(),
		Items:      c.catalog.RevealedItems(),
		Total:      c.catalog.Len(),
		Revealed:   c.catalog.Revealed(),
		State:      c.state,
		Layout:     c.layout,
		ShowButton: c.showButtonLocked(),
		Sort:       c.sort,
	}
}

// revealLocked performs one Loading step. Callers hold c.mu.
func (c *RevealController) revealLocked(n int) RevealResult {
	c.loading = true
	c.state = StateLoading
	batch := c.catalog.RevealNext(n)
	c.loading = false

	if len(batch) == 0 {
		c.state = StateExhausted
	} else {
		c.state = StateIdle
	}
	return RevealResult{Items: batch, State: c.state, ShowButton: c.showButtonLocked()}
}

func (c *RevealController) refusedLocked(reason string) RevealResult {
	return RevealResult{
		Items:         []domain.CatalogItem{},
		Refused:       true,
		RefusedReason: reason,
		State:         c.state,
		ShowButton:    c.showButtonLocked(),
	}
}

func (c *RevealController) showButtonLocked() bool {
	return c.layout.ButtonMode && !c.loading && c.state != StateExhausted && !c.catalog.Exhausted()
}
