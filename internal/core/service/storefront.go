package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/ports"
)

// Screen is the top-level view a session is looking at.
type Screen string

const (
	ScreenCatalog Screen = "catalog"
	ScreenCart    Screen = "cart"
)

// Storefront is the application state of one shopping session: who is
// shopping, the catalog being revealed, the cart and the visible screen.
// Front ends hold a *Storefront and render from its snapshots.
type Storefront struct {
	session domain.Session
	catalog *CatalogService
	reveal  *RevealController
	cart    *CartService
	log     zerolog.Logger

	mu     sync.Mutex
	screen Screen
}

// NewStorefront builds the state for session. The cart is empty until
// Restore is called.
func NewStorefront(session domain.Session, catalog *CatalogService, store ports.KeyValueStore, layout domain.Layout, log zerolog.Logger) *Storefront {
	l := log.With().Str("session", session.Username).Logger()
	return &Storefront{
		session: session,
		catalog: catalog,
		reveal:  NewRevealController(layout),
		cart:    NewCartService(store, CartKey(session.Username), l),
		log:     l,
		screen:  ScreenCatalog,
	}
}

func (s *Storefront) Session() domain.Session  { return s.session }
func (s *Storefront) Catalog() CatalogSnapshot { return s.reveal.Snapshot() }
func (s *Storefront) Cart() CartSummary        { return s.cart.Summary() }
func (s *Storefront) Layout() domain.Layout    { return s.reveal.Layout() }

// Restore loads the persisted cart.
func (s *Storefront) Restore(ctx context.Context) error {
	return s.cart.Restore(ctx)
}

// Resize re-evaluates the responsive policy for a new viewport width.
func (s *Storefront) Resize(width int) domain.Layout {
	l := domain.Classify(width)
	s.reveal.SetLayout(l)
	return l
}

// LoadCategory fetches category and reveals its first batch. A load that
// was overtaken by a newer one returns domain.ErrStaleLoad.
func (s *Storefront) LoadCategory(ctx context.Context, category string) (RevealResult, error) {
	res, err := s.reveal.LoadCategory(ctx, category, s.catalog.Fetch)
	switch {
	case errors.Is(err, domain.ErrStaleLoad):
		s.log.Debug().Str("category", category).Msg("stale category load discarded")
	case err != nil:
		s.log.Error().Err(err).Str("category", category).Msg("category load failed")
	default:
		s.log.Info().Str("category", category).Int("revealed", len(res.Items)).Msg("category loaded")
	}
	return res, err
}

// Reveal forwards a scroll or button trigger to the reveal controller.
func (s *Storefront) Reveal(trigger Trigger) RevealResult {
	return s.reveal.Reveal(trigger)
}

// Sort reorders the catalog and reveals it again from the start.
func (s *Storefront) Sort(order domain.SortOrder) (RevealResult, error) {
	return s.reveal.Sort(order)
}

// Detail looks up a recipe.
func (s *Storefront) Detail(ctx context.Context, id string) (*domain.MealDetail, error) {
	return s.catalog.Detail(ctx, id)
}

// AddToCart adds one unit of a catalog item. Only items of the loaded
// catalog can be added.
func (s *Storefront) AddToCart(ctx context.Context, id string) (CartSummary, error) {
	item, ok := s.reveal.Find(id)
	if !ok {
		return s.cart.Summary(), fmt.Errorf("add %s: %w", id, domain.ErrItemNotFound)
	}
	return s.cart.Add(ctx, item)
}

func (s *Storefront) RemoveFromCart(ctx context.Context, id string) (CartSummary, error) {
	return s.cart.Remove(ctx, id)
}

func (s *Storefront) AdjustQuantity(ctx context.Context, id string, delta int) (CartSummary, error) {
	return s.cart.AdjustQuantity(ctx, id, delta)
}

func (s *Storefront) ClearCart(ctx context.Context) (CartSummary, error) {
	return s.cart.Clear(ctx)
}

// takeCart empties the cart and hands its lines to checkout.
func (s *Storefront) takeCart(ctx context.Context) (*domain.Cart, error) {
	cart, _, err := s.cart.TakeAll(ctx)
	return cart, err
}

// Show switches the visible screen.
func (s *Storefront) Show(screen Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = screen
}

func (s *Storefront) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// Registry keeps one Storefront per logged-in username. Sessions nobody
// touched for a while can be evicted with Sweep; their carts stay in storage
// and are restored on the next Open.
type Registry struct {
	catalog *CatalogService
	store   ports.KeyValueStore
	layout  domain.Layout
	log     zerolog.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*registryEntry
}

type registryEntry struct {
	sf       *Storefront
	lastSeen time.Time
}

// NewRegistry returns an empty registry. New sessions start with
// defaultLayout until their front end reports a viewport.
func NewRegistry(catalog *CatalogService, store ports.KeyValueStore, defaultLayout domain.Layout, log zerolog.Logger) *Registry {
	return &Registry{
		catalog:  catalog,
		store:    store,
		layout:   defaultLayout,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*registryEntry),
	}
}

// Open returns the Storefront of session, creating it and restoring its
// persisted cart on first use. The restore runs outside the registry lock so
// a slow store only delays the session being opened.
func (r *Registry) Open(ctx context.Context, session domain.Session) (*Storefront, error) {
	if session.IsGuest() {
		return nil, domain.ErrUnauthenticated
	}
	if sf, ok := r.touch(session.Username); ok {
		return sf, nil
	}

	sf := NewStorefront(session, r.catalog, r.store, r.layout, r.log)
	if err := sf.Restore(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// A concurrent Open may have won the race.
	if e, ok := r.sessions[session.Username]; ok {
		e.lastSeen = r.now()
		return e.sf, nil
	}
	r.sessions[session.Username] = &registryEntry{sf: sf, lastSeen: r.now()}
	return sf, nil
}

func (r *Registry) touch(username string) (*Storefront, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[username]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.sf, true
}

// Sweep evicts sessions idle for longer than idle and reports how many were
// dropped. Stored carts are kept.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for username, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, username)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done. A non-positive
// interval disables sweeping.
func (r *Registry) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				r.log.Info().Int("evicted", n).Int("open", r.Len()).Msg("idle sessions evicted")
			}
		}
	}
}

// Close ends a session: its cart is cleared and its state evicted. A cart
// that cannot be cleared in storage is logged; the session still ends.
func (r *Registry) Close(ctx context.Context, username string) error {
	r.mu.Lock()
	e, ok := r.sessions[username]
	delete(r.sessions, username)
	r.mu.Unlock()

	if !ok {
		if err := r.store.Remove(ctx, CartKey(username)); err != nil {
			r.log.Warn().Err(err).Str("username", username).Msg("failed to drop stored cart")
		}
		return nil
	}
	if _, err := e.sf.ClearCart(ctx); err != nil {
		r.log.Warn().Err(err).Str("username", username).Msg("cart not cleared on logout")
	}
	return nil
}

// Len is the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
