package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/ports"
)

const (
	persistAttempts = 3
	persistBackoff  = 50 * time.Millisecond
)

// CartKey is the storage key of a session's cart snapshot.
func CartKey(username string) string {
	if username == "" {
		return "cart"
	}
	return "cart:" + username
}

// CartSummary is a consistent copy of the cart for rendering.
type CartSummary struct {
	Lines      []domain.CartLine
	TotalCents int64
	Count      int
}

// CartService owns one session's cart and mirrors it into durable storage
// after every mutation. Mutations are serialized.
type CartService struct {
	mu    sync.Mutex
	cart  *domain.Cart
	store ports.KeyValueStore
	key   string
	log   zerolog.Logger

	backoff time.Duration
}

// NewCartService returns an empty cart bound to key. Call Restore to load a
// previously stored snapshot.
func NewCartService(store ports.KeyValueStore, key string, log zerolog.Logger) *CartService {
	return &CartService{
		cart:    domain.NewCart(),
		store:   store,
		key:     key,
		log:     log,
		backoff: persistBackoff,
	}
}

// Restore replaces the in-memory cart with the stored snapshot. An unreadable
// snapshot is logged and treated as an empty cart.
func (s *CartService) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("restore cart: %w", err)
	}
	if !ok || raw == "" {
		s.cart = domain.NewCart()
		return nil
	}
	cart, err := domain.ParseCart(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("discarding unreadable cart snapshot")
		s.cart = domain.NewCart()
		return nil
	}
	s.cart = cart
	return nil
}

// Add puts one unit of item in the cart.
func (s *CartService) Add(ctx context.Context, item domain.CatalogItem) (CartSummary, error) {
	return s.mutate(ctx, "add", func(c *domain.Cart) { c.Add(item) })
}

// Remove deletes a line; a missing id is not an error.
func (s *CartService) Remove(ctx context.Context, id string) (CartSummary, error) {
	return s.mutate(ctx, "remove", func(c *domain.Cart) { c.Remove(id) })
}

// AdjustQuantity changes a line's quantity, removing it at zero or below.
func (s *CartService) AdjustQuantity(ctx context.Context, id string, delta int) (CartSummary, error) {
	return s.mutate(ctx, "adjust", func(c *domain.Cart) { c.AdjustQuantity(id, delta) })
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) (CartSummary, error) {
	return s.mutate(ctx, "clear", func(c *domain.Cart) { c.Clear() })
}

// TakeAll empties the cart and returns what it held, as one mutation. An
// empty cart is returned as is and nothing is written. When the emptied cart
// cannot be saved the lines are still taken and the error wraps
// domain.ErrPersistence.
func (s *CartService) TakeAll(ctx context.Context) (*domain.Cart, CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := domain.NewCart(s.cart.Lines()...)
	if taken.IsEmpty() {
		return taken, summarize(s.cart), nil
	}

	s.cart.Clear()
	sum := summarize(s.cart)
	if err := s.persistLocked(ctx); err != nil {
		s.log.Warn().Err(err).Str("op", "take").Str("key", s.key).Msg("cart emptied but not saved")
		return taken, sum, fmt.Errorf("cart take: %w: %v", domain.ErrPersistence, err)
	}
	return taken, sum, nil
}

// Summary returns the current cart.
func (s *CartService) Summary() CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return summarize(s.cart)
}

// mutate applies fn and writes the snapshot through before returning. When
// the write keeps failing the mutation stays applied and the returned error
// wraps domain.ErrPersistence.
func (s *CartService) mutate(ctx context.Context, op string, fn func(*domain.Cart)) (CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.cart)
	sum := summarize(s.cart)

	if err := s.persistLocked(ctx); err != nil {
		s.log.Warn().Err(err).Str("op", op).Str("key", s.key).Msg("cart changed but not saved")
		return sum, fmt.Errorf("cart %s: %w: %v", op, domain.ErrPersistence, err)
	}
	return sum, nil
}

func (s *CartService) persistLocked(ctx context.Context) error {
	snap, err := s.cart.Snapshot()
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= persistAttempts; attempt++ {
		if lastErr = s.store.Set(ctx, s.key, snap); lastErr == nil {
			return nil
		}
		s.log.Debug().Err(lastErr).Int("attempt", attempt).Msg("cart write failed")
		if attempt == persistAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * s.backoff):
		}
	}
	return lastErr
}

func summarize(c *domain.Cart) CartSummary {
	return CartSummary{Lines: c.Lines(), TotalCents: c.Total(), Count: c.Count()}
}
