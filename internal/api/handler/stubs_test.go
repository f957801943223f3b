package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/ports"
	"github.com/saborshop/storefront/internal/core/service"
)

type stubCatalogAPI struct {
	items     map[string][]domain.CatalogItem
	detailErr error
}

func (a *stubCatalogAPI) ListCategories(context.Context) ([]domain.Category, error) {
	return []domain.Category{{Name: "Seafood"}, {Name: "Pasta"}}, nil
}

func (a *stubCatalogAPI) FilterByCategory(_ context.Context, category string) ([]domain.CatalogItem, error) {
	items, ok := a.items[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s unavailable", domain.ErrFetch, category)
	}
	return items, nil
}

func (a *stubCatalogAPI) LookupDetail(_ context.Context, id string) (*domain.MealDetail, error) {
	if a.detailErr != nil {
		return nil, a.detailErr
	}
	return &domain.MealDetail{CatalogItem: domain.CatalogItem{ID: id, Name: "Meal " + id}}, nil
}

func (a *stubCatalogAPI) RandomItem(context.Context) (domain.CatalogItem, error) {
	return domain.CatalogItem{ID: "52772", Name: "Teriyaki"}, nil
}

func seafood(n int) []domain.CatalogItem {
	out := make([]domain.CatalogItem, n)
	for i := range out {
		id := strconv.Itoa(52900 + i)
		out[i] = domain.CatalogItem{ID: id, Name: "Fish " + id}
	}
	return out
}

type memStore struct {
	mu      sync.Mutex
	data    map[string]string
	failing bool
}

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("storage unavailable")
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// recordingSessions wraps a real registry and records closed sessions.
type recordingSessions struct {
	reg    *service.Registry
	closed []string
}

func (r *recordingSessions) Open(ctx context.Context, s domain.Session) (*service.Storefront, error) {
	return r.reg.Open(ctx, s)
}

func (r *recordingSessions) Close(_ context.Context, username string) error {
	r.closed = append(r.closed, username)
	return nil
}

type fixture struct {
	e        *echo.Echo
	api      *stubCatalogAPI
	store    *memStore
	catalog  *service.CatalogService
	sessions *recordingSessions
}

func newFixture() *fixture {
	api := &stubCatalogAPI{items: map[string][]domain.CatalogItem{"Seafood": seafood(7)}}
	store := &memStore{data: make(map[string]string)}
	catalog := service.NewCatalogService(api, zerolog.Nop())
	reg := service.NewRegistry(catalog, store, domain.Classify(1200), zerolog.Nop())
	return &fixture{
		e:        newTestEcho(),
		api:      api,
		store:    store,
		catalog:  catalog,
		sessions: &recordingSessions{reg: reg},
	}
}

// call builds an authenticated context for alice.
func (f *fixture) call(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req = httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	c.Set("username", "alice")
	c.Set("name", "Alice")
	c.Set("email", "alice@example.com")
	c.Set("role", domain.RoleCustomer)
	return c, rec
}

type stubOrderRepo struct {
	orders []*domain.Order
}

func (r *stubOrderRepo) Insert(_ context.Context, o *domain.Order) error {
	r.orders = append(r.orders, o)
	return nil
}

func (r *stubOrderRepo) UpdateEmailStatus(context.Context, string, domain.EmailStatus) error {
	return nil
}

func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	return r.orders, int64(len(r.orders)), nil
}

type discardQueue struct{ n int }

func (q *discardQueue) Enqueue(ports.OrderEmail) { q.n++ }

type enabledMailer struct{}

func (enabledMailer) Enabled() bool                                  { return true }
func (enabledMailer) Send(context.Context, string, string, any) error { return nil }

var placedAt = time.Date(2025, 12, 24, 20, 0, 0, 0, time.UTC)
