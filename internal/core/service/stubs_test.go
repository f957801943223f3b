package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Catalog API stub
// ---------------------------------------------------------------------------

type stubCatalogAPI struct {
	mu         sync.Mutex
	byCategory map[string][]domain.CatalogItem
	failFor    map[string]error
	calls      []string
	// gate, when set for a category, blocks FilterByCategory until closed.
	gate map[string]chan struct{}
}

func newStubCatalogAPI() *stubCatalogAPI {
	return &stubCatalogAPI{
		byCategory: make(map[string][]domain.CatalogItem),
		failFor:    make(map[string]error),
		gate:       make(map[string]chan struct{}),
	}
}

func (a *stubCatalogAPI) ListCategories(_ context.Context) ([]domain.Category, error) {
	return []domain.Category{{Name: "Seafood"}, {Name: "Pasta"}, {Name: "Dessert"}}, nil
}

func (a *stubCatalogAPI) FilterByCategory(ctx context.Context, category string) ([]domain.CatalogItem, error) {
	a.mu.Lock()
	a.calls = append(a.calls, category)
	gate := a.gate[category]
	err := a.failFor[category]
	items := append([]domain.CatalogItem(nil), a.byCategory[category]...)
	a.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (a *stubCatalogAPI) LookupDetail(_ context.Context, id string) (*domain.MealDetail, error) {
	if err := a.failFor["detail"]; err != nil {
		return nil, err
	}
	return &domain.MealDetail{CatalogItem: domain.CatalogItem{ID: id, Name: "Meal " + id}}, nil
}

func (a *stubCatalogAPI) RandomItem(_ context.Context) (domain.CatalogItem, error) {
	if err := a.failFor["random"]; err != nil {
		return domain.CatalogItem{}, err
	}
	return domain.CatalogItem{ID: "52772", Name: "Teriyaki Chicken Casserole"}, nil
}

func makeItems(prefix string, base, n int) []domain.CatalogItem {
	out := make([]domain.CatalogItem, n)
	for i := range out {
		id := strconv.Itoa(base + i)
		out[i] = domain.CatalogItem{ID: id, Name: fmt.Sprintf("%s %d", prefix, i), ImageURL: "img/" + id}
	}
	return out
}

var errNetwork = fmt.Errorf("%w: connection refused", domain.ErrFetch)

// ---------------------------------------------------------------------------
// Key/value store stub
// ---------------------------------------------------------------------------

type memStore struct {
	mu       sync.Mutex
	data     map[string]string
	failSets int // number of upcoming Set calls that fail
	setCalls int
	getErr   error
	// hold, when set for a key, blocks Get until closed; entered is told
	// the key first.
	hold    map[string]chan struct{}
	entered chan string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	if h := m.hold[key]; h != nil {
		m.entered <- key
		<-h
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.failSets > 0 {
		m.failSets--
		return errors.New("disk full")
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

// ---------------------------------------------------------------------------
// Captcha store stub
// ---------------------------------------------------------------------------

type stubCaptchaStore struct {
	answers map[string]int
}

func newStubCaptchaStore() *stubCaptchaStore {
	return &stubCaptchaStore{answers: make(map[string]int)}
}

func (s *stubCaptchaStore) Put(_ context.Context, id string, answer int, _ time.Duration) error {
	s.answers[id] = answer
	return nil
}

func (s *stubCaptchaStore) Take(_ context.Context, id string) (int, bool, error) {
	v, ok := s.answers[id]
	delete(s.answers, id)
	return v, ok, nil
}

// ---------------------------------------------------------------------------
// Account repository stub
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	users map[string]*domain.User
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// ---------------------------------------------------------------------------
// Orders, mail
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	insertErr error
	inserted  []*domain.Order
	listed    ports.ListOrdersFilter
	// onInsert runs while the order is being recorded.
	onInsert func()
}

func (r *stubOrderRepo) Insert(_ context.Context, o *domain.Order) error {
	if r.onInsert != nil {
		r.onInsert()
	}
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, o)
	return nil
}

func (r *stubOrderRepo) UpdateEmailStatus(_ context.Context, _ string, _ domain.EmailStatus) error {
	return nil
}

func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	r.listed = f
	return r.inserted, int64(len(r.inserted)), nil
}

type stubMailQueue struct {
	queued []ports.OrderEmail
}

func (q *stubMailQueue) Enqueue(e ports.OrderEmail) {
	q.queued = append(q.queued, e)
}

type stubMailer struct {
	enabled bool
}

func (m stubMailer) Enabled() bool { return m.enabled }

func (m stubMailer) Send(_ context.Context, _, _ string, _ any) error { return nil }
