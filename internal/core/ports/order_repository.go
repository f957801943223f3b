package ports

import (
	"context"

	"github.com/saborshop/storefront/internal/core/domain"
)

// ListOrdersFilter carries the paging parameters of the admin order list.
type ListOrdersFilter struct {
	Username string // optional: only this customer's orders
	Page     int    // 1-based
	Limit    int    // capped at 100 by the service
}

// OrderRepository records accepted orders.
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	UpdateEmailStatus(ctx context.Context, orderID string, status domain.EmailStatus) error
	// List returns a page of orders, newest first, and the total count.
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
}
