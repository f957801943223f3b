package ports

import (
	"context"

	"github.com/saborshop/storefront/internal/core/domain"
)

// AccountRepository defines persistence for storefront accounts.
type AccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
