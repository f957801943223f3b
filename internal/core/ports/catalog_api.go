package ports

import (
	"context"

	"github.com/saborshop/storefront/internal/core/domain"
)

// CatalogAPI is the recipe catalog the storefront sells from. Every method
// fails with an error wrapping domain.ErrFetch on network or decoding errors.
type CatalogAPI interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	// FilterByCategory returns the items of one category; an unknown category
	// yields an empty list, not an error.
	FilterByCategory(ctx context.Context, category string) ([]domain.CatalogItem, error)
	LookupDetail(ctx context.Context, id string) (*domain.MealDetail, error)
	RandomItem(ctx context.Context) (domain.CatalogItem, error)
}
