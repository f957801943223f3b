package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/ports"
)

// GallerySize is the number of random recipes shown on the landing page.
const GallerySize = 10

// CatalogService reads the recipe catalog API on behalf of every session.
type CatalogService struct {
	api ports.CatalogAPI
	log zerolog.Logger
}

func NewCatalogService(api ports.CatalogAPI, log zerolog.Logger) *CatalogService {
	return &CatalogService{api: api, log: log}
}

// Fetch returns the full item list of category. For domain.AllCategories the
// featured categories are fetched concurrently and concatenated in their
// declared order without de-duplication. Any failure fails the whole fetch.
func (s *CatalogService) Fetch(ctx context.Context, category string) ([]domain.CatalogItem, error) {
	if category != domain.AllCategories {
		items, err := s.api.FilterByCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		return items, nil
	}

	parts := make([][]domain.CatalogItem, len(domain.FeaturedCategories))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range domain.FeaturedCategories {
		g.Go(func() error {
			items, err := s.api.FilterByCategory(gctx, name)
			if err != nil {
				return fmt.Errorf("category %s: %w", name, err)
			}
			parts[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []domain.CatalogItem
	for _, p := range parts {
		merged = append(merged, p...)
	}
	return merged, nil
}

// Categories lists the catalog categories.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.api.ListCategories(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list categories failed")
		return nil, err
	}
	return cats, nil
}

// Detail looks up a full recipe.
func (s *CatalogService) Detail(ctx context.Context, id string) (*domain.MealDetail, error) {
	d, err := s.api.LookupDetail(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("meal_id", id).Msg("detail lookup failed")
		return nil, err
	}
	return d, nil
}

// Gallery fetches GallerySize random recipes in parallel. The landing page
// must stay usable, so a failure is logged and yields an empty gallery.
func (s *CatalogService) Gallery(ctx context.Context) []domain.CatalogItem {
	out := make([]domain.CatalogItem, GallerySize)
	g, gctx := errgroup.WithContext(ctx)
	for i := range out {
		g.Go(func() error {
			it, err := s.api.RandomItem(gctx)
			if err != nil {
				return err
			}
			out[i] = it
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("gallery fetch failed")
		return []domain.CatalogItem{}
	}
	return out
}
