// Package mealdb is the TheMealDB v1 adapter of ports.CatalogAPI.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/saborshop/storefront/internal/core/domain"
)

const (
	DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"
	defaultTimeout = 10 * time.Second
)

// Client calls TheMealDB over HTTP. The zero value is not usable; build one
// with New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL, or DefaultBaseURL when empty.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type mealSummary struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Thumb string `json:"strMealThumb"`
}

func (m mealSummary) toDomain() domain.CatalogItem {
	return domain.CatalogItem{ID: m.ID, Name: m.Name, ImageURL: m.Thumb}
}

type categoryDoc struct {
	Name        string `json:"strCategory"`
	Thumb       string `json:"strCategoryThumb"`
	Description string `json:"strCategoryDescription"`
}

// ListCategories calls categories.php.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var body struct {
		Categories []categoryDoc `json:"categories"`
	}
	if err := c.get(ctx, "categories.php", nil, &body); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(body.Categories))
	for _, d := range body.Categories {
		out = append(out, domain.Category{Name: d.Name, Thumbnail: d.Thumb, Description: d.Description})
	}
	return out, nil
}

// FilterByCategory calls filter.php. The API answers an unknown category
// with "meals": null, which maps to an empty list.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]domain.CatalogItem, error) {
	var body struct {
		Meals []mealSummary `json:"meals"`
	}
	if err := c.get(ctx, "filter.php", url.Values{"c": {category}}, &body); err != nil {
		return nil, err
	}
	out := make([]domain.CatalogItem, 0, len(body.Meals))
	for _, m := range body.Meals {
		out = append(out, m.toDomain())
	}
	return out, nil
}

// LookupDetail calls lookup.php. An unknown id is domain.ErrItemNotFound.
func (c *Client) LookupDetail(ctx context.Context, id string) (*domain.MealDetail, error) {
	var body struct {
		Meals []map[string]any `json:"meals"`
	}
	if err := c.get(ctx, "lookup.php", url.Values{"i": {id}}, &body); err != nil {
		return nil, err
	}
	if len(body.Meals) == 0 {
		return nil, fmt.Errorf("meal %s: %w", id, domain.ErrItemNotFound)
	}
	return detailFrom(body.Meals[0]), nil
}

// RandomItem calls random.php.
func (c *Client) RandomItem(ctx context.Context) (domain.CatalogItem, error) {
	var body struct {
		Meals []mealSummary `json:"meals"`
	}
	if err := c.get(ctx, "random.php", nil, &body); err != nil {
		return domain.CatalogItem{}, err
	}
	if len(body.Meals) == 0 {
		return domain.CatalogItem{}, fmt.Errorf("%w: random.php returned no meal", domain.ErrFetch)
	}
	return body.Meals[0].toDomain(), nil
}

// detailFrom flattens the numbered strIngredientN/strMeasureN fields,
// skipping empty slots.
func detailFrom(m map[string]any) *domain.MealDetail {
	d := &domain.MealDetail{
		CatalogItem: domain.CatalogItem{
			ID:       str(m, "idMeal"),
			Name:     str(m, "strMeal"),
			ImageURL: str(m, "strMealThumb"),
		},
		Category:     str(m, "strCategory"),
		Area:         str(m, "strArea"),
		Instructions: str(m, "strInstructions"),
	}
	for i := 1; i <= domain.MaxIngredients; i++ {
		name := strings.TrimSpace(str(m, "strIngredient"+strconv.Itoa(i)))
		if name == "" {
			continue
		}
		d.Ingredients = append(d.Ingredients, domain.Ingredient{
			Name:    name,
			Measure: strings.TrimSpace(str(m, "strMeasure"+strconv.Itoa(i))),
		})
	}
	return d
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	u := c.baseURL + "/" + endpoint
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrFetch, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: status %d", domain.ErrFetch, endpoint, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrFetch, endpoint, err)
	}
	return nil
}
