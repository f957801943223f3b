package domain

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllCategories is the category key that merges FeaturedCategories.
const AllCategories = "all"

// DefaultCategory is shown when a session opens the catalog for the first time.
const DefaultCategory = "Seafood"

// FeaturedCategories is the declared merge order for AllCategories.
var FeaturedCategories = []string{"Seafood", "Pasta", "Dessert"}

// MaxIngredients is the number of ingredient/measure slots a recipe carries.
const MaxIngredients = 20

// CatalogItem is a single recipe as listed by a category filter.
type CatalogItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// PriceCents returns the derived price of the item.
func (i CatalogItem) PriceCents() int64 {
	return PriceCents(i.ID)
}

// Category is an entry of the catalog's category list.
type Category struct {
	Name        string `json:"name"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Description string `json:"description,omitempty"`
}

// Ingredient pairs an ingredient with its measure.
type Ingredient struct {
	Measure string `json:"measure"`
	Name    string `json:"name"`
}

func (i Ingredient) String() string {
	if i.Measure == "" {
		return i.Name
	}
	return i.Measure + " " + i.Name
}

// MealDetail is the full recipe shown in the detail view.
type MealDetail struct {
	CatalogItem
	Category     string       `json:"category"`
	Area         string       `json:"area"`
	Instructions string       `json:"instructions"`
	Ingredients  []Ingredient `json:"ingredients"`
}

// SortOrder selects how the catalog is reordered.
type SortOrder string

const (
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortNameAZ    SortOrder = "name-az"
)

// SortOrders lists the supported orders in cycling order.
var SortOrders = []SortOrder{SortPriceAsc, SortPriceDesc, SortNameAZ}

// Catalog holds the full item list fetched for one category and the pointer
// to the first item not yet revealed. It is not safe for concurrent use; the
// reveal controller owns it.
type Catalog struct {
	category string
	items    []CatalogItem
	revealed int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Load replaces the catalog contents and rewinds the reveal pointer.
func (c *Catalog) Load(category string, items []CatalogItem) {
	c.category = category
	c.items = append([]CatalogItem(nil), items...)
	c.revealed = 0
}

// Reset empties the catalog while keeping the category it was loading.
func (c *Catalog) Reset(category string) {
	c.Load(category, nil)
}

func (c *Catalog) Category() string { return c.category }
func (c *Catalog) Len() int         { return len(c.items) }
func (c *Catalog) Revealed() int    { return c.revealed }

// Exhausted reports whether every item has been revealed.
func (c *Catalog) Exhausted() bool {
	return c.revealed >= len(c.items)
}

// Items returns a copy of the full list in display order.
func (c *Catalog) Items() []CatalogItem {
	return append([]CatalogItem(nil), c.items...)
}

// RevealedItems returns a copy of the items revealed so far.
func (c *Catalog) RevealedItems() []CatalogItem {
	return append([]CatalogItem(nil), c.items[:c.revealed]...)
}

// RevealNext returns up to n items starting at the reveal pointer and
// advances the pointer by the number returned. Once exhausted it returns an
// empty slice and leaves the catalog untouched.
func (c *Catalog) RevealNext(n int) []CatalogItem {
	if n <= 0 || c.Exhausted() {
		return []CatalogItem{}
	}
	end := c.revealed + n
	if end > len(c.items) {
		end = len(c.items)
	}
	batch := append([]CatalogItem(nil), c.items[c.revealed:end]...)
	c.revealed = end
	return batch
}

// Rewind moves the reveal pointer back to the first item.
func (c *Catalog) Rewind() {
	c.revealed = 0
}

// Find looks an item up by id in the full list, revealed or not.
func (c *Catalog) Find(id string) (CatalogItem, bool) {
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return CatalogItem{}, false
}

// SortBy reorders the items in place. The reveal pointer is left alone; the
// caller re-runs the reveal from the start.
func (c *Catalog) SortBy(order SortOrder) error {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(c.items, func(i, j int) bool {
			return priceLess(c.items[i], c.items[j])
		})
	case SortPriceDesc:
		sort.SliceStable(c.items, func(i, j int) bool {
			return priceLess(c.items[j], c.items[i])
		})
	case SortNameAZ:
		col := collate.New(language.Spanish, collate.IgnoreCase)
		sort.SliceStable(c.items, func(i, j int) bool {
			return col.CompareString(c.items[i].Name, c.items[j].Name) < 0
		})
	default:
		return fmt.Errorf("%w: unknown sort order %q", ErrInvalidInput, order)
	}
	return nil
}

// priceLess orders by price, then by numeric id so items sharing a price
// still sort the same way every time.
func priceLess(a, b CatalogItem) bool {
	pa, pb := a.PriceCents(), b.PriceCents()
	if pa != pb {
		return pa < pb
	}
	return numericID(a.ID) < numericID(b.ID)
}

// ParseSortOrder validates a sort order name.
func ParseSortOrder(s string) (SortOrder, error) {
	for _, o := range SortOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sort order %q", ErrInvalidInput, s)
}
