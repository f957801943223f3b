// Package view turns storefront state into plain view trees. Front ends
// re-render from these on every change instead of patching their output.
package view

import (
	"strconv"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/service"
)

// Card is one rendered catalog item.
type Card struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url"`
	Price      string `json:"price"`
	PriceCents int64  `json:"price_cents"`
}

// CatalogView is the catalog grid with its reveal state.
type CatalogView struct {
	Category     string `json:"category"`
	Cards        []Card `json:"cards"`
	Mode         string `json:"mode"`
	BatchInitial int    `json:"batch_initial"`
	BatchStep    int    `json:"batch_step"`
	LoadMore     bool   `json:"load_more"`
	Loading      bool   `json:"loading"`
	Exhausted    bool   `json:"exhausted"`
	Revealed     int    `json:"revealed"`
	Total        int    `json:"total"`
	Sort         string `json:"sort,omitempty"`
}

// Catalog renders a controller snapshot.
func Catalog(s service.CatalogSnapshot) CatalogView {
	return CatalogView{
		Category:     s.Category,
		Cards:        Cards(s.Items),
		Mode:         s.Layout.Mode(),
		BatchInitial: s.Layout.BatchInitial,
		BatchStep:    s.Layout.BatchStep,
		LoadMore:     s.ShowButton,
		Loading:      s.State == service.StateLoading,
		Exhausted:    s.State == service.StateExhausted,
		Revealed:     s.Revealed,
		Total:        s.Total,
		Sort:         string(s.Sort),
	}
}

// Cards renders items in order. The result is never nil.
func Cards(items []domain.CatalogItem) []Card {
	out := make([]Card, 0, len(items))
	for _, it := range items {
		cents := it.PriceCents()
		out = append(out, Card{
			ID:         it.ID,
			Name:       it.Name,
			ImageURL:   it.ImageURL,
			Price:      domain.FormatPrice(cents),
			PriceCents: cents,
		})
	}
	return out
}

// CartLineView is one rendered cart line.
type CartLineView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// CartView is the cart screen.
type CartView struct {
	Lines      []CartLineView `json:"lines"`
	Subtotal   string         `json:"subtotal"`
	Total      string         `json:"total"`
	TotalCents int64          `json:"total_cents"`
	Count      int            `json:"count"`
	Badge      string         `json:"badge"`
	Empty      bool           `json:"empty"`
}

// Cart renders a cart summary. There are no shipping or tax charges, so the
// subtotal equals the total.
func Cart(sum service.CartSummary) CartView {
	lines := make([]CartLineView, 0, len(sum.Lines))
	for _, l := range sum.Lines {
		lines = append(lines, CartLineView{
			ID:        l.ID,
			Name:      l.Name,
			ImageURL:  l.ImageURL,
			Quantity:  l.Quantity,
			UnitPrice: domain.FormatPrice(l.UnitPriceCents),
			LineTotal: domain.FormatPrice(l.TotalCents()),
		})
	}
	total := domain.FormatPrice(sum.TotalCents)
	return CartView{
		Lines:      lines,
		Subtotal:   total,
		Total:      total,
		TotalCents: sum.TotalCents,
		Count:      sum.Count,
		Badge:      Badge(sum),
		Empty:      len(lines) == 0,
	}
}

// Badge is the unit count shown next to the cart icon; empty for an empty cart.
func Badge(sum service.CartSummary) string {
	if sum.Count <= 0 {
		return ""
	}
	return strconv.Itoa(sum.Count)
}

// DetailView is a recipe page, or an inline error when it could not load.
type DetailView struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	Price        string   `json:"price,omitempty"`
	Category     string   `json:"category,omitempty"`
	Area         string   `json:"area,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Detail renders a recipe. A lookup error degrades to a message.
func Detail(d *domain.MealDetail, err error) DetailView {
	if err != nil || d == nil {
		return DetailView{Error: "We could not load this recipe. Please try again later."}
	}
	ingredients := make([]string, 0, len(d.Ingredients))
	for _, in := range d.Ingredients {
		ingredients = append(ingredients, in.String())
	}
	return DetailView{
		ID:           d.ID,
		Name:         d.Name,
		ImageURL:     d.ImageURL,
		Price:        domain.FormatPrice(d.PriceCents()),
		Category:     d.Category,
		Area:         d.Area,
		Instructions: d.Instructions,
		Ingredients:  ingredients,
	}
}

// RevealView is the incremental update after a reveal trigger: append Cards,
// after clearing the grid when Reset is set.
type RevealView struct {
	Cards    []Card `json:"cards"`
	Reset    bool   `json:"reset"`
	Refused  string `json:"refused,omitempty"`
	State    string `json:"state"`
	LoadMore bool   `json:"load_more"`
}

func Reveal(r service.RevealResult) RevealView {
	return RevealView{
		Cards:    Cards(r.Items),
		Reset:    r.Reset,
		Refused:  r.RefusedReason,
		State:    string(r.State),
		LoadMore: r.ShowButton,
	}
}
