package domain

import (
	"encoding/json"
	"fmt"
)

// CartLine aggregates all units of one catalog item in the cart.
type CartLine struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ImageURL       string `json:"image_url"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// TotalCents is quantity times unit price.
func (l CartLine) TotalCents() int64 {
	return int64(l.Quantity) * l.UnitPriceCents
}

// Cart is an ordered set of lines keyed by item id. Insertion order is the
// display order. A Cart is not safe for concurrent use.
type Cart struct {
	lines []CartLine
}

// NewCart builds a cart from previously stored lines. Lines with a
// non-positive quantity are dropped and repeated ids are merged into the
// first occurrence.
func NewCart(lines ...CartLine) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.ID == "" || l.Quantity <= 0 {
			continue
		}
		if l.UnitPriceCents < 0 {
			l.UnitPriceCents = 0
		}
		if i := c.index(l.ID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

func (c *Cart) index(id string) int {
	for i := range c.lines {
		if c.lines[i].ID == id {
			return i
		}
	}
	return -1
}

// Add puts one unit of item in the cart. A new line is priced from the item id.
func (c *Cart) Add(item CatalogItem) CartLine {
	if i := c.index(item.ID); i >= 0 {
		c.lines[i].Quantity++
		return c.lines[i]
	}
	line := CartLine{
		ID:             item.ID,
		Name:           item.Name,
		ImageURL:       item.ImageURL,
		Quantity:       1,
		UnitPriceCents: item.PriceCents(),
	}
	c.lines = append(c.lines, line)
	return line
}

// Remove deletes the line for id. It reports whether a line was removed.
func (c *Cart) Remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// AdjustQuantity adds delta to the line's quantity, removing the line when
// the result drops to zero or below. It reports whether the cart changed.
func (c *Cart) AdjustQuantity(id string, delta int) bool {
	i := c.index(id)
	if i < 0 || delta == 0 {
		return false
	}
	q := c.lines[i].Quantity + delta
	if q <= 0 {
		return c.Remove(id)
	}
	c.lines[i].Quantity = q
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in display order.
func (c *Cart) Lines() []CartLine {
	return append([]CartLine(nil), c.lines...)
}

// Line returns the line for id.
func (c *Cart) Line(id string) (CartLine, bool) {
	if i := c.index(id); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

func (c *Cart) Len() int      { return len(c.lines) }
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Total is recomputed on every call.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.TotalCents()
	}
	return total
}

// Count is the number of units across all lines, shown on the cart badge.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Snapshot encodes the cart for durable storage.
func (c *Cart) Snapshot() (string, error) {
	lines := c.lines
	if lines == nil {
		lines = []CartLine{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// ParseCart decodes a snapshot produced by Snapshot.
func ParseCart(snapshot string) (*Cart, error) {
	var lines []CartLine
	if err := json.Unmarshal([]byte(snapshot), &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return NewCart(lines...), nil
}
