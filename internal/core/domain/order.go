package domain

import "time"

// EmailStatus tracks the courtesy confirmation email of an order.
type EmailStatus string

const (
	EmailQueued  EmailStatus = "queued"
	EmailSkipped EmailStatus = "skipped"
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
)

// OrderLine is a cart line frozen at checkout.
type OrderLine struct {
	ItemID         string `json:"item_id" bson:"item_id"`
	Name           string `json:"name" bson:"name"`
	ImageURL       string `json:"image_url" bson:"image_url"`
	Units          int    `json:"units" bson:"units"`
	UnitPriceCents int64  `json:"unit_price_cents" bson:"unit_price_cents"`
}

// Order is an accepted checkout. Orders are always accepted locally; the
// email is only a notification.
type Order struct {
	OrderID     string      `json:"order_id" bson:"order_id"`
	Username    string      `json:"username" bson:"username"`
	Email       string      `json:"email" bson:"email"`
	Lines       []OrderLine `json:"lines" bson:"lines"`
	TotalCents  int64       `json:"total_cents" bson:"total_cents"`
	EmailStatus EmailStatus `json:"email_status" bson:"email_status"`
	PlacedAt    time.Time   `json:"placed_at" bson:"placed_at"`
}

// NewOrder freezes the cart lines into an order.
func NewOrder(orderID string, session Session, cart *Cart, now time.Time) *Order {
	lines := cart.Lines()
	o := &Order{
		OrderID:    orderID,
		Username:   session.Username,
		Email:      session.Email,
		Lines:      make([]OrderLine, 0, len(lines)),
		TotalCents: cart.Total(),
		PlacedAt:   now,
	}
	for _, l := range lines {
		o.Lines = append(o.Lines, OrderLine{
			ItemID:         l.ID,
			Name:           l.Name,
			ImageURL:       l.ImageURL,
			Units:          l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
		})
	}
	return o
}
