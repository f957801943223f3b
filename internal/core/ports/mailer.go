package ports

import "context"

// OrderEmailLine is one row of the confirmation email template.
type OrderEmailLine struct {
	ImageURL string `json:"image_url"`
	Name     string `json:"name"`
	Units    int    `json:"units"`
	Price    string `json:"price"`
}

// OrderEmailCost is the cost block of the confirmation email template.
type OrderEmailCost struct {
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// OrderEmail holds the template parameters of an order confirmation.
type OrderEmail struct {
	OrderID string           `json:"order_id"`
	Email   string           `json:"email"`
	Orders  []OrderEmailLine `json:"orders"`
	Cost    OrderEmailCost   `json:"cost"`
}

// Mailer sends templated emails through an external dispatch service.
type Mailer interface {
	// Enabled reports whether credentials are configured; when false the
	// storefront skips sending altogether.
	Enabled() bool
	Send(ctx context.Context, serviceID, templateID string, params any) error
}

// MailQueue accepts order confirmations for asynchronous delivery.
type MailQueue interface {
	Enqueue(email OrderEmail)
}
