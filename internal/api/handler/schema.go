package handler

import (
	"time"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/view"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type captchaResponse struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username      string `json:"username"       validate:"required"`
	Password      string `json:"password"       validate:"required"`
	CaptchaID     string `json:"captcha_id"     validate:"required"`
	CaptchaAnswer int    `json:"captcha_answer"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// loginFailure carries a fresh challenge so the form can be retried without
// retyping the other fields.
type loginFailure struct {
	Error   string           `json:"error"`
	Captcha *captchaResponse `json:"captcha,omitempty"`
}

// --- Catalog ---

type viewportRequest struct {
	Width int `json:"width" validate:"gte=0"`
}

type viewportResponse struct {
	Layout  domain.Layout    `json:"layout"`
	Catalog view.CatalogView `json:"catalog"`
}

type loadRequest struct {
	Category string `json:"category" validate:"required"`
}

type revealRequest struct {
	Trigger string `json:"trigger" validate:"required,oneof=scroll button"`
}

type sortRequest struct {
	Order string `json:"order" validate:"required,oneof=price-asc price-desc name-az"`
}

type galleryResponse struct {
	Items []view.Card `json:"items"`
}

type categoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

// --- Cart ---

type addItemRequest struct {
	ID string `json:"id" validate:"required"`
}

type adjustItemRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// cartResponse is returned by every cart call. Warning is set when the
// change was applied but could not be saved.
type cartResponse struct {
	Cart    view.CartView `json:"cart"`
	Warning string        `json:"warning,omitempty"`
}

// --- Checkout ---

type receiptResponse struct {
	OrderID     string             `json:"order_id"`
	Total       string             `json:"total"`
	TotalCents  int64              `json:"total_cents"`
	Lines       []domain.OrderLine `json:"lines"`
	EmailQueued bool               `json:"email_queued"`
	EmailStatus string             `json:"email_status"`
	Warning     string             `json:"warning,omitempty"`
}

type orderSummary struct {
	OrderID     string    `json:"order_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Units       int       `json:"units"`
	Total       string    `json:"total"`
	EmailStatus string    `json:"email_status"`
	PlacedAt    time.Time `json:"placed_at"`
}

type ordersPage struct {
	Items      []orderSummary `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}
