package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/saborshop/storefront/internal/api/metrics"
	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/ports"
	"github.com/saborshop/storefront/internal/core/service"
)

type CheckoutHandler struct {
	sessions Storefronts
	checkout *service.CheckoutService
}

func NewCheckoutHandler(sessions Storefronts, checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions, checkout: checkout}
}

// Checkout handles POST /v1/checkout.
//
// @Summary      Place the cart as an order
// @Description  The cart is cleared once the order is accepted. The confirmation email is sent in the background.
// @Tags         checkout
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  receiptResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/checkout [post]
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	sf, err := openStorefront(c, h.sessions)
	if err != nil {
		return err
	}

	r, err := h.checkout.Checkout(c.Request().Context(), sf)
	if err != nil {
		return err
	}
	metrics.CheckoutsTotal.WithLabelValues(string(r.EmailStatus)).Inc()

	return c.JSON(http.StatusCreated, receiptResponse{
		OrderID:     r.OrderID,
		Total:       domain.FormatPrice(r.TotalCents),
		TotalCents:  r.TotalCents,
		Lines:       r.Lines,
		EmailQueued: r.EmailStatus == domain.EmailQueued,
		EmailStatus: string(r.EmailStatus),
		Warning:     r.Warning,
	})
}

// ListOrders handles GET /v1/admin/orders.
//
// @Summary      List recorded orders
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Param        username  query     string  false  "Only this customer's orders"
// @Success      200       {object}  ordersPage
// @Failure      403       {object}  errorResponse
// @Router       /v1/admin/orders [get]
func (h *CheckoutHandler) ListOrders(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	p, err := h.checkout.ListOrders(c.Request().Context(), ports.ListOrdersFilter{
		Username: c.QueryParam("username"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	items := make([]orderSummary, 0, len(p.Items))
	for _, o := range p.Items {
		units := 0
		for _, l := range o.Lines {
			units += l.Units
		}
		items = append(items, orderSummary{
			OrderID:     o.OrderID,
			Username:    o.Username,
			Email:       o.Email,
			Units:       units,
			Total:       domain.FormatPrice(o.TotalCents),
			EmailStatus: string(o.EmailStatus),
			PlacedAt:    o.PlacedAt,
		})
	}

	return c.JSON(http.StatusOK, ordersPage{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	})
}
