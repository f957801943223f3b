package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saborshop/storefront/internal/api/metrics"
	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/service"
	"github.com/saborshop/storefront/internal/view"
)

const persistWarning = "your cart changed but could not be saved; it may be lost if you leave"

// CartHandler exposes the caller's cart.
type CartHandler struct {
	sessions Storefronts
}

func NewCartHandler(sessions Storefronts) *CartHandler {
	return &CartHandler{sessions: sessions}
}

// Get handles GET /v1/cart.
//
// @Summary      Cart view
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	sf, err := openStorefront(c, h.sessions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse{Cart: view.Cart(sf.Cart())})
}

// Add handles POST /v1/cart/items.
//
// @Summary      Add one unit of a catalog item
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addItemRequest  true  "Item id"
// @Success      200   {object}  cartResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sf, err := openStorefront(c, h.sessions)
	if err != nil {
		return err
	}
	sum, err := sf.AddToCart(c.Request().Context(), req.ID)
	return h.respond(c, "add", sum, err)
}

// Adjust handles PATCH /v1/cart/items/:id.
//
// @Summary      Change a line's quantity
// @Description  A quantity that drops to zero or below removes the line.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Item id"
// @Param        body  body      adjustItemRequest  true  "Quantity delta"
// @Success      200   {object}  cartResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cart/items/{id} [patch]
func (h *CartHandler) Adjust(c echo.Context) error {
	var req adjustItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sf, err := openStorefront(c, h.sessions)
	if err != nil {
		return err
	}
	sum, err := sf.AdjustQuantity(c.Request().Context(), c.Param("id"), req.Delta)
	return h.respond(c, "adjust", sum, err)
}

// Remove handles DELETE /v1/cart/items/:id.
//
// @Summary      Remove a line
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  cartResponse
// @Router       /v1/cart/items/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	sf, err := openStorefront(c, h.sessions)
	if err != nil {
		return err
	}
	sum, err := sf.RemoveFromCart(c.Request().Context(), c.Param("id"))
	return h.respond(c, "remove", sum, err)
}

// Clear handles DELETE /v1/cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	sf, err := openStorefront(c, h.sessions)
	if err != nil {
		return err
	}
	sum, err := sf.ClearCart(c.Request().Context())
	return h.respond(c, "clear", sum, err)
}

// respond renders the cart after a mutation. A save failure still returns
// the changed cart, with a warning.
func (h *CartHandler) respond(c echo.Context, op string, sum service.CartSummary, err error) error {
	resp := cartResponse{Cart: view.Cart(sum)}
	switch {
	case errors.Is(err, domain.ErrPersistence):
		metrics.CartPersistFailuresTotal.Inc()
		resp.Warning = persistWarning
	case err != nil:
		return err
	}
	metrics.CartMutationsTotal.WithLabelValues(op).Inc()
	return c.JSON(http.StatusOK, resp)
}
