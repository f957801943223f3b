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

// CatalogHandler serves the public recipe pages and the per-session catalog.
type CatalogHandler struct {
	catalog  *service.CatalogService
	sessions Storefronts
}

func NewCatalogHandler(catalog *service.CatalogService, sessions Storefronts) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, sessions: sessions}
}

// Gallery handles GET /v1/gallery.
//
// @Summary      Random recipes for the landing page
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  galleryResponse
// @Router       /v1/gallery [get]
func (h *CatalogHandler) Gallery(c echo.Context) error {
	items := h.catalog.Gallery(c.Request().Context())
	return c.JSON(http.StatusOK, galleryResponse{Items: view.Cards(items)})
}

// Categories handles GET /v1/categories.
//
// @Summary      List recipe categories
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  categoriesResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/categories [get]
func (h *CatalogHandler) Categories(c echo.Context) error {
	cats, err := h.catalog.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoriesResponse{Categories: cats})
}

// Detail handles GET /v1/meals/:id. A failed lookup still answers 200 with
// the error shown inside the view.
//
// @Summary      Recipe detail
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Recipe id"
// @Success      200  {object}  view.DetailView
// @Failure      404  {object}  errorResponse
// @Router       /v1/meals/{id} [get]
func (h *CatalogHandler) Detail(c echo.Context) error {
	d, err := h.catalog.Detail(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrItemNotFound) {
		return err
	}
	return c.JSON(http.StatusOK, view.Detail(d, err))
}

// Viewport handles PUT /v1/catalog/viewport.
//
// @Summary      Report the viewport width
// @Description  Re-evaluates the responsive layout used by later reveals.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      viewportRequest  true  "Viewport width in pixels"
// @Success      200   {object}  viewportResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/catalog/viewport [put]
func (h *CatalogHandler) Viewport(c echo.Context) error {
	var req viewportRequest
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
	layout := sf.Resize(req.Width)
	return c.JSON(http.StatusOK, viewportResponse{Layout: layout, Catalog: view.Catalog(sf.Catalog())})
}

// Load handles POST /v1/catalog/load.
//
// @Summary      Load a category
// @Description  Replaces the catalog and reveals the first batch. "all" merges the featured categories.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      loadRequest  true  "Category"
// @Success      200   {object}  view.RevealView
// @Failure      409   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/catalog/load [post]
func (h *CatalogHandler) Load(c echo.Context) error {
	var req loadRequest
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

	res, err := sf.LoadCategory(c.Request().Context(), req.Category)
	label := metrics.CategoryLabel(req.Category)
	switch {
	case errors.Is(err, domain.ErrStaleLoad):
		metrics.CatalogLoadsTotal.WithLabelValues(label, "stale").Inc()
		return err
	case err != nil:
		metrics.CatalogLoadsTotal.WithLabelValues(label, "error").Inc()
		return err
	}
	metrics.CatalogLoadsTotal.WithLabelValues(label, "ok").Inc()
	return c.JSON(http.StatusOK, view.Reveal(res))
}

// Reveal handles POST /v1/catalog/reveal. Refused triggers answer 200 with
// the refusal reason and no cards.
//
// @Summary      Reveal the next batch
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      revealRequest  true  "Trigger"
// @Success      200   {object}  view.RevealView
// @Failure      422   {object}  errorResponse
// @Router       /v1/catalog/reveal [post]
func (h *CatalogHandler) Reveal(c echo.Context) error {
	var req revealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	trigger, err := service.ParseTrigger(req.Trigger)
	if err != nil {
		return err
	}

	sf, err := openStorefront(c, h.sessions)
	if err != nil {
		return err
	}

	res := sf.Reveal(trigger)
	outcome := "revealed"
	switch {
	case res.Refused:
		outcome = res.RefusedReason
	case res.State == service.StateExhausted:
		outcome = "exhausted"
	}
	metrics.RevealTriggersTotal.WithLabelValues(string(trigger), outcome).Inc()
	return c.JSON(http.StatusOK, view.Reveal(res))
}

// Sort handles POST /v1/catalog/sort.
//
// @Summary      Sort the catalog
// @Description  Reorders the catalog and reveals it again from the first item.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sortRequest  true  "Order"
// @Success      200   {object}  view.RevealView
// @Failure      422   {object}  errorResponse
// @Router       /v1/catalog/sort [post]
func (h *CatalogHandler) Sort(c echo.Context) error {
	var req sortRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	order, err := domain.ParseSortOrder(req.Order)
	if err != nil {
		return err
	}

	sf, err := openStorefront(c, h.sessions)
	if err != nil {
		return err
	}
	res, err := sf.Sort(order)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view.Reveal(res))
}

// Get handles GET /v1/catalog.
//
// @Summary      Current catalog view
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  view.CatalogView
// @Router       /v1/catalog [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	sf, err := openStorefront(c, h.sessions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view.Catalog(sf.Catalog()))
}
