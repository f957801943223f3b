package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/saborshop/storefront/internal/api/handler"
	"github.com/saborshop/storefront/internal/api/middleware"
	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/ports"
	"github.com/saborshop/storefront/internal/core/service"
	infrahttp "github.com/saborshop/storefront/internal/infrastructure/http"
	"github.com/saborshop/storefront/internal/infrastructure/http/handlers"
)

// Deps are the services the HTTP API is built on.
type Deps struct {
	Auth      ports.AuthService
	Catalog   *service.CatalogService
	Sessions  handler.Storefronts
	Checkout  *service.CheckoutService
	JWTSecret string
	Checks    map[string]handlers.Check
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Ops: health, metrics, docs (no auth required) ---
	infrahttp.RegisterOps(e, d.Checks)

	authMiddleware := middleware.Auth(d.JWTSecret)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions)
	e.GET("/auth/captcha", authHandler.Captcha)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Public catalog ---
	catalogHandler := handler.NewCatalogHandler(d.Catalog, d.Sessions)
	v1 := e.Group("/v1")
	v1.GET("/gallery", catalogHandler.Gallery)
	v1.GET("/categories", catalogHandler.Categories)
	v1.GET("/meals/:id", catalogHandler.Detail)

	// --- Session storefront ---
	catalog := v1.Group("/catalog", authMiddleware)
	catalog.GET("", catalogHandler.Get)
	catalog.PUT("/viewport", catalogHandler.Viewport)
	catalog.POST("/load", catalogHandler.Load)
	catalog.POST("/reveal", catalogHandler.Reveal)
	catalog.POST("/sort", catalogHandler.Sort)

	cartHandler := handler.NewCartHandler(d.Sessions)
	cart := v1.Group("/cart", authMiddleware)
	cart.GET("", cartHandler.Get)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/items", cartHandler.Add)
	cart.PATCH("/items/:id", cartHandler.Adjust)
	cart.DELETE("/items/:id", cartHandler.Remove)

	checkoutHandler := handler.NewCheckoutHandler(d.Sessions, d.Checkout)
	v1.POST("/checkout", checkoutHandler.Checkout, authMiddleware)

	// --- Admin ---
	admin := v1.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/orders", checkoutHandler.ListOrders)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
