package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/service"
)

// Storefronts hands out the per-user storefront state.
type Storefronts interface {
	Open(ctx context.Context, session domain.Session) (*service.Storefront, error)
	Close(ctx context.Context, username string) error
}

// ctxSession rebuilds the session from the claims injected by the Auth
// middleware. A missing username means the middleware did not run.
func ctxSession(c echo.Context) (domain.Session, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	name, _ := c.Get("name").(string)
	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(string)
	return domain.Session{DisplayName: name, Username: username, Email: email, Role: role}, nil
}

// openStorefront resolves the caller's storefront.
func openStorefront(c echo.Context, sessions Storefronts) (*service.Storefront, error) {
	session, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	return sessions.Open(c.Request().Context(), session)
}
