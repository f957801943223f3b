package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    Storefronts
}

func NewAuthHandler(authService ports.AuthService, sessions Storefronts) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// Captcha issues a new login challenge.
//
// @Summary      New login challenge
// @Tags         auth
// @Produce      json
// @Success      200  {object}  captchaResponse
// @Failure      500  {object}  errorResponse
// @Router       /auth/captcha [get]
func (h *AuthHandler) Captcha(c echo.Context) error {
	ch, err := h.authService.NewCaptcha(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, captchaResponse{ID: ch.ID, Question: ch.Question})
}

// Register creates a new customer account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		DisplayName: req.Name,
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login checks the captcha and the credentials and returns a JWT. A failed
// attempt answers with a fresh challenge.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials and captcha answer"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  loginFailure
// @Failure      422   {object}  loginFailure
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	token, user, err := h.authService.Login(ctx, ports.LoginInput{
		Username:      req.Username,
		Password:      req.Password,
		CaptchaID:     req.CaptchaID,
		CaptchaAnswer: req.CaptchaAnswer,
	})
	if err != nil {
		var status int
		switch {
		case errors.Is(err, domain.ErrCaptchaMismatch):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, domain.ErrInvalidCredentials):
			status = http.StatusUnauthorized
		default:
			return err
		}

		resp := loginFailure{Error: err.Error()}
		if ch, cerr := h.authService.NewCaptcha(ctx); cerr == nil {
			resp.Captcha = &captchaResponse{ID: ch.ID, Question: ch.Question}
		}
		return c.JSON(status, resp)
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout clears the caller's cart and ends the storefront session.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.sessions.Close(c.Request().Context(), session.Username); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
