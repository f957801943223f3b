package ports

import (
	"context"

	"github.com/saborshop/storefront/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	DisplayName string
	Username    string
	Email       string
	Password    string
}

// LoginInput carries the login form, including the answer to a captcha
// challenge previously issued by NewCaptcha.
type LoginInput struct {
	Username      string
	Password      string
	CaptchaID     string
	CaptchaAnswer int
}

// CaptchaChallenge is the public half of a captcha: the answer stays server side.
type CaptchaChallenge struct {
	ID       string
	Question string
}

type AuthService interface {
	NewCaptcha(ctx context.Context) (*CaptchaChallenge, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (string, *domain.User, error)
}
