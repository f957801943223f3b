package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/ports"
)

const captchaTTL = 5 * time.Minute

// AuthService implements registration and captcha-guarded login.
type AuthService struct {
	repo      ports.AccountRepository
	captchas  ports.CaptchaStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AccountRepository, captchas ports.CaptchaStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, captchas: captchas, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// NewCaptcha issues a sum challenge with both terms in 1..10.
func (s *AuthService) NewCaptcha(ctx context.Context) (*ports.CaptchaChallenge, error) {
	a, b := rand.IntN(10)+1, rand.IntN(10)+1
	id := uuid.NewString()
	if err := s.captchas.Put(ctx, id, a+b, captchaTTL); err != nil {
		return nil, fmt.Errorf("store captcha: %w", err)
	}
	return &ports.CaptchaChallenge{
		ID:       id,
		Question: fmt.Sprintf("How much is %d + %d?", a, b),
	}, nil
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" || strings.TrimSpace(in.Email) == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login checks the captcha first, then the credentials. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (string, *domain.User, error) {
	expected, ok, err := s.captchas.Take(ctx, in.CaptchaID)
	if err != nil {
		return "", nil, fmt.Errorf("check captcha: %w", err)
	}
	if !ok || expected != in.CaptchaAnswer {
		return "", nil, domain.ErrCaptchaMismatch
	}

	if in.Username == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"name":     user.DisplayName,
		"email":    user.Email,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
