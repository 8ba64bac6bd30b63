package app

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/winston1234564757/Smartfix-sub000/internal/clock"
	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

type AdminRepository interface {
	GetAdminByLogin(ctx context.Context, login string) (domain.Admin, error)
	UpsertAdmin(ctx context.Context, admin domain.Admin) error
}

type AuthService struct {
	repo      AdminRepository
	clock     clock.Clock
	jwtSecret []byte
	jwtTTL    time.Duration
}

const defaultTokenTTL = 12 * time.Hour

func NewAuthService(repo AdminRepository, clk clock.Clock, jwtSecret []byte) *AuthService {
	return &AuthService{
		repo:      repo,
		clock:     clk,
		jwtSecret: jwtSecret,
		jwtTTL:    defaultTokenTTL,
	}
}

// Authenticate checks an admin's credentials and issues a signed token.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (string, error) {
	if login == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}
	admin, err := s.repo.GetAdminByLogin(ctx, login)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   admin.Login,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Bootstrap ensures the configured admin account exists, hashing the given
// password. Called once at startup; a blank login is a no-op.
func (s *AuthService) Bootstrap(ctx context.Context, login, password string) error {
	if login == "" {
		return nil
	}
	if len(password) < 8 {
		return domain.NewValidationError("admin_password", "must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpsertAdmin(ctx, domain.Admin{
		ID:           uuid.NewString(),
		Login:        login,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	})
}
