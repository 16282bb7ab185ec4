package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tpremraj1312/ledger-admin/internal/domain/apperr"
	"github.com/tpremraj1312/ledger-admin/internal/domain/entity"
	repo "github.com/tpremraj1312/ledger-admin/internal/domain/repository"
	"github.com/tpremraj1312/ledger-admin/pkg/helpers"
)

// Principal is the verified identity carried by a bearer token.
type Principal struct {
	AdminID string
	Email   string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	Admins  repo.AdminRepository
	JWT     *helpers.JWTManager
	Logger  logrus.FieldLogger
	Timeout time.Duration
}

func NewAuthService(admins repo.AdminRepository, jwt *helpers.JWTManager, logger logrus.FieldLogger, timeout time.Duration) *AuthService {
	return &AuthService{Admins: admins, JWT: jwt, Logger: logger, Timeout: timeout}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an admin account. A duplicate email is a Conflict.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return apperr.New(apperr.KindInternal, "Server error", err)
	}
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	a := &entity.Admin{Email: normalizeEmail(email), Password: hash}
	if err := s.Admins.Create(c, a); err != nil {
		return storeErr(err)
	}
	s.Logger.WithField("admin_id", a.ID).Info("admin registered")
	return nil
}

// Login checks the credentials and issues a signed token. An unknown email
// fails with AuthNotFound, a wrong password with AuthInvalidPassword.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	c, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	a, err := s.Admins.GetByEmail(c, normalizeEmail(email))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return LoginResult{}, apperr.New(apperr.KindAuthNotFound, "Admin not found", nil)
		}
		return LoginResult{}, storeErr(err)
	}
	if !helpers.CompareHashAndPassword(a.Password, password) {
		return LoginResult{}, apperr.New(apperr.KindAuthInvalidPassword, "Invalid password", nil)
	}
	tok, exp, err := s.JWT.Generate(a.ID, a.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("admin_id", a.ID).Error("generate token failed")
		return LoginResult{}, apperr.New(apperr.KindInternal, "Server error", err)
	}
	return LoginResult{Token: tok, ExpiresAt: exp}, nil
}

// Verify validates a bearer token without touching the store.
func (s *AuthService) Verify(token string) (Principal, error) {
	claims, err := s.JWT.Parse(token)
	if err != nil {
		if errors.Is(err, helpers.ErrTokenExpired) {
			return Principal{}, apperr.New(apperr.KindAuthExpired, "Token expired", err)
		}
		return Principal{}, apperr.New(apperr.KindAuthInvalidToken, "Invalid token", err)
	}
	return Principal{AdminID: claims.AdminID, Email: claims.Email}, nil
}
