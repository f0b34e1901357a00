package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"Mala_Admin/internal/model"
	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/repository/database"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// RevocationStore durable set of logged-out tokens.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type AuthService struct {
	admins   *database.AdminRepository
	revoked  RevocationStore
	tokens   *pkg.TokenAuthority
	logger   *slog.Logger
	hashCost int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(admins *database.AdminRepository, revoked RevocationStore, tokens *pkg.TokenAuthority, logger *slog.Logger) *AuthService {
	return &AuthService{
		admins:   admins,
		revoked:  revoked,
		tokens:   tokens,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost lowers the bcrypt cost for new hashes, for tests.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// compareDummy spends the same bcrypt time as a real check.
func (s *AuthService) compareDummy(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.hashCost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

// Authenticate checks email and password against the stored bcrypt hash.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.Admin, error) {
	admin, err := s.admins.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			s.compareDummy(password)
			return nil, pkg.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.HashedPassword), []byte(password)) != nil {
		return nil, pkg.ErrInvalidCredentials
	}
	return admin, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.tokens.Issue(admin.Email)
	if err != nil {
		return nil, err
	}
	s.logger.Info("admin login", "admin", admin.Email)
	return &LoginResult{AccessToken: token, TokenType: "bearer", ExpiresAt: exp}, nil
}

// Revoke makes a token issued by this authority unusable until it expires.
// Revoking twice is not an error and an expired token needs no entry.
// Anything that fails verification is refused before the store is touched.
func (s *AuthService) Revoke(ctx context.Context, token string) error {
	claims, err := s.tokens.Verify(token)
	if errors.Is(err, pkg.ErrTokenExpired) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.revoked.Revoke(ctx, token, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *AuthService) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.revoked.IsRevoked(ctx, token)
}

// Authorize resolves a bearer token to its admin. The revocation check runs
// before signature and expiry so a revoked token always fails the same way.
func (s *AuthService) Authorize(ctx context.Context, token string) (*model.Admin, error) {
	revoked, err := s.revoked.IsRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, pkg.ErrTokenRevoked
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	admin, err := s.admins.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrTokenInvalid
		}
		return nil, err
	}
	return admin, nil
}

// CreateAdmin adds an operator account.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password string) (*model.Admin, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkg.NewValidationError("email", "a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, pkg.NewValidationError("password", "must be at least %d characters", minPasswordLength)
	}
	exists, err := s.admins.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkg.NewValidationError("email", "admin %s already exists", email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, err
	}
	admin := &model.Admin{Email: email, HashedPassword: string(hash)}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
