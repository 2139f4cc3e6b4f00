package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/acmelabs/launchpad/internal/models"
	"github.com/acmelabs/launchpad/internal/password"
	"github.com/acmelabs/launchpad/internal/store"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials covers unknown email, password-less
	// (federated-only) identity, and wrong password alike, so responses
	// never reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	store  store.Store
	hasher *password.Hasher
}

func NewAuthService(s store.Store, hasher *password.Hasher) *AuthService {
	return &AuthService{store: s, hasher: hasher}
}

// Login resolves a local identity by email and verifies the password.
// On success it returns the owning user; issuing the session token is
// the handler's job.
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (*models.User, error) {
	identity, err := s.store.FindIdentityByProvider(ctx, models.ProviderLocal, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if identity.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(*identity.PasswordHash, plaintext) {
		return nil, ErrInvalidCredentials
	}

	// Transparent cost upgrade: re-hash under current parameters while
	// we still hold the plaintext. Login succeeds either way.
	if s.hasher.NeedsRehash(*identity.PasswordHash) {
		if rehashed, err := s.hasher.Hash(plaintext); err == nil {
			if err := s.store.UpdateIdentityPasswordHash(ctx, identity.ID, rehashed); err != nil {
				slog.Error("password rehash failed", "user_id", identity.UserID.String(), "error", err.Error())
			}
		}
	}

	user := identity.User
	return &user, nil
}

// GetUser loads a user with its tenant for the "who am I" endpoint.
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
