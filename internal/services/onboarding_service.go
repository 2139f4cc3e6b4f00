package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/acmelabs/launchpad/internal/models"
	"github.com/acmelabs/launchpad/internal/password"
	"github.com/acmelabs/launchpad/internal/store"
	"github.com/google/uuid"
)

var (
	ErrInvalidLicense = errors.New("invalid license key")
	ErrLicenseExpired = errors.New("license has expired")
	ErrLicenseUsed    = errors.New("license key already used")
	ErrEmailTaken     = errors.New("email already registered")
	ErrSlugTaken      = errors.New("company name already in use")
)

type OnboardingInput struct {
	LicenseKey  string
	CompanyName string
	CompanyURL  string
	FullName    string
	Email       string
	Password    string
}

type OnboardingResult struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Email    string
}

type OnboardingService struct {
	store  store.Store
	hasher *password.Hasher
}

func NewOnboardingService(s store.Store, hasher *password.Hasher) *OnboardingService {
	return &OnboardingService{store: s, hasher: hasher}
}

// Onboard redeems a license into a new tenant, user, and local identity
// in one transaction. Any failure rolls everything back; no partial
// tenant or user is ever visible. The existence checks give clean errors
// for the common cases, but the unique constraints are what actually
// guard against two concurrent redemptions of the same license or email:
// the losing transaction surfaces store.ErrDuplicate and is classified
// by which insert tripped it.
func (s *OnboardingService) Onboard(ctx context.Context, in OnboardingInput) (*OnboardingResult, error) {
	var result *OnboardingResult

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		license, err := tx.FindLicenseByKey(ctx, in.LicenseKey)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidLicense
			}
			return err
		}

		if license.ExpiresAt.Before(time.Now()) {
			return ErrLicenseExpired
		}

		if _, err := tx.FindTenantByLicenseID(ctx, license.ID); err == nil {
			return ErrLicenseUsed
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if _, err := tx.FindIdentityByProvider(ctx, models.ProviderLocal, in.Email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		tenant := &models.Tenant{
			ID:        uuid.New(),
			LicenseID: license.ID,
			Name:      in.CompanyName,
			Slug:      slugify(in.CompanyName),
			URL:       optional(in.CompanyURL),
		}
		if err := tx.CreateTenant(ctx, tenant); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				// license_id or slug collided; the license case was
				// checked above, so a duplicate here is the slug.
				return ErrSlugTaken
			}
			return fmt.Errorf("failed to create tenant: %w", err)
		}

		user := &models.User{
			ID:       uuid.New(),
			TenantID: tenant.ID,
			Email:    in.Email,
			FullName: in.FullName,
		}
		if err := tx.CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return ErrEmailTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		identity := &models.UserIdentity{
			ID:           uuid.New(),
			UserID:       user.ID,
			Provider:     models.ProviderLocal,
			ProviderID:   in.Email,
			PasswordHash: &hash,
		}
		if err := tx.CreateIdentity(ctx, identity); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return ErrEmailTaken
			}
			return fmt.Errorf("failed to create identity: %w", err)
		}

		result = &OnboardingResult{
			UserID:   user.ID,
			TenantID: tenant.ID,
			Email:    user.Email,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// slugify lowercases the name, collapses every run of non-alphanumeric
// characters to a single hyphen, and trims leading/trailing hyphens.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
