package store

import (
	"context"
	"errors"

	"github.com/acmelabs/launchpad/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Store exposes the fixed set of query shapes the services actually use.
// Transaction hands the callback a Store bound to a transaction; if the
// callback returns an error every write inside it is rolled back.
type Store interface {
	FindLicenseByKey(ctx context.Context, key string) (*models.License, error)
	CreateLicense(ctx context.Context, license *models.License) error

	FindTenantByLicenseID(ctx context.Context, licenseID uuid.UUID) (*models.Tenant, error)
	CreateTenant(ctx context.Context, tenant *models.Tenant) error

	// FindUserByID preloads the owning tenant.
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	// FindIdentityByProvider preloads the owning user.
	FindIdentityByProvider(ctx context.Context, provider, providerID string) (*models.UserIdentity, error)
	CreateIdentity(ctx context.Context, identity *models.UserIdentity) error
	UpdateIdentityPasswordHash(ctx context.Context, identityID uuid.UUID, hash string) error

	Transaction(ctx context.Context, fn func(tx Store) error) error
}
