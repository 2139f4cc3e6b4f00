package store

import (
	"context"
	"errors"

	"github.com/acmelabs/launchpad/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore is the Postgres-backed Store. Requires a gorm.DB opened with
// TranslateError so unique violations map to ErrDuplicate.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindLicenseByKey(ctx context.Context, key string) (*models.License, error) {
	var license models.License
	if err := s.db.WithContext(ctx).Where("license_key = ?", key).First(&license).Error; err != nil {
		return nil, translate(err)
	}
	return &license, nil
}

func (s *GormStore) CreateLicense(ctx context.Context, license *models.License) error {
	return translate(s.db.WithContext(ctx).Create(license).Error)
}

func (s *GormStore) FindTenantByLicenseID(ctx context.Context, licenseID uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.WithContext(ctx).Where("license_id = ?", licenseID).First(&tenant).Error; err != nil {
		return nil, translate(err)
	}
	return &tenant, nil
}

func (s *GormStore) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	return translate(s.db.WithContext(ctx).Create(tenant).Error)
}

func (s *GormStore) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Tenant").First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *GormStore) FindIdentityByProvider(ctx context.Context, provider, providerID string) (*models.UserIdentity, error) {
	var identity models.UserIdentity
	err := s.db.WithContext(ctx).Preload("User").
		Where("provider = ? AND provider_id = ?", provider, providerID).
		First(&identity).Error
	if err != nil {
		return nil, translate(err)
	}
	return &identity, nil
}

func (s *GormStore) CreateIdentity(ctx context.Context, identity *models.UserIdentity) error {
	return translate(s.db.WithContext(ctx).Create(identity).Error)
}

func (s *GormStore) UpdateIdentityPasswordHash(ctx context.Context, identityID uuid.UUID, hash string) error {
	return translate(s.db.WithContext(ctx).
		Model(&models.UserIdentity{}).
		Where("id = ?", identityID).
		Update("password_hash", hash).Error)
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
