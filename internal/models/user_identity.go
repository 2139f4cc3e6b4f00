package models

import (
	"time"

	"github.com/google/uuid"
)

// ProviderLocal is the provider tag for password-backed identities.
// Federated providers would get their own tag and a nil PasswordHash.
const ProviderLocal = "local"

// UserIdentity is the 1:1 credential record for a user. (provider,
// provider_id) is globally unique so the same email cannot register a
// local identity twice, even across tenants.
type UserIdentity struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	Provider     string    `gorm:"size:50;not null;uniqueIndex:idx_identities_provider_pid" json:"provider"`
	ProviderID   string    `gorm:"size:255;not null;uniqueIndex:idx_identities_provider_pid" json:"providerId"`
	PasswordHash *string   `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
