package models

import (
	"time"

	"github.com/google/uuid"
)

// User belongs to exactly one tenant. Email is unique per tenant, not
// globally; the global uniqueness that matters for login lives on the
// (provider, provider_id) pair of UserIdentity.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_users_tenant_email" json:"tenantId"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_users_tenant_email" json:"email"`
	FullName  string    `gorm:"not null" json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`

	Tenant   Tenant        `gorm:"foreignKey:TenantID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Identity *UserIdentity `gorm:"foreignKey:UserID" json:"-"`
}
