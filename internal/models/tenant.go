package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant owns exactly one license (license_id is unique) and is the unit
// of multi-tenant isolation. Users hang off tenants via tenant_id.
type Tenant struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LicenseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"licenseId"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	URL       *string   `json:"url"`
	CreatedAt time.Time `json:"createdAt"`

	License License `gorm:"foreignKey:LicenseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Users   []User  `gorm:"foreignKey:TenantID" json:"-"`
}
