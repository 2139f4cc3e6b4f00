package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// License is a pre-provisioned redemption code. Each license grants the
// right to create exactly one tenant; licenses are created out-of-band
// (see cmd/licensegen), never through the API.
type License struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LicenseKey string         `gorm:"uniqueIndex;not null" json:"licenseKey"`
	ExpiresAt  time.Time      `gorm:"not null" json:"expiresAt"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	CreatedAt  time.Time      `json:"createdAt"`
}
