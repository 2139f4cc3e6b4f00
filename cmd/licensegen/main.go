// licensegen provisions license keys out-of-band. Licenses are never
// created through the API; an operator runs this against the production
// database and hands the key to the customer.
//
//	licensegen -expires 8760h
//	licensegen -key ABC123 -expires 720h -metadata '{"plan":"trial"}'
package main

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/acmelabs/launchpad/internal/config"
	"github.com/acmelabs/launchpad/internal/database"
	"github.com/acmelabs/launchpad/internal/logging"
	"github.com/acmelabs/launchpad/internal/models"
	"github.com/acmelabs/launchpad/internal/store"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func main() {
	logging.Setup()

	key := flag.String("key", "", "license key (generated when empty)")
	expires := flag.Duration("expires", 365*24*time.Hour, "validity period from now")
	metadata := flag.String("metadata", "{}", "opaque license metadata (JSON object)")
	flag.Parse()

	if !json.Valid([]byte(*metadata)) {
		slog.Error("metadata must be valid JSON")
		os.Exit(1)
	}

	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	licenseKey := *key
	if licenseKey == "" {
		licenseKey = generateKey()
	}

	license := &models.License{
		ID:         uuid.New(),
		LicenseKey: licenseKey,
		ExpiresAt:  time.Now().Add(*expires),
		Metadata:   datatypes.JSON(*metadata),
	}

	db := store.NewGormStore(database.DB)
	if err := db.CreateLicense(context.Background(), license); err != nil {
		slog.Error("failed to create license", "error", err)
		os.Exit(1)
	}

	slog.Info("license created",
		"key", license.LicenseKey,
		"expires_at", license.ExpiresAt.Format(time.RFC3339))
}

func generateKey() string {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		slog.Error("failed to generate license key", "error", err)
		os.Exit(1)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw)
}
