package services

import (
	"context"
	"errors"
	"testing"

	"github.com/acmelabs/launchpad/internal/models"
	"github.com/acmelabs/launchpad/internal/password"
	"github.com/acmelabs/launchpad/internal/store"
	"github.com/google/uuid"
)

func testHasher() *password.Hasher {
	return password.NewHasher(password.Params{
		MemoryKB:    16 * 1024,
		Iterations:  1,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	})
}

// seedUser creates a tenant, user, and local identity directly in the
// store, bypassing the onboarding flow.
func seedUser(t *testing.T, mem *store.Memory, hasher *password.Hasher, email, plaintext string) *models.User {
	t.Helper()
	ctx := context.Background()

	license := &models.License{ID: uuid.New(), LicenseKey: uuid.NewString()}
	if err := mem.CreateLicense(ctx, license); err != nil {
		t.Fatalf("seed license: %v", err)
	}

	tenant := &models.Tenant{ID: uuid.New(), LicenseID: license.ID, Name: "Seed Co", Slug: uuid.NewString()}
	if err := mem.CreateTenant(ctx, tenant); err != nil {
		t.Fatalf("seed tenant: %v", err)
	}

	user := &models.User{ID: uuid.New(), TenantID: tenant.ID, Email: email, FullName: "Seed User"}
	if err := mem.CreateUser(ctx, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	var hashPtr *string
	if plaintext != "" {
		hash, err := hasher.Hash(plaintext)
		if err != nil {
			t.Fatalf("seed hash: %v", err)
		}
		hashPtr = &hash
	}
	identity := &models.UserIdentity{
		ID:           uuid.New(),
		UserID:       user.ID,
		Provider:     models.ProviderLocal,
		ProviderID:   email,
		PasswordHash: hashPtr,
	}
	if err := mem.CreateIdentity(ctx, identity); err != nil {
		t.Fatalf("seed identity: %v", err)
	}
	return user
}

func TestLoginSuccess(t *testing.T) {
	mem := store.NewMemory()
	hasher := testHasher()
	seeded := seedUser(t, mem, hasher, "john@acme.com", "Secure123!")

	svc := NewAuthService(mem, hasher)
	user, err := svc.Login(context.Background(), "john@acme.com", "Secure123!")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != seeded.ID {
		t.Errorf("user ID = %s, want %s", user.ID, seeded.ID)
	}
	if user.TenantID != seeded.TenantID {
		t.Errorf("tenant ID = %s, want %s", user.TenantID, seeded.TenantID)
	}
}

// Unknown email, wrong password, and a password-less identity must be
// indistinguishable to the caller.
func TestLoginUniformFailure(t *testing.T) {
	mem := store.NewMemory()
	hasher := testHasher()
	seedUser(t, mem, hasher, "john@acme.com", "Secure123!")
	seedUser(t, mem, hasher, "sso-only@acme.com", "")

	svc := NewAuthService(mem, hasher)

	cases := []struct {
		name, email, pass string
	}{
		{"unknown email", "nobody@acme.com", "Secure123!"},
		{"wrong password", "john@acme.com", "WrongPass!"},
		{"no stored hash", "sso-only@acme.com", "Secure123!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.email, tc.pass)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoginRehashesWeakHash(t *testing.T) {
	mem := store.NewMemory()
	weak := password.NewHasher(password.Params{MemoryKB: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	seedUser(t, mem, weak, "john@acme.com", "Secure123!")

	strong := testHasher()
	svc := NewAuthService(mem, strong)

	if _, err := svc.Login(context.Background(), "john@acme.com", "Secure123!"); err != nil {
		t.Fatalf("Login error: %v", err)
	}

	identity, err := mem.FindIdentityByProvider(context.Background(), models.ProviderLocal, "john@acme.com")
	if err != nil {
		t.Fatalf("FindIdentityByProvider error: %v", err)
	}
	if identity.PasswordHash == nil {
		t.Fatal("password hash missing after rehash")
	}
	if strong.NeedsRehash(*identity.PasswordHash) {
		t.Error("hash still below current parameters after login")
	}
	if !strong.Verify(*identity.PasswordHash, "Secure123!") {
		t.Error("rehashed credential no longer verifies")
	}
}

func TestGetUser(t *testing.T) {
	mem := store.NewMemory()
	hasher := testHasher()
	seeded := seedUser(t, mem, hasher, "john@acme.com", "Secure123!")

	svc := NewAuthService(mem, hasher)

	user, err := svc.GetUser(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("GetUser error: %v", err)
	}
	if user.Tenant.Name != "Seed Co" {
		t.Errorf("tenant name = %q, want %q", user.Tenant.Name, "Seed Co")
	}

	if _, err := svc.GetUser(context.Background(), uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
