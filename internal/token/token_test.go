package token

import (
	"testing"
	"time"

	"github.com/acmelabs/launchpad/internal/config"
	"github.com/google/uuid"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret-at-least-32-bytes-long!!",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
		AppEnv:           "test",
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewService(testConfig())
	userID := uuid.New()
	tenantID := uuid.New()

	signed, err := svc.Issue(userID, "john@acme.com", tenantID, KindAccess)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "john@acme.com" {
		t.Errorf("Email = %s, want john@acme.com", claims.Email)
	}
	if claims.TenantID != tenantID {
		t.Errorf("TenantID = %s, want %s", claims.TenantID, tenantID)
	}
	if claims.Kind != KindAccess {
		t.Errorf("Kind = %s, want access", claims.Kind)
	}
}

func TestVerifyKindClaim(t *testing.T) {
	svc := NewService(testConfig())

	signed, err := svc.Issue(uuid.New(), "a@b.com", uuid.New(), KindRefresh)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Kind != KindRefresh {
		t.Errorf("Kind = %s, want refresh", claims.Kind)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.JWTAccessExpiry = -time.Minute
	svc := NewService(cfg)

	signed, err := svc.Issue(uuid.New(), "a@b.com", uuid.New(), KindAccess)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := svc.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	svc := NewService(testConfig())

	signed, err := svc.Issue(uuid.New(), "a@b.com", uuid.New(), KindAccess)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	tampered := signed[:len(signed)-2] + "xx"
	if _, err := svc.Verify(tampered); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := NewService(testConfig())

	other := testConfig()
	other.JWTSecret = "a-completely-different-signing-key!!"
	otherSvc := NewService(other)

	signed, err := otherSvc.Issue(uuid.New(), "a@b.com", uuid.New(), KindAccess)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := svc.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewService(testConfig())

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(tok); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}
