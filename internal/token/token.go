package token

import (
	"errors"
	"time"

	"github.com/acmelabs/launchpad/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Cookie names for the two token kinds.
const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the decoded payload of a session token.
type Claims struct {
	UserID   uuid.UUID
	Email    string
	TenantID uuid.UUID
	Kind     Kind
}

// Service signs and verifies HS256 session tokens and manages their
// transport as cookies.
type Service struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	secureCookies bool
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		secret:        []byte(cfg.JWTSecret),
		accessExpiry:  cfg.JWTAccessExpiry,
		refreshExpiry: cfg.JWTRefreshExpiry,
		secureCookies: cfg.IsProduction(),
	}
}

func (s *Service) Expiry(kind Kind) time.Duration {
	if kind == KindRefresh {
		return s.refreshExpiry
	}
	return s.accessExpiry
}

func (s *Service) Issue(userID uuid.UUID, email string, tenantID uuid.UUID, kind Kind) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       userID.String(),
		"email":     email,
		"tenant_id": tenantID.String(),
		"type":      string(kind),
		"iat":       now.Unix(),
		"exp":       now.Add(s.Expiry(kind)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string. Expired, tampered, or
// malformed tokens all fail with ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return FromJWT(parsed)
}

// FromJWT extracts Claims from an already-verified jwt.Token (e.g. the
// one the guard middleware stores in request locals).
func FromJWT(t *jwt.Token) (*Claims, error) {
	mapClaims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	tid, _ := mapClaims["tenant_id"].(string)
	tenantID, err := uuid.Parse(tid)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, _ := mapClaims["email"].(string)
	kind, _ := mapClaims["type"].(string)

	return &Claims{
		UserID:   userID,
		Email:    email,
		TenantID: tenantID,
		Kind:     Kind(kind),
	}, nil
}

// AttachCookie sets the token as an HttpOnly, SameSite=Lax cookie scoped
// to the whole path space, Secure in production, with Max-Age matching
// the token expiry.
func (s *Service) AttachCookie(c *fiber.Ctx, tokenString string, kind Kind) {
	expiry := s.Expiry(kind)
	c.Cookie(&fiber.Cookie{
		Name:     cookieName(kind),
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(expiry.Seconds()),
		Expires:  time.Now().Add(expiry),
		HTTPOnly: true,
		Secure:   s.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearCookies expires both session cookies with matching attributes so
// browsers drop them.
func (s *Service) ClearCookies(c *fiber.Ctx) {
	for _, kind := range []Kind{KindAccess, KindRefresh} {
		c.Cookie(&fiber.Cookie{
			Name:     cookieName(kind),
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   s.secureCookies,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}

func cookieName(kind Kind) string {
	if kind == KindRefresh {
		return RefreshCookie
	}
	return AccessCookie
}
