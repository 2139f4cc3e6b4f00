package dto

import (
	"net/mail"
	"net/url"

	"github.com/google/uuid"
)

type OnboardingRequest struct {
	LicenseKey      string `json:"licenseKey"`
	CompanyName     string `json:"companyName"`
	CompanyURL      string `json:"companyUrl"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate applies the onboarding schema rules. Returns a map of
// field -> message; empty means the request is well-formed.
func (r *OnboardingRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if r.LicenseKey == "" {
		fields["licenseKey"] = "License key is required"
	}
	if r.CompanyName == "" {
		fields["companyName"] = "Company name is required"
	}
	if r.CompanyURL != "" && !validURL(r.CompanyURL) {
		fields["companyUrl"] = "Invalid URL"
	}
	if r.FullName == "" {
		fields["fullName"] = "Full name is required"
	}
	if !validEmail(r.Email) {
		fields["email"] = "Invalid email address"
	}
	if len(r.Password) < 8 {
		fields["password"] = "Password must be at least 8 characters"
	}
	if r.ConfirmPassword == "" {
		fields["confirmPassword"] = "Confirm password is required"
	} else if r.Password != r.ConfirmPassword {
		fields["confirmPassword"] = "Passwords don't match"
	}
	return fields
}

type OnboardingResponse struct {
	Success  bool      `json:"success"`
	UserID   uuid.UUID `json:"userId"`
	TenantID uuid.UUID `json:"tenantId"`
}

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	// Reject the "Name <addr>" form; only a bare address is a valid login id.
	return err == nil && addr.Address == s
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
