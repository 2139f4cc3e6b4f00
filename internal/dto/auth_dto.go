package dto

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate mirrors the login schema the SPA submits against: a
// well-formed email and a non-empty password.
func (r *LoginRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if !validEmail(r.Email) {
		fields["email"] = "Invalid email address"
	}
	if r.Password == "" {
		fields["password"] = "Password is required"
	}
	return fields
}

type TenantInfo struct {
	Name string `json:"name"`
}

type MeResponse struct {
	UserID   uuid.UUID  `json:"userId"`
	Email    string     `json:"email"`
	FullName string     `json:"fullName"`
	Tenant   TenantInfo `json:"tenant"`
}

type ErrorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
