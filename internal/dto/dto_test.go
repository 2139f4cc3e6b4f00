package dto

import "testing"

func TestLoginRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  LoginRequest
		want []string
	}{
		{"valid", LoginRequest{Email: "john@acme.com", Password: "x"}, nil},
		{"bad email", LoginRequest{Email: "not-an-email", Password: "x"}, []string{"email"}},
		{"display-name form rejected", LoginRequest{Email: "John <john@acme.com>", Password: "x"}, []string{"email"}},
		{"empty", LoginRequest{}, []string{"email", "password"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := tc.req.Validate()
			if len(fields) != len(tc.want) {
				t.Fatalf("fields = %v, want keys %v", fields, tc.want)
			}
			for _, key := range tc.want {
				if _, ok := fields[key]; !ok {
					t.Errorf("missing field error for %q: %v", key, fields)
				}
			}
		})
	}
}

func TestOnboardingRequestValidate(t *testing.T) {
	valid := OnboardingRequest{
		LicenseKey:      "ABC123",
		CompanyName:     "Acme Corp",
		CompanyURL:      "https://acme.com",
		FullName:        "John Doe",
		Email:           "john@acme.com",
		Password:        "Secure123!",
		ConfirmPassword: "Secure123!",
	}
	if fields := valid.Validate(); len(fields) != 0 {
		t.Fatalf("valid request produced field errors: %v", fields)
	}

	noURL := valid
	noURL.CompanyURL = ""
	if fields := noURL.Validate(); len(fields) != 0 {
		t.Fatalf("companyUrl should be optional: %v", fields)
	}

	cases := []struct {
		name   string
		mutate func(*OnboardingRequest)
		field  string
	}{
		{"missing license key", func(r *OnboardingRequest) { r.LicenseKey = "" }, "licenseKey"},
		{"missing company name", func(r *OnboardingRequest) { r.CompanyName = "" }, "companyName"},
		{"bad url", func(r *OnboardingRequest) { r.CompanyURL = "not a url" }, "companyUrl"},
		{"relative url", func(r *OnboardingRequest) { r.CompanyURL = "acme.com" }, "companyUrl"},
		{"missing full name", func(r *OnboardingRequest) { r.FullName = "" }, "fullName"},
		{"bad email", func(r *OnboardingRequest) { r.Email = "nope" }, "email"},
		{"short password", func(r *OnboardingRequest) { r.Password = "short"; r.ConfirmPassword = "short" }, "password"},
		{"mismatched confirmation", func(r *OnboardingRequest) { r.ConfirmPassword = "Different1!" }, "confirmPassword"},
		{"missing confirmation", func(r *OnboardingRequest) { r.ConfirmPassword = "" }, "confirmPassword"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			fields := req.Validate()
			if _, ok := fields[tc.field]; !ok {
				t.Errorf("expected error on %q, got %v", tc.field, fields)
			}
		})
	}
}
