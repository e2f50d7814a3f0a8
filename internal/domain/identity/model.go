package identity

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Role distinguishes the two account types the portal serves.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// User maps to the users table. Email is the identity; there is exactly one
// role per user, doctors always carry a license number and patients never do.
type User struct {
	Email            string    `db:"email" json:"email"`
	FullName         *string   `db:"full_name" json:"full_name,omitempty"`
	Role             Role      `db:"role" json:"role"`
	LicenseNo        *string   `db:"license_no" json:"license_no,omitempty"`
	Allergies        []string  `db:"allergies" json:"allergies"`
	Medications      []string  `db:"medications" json:"medications"`
	DataUsageConsent bool      `db:"data_usage_consent" json:"data_usage_consent"`
	HashedPassword   string    `db:"hashed_password" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// ValidationError marks a request that is well-formed JSON but violates a
// domain rule. Handlers map it to 422.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email            string   `json:"email"`
	FullName         *string  `json:"full_name"`
	Role             Role     `json:"role"`
	Password         string   `json:"password"`
	LicenseNo        *string  `json:"license_no"`
	Allergies        []string `json:"allergies"`
	Medications      []string `json:"medications"`
	DataUsageConsent bool     `json:"data_usage_consent"`
}

// Validate normalizes the request and enforces the account invariants:
// doctors must carry a license number, a license submitted for a patient is
// silently dropped, and data-usage consent is mandatory.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return &ValidationError{Reason: "a valid email address is required"}
	}
	if r.Password == "" {
		return &ValidationError{Reason: "password is required"}
	}
	if r.Role == "" {
		r.Role = RolePatient
	}
	if !r.Role.Valid() {
		return &ValidationError{Reason: fmt.Sprintf("role must be %q or %q", RolePatient, RoleDoctor)}
	}
	if r.Role == RoleDoctor && (r.LicenseNo == nil || strings.TrimSpace(*r.LicenseNo) == "") {
		return &ValidationError{Reason: "license number is required for doctors"}
	}
	if r.Role == RolePatient {
		r.LicenseNo = nil
	}
	if !r.DataUsageConsent {
		return &ValidationError{Reason: "data usage consent is required to create an account"}
	}
	return nil
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Profile is the read view of a user's own record.
type Profile struct {
	FullName         *string  `json:"full_name"`
	Email            string   `json:"email"`
	Role             Role     `json:"role"`
	Allergies        []string `json:"allergies"`
	Medications      []string `json:"medications"`
	LicenseNo        *string  `json:"license_no"`
	DataUsageConsent bool     `json:"data_usage_consent"`
}

// ProfileUpdate is a partial-update patch: only non-nil fields are applied.
type ProfileUpdate struct {
	Allergies   *[]string `json:"allergies"`
	Medications *[]string `json:"medications"`
}

// Fields returns the patch as a column→value map containing only the fields
// actually present in the request. An empty map means a no-op patch.
func (p *ProfileUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Allergies != nil {
		fields["allergies"] = *p.Allergies
	}
	if p.Medications != nil {
		fields["medications"] = *p.Medications
	}
	return fields
}

// FieldNames returns the names of the fields present in the patch, sorted
// for stable audit details.
func (p *ProfileUpdate) FieldNames() []string {
	fields := p.Fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProfileOf builds the profile view of a user record.
func ProfileOf(u *User) *Profile {
	return &Profile{
		FullName:         u.FullName,
		Email:            u.Email,
		Role:             u.Role,
		Allergies:        u.Allergies,
		Medications:      u.Medications,
		LicenseNo:        u.LicenseNo,
		DataUsageConsent: u.DataUsageConsent,
	}
}
