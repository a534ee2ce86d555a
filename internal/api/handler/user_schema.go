package handler

import "github.com/zeecare/hospital-system/internal/core/domain"

// --- Request types ---

// loginRequest deliberately carries no validate tags: emptiness is checked by
// the credential verifier so a missing field surfaces as the missing-fields
// kind, not a generic validation failure. ConfirmPassword is a UI-only check
// and is never re-verified server-side.
type loginRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
	Role            string `json:"role"`
}

type registerUserRequest struct {
	FirstName string `json:"firstName" validate:"required,min=3"`
	LastName  string `json:"lastName"  validate:"required,min=3"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"     validate:"required,len=11"`
	NIC       string `json:"nic"       validate:"required,len=13"`
	DOB       string `json:"dob"       validate:"required"`
	Gender    string `json:"gender"    validate:"required,oneof=Male Female"`
	Password  string `json:"password"  validate:"required,min=8"`
	// Role is accepted for compatibility with the registration form but the
	// server assigns the role per endpoint, never from the body.
	Role string `json:"role,omitempty" validate:"omitempty,oneof=Patient Doctor Admin"`
}

type registerDoctorRequest struct {
	registerUserRequest
	Department string `json:"doctorDepartment" validate:"required"`
	AvatarURL  string `json:"docAvatar,omitempty" validate:"omitempty,url"`
}

// --- Response types ---

// statusResponse is the minimal success envelope.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// authResponse is returned by login and the registration flows that start a
// session. The token mirrors the cookie value for non-browser clients.
type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

type userResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

type doctorsResponse struct {
	Success bool          `json:"success"`
	Doctors []domain.User `json:"doctors"`
}
