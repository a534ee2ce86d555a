package domain

import (
	"errors"
	"time"
)

// Role is a closed set: a user carries exactly one tag, compared by equality,
// and it never changes through this subsystem.
const (
	RolePatient = "Patient"
	RoleDoctor  = "Doctor"
	RoleAdmin   = "Admin"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RolePatient || role == RoleDoctor || role == RoleAdmin
}

var ErrMissingFields = errors.New("please provide all details")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrRoleMismatch = errors.New("user with this role not found")
var ErrUserExists = errors.New("user already registered with this email")
var ErrUserNotFound = errors.New("user not found")
var ErrUnauthenticated = errors.New("not authenticated")
var ErrInvalidToken = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")
var ErrInvalidID = errors.New("invalid identifier")

// User models a stored identity. Email is unique across the whole store
// regardless of role.
type User struct {
	ID           string    `json:"_id,omitempty"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	NIC          string    `json:"nic"`
	DOB          string    `json:"dob"`
	Gender       string    `json:"gender"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Department   string    `json:"doctorDepartment,omitempty"`
	AvatarURL    string    `json:"docAvatar,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// Public returns a copy safe to hand past the service boundary: the password
// hash never leaves the credential verifier.
func (u *User) Public() *User {
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
