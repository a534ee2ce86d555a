package ports

import (
	"context"

	"github.com/zeecare/hospital-system/internal/core/domain"
)

// RegisterUserInput carries the profile fields shared by every registration
// flow (patient self-registration, admin creation).
type RegisterUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	NIC       string
	DOB       string
	Gender    string
	Password  string
}

// RegisterDoctorInput adds the doctor-only fields.
type RegisterDoctorInput struct {
	RegisterUserInput
	Department string
	AvatarURL  string
}

// UserService is the use-case port around the identity store.
type UserService interface {
	// Verify checks email/password/claimedRole against the stored identity.
	// The returned user never carries the password hash.
	Verify(ctx context.Context, email, password, claimedRole string) (*domain.User, error)
	RegisterPatient(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	CreateAdmin(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	CreateDoctor(ctx context.Context, in RegisterDoctorInput) (*domain.User, error)
	Doctors(ctx context.Context) ([]domain.User, error)
}
