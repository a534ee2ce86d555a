package ports

import (
	"context"

	"github.com/zeecare/hospital-system/internal/core/domain"
)

// UserRepository is the persistence port for the shared identity store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByRole(ctx context.Context, role string) ([]domain.User, error)
	// FindDoctors matches Doctor identities by exact first/last name within a
	// department. Used to resolve the doctor an appointment is booked with.
	FindDoctors(ctx context.Context, firstName, lastName, department string) ([]domain.User, error)
}
