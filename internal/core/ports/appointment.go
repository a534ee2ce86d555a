package ports

import (
	"context"

	"github.com/zeecare/hospital-system/internal/core/domain"
)

// AppointmentRepository is the persistence port for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindAll(ctx context.Context) ([]domain.Appointment, error)
	Update(ctx context.Context, id string, status domain.AppointmentStatus, hasVisited *bool) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// BookAppointmentInput is everything a patient submits to request a visit.
type BookAppointmentInput struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	NIC             string
	DOB             string
	Gender          string
	AppointmentDate string
	Department      string
	DoctorFirstName string
	DoctorLastName  string
	Address         string
	HasVisited      bool
	// PatientID is taken from the authenticated identity, never from the body.
	PatientID string
}

// UpdateAppointmentInput carries the admin-editable fields. Nil means
// "leave unchanged".
type UpdateAppointmentInput struct {
	Status     domain.AppointmentStatus
	HasVisited *bool
}

// AppointmentService is the use-case port for appointment flows.
type AppointmentService interface {
	Book(ctx context.Context, in BookAppointmentInput) (*domain.Appointment, error)
	List(ctx context.Context) ([]domain.Appointment, error)
	Update(ctx context.Context, id string, in UpdateAppointmentInput) (*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}
