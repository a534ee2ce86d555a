package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/zeecare/hospital-system/internal/core/domain"
	"github.com/zeecare/hospital-system/internal/core/ports"
)

// AppointmentService implements the booking and review flows.
type AppointmentService struct {
	appointments ports.AppointmentRepository
	users        ports.UserRepository
	log          zerolog.Logger
}

func NewAppointmentService(appointments ports.AppointmentRepository, users ports.UserRepository, log zerolog.Logger) *AppointmentService {
	return &AppointmentService{appointments: appointments, users: users, log: log}
}

// Book resolves the requested doctor by name within the department and stores
// a Pending appointment bound to the authenticated patient. Zero matching
// doctors is a not-found; more than one is an ambiguity the patient cannot
// resolve online.
func (s *AppointmentService) Book(ctx context.Context, in ports.BookAppointmentInput) (*domain.Appointment, error) {
	doctors, err := s.users.FindDoctors(ctx, in.DoctorFirstName, in.DoctorLastName, in.Department)
	if err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, domain.ErrDoctorNotFound
	}
	if len(doctors) > 1 {
		return nil, domain.ErrDoctorConflict
	}
	doctor := doctors[0]

	appointment := &domain.Appointment{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		Phone:           in.Phone,
		NIC:             in.NIC,
		DOB:             in.DOB,
		Gender:          in.Gender,
		AppointmentDate: in.AppointmentDate,
		Department:      in.Department,
		Doctor: domain.DoctorRef{
			FirstName: doctor.FirstName,
			LastName:  doctor.LastName,
		},
		DoctorID:   doctor.ID,
		PatientID:  in.PatientID,
		Address:    in.Address,
		HasVisited: in.HasVisited,
		Status:     domain.StatusPending,
	}

	created, err := s.appointments.Create(ctx, appointment)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("patient_id", in.PatientID).
		Str("doctor_id", doctor.ID).
		Str("department", in.Department).
		Msg("appointment booked")

	return created, nil
}

// List returns every appointment for the dashboard.
func (s *AppointmentService) List(ctx context.Context) ([]domain.Appointment, error) {
	return s.appointments.FindAll(ctx)
}

// Update changes the review status and/or the visited flag of an appointment.
func (s *AppointmentService) Update(ctx context.Context, id string, in ports.UpdateAppointmentInput) (*domain.Appointment, error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.appointments.Update(ctx, id, in.Status, in.HasVisited)
}

// Delete removes an appointment.
func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	return s.appointments.Delete(ctx, id)
}
