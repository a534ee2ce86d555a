package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zeecare/hospital-system/internal/core/domain"
	"github.com/zeecare/hospital-system/internal/core/ports"
)

type stubAppointmentRepo struct {
	appointments []domain.Appointment
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	clone := *a
	clone.ID = "appt-1"
	r.appointments = append(r.appointments, clone)
	return &clone, nil
}

func (r *stubAppointmentRepo) FindAll(_ context.Context) ([]domain.Appointment, error) {
	return r.appointments, nil
}

func (r *stubAppointmentRepo) Update(_ context.Context, id string, status domain.AppointmentStatus, hasVisited *bool) (*domain.Appointment, error) {
	for i := range r.appointments {
		if r.appointments[i].ID == id {
			if status != "" {
				r.appointments[i].Status = status
			}
			if hasVisited != nil {
				r.appointments[i].HasVisited = *hasVisited
			}
			clone := r.appointments[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrAppointmentNotFound
}

func (r *stubAppointmentRepo) Delete(_ context.Context, id string) error {
	for i := range r.appointments {
		if r.appointments[i].ID == id {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return domain.ErrAppointmentNotFound
}

func seedDoctor(t *testing.T, repo *stubUserRepo, email, firstName, lastName, department string) {
	t.Helper()
	if _, err := repo.Create(context.Background(), &domain.User{
		ID:         email,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		Role:       domain.RoleDoctor,
		Department: department,
	}); err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
}

func bookInput() ports.BookAppointmentInput {
	return ports.BookAppointmentInput{
		FirstName:       "Alice",
		LastName:        "Archer",
		Email:           "alice@example.com",
		Phone:           "03001234567",
		NIC:             "1234567890123",
		DOB:             "1990-01-01",
		Gender:          "Female",
		AppointmentDate: "2026-09-15",
		Department:      "Cardiology",
		DoctorFirstName: "Grace",
		DoctorLastName:  "Hopper",
		Address:         "1 Main St",
		PatientID:       "patient-1",
	}
}

func TestAppointmentService_Book_Success(t *testing.T) {
	users := newStubUserRepo()
	seedDoctor(t, users, "grace@example.com", "Grace", "Hopper", "Cardiology")
	svc := NewAppointmentService(&stubAppointmentRepo{}, users, zerolog.Nop())

	appointment, err := svc.Book(context.Background(), bookInput())
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	if appointment.Status != domain.StatusPending {
		t.Fatalf("new appointment must be Pending, got %s", appointment.Status)
	}
	if appointment.Doctor.FirstName != "Grace" || appointment.Doctor.LastName != "Hopper" {
		t.Fatalf("unexpected doctor ref: %+v", appointment.Doctor)
	}
	if appointment.DoctorID != "grace@example.com" {
		t.Fatalf("unexpected doctor id: %s", appointment.DoctorID)
	}
	if appointment.PatientID != "patient-1" {
		t.Fatalf("unexpected patient id: %s", appointment.PatientID)
	}
}

func TestAppointmentService_Book_DoctorNotFound(t *testing.T) {
	svc := NewAppointmentService(&stubAppointmentRepo{}, newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Book(context.Background(), bookInput()); err != domain.ErrDoctorNotFound {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestAppointmentService_Book_DoctorConflict(t *testing.T) {
	users := newStubUserRepo()
	seedDoctor(t, users, "grace1@example.com", "Grace", "Hopper", "Cardiology")
	seedDoctor(t, users, "grace2@example.com", "Grace", "Hopper", "Cardiology")
	svc := NewAppointmentService(&stubAppointmentRepo{}, users, zerolog.Nop())

	if _, err := svc.Book(context.Background(), bookInput()); err != domain.ErrDoctorConflict {
		t.Fatalf("expected ErrDoctorConflict, got %v", err)
	}
}

func TestAppointmentService_Update(t *testing.T) {
	users := newStubUserRepo()
	seedDoctor(t, users, "grace@example.com", "Grace", "Hopper", "Cardiology")
	repo := &stubAppointmentRepo{}
	svc := NewAppointmentService(repo, users, zerolog.Nop())

	created, err := svc.Book(context.Background(), bookInput())
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	visited := true
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateAppointmentInput{
		Status:     domain.StatusAccepted,
		HasVisited: &visited,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != domain.StatusAccepted {
		t.Fatalf("unexpected status: %s", updated.Status)
	}
	if !updated.HasVisited {
		t.Fatalf("hasVisited not applied")
	}
}

func TestAppointmentService_Update_InvalidStatus(t *testing.T) {
	svc := NewAppointmentService(&stubAppointmentRepo{}, newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Update(context.Background(), "appt-1", ports.UpdateAppointmentInput{
		Status: "Cancelled",
	}); err != domain.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestAppointmentService_Delete_NotFound(t *testing.T) {
	svc := NewAppointmentService(&stubAppointmentRepo{}, newStubUserRepo(), zerolog.Nop())

	if err := svc.Delete(context.Background(), "missing"); err != domain.ErrAppointmentNotFound {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}
