package handler

import "github.com/zeecare/hospital-system/internal/core/domain"

type bookAppointmentRequest struct {
	FirstName       string `json:"firstName" validate:"required,min=3"`
	LastName        string `json:"lastName"  validate:"required,min=3"`
	Email           string `json:"email"     validate:"required,email"`
	Phone           string `json:"phone"     validate:"required,len=11"`
	NIC             string `json:"nic"       validate:"required,len=13"`
	DOB             string `json:"dob"       validate:"required"`
	Gender          string `json:"gender"    validate:"required,oneof=Male Female"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	Department      string `json:"department"       validate:"required"`
	DoctorFirstName string `json:"doctor_firstName" validate:"required"`
	DoctorLastName  string `json:"doctor_lastName"  validate:"required"`
	Address         string `json:"address"          validate:"required"`
	HasVisited      bool   `json:"hasVisited"`
}

type updateAppointmentRequest struct {
	Status     string `json:"status" validate:"omitempty,oneof=Pending Accepted Rejected"`
	HasVisited *bool  `json:"hasVisited"`
}

type appointmentResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Appointment *domain.Appointment `json:"appointment,omitempty"`
}

type appointmentsResponse struct {
	Success      bool                 `json:"success"`
	Appointments []domain.Appointment `json:"appointments"`
}
