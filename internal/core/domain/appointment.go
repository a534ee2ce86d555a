package domain

import "errors"

// AppointmentStatus represents the review state of an appointment request.
type AppointmentStatus string

const (
	StatusPending  AppointmentStatus = "Pending"
	StatusAccepted AppointmentStatus = "Accepted"
	StatusRejected AppointmentStatus = "Rejected"
)

// Valid reports whether s is one of the known appointment statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

var ErrAppointmentNotFound = errors.New("appointment not found")
var ErrInvalidStatus = errors.New("invalid appointment status")
var ErrDoctorNotFound = errors.New("doctor not found")
var ErrDoctorConflict = errors.New("doctors conflict, please contact through email or phone")

// DoctorRef identifies the doctor an appointment was booked with by name.
type DoctorRef struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Appointment is a patient's visit request, reviewed by the admin surface.
type Appointment struct {
	ID              string            `json:"_id,omitempty"`
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	NIC             string            `json:"nic"`
	DOB             string            `json:"dob"`
	Gender          string            `json:"gender"`
	AppointmentDate string            `json:"appointment_date"`
	Department      string            `json:"department"`
	Doctor          DoctorRef         `json:"doctor"`
	DoctorID        string            `json:"doctorId"`
	PatientID       string            `json:"patientId"`
	Address         string            `json:"address"`
	HasVisited      bool              `json:"hasVisited"`
	Status          AppointmentStatus `json:"status"`
}
