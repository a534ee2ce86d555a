package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zeecare/hospital-system/internal/api/metrics"
	"github.com/zeecare/hospital-system/internal/core/domain"
	"github.com/zeecare/hospital-system/internal/core/ports"
)

// AppointmentHandler handles appointment booking and review endpoints.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Book creates a Pending appointment for the authenticated patient.
//
// @Summary      Book an appointment
// @Tags         appointment
// @Accept       json
// @Produce      json
// @Param        body  body      bookAppointmentRequest  true  "Appointment details"
// @Success      200   {object}  appointmentResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/v1/appointment/post [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	var req bookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	patient, err := currentUser(c)
	if err != nil {
		return err
	}

	appointment, err := h.service.Book(c.Request().Context(), ports.BookAppointmentInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		NIC:             req.NIC,
		DOB:             req.DOB,
		Gender:          req.Gender,
		AppointmentDate: req.AppointmentDate,
		Department:      req.Department,
		DoctorFirstName: req.DoctorFirstName,
		DoctorLastName:  req.DoctorLastName,
		Address:         req.Address,
		HasVisited:      req.HasVisited,
		PatientID:       patient.ID,
	})
	if err != nil {
		return err
	}

	metrics.AppointmentsBookedTotal.WithLabelValues(req.Department).Inc()

	return c.JSON(http.StatusOK, appointmentResponse{
		Success:     true,
		Message:     "appointment sent",
		Appointment: appointment,
	})
}

// List returns every appointment for the dashboard.
//
// @Summary      List appointments
// @Tags         appointment
// @Produce      json
// @Success      200  {object}  appointmentsResponse
// @Router       /api/v1/appointment/getall [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	appointments, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointmentsResponse{Success: true, Appointments: appointments})
}

// Update changes an appointment's review status or visited flag.
//
// @Summary      Update an appointment
// @Tags         appointment
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Appointment id"
// @Param        body  body      updateAppointmentRequest  true  "Fields to change"
// @Success      200   {object}  appointmentResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/v1/appointment/update/{id} [put]
func (h *AppointmentHandler) Update(c echo.Context) error {
	var req updateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	appointment, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateAppointmentInput{
		Status:     domain.AppointmentStatus(req.Status),
		HasVisited: req.HasVisited,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, appointmentResponse{
		Success:     true,
		Message:     "appointment status updated",
		Appointment: appointment,
	})
}

// Delete removes an appointment.
//
// @Summary      Delete an appointment
// @Tags         appointment
// @Produce      json
// @Param        id  path      string  true  "Appointment id"
// @Success      200  {object}  statusResponse
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/v1/appointment/delete/{id} [delete]
func (h *AppointmentHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "appointment deleted"})
}
