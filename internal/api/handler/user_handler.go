package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zeecare/hospital-system/internal/api/metrics"
	"github.com/zeecare/hospital-system/internal/core/domain"
	"github.com/zeecare/hospital-system/internal/core/ports"
	"github.com/zeecare/hospital-system/internal/core/token"
)

// TokenRevoker records a token id on the denylist at logout. Optional; nil
// means logout relies on the expired replacement cookie alone.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// UserHandler handles login, logout, registration, and identity endpoints.
type UserHandler struct {
	users   ports.UserService
	tokens  *token.Issuer
	revoker TokenRevoker
}

func NewUserHandler(users ports.UserService, tokens *token.Issuer, revoker TokenRevoker) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, revoker: revoker}
}

// Login verifies credentials plus claimed role and starts a role-scoped
// session.
//
// @Summary      Log in with email, password, and role
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials and claimed role"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/v1/user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Verify(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(req.Role, "failure").Inc()
		return err
	}

	signed, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues(user.Role, "success").Inc()
	c.SetCookie(h.tokens.Cookie(user.Role, signed))

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "user logged in successfully",
		User:    user,
		Token:   signed,
	})
}

// RegisterPatient creates a Patient identity and logs it in immediately.
//
// @Summary      Register a patient
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "Patient details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Router       /api/v1/user/patient/register [post]
func (h *UserHandler) RegisterPatient(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.RegisterPatient(c.Request().Context(), registerInput(req))
	if err != nil {
		return err
	}

	signed, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(domain.RolePatient).Inc()
	c.SetCookie(h.tokens.Cookie(user.Role, signed))

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "user registered",
		User:    user,
		Token:   signed,
	})
}

// AddAdmin creates an Admin identity from the dashboard. No session is
// started for the new account.
//
// @Summary      Register an admin
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "Admin details"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  map[string]any
// @Router       /api/v1/user/admin/addnew [post]
func (h *UserHandler) AddAdmin(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.users.CreateAdmin(c.Request().Context(), registerInput(req)); err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(domain.RoleAdmin).Inc()
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "new admin registered"})
}

// AddDoctor creates a Doctor identity with its department.
//
// @Summary      Register a doctor
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      registerDoctorRequest  true  "Doctor details"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  map[string]any
// @Router       /api/v1/user/doctor/addnew [post]
func (h *UserHandler) AddDoctor(c echo.Context) error {
	var req registerDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.users.CreateDoctor(c.Request().Context(), ports.RegisterDoctorInput{
		RegisterUserInput: registerInput(req.registerUserRequest),
		Department:        req.Department,
		AvatarURL:         req.AvatarURL,
	}); err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(domain.RoleDoctor).Inc()
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "new doctor registered"})
}

// Doctors lists every doctor for the public directory.
//
// @Summary      List doctors
// @Tags         user
// @Produce      json
// @Success      200  {object}  doctorsResponse
// @Router       /api/v1/user/doctors [get]
func (h *UserHandler) Doctors(c echo.Context) error {
	doctors, err := h.users.Doctors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctorsResponse{Success: true, Doctors: doctors})
}

// Me returns the identity resolved by the surface's role guard.
//
// @Summary      Current user details
// @Tags         user
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]any
// @Router       /api/v1/user/patient/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}

// LogoutPatient ends the patient-surface session.
func (h *UserHandler) LogoutPatient(c echo.Context) error {
	return h.logout(c, domain.RolePatient, "patient logged out successfully")
}

// LogoutAdmin ends the dashboard session.
func (h *UserHandler) LogoutAdmin(c echo.Context) error {
	return h.logout(c, domain.RoleAdmin, "admin logged out successfully")
}

// logout overwrites the surface cookie with an already-expired replacement so
// the browser drops it. When a revoker is wired the token's jti is also
// denylisted for its remaining lifetime; without one, a copy of the token
// stays valid until expiry, which is inherent to stateless sessions.
func (h *UserHandler) logout(c echo.Context, role, message string) error {
	if h.revoker != nil {
		if cookie, err := c.Cookie(token.CookieNameForRole(role)); err == nil && cookie.Value != "" {
			if claims, err := h.tokens.Parse(cookie.Value); err == nil {
				ttl := time.Until(claims.ExpiresAt.Time)
				if err := h.revoker.Revoke(c.Request().Context(), claims.ID, ttl); err != nil {
					return err
				}
			}
		}
	}

	c.SetCookie(h.tokens.ExpiredCookie(role))
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: message})
}

func registerInput(req registerUserRequest) ports.RegisterUserInput {
	return ports.RegisterUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		NIC:       req.NIC,
		DOB:       req.DOB,
		Gender:    req.Gender,
		Password:  req.Password,
	}
}
