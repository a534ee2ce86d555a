package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zeecare/hospital-system/internal/api/middleware"
	"github.com/zeecare/hospital-system/internal/core/domain"
	"github.com/zeecare/hospital-system/internal/core/ports"
	"github.com/zeecare/hospital-system/internal/core/token"
)

type stubUserService struct {
	verifyUser *domain.User
	verifyErr  error

	registered *ports.RegisterUserInput
	doctorIn   *ports.RegisterDoctorInput
	createErr  error

	doctors []domain.User
}

func (s *stubUserService) Verify(_ context.Context, email, password, role string) (*domain.User, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return s.verifyUser, nil
}

func (s *stubUserService) RegisterPatient(_ context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.registered = &in
	return &domain.User{ID: "patient-1", Email: in.Email, Role: domain.RolePatient}, nil
}

func (s *stubUserService) CreateAdmin(_ context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.registered = &in
	return &domain.User{ID: "admin-1", Email: in.Email, Role: domain.RoleAdmin}, nil
}

func (s *stubUserService) CreateDoctor(_ context.Context, in ports.RegisterDoctorInput) (*domain.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.doctorIn = &in
	return &domain.User{ID: "doctor-1", Email: in.Email, Role: domain.RoleDoctor}, nil
}

func (s *stubUserService) Doctors(_ context.Context) ([]domain.User, error) {
	return s.doctors, nil
}

type stubRevoker struct {
	jti string
	ttl time.Duration
}

func (r *stubRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	r.jti = jti
	r.ttl = ttl
	return nil
}

func testIssuer(t *testing.T) *token.Issuer {
	t.Helper()
	issuer, err := token.NewIssuer("secret", time.Hour, time.Hour, false)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return issuer
}

func jsonRequest(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func registerBody() string {
	return `{
		"firstName": "Jane",
		"lastName": "Doe",
		"email": "jane@x.com",
		"phone": "03001234567",
		"nic": "1234567890123",
		"dob": "1990-01-01",
		"gender": "Female",
		"password": "longenoughpw"
	}`
}

func TestUserHandler_Login(t *testing.T) {
	svc := &stubUserService{verifyUser: &domain.User{ID: "patient-1", Email: "jane@x.com", Role: domain.RolePatient}}
	h := NewUserHandler(svc, testIssuer(t), nil)

	c, rec := jsonRequest(t, http.MethodPost, "/api/v1/user/login",
		`{"email":"jane@x.com","password":"longenoughpw","confirmPassword":"longenoughpw","role":"Patient"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}

	cookie := findCookie(t, rec, token.PatientCookie)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("patient cookie not set")
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Message != "user logged in successfully" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Token != cookie.Value {
		t.Fatalf("body token differs from cookie value")
	}
	if resp.User == nil || resp.User.ID != "patient-1" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestUserHandler_Login_AdminCookieName(t *testing.T) {
	svc := &stubUserService{verifyUser: &domain.User{ID: "admin-1", Email: "root@x.com", Role: domain.RoleAdmin}}
	h := NewUserHandler(svc, testIssuer(t), nil)

	c, rec := jsonRequest(t, http.MethodPost, "/api/v1/user/login",
		`{"email":"root@x.com","password":"longenoughpw","role":"Admin"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if findCookie(t, rec, token.AdminCookie) == nil {
		t.Fatalf("admin cookie not set")
	}
	if findCookie(t, rec, token.PatientCookie) != nil {
		t.Fatalf("patient cookie must not be set on the dashboard surface")
	}
}

func TestUserHandler_Login_FailurePropagates(t *testing.T) {
	svc := &stubUserService{verifyErr: domain.ErrInvalidCredentials}
	h := NewUserHandler(svc, testIssuer(t), nil)

	c, rec := jsonRequest(t, http.MethodPost, "/api/v1/user/login",
		`{"email":"jane@x.com","password":"wrong","role":"Patient"}`)
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie must be set on failure")
	}
}

func TestUserHandler_RegisterPatient(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc, testIssuer(t), nil)

	c, rec := jsonRequest(t, http.MethodPost, "/api/v1/user/patient/register", registerBody())
	if err := h.RegisterPatient(c); err != nil {
		t.Fatalf("RegisterPatient: %v", err)
	}

	if svc.registered == nil || svc.registered.Email != "jane@x.com" {
		t.Fatalf("input not forwarded: %+v", svc.registered)
	}
	// Registration logs the new patient in immediately.
	if findCookie(t, rec, token.PatientCookie) == nil {
		t.Fatalf("register must start a session")
	}
}

func TestUserHandler_RegisterPatient_InvalidPayload(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, testIssuer(t), nil)

	c, _ := jsonRequest(t, http.MethodPost, "/api/v1/user/patient/register",
		`{"firstName":"Jane","lastName":"Doe","email":"not-an-email","phone":"123","nic":"1234567890123","dob":"1990-01-01","gender":"Female","password":"longenoughpw"}`)
	err := h.RegisterPatient(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestUserHandler_AddDoctor(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc, testIssuer(t), nil)

	body := `{
		"firstName": "Grace",
		"lastName": "Hopper",
		"email": "grace@x.com",
		"phone": "03001234567",
		"nic": "1234567890123",
		"dob": "1906-12-09",
		"gender": "Female",
		"password": "longenoughpw",
		"doctorDepartment": "Cardiology"
	}`
	c, rec := jsonRequest(t, http.MethodPost, "/api/v1/user/doctor/addnew", body)
	if err := h.AddDoctor(c); err != nil {
		t.Fatalf("AddDoctor: %v", err)
	}

	if svc.doctorIn == nil || svc.doctorIn.Department != "Cardiology" {
		t.Fatalf("department not forwarded: %+v", svc.doctorIn)
	}
	// Admin-created accounts never get a session.
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie must be set for created accounts")
	}
}

func TestUserHandler_AddDoctor_MissingDepartment(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, testIssuer(t), nil)

	c, _ := jsonRequest(t, http.MethodPost, "/api/v1/user/doctor/addnew", registerBody())
	if err := h.AddDoctor(c); err == nil {
		t.Fatalf("expected validation error for missing department")
	}
}

func TestUserHandler_Me(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, testIssuer(t), nil)

	c, rec := jsonRequest(t, http.MethodGet, "/api/v1/user/patient/me", "")
	c.Set(middleware.ContextUserKey, &domain.User{ID: "patient-1", Email: "jane@x.com", Role: domain.RolePatient})

	if err := h.Me(c); err != nil {
		t.Fatalf("Me: %v", err)
	}
	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User == nil || resp.User.ID != "patient-1" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestUserHandler_Me_NoGuard(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, testIssuer(t), nil)

	c, _ := jsonRequest(t, http.MethodGet, "/api/v1/user/patient/me", "")
	if err := h.Me(c); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUserHandler_Logout(t *testing.T) {
	issuer := testIssuer(t)
	h := NewUserHandler(&stubUserService{}, issuer, nil)

	c, rec := jsonRequest(t, http.MethodGet, "/api/v1/user/patient/logout", "")
	if err := h.LogoutPatient(c); err != nil {
		t.Fatalf("LogoutPatient: %v", err)
	}

	cookie := findCookie(t, rec, token.PatientCookie)
	if cookie == nil {
		t.Fatalf("expired replacement cookie not set")
	}
	if cookie.Value != "" {
		t.Fatalf("replacement cookie must be empty")
	}
	if cookie.MaxAge != -1 || cookie.Expires.After(time.Now()) {
		t.Fatalf("replacement cookie must already be expired")
	}
}

func TestUserHandler_Logout_RevokesToken(t *testing.T) {
	issuer := testIssuer(t)
	revoker := &stubRevoker{}
	h := NewUserHandler(&stubUserService{}, issuer, revoker)

	signed, err := issuer.Issue(&domain.User{ID: "admin-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := issuer.Parse(signed)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	c, _ := jsonRequest(t, http.MethodGet, "/api/v1/user/admin/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: token.AdminCookie, Value: signed})

	if err := h.LogoutAdmin(c); err != nil {
		t.Fatalf("LogoutAdmin: %v", err)
	}
	if revoker.jti != claims.ID {
		t.Fatalf("revoked jti = %q, want %q", revoker.jti, claims.ID)
	}
	if revoker.ttl <= 0 || revoker.ttl > time.Hour {
		t.Fatalf("revocation ttl out of range: %v", revoker.ttl)
	}
}

func TestUserHandler_Doctors(t *testing.T) {
	svc := &stubUserService{doctors: []domain.User{
		{ID: "doctor-1", FirstName: "Grace", Role: domain.RoleDoctor, Department: "Cardiology"},
	}}
	h := NewUserHandler(svc, testIssuer(t), nil)

	c, rec := jsonRequest(t, http.MethodGet, "/api/v1/user/doctors", "")
	if err := h.Doctors(c); err != nil {
		t.Fatalf("Doctors: %v", err)
	}
	var resp doctorsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Doctors) != 1 || resp.Doctors[0].Department != "Cardiology" {
		t.Fatalf("unexpected doctors: %+v", resp.Doctors)
	}
}
