package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zeecare/hospital-system/internal/core/domain"
)

func handleError(t *testing.T, err error, production bool) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop(), production)(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"missing fields", domain.ErrMissingFields, http.StatusBadRequest, "please provide all details"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"role mismatch", domain.ErrRoleMismatch, http.StatusForbidden, "user with this role not found"},
		{"duplicate email", domain.ErrUserExists, http.StatusBadRequest, "user already registered with this email"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "not authenticated"},
		{"token expired", domain.ErrTokenExpired, http.StatusUnauthorized, "token expired, please log in again"},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, "invalid token, please log in again"},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest, "invalid identifier"},
		{"invalid status", domain.ErrInvalidStatus, http.StatusBadRequest, "invalid appointment status"},
		{"appointment not found", domain.ErrAppointmentNotFound, http.StatusNotFound, "appointment not found"},
		{"doctor not found", domain.ErrDoctorNotFound, http.StatusNotFound, "doctor not found"},
		{"doctor conflict", domain.ErrDoctorConflict, http.StatusConflict, "doctors conflict, please contact through email or phone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := handleError(t, tc.err, false)
			if code != tc.wantCode {
				t.Fatalf("code = %d, want %d", code, tc.wantCode)
			}
			if resp.Success {
				t.Fatalf("success must be false")
			}
			if resp.Message != tc.wantMsg {
				t.Fatalf("message = %q, want %q", resp.Message, tc.wantMsg)
			}
		})
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, resp := handleError(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"), false)
	if code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", code)
	}
	if resp.Message != "Not Found" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
		Phone string `validate:"len=11"`
	}
	err := validator.New().Struct(form{Email: "not-an-email", Phone: "123"})
	if err == nil {
		t.Fatalf("expected validation failure")
	}

	code, resp := handleError(t, err, false)
	if code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", code)
	}
	if resp.Message != "email must be a valid email; phone must be exactly 11 characters" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestErrorHandler_RawJWTErrors(t *testing.T) {
	// v5 wraps expiry inside the invalid-claims error; the handler must still
	// classify it as expired, not generic invalid.
	wrapped := errors.Join(jwt.ErrTokenInvalidClaims, jwt.ErrTokenExpired)
	code, resp := handleError(t, wrapped, false)
	if code != http.StatusUnauthorized || resp.Message != "token expired, please log in again" {
		t.Fatalf("expired: code = %d, message = %q", code, resp.Message)
	}

	code, resp = handleError(t, jwt.ErrTokenMalformed, false)
	if code != http.StatusUnauthorized || resp.Message != "invalid token, please log in again" {
		t.Fatalf("malformed: code = %d, message = %q", code, resp.Message)
	}
}

func TestErrorHandler_InvalidObjectID(t *testing.T) {
	_, err := primitive.ObjectIDFromHex("not-hex")
	if err == nil {
		t.Fatalf("expected invalid hex error")
	}
	code, resp := handleError(t, err, false)
	if code != http.StatusBadRequest || resp.Message != "invalid identifier" {
		t.Fatalf("code = %d, message = %q", code, resp.Message)
	}
}

func TestErrorHandler_DuplicateKey(t *testing.T) {
	err := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}},
	}
	code, resp := handleError(t, err, false)
	if code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", code)
	}
	if resp.Message != "duplicate value entered for a unique field" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestErrorHandler_Unhandled(t *testing.T) {
	code, resp := handleError(t, errors.New("disk on fire"), false)
	if code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", code)
	}
	if resp.Message != "internal server error" {
		t.Fatalf("message = %q", resp.Message)
	}
	if resp.Detail == "" || resp.Stack == "" {
		t.Fatalf("development mode must expose detail and stack")
	}
}

func TestErrorHandler_ProductionHidesDiagnostics(t *testing.T) {
	code, resp := handleError(t, errors.New("disk on fire"), true)
	if code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", code)
	}
	if resp.Detail != "" || resp.Stack != "" {
		t.Fatalf("production leaked diagnostics: detail=%q stack-present=%v", resp.Detail, resp.Stack != "")
	}
}
