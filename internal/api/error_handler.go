package api

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zeecare/hospital-system/internal/core/domain"
)

// errorResponse is the canonical failure envelope for every endpoint:
// success is always false and message is always set. Detail and Stack carry
// internal diagnostics and are only populated outside production.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// NewHTTPErrorHandler returns the echo.HTTPErrorHandler that normalizes every
// failure into the envelope above. Rules are evaluated top to bottom and the
// first match wins:
//
//  1. echo.HTTPError (bind failures, 404 from the router, guard rejections
//     raised as HTTP errors)
//  2. validator.ValidationErrors — field messages concatenated, 400
//  3. raw JWT errors — expiry before the generic invalid-token match, since
//     v5 wraps expiry inside the invalid-claims error
//  4. malformed ObjectID hex — 400
//  5. Mongo duplicate-key writes — 400
//  6. known domain errors — per-kind status
//  7. anything else — logged, generic 500
//
// Lower-level driver and library errors never reach the client verbatim.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, unhandled := resolveError(err, log, c)

		resp := errorResponse{Success: false, Message: msg}
		if !production {
			resp.Detail = err.Error()
			if unhandled {
				resp.Stack = string(debug.Stack())
			}
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (code int, msg string, unhandled bool) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), false
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return http.StatusBadRequest, strings.Join(msgs, "; "), false
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return http.StatusUnauthorized, "token expired, please log in again", false
	}
	if errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenInvalidClaims) {
		return http.StatusUnauthorized, "invalid token, please log in again", false
	}

	if errors.Is(err, primitive.ErrInvalidHex) {
		return http.StatusBadRequest, "invalid identifier", false
	}

	if mongo.IsDuplicateKeyError(err) {
		return http.StatusBadRequest, "duplicate value entered for a unique field", false
	}

	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, "please provide all details", false
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password", false
	case errors.Is(err, domain.ErrRoleMismatch):
		return http.StatusForbidden, "user with this role not found", false
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "user already registered with this email", false
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found", false
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "not authenticated", false
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired, please log in again", false
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token, please log in again", false
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "invalid identifier", false
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "invalid appointment status", false
	case errors.Is(err, domain.ErrAppointmentNotFound):
		return http.StatusNotFound, "appointment not found", false
	case errors.Is(err, domain.ErrDoctorNotFound):
		return http.StatusNotFound, "doctor not found", false
	case errors.Is(err, domain.ErrDoctorConflict):
		return http.StatusConflict, "doctors conflict, please contact through email or phone", false
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", true
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
