package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/zeecare/hospital-system/internal/api/middleware"
	"github.com/zeecare/hospital-system/internal/core/domain"
)

// currentUser extracts the identity resolved by the role guard. Its presence
// proves the guard ran; handlers behind a guard treat absence as an
// unauthenticated request rather than panicking.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUserKey).(*domain.User)
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
