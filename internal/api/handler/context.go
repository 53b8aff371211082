package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DDjog/RestAPIz14/internal/api/middleware"
	"github.com/DDjog/RestAPIz14/internal/core/domain"
)

// currentUser extracts the account injected by the Auth middleware and
// fast-fails with a 401 when the middleware did not run. A handler reached
// without an authenticated user must never fall through to the service.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CurrentUserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
