package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/interiorfitout/backoffice/internal/api/middleware"
	"github.com/interiorfitout/backoffice/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware. Its
// absence means the route was mounted outside the admin group.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.AdminID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return id, nil
}
