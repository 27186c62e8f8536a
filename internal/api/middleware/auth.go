package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/pkg/metrics"
)

const identityKey = "admin_identity"

// Gate runs the access checks over a raw Authorization header.
type Gate interface {
	Authenticate(ctx context.Context, authorizationHeader string) domain.GateResult
}

type rejection struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

var gateResponses = map[domain.GateFailure]struct {
	code    int
	message string
}{
	domain.GateMissingToken:    {http.StatusUnauthorized, "Authentication required"},
	domain.GateMalformedHeader: {http.StatusUnauthorized, "Invalid authorization header"},
	domain.GateInvalidToken:    {http.StatusUnauthorized, "Invalid token"},
	domain.GateExpiredToken:    {http.StatusUnauthorized, "Token expired"},
	domain.GateInactiveAdmin:   {http.StatusUnauthorized, "Unauthorized"},
	domain.GateUnavailable:     {http.StatusInternalServerError, "Internal server error"},
}

// Auth runs the gate and injects the verified identity into the context.
func Auth(gate Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res := gate.Authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			if res.OK() {
				c.Set(identityKey, res.Identity)
				return next(c)
			}

			metrics.GateRejectionsTotal.WithLabelValues(res.Failure.String()).Inc()
			resp, ok := gateResponses[res.Failure]
			if !ok {
				resp = gateResponses[domain.GateInvalidToken]
			}
			if resp.code == http.StatusUnauthorized {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="admin"`)
			}
			return c.JSON(resp.code, rejection{Success: false, Message: resp.message})
		}
	}
}

// IdentityFrom returns the identity stored by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}
