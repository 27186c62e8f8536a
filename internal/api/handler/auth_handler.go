package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required,notblank"`
}

type adminResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin"`
}

type loginData struct {
	Admin  adminResponse    `json:"admin"`
	Tokens domain.TokenPair `json:"tokens"`
}

type tokensData struct {
	Tokens domain.TokenPair `json:"tokens"`
}

type meData struct {
	Admin adminResponse `json:"admin"`
}

func toAdminResponse(a *domain.Admin) adminResponse {
	return adminResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      domain.RoleAdmin,
		LastLogin: a.LastLoginAt,
	}
}

func clientInfo(c echo.Context) ports.ClientInfo {
	return ports.ClientInfo{RemoteIP: c.RealIP(), UserAgent: c.Request().UserAgent()}
}

// Login authenticates an admin and returns a token pair.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope{data=loginData}
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      429   {object}  envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Login successful", loginData{
		Admin:  toAdminResponse(res.Admin),
		Tokens: res.Tokens,
	})
}

// Refresh exchanges a refresh token for a new token pair.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  envelope{data=tokensData}
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken, clientInfo(c))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Token refreshed", tokensData{Tokens: pair})
}

// Me returns the authenticated admin.
//
// @Summary      Current admin
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=meData}
// @Failure      401  {object}  envelope
// @Router       /api/admin/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	admin, err := h.authService.CurrentAdmin(c.Request().Context(), id.AdminID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "OK", meData{Admin: toAdminResponse(admin)})
}
