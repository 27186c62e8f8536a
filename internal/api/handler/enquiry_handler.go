package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/ports"
)

// EnquiryHandler serves the public contact form and the admin inbox.
type EnquiryHandler struct {
	service ports.EnquiryService
}

func NewEnquiryHandler(service ports.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{service: service}
}

// Submit handles POST /api/contact.
//
// @Summary      Submit the contact form
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Enquiry"
// @Success      201   {object}  envelope{data=contactResponse}
// @Failure      400   {object}  envelope
// @Failure      429   {object}  envelope
// @Router       /api/contact [post]
func (h *EnquiryHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	enquiry, err := h.service.Submit(c.Request().Context(), toSubmitInput(req, c.RealIP()))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Thank you, we will be in touch shortly", contactResponse{Reference: enquiry.Reference})
}

// List handles GET /api/admin/enquiries.
//
// @Summary      List enquiries
// @Tags         enquiries
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "new, read, replied or archived"
// @Param        search  query     string  false  "Partial match on name, email, company or reference"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 20, max 100)"
// @Success      200     {object}  envelope{data=listEnquiriesResponse}
// @Failure      400     {object}  envelope
// @Failure      401     {object}  envelope
// @Router       /api/admin/enquiries [get]
func (h *EnquiryHandler) List(c echo.Context) error {
	var q listEnquiriesQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), toListInput(q))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "OK", toListResponse(result))
}

// Get handles GET /api/admin/enquiries/:id.
//
// @Summary      Get an enquiry
// @Tags         enquiries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Enquiry ID"
// @Success      200  {object}  envelope{data=enquiryResponse}
// @Failure      401  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/admin/enquiries/{id} [get]
func (h *EnquiryHandler) Get(c echo.Context) error {
	enquiry, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "OK", toEnquiryResponse(enquiry))
}

// UpdateStatus handles PATCH /api/admin/enquiries/:id/status.
//
// @Summary      Move an enquiry to a new status
// @Tags         enquiries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Enquiry ID"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  envelope{data=enquiryResponse}
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /api/admin/enquiries/{id}/status [patch]
func (h *EnquiryHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	enquiry, err := h.service.ChangeStatus(c.Request().Context(), c.Param("id"), domain.EnquiryStatus(req.Status))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Status updated", toEnquiryResponse(enquiry))
}

// Delete handles DELETE /api/admin/enquiries/:id.
//
// @Summary      Delete an enquiry
// @Tags         enquiries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Enquiry ID"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/admin/enquiries/{id} [delete]
func (h *EnquiryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Enquiry deleted", nil)
}
