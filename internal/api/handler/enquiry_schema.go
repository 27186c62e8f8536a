package handler

import "time"

// --- Request types ---

type contactRequest struct {
	Name        string `json:"name"        validate:"required,max=120"`
	Email       string `json:"email"       validate:"required,email"`
	Phone       string `json:"phone"       validate:"max=40"`
	Company     string `json:"company"     validate:"max=120"`
	ProjectType string `json:"projectType" validate:"omitempty,oneof=office retail hospitality healthcare education residential other"`
	Message     string `json:"message"     validate:"required,min=10,max=5000"`
}

type listEnquiriesQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=new read replied archived"`
	Search string `query:"search" validate:"max=100"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied archived"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract does not follow
// domain changes.

type contactResponse struct {
	Reference string `json:"reference"`
}

type enquiryResponse struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Company     string    `json:"company,omitempty"`
	ProjectType string    `json:"projectType,omitempty"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type listEnquiriesResponse struct {
	Items      []enquiryResponse  `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}
