package handler

import (
	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/ports"
)

// --- Request → Service input ---

func toSubmitInput(req contactRequest, sourceIP string) ports.SubmitEnquiryInput {
	return ports.SubmitEnquiryInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		ProjectType: req.ProjectType,
		Message:     req.Message,
		SourceIP:    sourceIP,
	}
}

func toListInput(q listEnquiriesQuery) ports.ListEnquiriesInput {
	return ports.ListEnquiriesInput{
		Status: q.Status,
		Search: q.Search,
		Page:   q.Page,
		Limit:  q.Limit,
	}
}

// --- Service result → HTTP response ---

func toEnquiryResponse(e *domain.Enquiry) enquiryResponse {
	return enquiryResponse{
		ID:          e.ID,
		Reference:   e.Reference,
		Name:        e.Name,
		Email:       e.Email,
		Phone:       e.Phone,
		Company:     e.Company,
		ProjectType: e.ProjectType,
		Message:     e.Message,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

func toListResponse(r *ports.ListEnquiriesResult) listEnquiriesResponse {
	items := make([]enquiryResponse, 0, len(r.Items))
	for _, e := range r.Items {
		items = append(items, toEnquiryResponse(e))
	}
	return listEnquiriesResponse{
		Items: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
