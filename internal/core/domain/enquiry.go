package domain

import "time"

// EnquiryStatus is the lifecycle state of a contact-form enquiry.
type EnquiryStatus string

const (
	EnquiryNew      EnquiryStatus = "new"
	EnquiryRead     EnquiryStatus = "read"
	EnquiryReplied  EnquiryStatus = "replied"
	EnquiryArchived EnquiryStatus = "archived"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[EnquiryStatus][]EnquiryStatus{
	EnquiryNew:     {EnquiryRead, EnquiryReplied, EnquiryArchived},
	EnquiryRead:    {EnquiryReplied, EnquiryArchived},
	EnquiryReplied: {EnquiryArchived},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s EnquiryStatus) CanTransitionTo(next EnquiryStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Enquiry is a message left through the public contact page.
type Enquiry struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Reference   string        `json:"reference" bson:"reference"`
	Name        string        `json:"name" bson:"name"`
	Email       string        `json:"email" bson:"email"`
	Phone       string        `json:"phone,omitempty" bson:"phone,omitempty"`
	Company     string        `json:"company,omitempty" bson:"company,omitempty"`
	ProjectType string        `json:"projectType,omitempty" bson:"project_type,omitempty"`
	Message     string        `json:"message" bson:"message"`
	Status      EnquiryStatus `json:"status" bson:"status"`
	SourceIP    string        `json:"-" bson:"source_ip,omitempty"`
	CreatedAt   time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updated_at"`
}
