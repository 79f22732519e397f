package events

import "time"

// EventTypeDemoRequestSubmitted is the type tag for DemoRequestSubmittedV1.
const EventTypeDemoRequestSubmitted = "onboarding.demo_request.submitted.v1"

// DemoRequestSubmittedV1 is emitted once per accepted demo request so
// downstream systems (CRM sync, scheduling) can pick up the lead.
type DemoRequestSubmittedV1 struct {
	RequestID       string    `json:"request_id"`
	CompanyName     string    `json:"company_name"`
	Industry        string    `json:"industry,omitempty"`
	CompanySize     string    `json:"company_size,omitempty"`
	Website         string    `json:"website,omitempty"`
	FullName        string    `json:"full_name"`
	JobTitle        string    `json:"job_title,omitempty"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	UseCase         string    `json:"use_case,omitempty"`
	Challenges      string    `json:"challenges,omitempty"`
	Timeline        string    `json:"timeline,omitempty"`
	PreferredDate   string    `json:"preferred_date,omitempty"`
	PreferredTime   string    `json:"preferred_time,omitempty"`
	AdditionalNotes string    `json:"additional_notes,omitempty"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

func (DemoRequestSubmittedV1) EventType() string { return EventTypeDemoRequestSubmitted }
