package demorequest

import "time"

// DemoRequest is the lead-capture payload collected by the two-step form.
type DemoRequest struct {
	// Company information
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
	CompanySize string `json:"companySize"`
	Website     string `json:"website,omitempty"`

	// Contact details
	FullName string `json:"fullName"`
	JobTitle string `json:"jobTitle"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`

	// Requirements
	UseCase    string `json:"useCase,omitempty"`
	Challenges string `json:"challenges,omitempty"`
	Timeline   string `json:"timeline,omitempty"`

	// Scheduling
	PreferredDate   string `json:"preferredDate,omitempty"`
	PreferredTime   string `json:"preferredTime,omitempty"`
	AdditionalNotes string `json:"additionalNotes,omitempty"`
}

// Result is returned for an accepted demo request.
type Result struct {
	Success       bool         `json:"success"`
	Message       string       `json:"message"`
	RequestID     string       `json:"requestId"`
	ScheduledDate string       `json:"scheduledDate,omitempty"`
	Data          *DemoRequest `json:"data,omitempty"`
}

// StoredRequest is an accepted demo request as kept by a Store.
type StoredRequest struct {
	DemoRequest
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Industry is a reference catalog entry.
type Industry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// CompanySize is a reference catalog entry for headcount bands.
type CompanySize struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Range string `json:"range"`
}

// TimeSlot is a bookable demo window. Times are HH:MM, 24h.
type TimeSlot struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// ContactMessage is a general enquiry from the public contact form.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactResult acknowledges a contact message.
type ContactResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

const (
	// SubmittedMessage is shown to the user after an accepted demo request.
	SubmittedMessage = "Your demo request has been submitted successfully! Our team will contact you within 24 hours."
	// ContactReceivedMessage acknowledges a contact message.
	ContactReceivedMessage = "Thanks for reaching out! We'll get back to you shortly."
)
