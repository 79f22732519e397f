package demorequest

import (
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Validate checks the fields required at submission time. Every missing field
// is reported, not only the first.
func (r *DemoRequest) Validate() *APIError {
	missing := map[string][]string{}
	if r.CompanyName == "" {
		missing["companyName"] = []string{"Company name is required"}
	}
	if r.Email == "" {
		missing["email"] = []string{"Email is required"}
	}
	if r.FullName == "" {
		missing["fullName"] = []string{"Full name is required"}
	}
	if len(missing) > 0 {
		return NewValidationError("Missing required fields", missing)
	}
	if !ValidEmail(r.Email) {
		return NewValidationError("Invalid email format", map[string][]string{
			"email": {"Please enter a valid email address"},
		})
	}
	return nil
}

// ScheduledDate derives the ISO-8601 timestamp for the preferred slot. It is
// empty when no preferred date was given; the time of day defaults to 10:00.
func (r *DemoRequest) ScheduledDate() string {
	if r.PreferredDate == "" {
		return ""
	}
	start := strings.SplitN(r.PreferredTime, "-", 2)[0]
	if start == "" {
		start = "10:00"
	}
	return r.PreferredDate + "T" + start + ":00Z"
}

// Validate checks a contact message.
func (m *ContactMessage) Validate() *APIError {
	missing := map[string][]string{}
	if strings.TrimSpace(m.Name) == "" {
		missing["name"] = []string{"Name is required"}
	}
	if m.Email == "" {
		missing["email"] = []string{"Email is required"}
	}
	if strings.TrimSpace(m.Subject) == "" {
		missing["subject"] = []string{"Subject is required"}
	}
	if strings.TrimSpace(m.Message) == "" {
		missing["message"] = []string{"Message is required"}
	}
	if len(missing) > 0 {
		return NewValidationError("Missing required fields", missing)
	}
	if !ValidEmail(m.Email) {
		return NewValidationError("Invalid email format", map[string][]string{
			"email": {"Please enter a valid email address"},
		})
	}
	return nil
}

// ParseSlotDate validates an optional YYYY-MM-DD timeslot query.
func ParseSlotDate(date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
