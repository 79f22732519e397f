// Package formflow implements the two-step demo-request wizard: company
// info, then contact info, then a single guarded submission.
package formflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/wolfman30/onboardai/internal/demorequest"
	"github.com/wolfman30/onboardai/pkg/logging"
)

// State is a wizard position.
type State string

const (
	StateCompanyInfo State = "step1_company_info"
	StateContactInfo State = "step2_contact_info"
	StateSubmitting  State = "submitting"
	StateSuccess     State = "success"
)

// FallbackErrorMessage is shown when a failure carries no message of its own.
const FallbackErrorMessage = "Failed to submit demo request. Please try again."

// Field names accepted by Set. They match the JSON names on the wire.
const (
	FieldCompanyName     = "companyName"
	FieldIndustry        = "industry"
	FieldCompanySize     = "companySize"
	FieldWebsite         = "website"
	FieldFullName        = "fullName"
	FieldJobTitle        = "jobTitle"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldUseCase         = "useCase"
	FieldChallenges      = "challenges"
	FieldTimeline        = "timeline"
	FieldPreferredDate   = "preferredDate"
	FieldPreferredTime   = "preferredTime"
	FieldAdditionalNotes = "additionalNotes"
)

var (
	ErrSubmitInFlight = errors.New("formflow: submission already in flight")
	ErrInvalidState   = errors.New("formflow: transition not allowed in current state")
	ErrUnknownField   = errors.New("formflow: unknown field")
	ErrLocked         = errors.New("formflow: form is locked")
)

// IncompleteStepError lists the step-one fields still empty.
type IncompleteStepError struct {
	Missing []string
}

func (e *IncompleteStepError) Error() string {
	return fmt.Sprintf("formflow: step incomplete: %s", strings.Join(e.Missing, ", "))
}

// Submitter sends a completed draft. demoapi.Service satisfies it.
type Submitter interface {
	SubmitDemoRequest(ctx context.Context, req demorequest.DemoRequest) (*demorequest.Result, error)
}

// View is a render snapshot of the flow.
type View struct {
	State     State
	Step      int
	Draft     demorequest.DemoRequest
	Error     string
	Result    *demorequest.Result
	CanSubmit bool
}

// Flow is one wizard session. It is safe for concurrent use; the lock is
// released while a submission is on the wire so View stays responsive.
type Flow struct {
	mu        sync.Mutex
	submitter Submitter
	logger    *logging.Logger

	state   State
	draft   demorequest.DemoRequest
	errMsg  string
	lastErr error
	result  *demorequest.Result
}

// New starts a session at step one.
func New(submitter Submitter, logger *logging.Logger) *Flow {
	if logger == nil {
		logger = logging.Default()
	}
	return &Flow{submitter: submitter, logger: logger, state: StateCompanyInfo}
}

// State returns the current position.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Set edits one draft field and clears any displayed error.
func (f *Flow) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting || f.state == StateSuccess {
		return ErrLocked
	}
	ptr := fieldPtr(&f.draft, field)
	if ptr == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	*ptr = value
	f.errMsg = ""
	f.lastErr = nil
	return nil
}

// Next advances from step one once company name, industry and size are set.
func (f *Flow) Next() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateCompanyInfo {
		return ErrInvalidState
	}
	var missing []string
	if strings.TrimSpace(f.draft.CompanyName) == "" {
		missing = append(missing, FieldCompanyName)
	}
	if f.draft.Industry == "" {
		missing = append(missing, FieldIndustry)
	}
	if f.draft.CompanySize == "" {
		missing = append(missing, FieldCompanySize)
	}
	if len(missing) > 0 {
		return &IncompleteStepError{Missing: missing}
	}
	f.state = StateContactInfo
	return nil
}

// Back returns to step one. Entered values are kept.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateContactInfo {
		return ErrInvalidState
	}
	f.state = StateCompanyInfo
	return nil
}

// Submit sends the draft. On failure the flow returns to step two with the
// error message displayed and the returned error is the submitter's.
func (f *Flow) Submit(ctx context.Context) (*demorequest.Result, error) {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	case StateContactInfo:
	default:
		f.mu.Unlock()
		return nil, ErrInvalidState
	}
	f.state = StateSubmitting
	f.errMsg = ""
	f.lastErr = nil
	draft := f.draft
	f.mu.Unlock()

	result, err := f.submitter.SubmitDemoRequest(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateContactInfo
		f.lastErr = err
		f.errMsg = displayMessage(err)
		f.logger.Warn("demo request submission failed", "error", err)
		return nil, err
	}
	if result == nil {
		result = &demorequest.Result{Success: true}
	}
	f.state = StateSuccess
	f.result = result
	f.logger.Info("demo request submitted", "request_id", result.RequestID)
	return result, nil
}

// Reset starts a fresh session. Not allowed while a submission is in flight.
func (f *Flow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	f.state = StateCompanyInfo
	f.draft = demorequest.DemoRequest{}
	f.errMsg = ""
	f.lastErr = nil
	f.result = nil
	return nil
}

// LastError is the full error from the most recent failed submission, for
// callers that want field-level detail.
func (f *Flow) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// View snapshots the flow for rendering.
func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{
		State:     f.state,
		Draft:     f.draft,
		Error:     f.errMsg,
		CanSubmit: f.state == StateContactInfo,
	}
	switch f.state {
	case StateCompanyInfo:
		v.Step = 1
	case StateContactInfo, StateSubmitting:
		v.Step = 2
	}
	if f.result != nil {
		r := *f.result
		v.Result = &r
	}
	return v
}

func displayMessage(err error) string {
	if apiErr, ok := demorequest.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return FallbackErrorMessage
}

func fieldPtr(d *demorequest.DemoRequest, field string) *string {
	switch field {
	case FieldCompanyName:
		return &d.CompanyName
	case FieldIndustry:
		return &d.Industry
	case FieldCompanySize:
		return &d.CompanySize
	case FieldWebsite:
		return &d.Website
	case FieldFullName:
		return &d.FullName
	case FieldJobTitle:
		return &d.JobTitle
	case FieldEmail:
		return &d.Email
	case FieldPhone:
		return &d.Phone
	case FieldUseCase:
		return &d.UseCase
	case FieldChallenges:
		return &d.Challenges
	case FieldTimeline:
		return &d.Timeline
	case FieldPreferredDate:
		return &d.PreferredDate
	case FieldPreferredTime:
		return &d.PreferredTime
	case FieldAdditionalNotes:
		return &d.AdditionalNotes
	default:
		return nil
	}
}
