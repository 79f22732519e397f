package demorequest

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/onboardai/pkg/logging"
)

var serviceTracer = otel.Tracer("onboardai/demorequest")

// Notifier tells the sales team about new leads.
type Notifier interface {
	DemoRequestReceived(ctx context.Context, rec StoredRequest) error
	ContactReceived(ctx context.Context, id string, msg ContactMessage) error
}

// Publisher forwards accepted demo requests to downstream consumers.
type Publisher interface {
	PublishDemoRequest(ctx context.Context, rec StoredRequest) error
}

// Service implements the backend semantics shared by the mock transport and
// the HTTP API: validation, identifiers, storage and catalogs.
type Service struct {
	store     Store
	rnd       RandomSource
	now       func() time.Time
	notifier  Notifier
	publisher Publisher
	logger    *logging.Logger
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithRandom pins the randomness used for ids and slot availability.
func WithRandom(rnd RandomSource) ServiceOption {
	return func(s *Service) {
		if rnd != nil {
			s.rnd = NewLockedRand(rnd)
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithNotifier sends an email (or similar) for every accepted submission.
func WithNotifier(n Notifier) ServiceOption {
	return func(s *Service) { s.notifier = n }
}

// WithPublisher emits an event for every accepted demo request.
func WithPublisher(p Publisher) ServiceOption {
	return func(s *Service) { s.publisher = p }
}

// NewService wires a Service around store.
func NewService(store Store, logger *logging.Logger, opts ...ServiceOption) *Service {
	if store == nil {
		panic("demorequest: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{
		store:  store,
		rnd:    NewLockedRand(nil),
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates and records a demo request.
func (s *Service) Submit(ctx context.Context, req DemoRequest) (*Result, error) {
	ctx, span := serviceTracer.Start(ctx, "demorequest.submit")
	defer span.End()

	if apiErr := req.Validate(); apiErr != nil {
		span.SetStatus(codes.Error, string(apiErr.Code))
		return nil, apiErr
	}

	now := s.now()
	rec := StoredRequest{
		DemoRequest: req,
		ID:          NewRequestID(DemoRequestPrefix, now, s.rnd),
		CreatedAt:   now.UTC(),
	}
	span.SetAttributes(attribute.String("demo_request.id", rec.ID))

	if err := s.store.Append(ctx, rec); err != nil {
		s.logger.Error("failed to store demo request", "error", err, "request_id", rec.ID)
		span.RecordError(err)
		span.SetStatus(codes.Error, "store append failed")
		return nil, NewAPIError(CodeHTTP, "Failed to save demo request", nil, err)
	}

	s.logger.Info("demo request submitted",
		"request_id", rec.ID,
		"company", req.CompanyName,
		"email", req.Email,
		"scheduled_for", req.PreferredDate,
	)

	if s.notifier != nil {
		if err := s.notifier.DemoRequestReceived(ctx, rec); err != nil {
			s.logger.Warn("demo request notification failed", "error", err, "request_id", rec.ID)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishDemoRequest(ctx, rec); err != nil {
			s.logger.Warn("demo request publish failed", "error", err, "request_id", rec.ID)
		}
	}

	echo := req
	return &Result{
		Success:       true,
		Message:       SubmittedMessage,
		RequestID:     rec.ID,
		ScheduledDate: req.ScheduledDate(),
		Data:          &echo,
	}, nil
}

// SubmitContact validates a contact message and forwards it to the team.
func (s *Service) SubmitContact(ctx context.Context, msg ContactMessage) (*ContactResult, error) {
	if apiErr := msg.Validate(); apiErr != nil {
		return nil, apiErr
	}
	id := NewRequestID(ContactPrefix, s.now(), s.rnd)
	s.logger.Info("contact message received", "contact_id", id, "email", msg.Email, "subject", msg.Subject)
	if s.notifier != nil {
		if err := s.notifier.ContactReceived(ctx, id, msg); err != nil {
			s.logger.Warn("contact notification failed", "error", err, "contact_id", id)
		}
	}
	return &ContactResult{Success: true, Message: ContactReceivedMessage, ID: id}, nil
}

// Industries returns the industry catalog.
func (s *Service) Industries(ctx context.Context) ([]Industry, error) {
	return Industries(), nil
}

// CompanySizes returns the company size catalog.
func (s *Service) CompanySizes(ctx context.Context) ([]CompanySize, error) {
	return CompanySizes(), nil
}

// TimeSlots returns the slot catalog; with a date, some available slots are
// randomly shown as booked.
func (s *Service) TimeSlots(ctx context.Context, date string) ([]TimeSlot, error) {
	if _, err := ParseSlotDate(date); err != nil {
		return nil, NewValidationError("Invalid date", map[string][]string{
			"date": {err.Error()},
		})
	}
	s.logger.Debug("fetching time slots", "date", date)
	if date == "" {
		return TimeSlots(), nil
	}
	return TimeSlotsForDate(s.rnd), nil
}

// DemoRequests returns a snapshot of every accepted request.
func (s *Service) DemoRequests(ctx context.Context) ([]StoredRequest, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("failed to list demo requests", "error", err)
		return nil, NewAPIError(CodeHTTP, "Failed to list demo requests", nil, err)
	}
	if records == nil {
		records = []StoredRequest{}
	}
	return records, nil
}
