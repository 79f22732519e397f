package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/wolfman30/onboardai/internal/demorequest"
	"github.com/wolfman30/onboardai/pkg/logging"
)

// Sender delivers one serialized message to a queue.
type Sender interface {
	Send(ctx context.Context, body string) error
}

// LeadPublisher emits DemoRequestSubmittedV1 envelopes for accepted requests.
// It implements demorequest.Publisher.
type LeadPublisher struct {
	sender Sender
	source string
	logger *logging.Logger
}

// NewLeadPublisher wraps sender. source tags every envelope.
func NewLeadPublisher(sender Sender, source string, logger *logging.Logger) *LeadPublisher {
	if sender == nil {
		panic("events: sender required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadPublisher{sender: sender, source: source, logger: logger}
}

var _ demorequest.Publisher = (*LeadPublisher)(nil)

func (p *LeadPublisher) PublishDemoRequest(ctx context.Context, rec demorequest.StoredRequest) error {
	evt := DemoRequestSubmittedV1{
		RequestID:       rec.ID,
		CompanyName:     rec.CompanyName,
		Industry:        rec.Industry,
		CompanySize:     rec.CompanySize,
		Website:         rec.Website,
		FullName:        rec.FullName,
		JobTitle:        rec.JobTitle,
		Email:           rec.Email,
		Phone:           rec.Phone,
		UseCase:         rec.UseCase,
		Challenges:      rec.Challenges,
		Timeline:        rec.Timeline,
		PreferredDate:   rec.PreferredDate,
		PreferredTime:   rec.PreferredTime,
		AdditionalNotes: rec.AdditionalNotes,
		SubmittedAt:     rec.CreatedAt.UTC(),
	}
	env, err := NewEnvelope("demo_request:"+rec.ID, evt, WithTimestamp(rec.CreatedAt), WithSource(p.source))
	if err != nil {
		return err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("events: marshal envelope: %w", err)
	}
	if err := p.sender.Send(ctx, string(body)); err != nil {
		return err
	}
	p.logger.Debug("demo request event published", "request_id", rec.ID, "event_id", env.EventID.String())
	return nil
}

// LogSender logs each message and drops it. cmd/api uses it when no queue is
// configured so a long-running server holds nothing in memory.
type LogSender struct {
	logger *logging.Logger
}

func NewLogSender(logger *logging.Logger) *LogSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSender{logger: logger}
}

func (l *LogSender) Send(ctx context.Context, body string) error {
	l.logger.Debug("lead event not queued", "bytes", len(body))
	return nil
}

// MemorySender keeps every message in process. Nothing drains it, so it is
// meant for tests.
type MemorySender struct {
	mu       sync.Mutex
	messages []string
}

func NewMemorySender() *MemorySender {
	return &MemorySender{}
}

func (m *MemorySender) Send(ctx context.Context, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, body)
	return nil
}

// Messages returns a copy of everything sent so far.
func (m *MemorySender) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}
