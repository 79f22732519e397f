// Package demoapi is the single entry point the form uses to talk to the
// demo-request backend. It picks the mock or live transport once, at
// construction, and forwards every call to it.
package demoapi

import (
	"context"
	"time"

	"github.com/wolfman30/onboardai/internal/apiclient"
	"github.com/wolfman30/onboardai/internal/demorequest"
	"github.com/wolfman30/onboardai/internal/mockapi"
	"github.com/wolfman30/onboardai/internal/observability/metrics"
	"github.com/wolfman30/onboardai/pkg/logging"
)

// Transport is satisfied by both the mock and the live backends.
type Transport interface {
	SubmitDemoRequest(ctx context.Context, req demorequest.DemoRequest) (*demorequest.Result, error)
	Industries(ctx context.Context) ([]demorequest.Industry, error)
	CompanySizes(ctx context.Context) ([]demorequest.CompanySize, error)
	TimeSlots(ctx context.Context, date string) ([]demorequest.TimeSlot, error)
	SubmitContact(ctx context.Context, msg demorequest.ContactMessage) (*demorequest.ContactResult, error)
}

var (
	_ Transport = (*mockapi.Transport)(nil)
	_ Transport = (*apiclient.Client)(nil)
)

const (
	TransportMock = "mock"
	TransportLive = "live"
)

// Options configures NewService.
type Options struct {
	UseMock bool
	Mock    mockapi.Options
	Live    apiclient.Config
	Metrics *metrics.DemoRequestMetrics
	Logger  *logging.Logger
}

// Service forwards calls to the selected transport.
type Service struct {
	transport Transport
	name      string
	metrics   *metrics.DemoRequestMetrics
	logger    *logging.Logger
}

// NewService builds the selected transport. The choice is fixed for the
// lifetime of the Service.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	if opts.UseMock {
		if opts.Mock.Logger == nil {
			opts.Mock.Logger = logger
		}
		logger.Debug("demo api transport selected", "transport", TransportMock)
		return newWithTransport(mockapi.New(opts.Mock), TransportMock, opts.Metrics, logger)
	}

	logger.Debug("demo api transport selected",
		"transport", TransportLive,
		"base_url", opts.Live.BaseURL,
		"timeout", opts.Live.Timeout.String(),
	)
	return newWithTransport(apiclient.New(opts.Live, logger), TransportLive, opts.Metrics, logger)
}

// NewWithTransport wraps an arbitrary transport, labelled name in metrics.
func NewWithTransport(t Transport, name string, m *metrics.DemoRequestMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return newWithTransport(t, name, m, logger)
}

func newWithTransport(t Transport, name string, m *metrics.DemoRequestMetrics, logger *logging.Logger) *Service {
	return &Service{transport: t, name: name, metrics: m, logger: logger}
}

// TransportName reports which backend is in use.
func (s *Service) TransportName() string {
	return s.name
}

// SubmitDemoRequest forwards to the transport. Errors pass through unchanged.
func (s *Service) SubmitDemoRequest(ctx context.Context, req demorequest.DemoRequest) (*demorequest.Result, error) {
	start := time.Now()
	result, err := s.transport.SubmitDemoRequest(ctx, req)
	s.metrics.ObserveSubmission(s.name, outcomeOf(err), time.Since(start))
	if err != nil {
		s.logger.Debug("demo request submission failed", "transport", s.name, "error", err)
		return nil, err
	}
	s.logger.Debug("demo request submitted", "transport", s.name, "request_id", result.RequestID)
	return result, nil
}

func (s *Service) GetIndustries(ctx context.Context) ([]demorequest.Industry, error) {
	s.metrics.ObserveCatalog(s.name, "industries")
	return s.transport.Industries(ctx)
}

func (s *Service) GetCompanySizes(ctx context.Context) ([]demorequest.CompanySize, error) {
	s.metrics.ObserveCatalog(s.name, "company_sizes")
	return s.transport.CompanySizes(ctx)
}

// GetTimeSlots returns slots for date; an empty date returns the base list.
func (s *Service) GetTimeSlots(ctx context.Context, date string) ([]demorequest.TimeSlot, error) {
	s.metrics.ObserveCatalog(s.name, "timeslots")
	return s.transport.TimeSlots(ctx, date)
}

func (s *Service) SubmitContact(ctx context.Context, msg demorequest.ContactMessage) (*demorequest.ContactResult, error) {
	return s.transport.SubmitContact(ctx, msg)
}

func outcomeOf(err error) string {
	if err == nil {
		return "success"
	}
	if apiErr, ok := demorequest.AsAPIError(err); ok {
		return string(apiErr.Code)
	}
	return "error"
}
