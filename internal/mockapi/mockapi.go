// Package mockapi simulates the demo-request backend in process, with
// artificial latency, for development and tests.
package mockapi

import (
	"context"
	"time"

	"github.com/wolfman30/onboardai/internal/demorequest"
	"github.com/wolfman30/onboardai/pkg/logging"
)

// Simulated latency per operation.
const (
	SubmitLatency       = 1500 * time.Millisecond
	IndustriesLatency   = 500 * time.Millisecond
	CompanySizesLatency = 300 * time.Millisecond
	TimeSlotsLatency    = 400 * time.Millisecond
	ListLatency         = 800 * time.Millisecond
	ContactLatency      = 1000 * time.Millisecond
)

// Sleeper blocks for d. The default is time.Sleep; the delay is not tied to
// the caller's context and always runs to completion.
type Sleeper func(d time.Duration)

// NoDelay skips simulated latency.
func NoDelay(time.Duration) {}

// Options configures a Transport. Zero values pick sensible defaults.
type Options struct {
	Store   demorequest.Store
	Random  demorequest.RandomSource
	Clock   func() time.Time
	Sleep   Sleeper
	Logger  *logging.Logger
	Service []demorequest.ServiceOption
}

// Transport is the in-memory backend stand-in.
type Transport struct {
	svc   *demorequest.Service
	sleep Sleeper
}

// New creates a mock transport. Each Transport owns its store, so tests get
// isolated state by creating a new one.
func New(opts Options) *Transport {
	if opts.Store == nil {
		opts.Store = demorequest.NewMemoryStore()
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	svcOpts := append([]demorequest.ServiceOption{
		demorequest.WithRandom(opts.Random),
		demorequest.WithClock(opts.Clock),
	}, opts.Service...)

	return &Transport{
		svc:   demorequest.NewService(opts.Store, opts.Logger.With("transport", "mock"), svcOpts...),
		sleep: opts.Sleep,
	}
}

// SubmitDemoRequest simulates POST /demo-requests.
func (t *Transport) SubmitDemoRequest(ctx context.Context, req demorequest.DemoRequest) (*demorequest.Result, error) {
	t.sleep(SubmitLatency)
	return t.svc.Submit(ctx, req)
}

// Industries simulates GET /industries.
func (t *Transport) Industries(ctx context.Context) ([]demorequest.Industry, error) {
	t.sleep(IndustriesLatency)
	return t.svc.Industries(ctx)
}

// CompanySizes simulates GET /company-sizes.
func (t *Transport) CompanySizes(ctx context.Context) ([]demorequest.CompanySize, error) {
	t.sleep(CompanySizesLatency)
	return t.svc.CompanySizes(ctx)
}

// TimeSlots simulates GET /timeslots?date=.
func (t *Transport) TimeSlots(ctx context.Context, date string) ([]demorequest.TimeSlot, error) {
	t.sleep(TimeSlotsLatency)
	return t.svc.TimeSlots(ctx, date)
}

// SubmitContact simulates POST /contact.
func (t *Transport) SubmitContact(ctx context.Context, msg demorequest.ContactMessage) (*demorequest.ContactResult, error) {
	t.sleep(ContactLatency)
	return t.svc.SubmitContact(ctx, msg)
}

// DemoRequests returns a snapshot of everything submitted so far.
func (t *Transport) DemoRequests(ctx context.Context) ([]demorequest.StoredRequest, error) {
	t.sleep(ListLatency)
	return t.svc.DemoRequests(ctx)
}
