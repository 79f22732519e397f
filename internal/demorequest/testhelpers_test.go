package demorequest

import (
	"context"
	"errors"
	"sync"
	"time"
)

// scriptedRand replays fixed values so outputs are exact.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptedRand) Float64() float64 {
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptedRand) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)] % n
	s.ii++
	return v
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func validRequest() DemoRequest {
	return DemoRequest{
		CompanyName: "Acme",
		Industry:    "technology",
		CompanySize: "1-50",
		FullName:    "Jane Doe",
		JobTitle:    "CTO",
		Email:       "jane@acme.com",
	}
}

type recordingNotifier struct {
	mu       sync.Mutex
	demos    []StoredRequest
	contacts []string
	err      error
}

func (n *recordingNotifier) DemoRequestReceived(_ context.Context, rec StoredRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.demos = append(n.demos, rec)
	return n.err
}

func (n *recordingNotifier) ContactReceived(_ context.Context, id string, _ ContactMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contacts = append(n.contacts, id)
	return n.err
}

type recordingPublisher struct {
	published []StoredRequest
	err       error
}

func (p *recordingPublisher) PublishDemoRequest(_ context.Context, rec StoredRequest) error {
	p.published = append(p.published, rec)
	return p.err
}

type failingStore struct{}

func (failingStore) Append(context.Context, StoredRequest) error {
	return errors.New("boom")
}

func (failingStore) List(context.Context) ([]StoredRequest, error) {
	return nil, errors.New("boom")
}
