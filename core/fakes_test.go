package core

import (
	"context"
	"sync"

	"pkt.systems/repoclone/schema"
)

type fakeConnections struct {
	accounts []schema.Account
	err      error
}

func (f fakeConnections) ListConnections(context.Context) ([]schema.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]schema.Account(nil), f.accounts...), nil
}

func connectionsFor(hosts ...string) fakeConnections {
	accounts := make([]schema.Account, 0, len(hosts))
	for _, host := range hosts {
		accounts = append(accounts, schema.Account{Host: schema.HostAddress(host)})
	}
	return fakeConnections{accounts: accounts}
}

type fakeTab struct {
	mu            sync.Mutex
	initCalls     []schema.Account
	activateCalls int
	initErr       error
	activateErr   error
	initGate      chan struct{}
	initializing  chan struct{}
	activateGate  chan struct{}
	activating    chan struct{}
	repo          *schema.Repository
	observers     []func(*schema.Repository)
	closed        bool
}

func (f *fakeTab) Initialize(_ context.Context, account schema.Account) error {
	f.mu.Lock()
	f.initCalls = append(f.initCalls, account)
	gate := f.initGate
	started := f.initializing
	err := f.initErr
	f.mu.Unlock()
	if gate != nil {
		if started != nil {
			started <- struct{}{}
		}
		<-gate
	}
	return err
}

func (f *fakeTab) Activate(context.Context) error {
	f.mu.Lock()
	f.activateCalls++
	gate := f.activateGate
	started := f.activating
	err := f.activateErr
	f.mu.Unlock()
	if gate != nil {
		if started != nil {
			started <- struct{}{}
		}
		<-gate
	}
	return err
}

func (f *fakeTab) Repository() *schema.Repository {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.repo
}

func (f *fakeTab) OnRepositoryChanged(fn func(*schema.Repository)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observers = append(f.observers, fn)
}

func (f *fakeTab) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeTab) setRepository(repo *schema.Repository) {
	f.mu.Lock()
	f.repo = repo
	observers := make([]func(*schema.Repository), len(f.observers))
	copy(observers, f.observers)
	f.mu.Unlock()
	for _, fn := range observers {
		fn(repo)
	}
}

func (f *fakeTab) initializeCalls() []schema.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]schema.Account(nil), f.initCalls...)
}

func (f *fakeTab) activations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activateCalls
}

type fakeCloneService struct {
	base     string
	existing map[string]bool
}

func (f fakeCloneService) DefaultClonePath() string {
	return f.base
}

func (f fakeCloneService) DestinationExists(path string) bool {
	return f.existing[path]
}

type fakeCloner struct {
	mu       sync.Mutex
	requests []CloneRequest
	err      error
}

func (f *fakeCloner) Clone(_ context.Context, req CloneRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.err
}

type recordingSink struct {
	mu     sync.Mutex
	events []schema.CoordinatorEvent
}

func (r *recordingSink) OnCoordinatorEvent(event schema.CoordinatorEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingSink) ofType(eventType schema.CoordinatorEventType) []schema.CoordinatorEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []schema.CoordinatorEvent
	for _, event := range r.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

func repository(owner, name string) *schema.Repository {
	return &schema.Repository{Owner: owner, Name: name}
}

// reentrantCloneService reads coordinator state from inside each destination
// check, so a check made under the coordinator lock deadlocks.
type reentrantCloneService struct {
	base        string
	coordinator *Coordinator
	mu          sync.Mutex
	checks      int
}

func (s *reentrantCloneService) DefaultClonePath() string {
	return s.base
}

func (s *reentrantCloneService) DestinationExists(string) bool {
	s.mu.Lock()
	s.checks++
	c := s.coordinator
	s.mu.Unlock()
	if c != nil {
		_ = c.PathError()
	}
	return false
}

func (s *reentrantCloneService) attach(c *Coordinator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coordinator = c
}

func (s *reentrantCloneService) checkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checks
}

// gatedCloneService blocks the destination check of one path until gate closes.
type gatedCloneService struct {
	base     string
	gatePath string
	gate     chan struct{}
	started  chan struct{}
}

func (s *gatedCloneService) DefaultClonePath() string {
	return s.base
}

func (s *gatedCloneService) DestinationExists(path string) bool {
	if path == s.gatePath {
		s.started <- struct{}{}
		<-s.gate
	}
	return false
}
