package dualstore

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/genoguard-server/internal/background"
	"github.com/dtroode/genoguard-server/internal/model"
)

var errUnreachable = errors.New("remote unreachable")

// memoryCache is an in-memory model.LocalCache.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	setErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = value
	return nil
}

// fakeRemote is a RemoteStore of test records that can be switched offline.
type fakeRemote struct {
	mu        sync.Mutex
	records   map[uuid.UUID][]testRecord
	offline   bool
	calls     int
	noConfirm bool
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{records: make(map[uuid.UUID][]testRecord)}
}

func (f *fakeRemote) List(_ context.Context, owner uuid.UUID) ([]testRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.offline {
		return nil, errUnreachable
	}
	// newest first
	out := slices.Clone(f.records[owner])
	slices.Reverse(out)
	return out, nil
}

func (f *fakeRemote) Insert(_ context.Context, owner uuid.UUID, r testRecord) (testRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.offline {
		return testRecord{}, errUnreachable
	}
	if f.noConfirm {
		return testRecord{}, nil
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.Owner = owner
	r.Confirmed = true
	f.records[owner] = append(f.records[owner], r)
	return r, nil
}

func (f *fakeRemote) Delete(_ context.Context, owner uuid.UUID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.offline {
		return errUnreachable
	}
	before := len(f.records[owner])
	f.records[owner] = slices.DeleteFunc(f.records[owner], func(r testRecord) bool { return r.ID == id })
	if len(f.records[owner]) == before {
		return model.ErrNotFound
	}
	return nil
}

func (f *fakeRemote) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// inlineScheduler runs tasks synchronously and keeps their errors.
type inlineScheduler struct {
	mu   sync.Mutex
	errs []error
}

func (s *inlineScheduler) Go(_ string, task background.Task) error {
	err := task(context.Background())
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errs = append(s.errs, err)
	}
	return nil
}

type testRecord struct {
	ID        uuid.UUID `json:"id"`
	Owner     uuid.UUID `json:"owner"`
	Name      string    `json:"name"`
	Mutations []string  `json:"mutations,omitempty"`
	Confirmed bool      `json:"confirmed"`
}

func (r testRecord) RecordID() uuid.UUID { return r.ID }

func (r testRecord) WithID(id uuid.UUID) testRecord {
	r.ID = id
	return r
}

type countingRecorder struct {
	mu         sync.Mutex
	remote     map[string]int
	reads      map[string]int
	localSaves int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{remote: map[string]int{}, reads: map[string]int{}}
}

func (c *countingRecorder) ObserveRemote(_, op, outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remote[op+":"+outcome]++
}

func (c *countingRecorder) ObserveRead(_, source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads[source]++
}

func (c *countingRecorder) ObserveLocalSave(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.localSaves++
}

// deferredScheduler queues tasks until drain is called.
type deferredScheduler struct {
	mu    sync.Mutex
	tasks []background.Task
}

func (s *deferredScheduler) Go(_ string, task background.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	return nil
}

func (s *deferredScheduler) drain() {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	for _, task := range tasks {
		_ = task(context.Background())
	}
}

// stallingRemote fails every list and holds inserts until release is closed.
type stallingRemote struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newStallingRemote() *stallingRemote {
	return &stallingRemote{entered: make(chan struct{}), release: make(chan struct{})}
}

func (s *stallingRemote) List(context.Context, uuid.UUID) ([]testRecord, error) {
	return nil, errUnreachable
}

func (s *stallingRemote) Insert(ctx context.Context, owner uuid.UUID, r testRecord) (testRecord, error) {
	s.once.Do(func() { close(s.entered) })
	select {
	case <-s.release:
	case <-ctx.Done():
		return testRecord{}, ctx.Err()
	}
	r.Owner = owner
	r.Confirmed = true
	return r, nil
}

func (s *stallingRemote) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return errUnreachable
}
