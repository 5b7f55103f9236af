// Package dualstore keeps one record kind in a remote store with the local
// cache as fallback. Every remote call is a single attempt: a failure
// degrades to the cache without retries, and the remote wins again on the
// next successful read. The two stores are never merged.
package dualstore

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/genoguard-server/internal/background"
	"github.com/dtroode/genoguard-server/internal/logger"
	"github.com/dtroode/genoguard-server/internal/model"
)

// Record is a cached entity identified by a uuid.
type Record[T any] interface {
	RecordID() uuid.UUID
	WithID(id uuid.UUID) T
}

// RemoteStore is the authoritative store scoped by owner.
type RemoteStore[T any] interface {
	List(ctx context.Context, owner uuid.UUID) ([]T, error)
	Insert(ctx context.Context, owner uuid.UUID, record T) (T, error)
	Delete(ctx context.Context, owner uuid.UUID, id uuid.UUID) error
}

// Scheduler runs best-effort background tasks.
type Scheduler interface {
	Go(name string, task background.Task) error
}

// Recorder observes sync decisions.
type Recorder interface {
	ObserveRemote(collection, op, outcome string)
	ObserveRead(collection, source string)
	ObserveLocalSave(collection string)
}

// AfterCreate runs in the background once a record is confirmed remotely.
type AfterCreate[T any] func(ctx context.Context, owner uuid.UUID, record T) error

// EmptyPolicy decides what an empty remote list means.
type EmptyPolicy int

const (
	// FallbackToCache serves the cache when the remote list is empty.
	FallbackToCache EmptyPolicy = iota
	// TrustRemote serves the empty list and clears the cache entry.
	TrustRemote
)

// Options configure a Collection.
type Options[T any] struct {
	// Name is used in logs, metrics and as the cache key suffix.
	Name        string
	Remote      RemoteStore[T]
	Cache       model.LocalCache
	Scheduler   Scheduler
	Logger      *logger.Logger
	Recorder    Recorder
	EmptyPolicy EmptyPolicy
	AfterCreate AfterCreate[T]
}

// Collection is the dual-store accessor for one record kind.
type Collection[T Record[T]] struct {
	name        string
	remote      RemoteStore[T]
	cache       model.LocalCache
	scheduler   Scheduler
	logger      *logger.Logger
	recorder    Recorder
	emptyPolicy EmptyPolicy
	afterCreate AfterCreate[T]

	mu      sync.Mutex
	entries map[string]*entryState
}

// entryState serializes read-modify-write of one cache key. gen counts
// writes so a queued cache mirror can tell its snapshot went stale.
// push serializes PushLocal calls for the key without blocking its readers.
type entryState struct {
	mu   sync.Mutex
	gen  uint64
	push sync.Mutex
}

// New creates a Collection.
func New[T Record[T]](opts Options[T]) *Collection[T] {
	rec := opts.Recorder
	if rec == nil {
		rec = noopRecorder{}
	}

	return &Collection[T]{
		name:        opts.Name,
		remote:      opts.Remote,
		cache:       opts.Cache,
		scheduler:   opts.Scheduler,
		logger:      opts.Logger.With("collection", opts.Name),
		recorder:    rec,
		emptyPolicy: opts.EmptyPolicy,
		afterCreate: opts.AfterCreate,
		entries:     make(map[string]*entryState),
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Key returns the cache key holding the identity's records.
func (c *Collection[T]) Key(identity model.Identity) string {
	return CacheKey(identity.CacheScope(), c.name)
}

// CacheKey builds the cache key for a scope and collection name.
func CacheKey(scope, name string) string {
	return scope + ":" + name
}

// List returns the identity's records, falling back to the cache when the
// remote store fails or, under FallbackToCache, returns nothing.
func (c *Collection[T]) List(ctx context.Context, identity model.Identity) (ReadResult[T], error) {
	if identity.Demo {
		return c.ListLocal(ctx, identity)
	}
	if !identity.Authenticated() {
		return ReadResult[T]{}, model.ErrUnauthenticated
	}

	key := c.Key(identity)
	// taken before the remote call: a local write racing with it wins
	gen := c.generation(key)

	items, err := c.remote.List(ctx, identity.UserID)
	outcome := classifyList(items, err)
	c.recorder.ObserveRemote(c.name, "list", outcome.String())

	switch outcome {
	case RemoteSucceeded:
		c.mirrorToCache(key, gen, items)
		return c.served(ReadResult[T]{Items: items, Source: SourceRemote, Outcome: outcome}), nil
	case RemoteEmpty:
		if c.emptyPolicy == TrustRemote {
			c.mirrorToCache(key, gen, []T{})
			return c.served(ReadResult[T]{Items: []T{}, Source: SourceRemote, Outcome: outcome}), nil
		}
		c.logger.Debug("Dual store: remote list empty, reading cache")
	case RemoteFailed:
		c.logger.Warn("Dual store: remote list failed, reading cache", "error", err)
	}

	local := c.readCache(ctx, key)
	return c.served(ReadResult[T]{Items: local, Source: SourceLocal, Outcome: outcome}), nil
}

// ListLocal returns the identity's cached records without calling the remote store.
func (c *Collection[T]) ListLocal(ctx context.Context, identity model.Identity) (ReadResult[T], error) {
	items := c.readCache(ctx, c.Key(identity))
	return c.served(ReadResult[T]{Items: items, Source: SourceLocal, Outcome: RemoteSkipped}), nil
}

// Create inserts record remotely, or appends it to the cache when the remote
// insert fails. Only a failed cache write is returned as an error.
func (c *Collection[T]) Create(ctx context.Context, identity model.Identity, record T) (WriteResult[T], error) {
	if identity.Demo {
		return c.CreateLocal(ctx, identity, record)
	}
	if !identity.Authenticated() {
		return WriteResult[T]{}, model.ErrUnauthenticated
	}

	saved, err := c.remote.Insert(ctx, identity.UserID, record)
	outcome, err := classifyInsert(saved, err)
	c.recorder.ObserveRemote(c.name, "insert", outcome.String())

	switch outcome {
	case RemoteSucceeded:
		c.scheduleAfterCreate(identity.UserID, saved)
		return WriteResult[T]{Record: saved, Saved: SavedRemote, Outcome: outcome}, nil
	default:
		c.logger.Warn("Dual store: remote insert failed, saving locally", "error", err)
	}

	local, lerr := c.CreateLocal(ctx, identity, record)
	if lerr != nil {
		return WriteResult[T]{}, lerr
	}
	local.Outcome = outcome
	local.RemoteErr = err
	return local, nil
}

// CreateLocal appends record to the identity's cache list. A record without
// an id gets a time-ordered one.
func (c *Collection[T]) CreateLocal(ctx context.Context, identity model.Identity, record T) (WriteResult[T], error) {
	if record.RecordID() == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return WriteResult[T]{}, fmt.Errorf("failed to generate record id: %w", err)
		}
		record = record.WithID(id)
	}

	key := c.Key(identity)
	err := c.update(ctx, key, func(items []T) []T {
		return append(items, record)
	})
	if err != nil {
		return WriteResult[T]{}, err
	}

	c.recorder.ObserveLocalSave(c.name)
	return WriteResult[T]{Record: record, Saved: SavedLocal, Outcome: RemoteSkipped}, nil
}

// Delete removes id from both stores and returns the resulting list. When
// the remote delete fails the filtered cache list is returned.
func (c *Collection[T]) Delete(ctx context.Context, identity model.Identity, id uuid.UUID) (ReadResult[T], error) {
	if identity.Demo {
		return c.DeleteLocal(ctx, identity, id)
	}
	if !identity.Authenticated() {
		return ReadResult[T]{}, model.ErrUnauthenticated
	}

	err := c.remote.Delete(ctx, identity.UserID, id)
	outcome := classifyDelete(err)
	c.recorder.ObserveRemote(c.name, "delete", outcome.String())

	switch outcome {
	case RemoteSucceeded:
		// a later fallback read must not resurrect the record
		if _, err := c.removeLocal(ctx, identity, id); err != nil {
			c.logger.Warn("Dual store: failed to scrub cache after remote delete", "error", err)
		}
		return c.List(ctx, identity)
	default:
		c.logger.Warn("Dual store: remote delete failed, deleting locally", "error", err)
	}

	res, lerr := c.DeleteLocal(ctx, identity, id)
	if lerr != nil {
		return ReadResult[T]{}, lerr
	}
	res.Outcome = outcome
	return res, nil
}

// DeleteLocal removes id from the identity's cache list.
func (c *Collection[T]) DeleteLocal(ctx context.Context, identity model.Identity, id uuid.UUID) (ReadResult[T], error) {
	items, err := c.removeLocal(ctx, identity, id)
	if err != nil {
		return ReadResult[T]{}, err
	}
	return c.served(ReadResult[T]{Items: items, Source: SourceLocal, Outcome: RemoteSkipped}), nil
}

// PushLocal inserts every cached record of the identity into the remote
// store. Pushed records leave the cache; failed ones stay for a later push.
// The cache entry is not locked during the remote inserts, so records saved
// locally meanwhile are kept.
func (c *Collection[T]) PushLocal(ctx context.Context, identity model.Identity) (MigrationReport, error) {
	if !identity.Authenticated() {
		return MigrationReport{}, model.ErrUnauthenticated
	}

	key := c.Key(identity)
	e := c.entry(key)
	e.push.Lock()
	defer e.push.Unlock()

	items, err := c.snapshot(ctx, key)
	if err != nil {
		return MigrationReport{}, err
	}

	var report MigrationReport
	pushed := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		saved, err := c.remote.Insert(ctx, identity.UserID, item)
		outcome, err := classifyInsert(saved, err)
		c.recorder.ObserveRemote(c.name, "push", outcome.String())
		if outcome != RemoteSucceeded {
			c.logger.Warn("Dual store: failed to push local record", "id", item.RecordID(), "error", err)
			report.Failed++
			continue
		}
		report.Success++
		pushed[item.RecordID()] = struct{}{}
		c.scheduleAfterCreate(identity.UserID, saved)
	}

	if len(pushed) > 0 {
		err = c.update(ctx, key, func(current []T) []T {
			return slices.DeleteFunc(current, func(item T) bool {
				_, ok := pushed[item.RecordID()]
				return ok
			})
		})
		if err != nil {
			return report, err
		}
	}

	c.logger.Info("Dual store: pushed local records", "success", report.Success, "failed", report.Failed)
	return report, nil
}

func (c *Collection[T]) removeLocal(ctx context.Context, identity model.Identity, id uuid.UUID) ([]T, error) {
	var filtered []T
	err := c.update(ctx, c.Key(identity), func(items []T) []T {
		filtered = slices.DeleteFunc(items, func(item T) bool {
			return item.RecordID() == id
		})
		return filtered
	})
	return filtered, err
}

func (c *Collection[T]) served(res ReadResult[T]) ReadResult[T] {
	if res.Items == nil {
		res.Items = []T{}
	}
	c.recorder.ObserveRead(c.name, res.Source.String())
	return res
}

// mirrorToCache overwrites the cache entry with items unless the entry was
// written after gen was taken.
func (c *Collection[T]) mirrorToCache(key string, gen uint64, items []T) {
	snapshot := slices.Clone(items)
	err := c.scheduler.Go("cache-mirror:"+c.name, func(ctx context.Context) error {
		e := c.entry(key)
		e.mu.Lock()
		defer e.mu.Unlock()

		if e.gen != gen {
			c.logger.Debug("Dual store: stale cache mirror skipped", "key", key)
			return nil
		}
		return c.store(ctx, e, key, snapshot)
	})
	if err != nil {
		c.logger.Warn("Dual store: cache mirror not scheduled", "error", err)
	}
}

func (c *Collection[T]) scheduleAfterCreate(owner uuid.UUID, record T) {
	if c.afterCreate == nil {
		return
	}
	err := c.scheduler.Go("after-create:"+c.name, func(ctx context.Context) error {
		return c.afterCreate(ctx, owner, record)
	})
	if err != nil {
		c.logger.Warn("Dual store: after-create hook not scheduled", "error", err)
	}
}

// readCache returns the cached list; absent, unreadable or malformed
// content reads as empty.
func (c *Collection[T]) readCache(ctx context.Context, key string) []T {
	items, err := c.snapshot(ctx, key)
	if err != nil {
		c.logger.Error("Dual store: failed to read cache", "key", key, "error", err)
		return []T{}
	}
	return items
}

// entry returns the lock state of key, creating it on first use.
func (c *Collection[T]) entry(key string) *entryState {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entryState{}
		c.entries[key] = e
	}
	return e
}

func (c *Collection[T]) generation(key string) uint64 {
	e := c.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen
}

// snapshot loads the cached list under the entry lock.
func (c *Collection[T]) snapshot(ctx context.Context, key string) ([]T, error) {
	e := c.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	return c.load(ctx, key)
}

// update applies fn to the cached list under the entry lock and persists
// the result.
func (c *Collection[T]) update(ctx context.Context, key string, fn func([]T) []T) error {
	e := c.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()

	items, err := c.load(ctx, key)
	if err != nil {
		return err
	}
	return c.store(ctx, e, key, fn(items))
}

// store must be called with e.mu held. Any attempted write invalidates
// pending cache mirrors, even a failed one.
func (c *Collection[T]) store(ctx context.Context, e *entryState, key string, items []T) error {
	e.gen++
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := c.cache.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// load must be called with the entry lock held. Malformed content is logged
// and reads as empty.
func (c *Collection[T]) load(ctx context.Context, key string) ([]T, error) {
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.logger.Warn("Dual store: malformed cache entry ignored", "key", key, "error", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

type noopRecorder struct{}

func (noopRecorder) ObserveRemote(string, string, string) {}
func (noopRecorder) ObserveRead(string, string)           {}
func (noopRecorder) ObserveLocalSave(string)              {}
