package dualstore

import (
	"errors"

	"github.com/google/uuid"

	"github.com/dtroode/genoguard-server/internal/model"
)

// RemoteOutcome classifies a single call to the remote store.
type RemoteOutcome int

const (
	// RemoteSkipped means the remote store was not called (demo identities).
	RemoteSkipped RemoteOutcome = iota
	RemoteSucceeded
	RemoteEmpty
	RemoteFailed
)

func (o RemoteOutcome) String() string {
	switch o {
	case RemoteSkipped:
		return "skipped"
	case RemoteSucceeded:
		return "succeeded"
	case RemoteEmpty:
		return "empty"
	case RemoteFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Source tells which store served a read.
type Source int

const (
	SourceRemote Source = iota + 1
	SourceLocal
)

func (s Source) String() string {
	switch s {
	case SourceRemote:
		return "remote"
	case SourceLocal:
		return "local"
	default:
		return "unknown"
	}
}

// SaveTarget tells where a created record was persisted.
type SaveTarget int

const (
	SavedRemote SaveTarget = iota + 1
	// SavedLocal means the record was saved locally and cloud sync failed.
	SavedLocal
)

func (s SaveTarget) String() string {
	switch s {
	case SavedRemote:
		return "remote"
	case SavedLocal:
		return "local"
	default:
		return "unknown"
	}
}

// ReadResult is the answer of a read path.
type ReadResult[T any] struct {
	Items   []T
	Source  Source
	Outcome RemoteOutcome
}

// WriteResult is the answer of a create path.
type WriteResult[T any] struct {
	Record  T
	Saved   SaveTarget
	Outcome RemoteOutcome
	// RemoteErr is the swallowed remote failure when Saved is SavedLocal.
	RemoteErr error
}

// MigrationReport counts records pushed from the local cache to the remote store.
type MigrationReport struct {
	Success int
	Failed  int
}

func classifyList[T any](items []T, err error) RemoteOutcome {
	switch {
	case err != nil:
		return RemoteFailed
	case len(items) == 0:
		return RemoteEmpty
	default:
		return RemoteSucceeded
	}
}

// errNoConfirmation marks an insert that returned no error and no record.
var errNoConfirmation = errors.New("remote store returned no confirmed record")

func classifyInsert[T Record[T]](saved T, err error) (RemoteOutcome, error) {
	switch {
	case err != nil:
		return RemoteFailed, err
	case saved.RecordID() == uuid.Nil:
		return RemoteFailed, errNoConfirmation
	default:
		return RemoteSucceeded, nil
	}
}

// classifyDelete treats a record unknown to the remote store as deleted
// there: it may exist only in the local cache.
func classifyDelete(err error) RemoteOutcome {
	switch {
	case err == nil, errors.Is(err, model.ErrNotFound):
		return RemoteSucceeded
	default:
		return RemoteFailed
	}
}
