package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"eventora-client/internal/data/entity"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// LockStore keeps the per-event advisory lock sets. Writes are
// compare-and-swap on a version counter so two local writers (think: two
// tabs) cannot silently overwrite each other. The store is advisory only:
// it never blocks a booking attempt, and reads degrade to an empty set on
// any failure.
type LockStore interface {
	Read(eventID string) (entity.LockSet, error)
	Write(set entity.LockSet, expectedVersion uint64) (entity.LockSet, error)
}

type lockStore struct {
	fs   afero.Fs
	base string
	log  *zap.Logger
	mu   sync.Mutex
}

func NewLockStore(fs afero.Fs, basePath string, log *zap.Logger) LockStore {
	return &lockStore{
		fs:   fs,
		base: basePath,
		log:  log.With(zap.String("store", "locks")),
	}
}

func (s *lockStore) file(eventID string) string {
	return filepath.Join(s.base, fmt.Sprintf("event-%s-locks.json", eventID))
}

// Read returns the advisory lock set for an event. Missing or corrupted
// records read as an empty set: fail-open, never fail-closed to blocking.
func (s *lockStore) Read(eventID string) (entity.LockSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readLocked(eventID), nil
}

func (s *lockStore) readLocked(eventID string) entity.LockSet {
	empty := entity.LockSet{EventID: eventID}

	data, err := afero.ReadFile(s.fs, s.file(eventID))
	if os.IsNotExist(err) {
		return empty
	}
	if err != nil {
		s.log.Warn("Advisory lock read failed, treating as empty",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return empty
	}

	var set entity.LockSet
	if err := json.Unmarshal(data, &set); err != nil {
		s.log.Warn("Advisory lock record corrupted, treating as empty",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return empty
	}

	set.EventID = eventID
	return set
}

// Write persists the given seats under version expectedVersion+1. It fails
// with ErrVersionConflict when the stored version no longer matches, in
// which case the caller re-reads and retries. The returned set carries the
// new version. The write is synchronous: when Write returns, the record is
// on disk.
func (s *lockStore) Write(set entity.LockSet, expectedVersion uint64) (entity.LockSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.readLocked(set.EventID)
	if current.Version != expectedVersion {
		return entity.LockSet{}, fmt.Errorf("write locks for event %s: %w", set.EventID, ErrVersionConflict)
	}

	next := set.Snapshot()
	next.Version = expectedVersion + 1

	data, err := json.Marshal(next)
	if err != nil {
		return entity.LockSet{}, fmt.Errorf("encode locks for event %s: %w", set.EventID, err)
	}

	// Write-then-rename keeps a crashed write from corrupting the record.
	tmp := s.file(set.EventID) + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0600); err != nil {
		return entity.LockSet{}, fmt.Errorf("write locks for event %s: %w", set.EventID, err)
	}
	if err := s.fs.Rename(tmp, s.file(set.EventID)); err != nil {
		return entity.LockSet{}, fmt.Errorf("write locks for event %s: %w", set.EventID, err)
	}

	return next, nil
}
