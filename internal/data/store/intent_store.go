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

const intentFile = "pending-intent.json"

// IntentStore persists the post-login "continue booking" target. The
// intent survives the redirect to login and is consumed exactly once:
// Consume removes the record before handing it back, and a malformed
// record is discarded rather than returned.
type IntentStore interface {
	Save(intent *entity.PendingIntent) error
	Consume() (*entity.PendingIntent, error)
}

type intentStore struct {
	fs   afero.Fs
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

func NewIntentStore(fs afero.Fs, basePath string, log *zap.Logger) IntentStore {
	return &intentStore{
		fs:   fs,
		path: filepath.Join(basePath, intentFile),
		log:  log.With(zap.String("store", "intent")),
	}
}

func (s *intentStore) Save(intent *entity.PendingIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !intent.Valid() {
		return fmt.Errorf("save pending intent: invalid intent")
	}

	data, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("encode pending intent: %w", err)
	}

	if err := afero.WriteFile(s.fs, s.path, data, 0600); err != nil {
		s.log.Error("Failed to persist pending intent", zap.Error(err))
		return fmt.Errorf("save pending intent: %w", err)
	}

	return nil
}

// Consume returns the stored intent and removes it. A second call returns
// nil. Malformed records are dropped silently apart from a log line.
func (s *intentStore) Consume() (*entity.PendingIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read pending intent: %w", err)
	}

	// Remove before returning so the intent can never be replayed.
	if err := s.fs.Remove(s.path); err != nil {
		s.log.Warn("Failed to remove consumed intent", zap.Error(err))
	}

	var intent entity.PendingIntent
	if err := json.Unmarshal(data, &intent); err != nil {
		s.log.Warn("Discarding malformed pending intent", zap.Error(err))
		return nil, nil
	}

	if !intent.Valid() {
		s.log.Warn("Discarding invalid pending intent", zap.String("route", intent.Route))
		return nil, nil
	}

	return &intent, nil
}
