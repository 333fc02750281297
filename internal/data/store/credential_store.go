package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const credentialFile = "credential"

// CredentialStore persists the bearer credential across restarts, the way
// the browser kept its token in localStorage.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type credentialStore struct {
	fs   afero.Fs
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

func NewCredentialStore(fs afero.Fs, basePath string, log *zap.Logger) CredentialStore {
	return &credentialStore{
		fs:   fs,
		path: filepath.Join(basePath, credentialFile),
		log:  log.With(zap.String("store", "credential")),
	}
}

// Load returns the stored credential, or empty when none is present.
func (s *credentialStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load credential: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

func (s *credentialStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		return fmt.Errorf("save credential: empty token")
	}

	if err := afero.WriteFile(s.fs, s.path, []byte(token), 0600); err != nil {
		s.log.Error("Failed to persist credential", zap.Error(err))
		return fmt.Errorf("save credential: %w", err)
	}

	return nil
}

func (s *credentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.fs.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		s.log.Error("Failed to clear credential", zap.Error(err))
		return fmt.Errorf("clear credential: %w", err)
	}

	return nil
}
