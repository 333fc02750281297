// Package store is the client-local persistence layer: the Go analogue of
// the browser's localStorage. It holds the bearer credential, the per-event
// advisory seat locks and the pending login intent. Everything here is
// scoped to one client installation and shared with nobody.
package store

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type Store struct {
	Credential CredentialStore
	Locks      LockStore
	Intent     IntentStore
}

func NewStore(fs afero.Fs, basePath string, log *zap.Logger) (*Store, error) {
	if err := fs.MkdirAll(basePath, 0700); err != nil {
		return nil, err
	}

	return &Store{
		Credential: NewCredentialStore(fs, basePath, log),
		Locks:      NewLockStore(fs, basePath, log),
		Intent:     NewIntentStore(fs, basePath, log),
	}, nil
}
