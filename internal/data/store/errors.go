package store

import "errors"

var (
	// ErrVersionConflict means another writer advanced the lock set between
	// our read and write. Callers re-read and retry.
	ErrVersionConflict = errors.New("lock set version conflict")
)
