package entity

import (
	"strings"
	"time"
)

// PendingIntent is a deferred navigation target persisted across a login
// redirect. It replaces the old free-form hash string: a value object that
// is validated on read and consumed exactly once.
type PendingIntent struct {
	ID        string            `json:"id"`
	Route     string            `json:"route"`
	Params    map[string]string `json:"params,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Valid rejects malformed intents so a corrupted record can never drive a
// redirect. Invalid intents are discarded on read.
func (p *PendingIntent) Valid() bool {
	if p == nil {
		return false
	}
	if p.ID == "" {
		return false
	}
	return strings.HasPrefix(p.Route, "/")
}
