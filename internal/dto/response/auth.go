package response

import (
	"encoding/json"

	"eventora-client/internal/data/entity"
)

// AuthView is returned by the credential-issuing endpoints. Resume carries
// the consumed pending intent so the UI can pick up an interrupted
// booking; it is present at most once per stored intent.
type AuthView struct {
	Token  string                `json:"token,omitempty"`
	Data   json.RawMessage       `json:"user,omitempty"`
	Resume *entity.PendingIntent `json:"resume,omitempty"`
}
