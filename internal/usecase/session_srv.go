package usecase

import (
	"fmt"
	"strings"
	"time"

	"eventora-client/internal/data/entity"
	"eventora-client/internal/data/store"
	"eventora-client/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SessionService is the explicit session object the rest of the client
// works against: credential lifecycle, the deferred "continue booking"
// intent, and the single-shot unauthorized handling. There is no ambient
// global token anywhere else in the codebase.
type SessionService interface {
	// Credential returns the stored bearer token. A token that parses as a
	// JWT with an elapsed expiry is treated as absent and cleared.
	Credential() (string, bool)
	Authenticated() bool

	// EnsureAuthenticated persists a PendingIntent for the given target and
	// returns ErrUnauthenticated when no usable credential is present.
	EnsureAuthenticated(route string, params map[string]string) error

	SaveCredential(token string) error
	Clear() error

	// ConsumeIntent hands back the pending intent at most once.
	ConsumeIntent() *entity.PendingIntent

	// HandleUnauthorized is the gateway's 401 hook.
	HandleUnauthorized()
}

type sessionService struct {
	creds   store.CredentialStore
	intents store.IntentStore
	log     *zap.Logger
	now     func() time.Time

	// onCredentialSaved re-arms the gateway's 401 latch; bound at wiring.
	onCredentialSaved func()
}

func NewSessionService(creds store.CredentialStore, intents store.IntentStore, log *zap.Logger) *sessionService {
	return &sessionService{
		creds:   creds,
		intents: intents,
		log:     log.With(zap.String("service", "session")),
		now:     time.Now,
	}
}

// BindCredentialSavedHook wires the gateway's latch reset. Called once
// during dependency wiring.
func (s *sessionService) BindCredentialSavedHook(fn func()) {
	s.onCredentialSaved = fn
}

func (s *sessionService) Credential() (string, bool) {
	token, err := s.creds.Load()
	if err != nil {
		s.log.Warn("Failed to load credential", zap.Error(err))
		return "", false
	}
	if token == "" {
		return "", false
	}

	if s.expired(token) {
		s.log.Info("Stored credential expired, clearing")
		if err := s.creds.Clear(); err != nil {
			s.log.Warn("Failed to clear expired credential", zap.Error(err))
		}
		return "", false
	}

	return token, true
}

// expired does a best-effort expiry check. The credential is opaque by
// contract; when it happens to be a JWT we can save a doomed round-trip by
// reading the exp claim locally. Signature verification stays with the
// backend.
func (s *sessionService) expired(token string) bool {
	if strings.Count(token, ".") != 2 {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(s.now())
}

func (s *sessionService) Authenticated() bool {
	_, ok := s.Credential()
	return ok
}

func (s *sessionService) EnsureAuthenticated(route string, params map[string]string) error {
	if s.Authenticated() {
		return nil
	}

	intent := &entity.PendingIntent{
		ID:        utils.GenerateUUIDString(),
		Route:     route,
		Params:    params,
		CreatedAt: s.now(),
	}
	if err := s.intents.Save(intent); err != nil {
		// The redirect still happens; only the resume is lost.
		s.log.Warn("Failed to persist pending intent", zap.Error(err), zap.String("route", route))
	} else {
		s.log.Info("Pending intent saved", zap.String("route", route))
	}

	return ErrUnauthenticated
}

func (s *sessionService) SaveCredential(token string) error {
	if err := s.creds.Save(token); err != nil {
		return fmt.Errorf("save session credential: %w", err)
	}

	if s.onCredentialSaved != nil {
		s.onCredentialSaved()
	}

	s.log.Info("Session credential saved")
	return nil
}

func (s *sessionService) Clear() error {
	if err := s.creds.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.log.Info("Session cleared")
	return nil
}

func (s *sessionService) ConsumeIntent() *entity.PendingIntent {
	intent, err := s.intents.Consume()
	if err != nil {
		s.log.Warn("Failed to consume pending intent", zap.Error(err))
		return nil
	}
	return intent
}

func (s *sessionService) HandleUnauthorized() {
	// The gateway has already cleared the credential; this hook exists so
	// the UI layer can be told to redirect to login exactly once.
	s.log.Info("Backend rejected credential, user must log in again")
}
