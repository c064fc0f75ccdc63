package client

import "errors"

// State is the lifecycle of a provider's cache.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrSaveInFlight is returned when a mutation starts while a previous one on
// the same provider has not finished.
var ErrSaveInFlight = errors.New("client: save already in flight")

// Session bundles one provider per resource for a signed-in user. Create it
// when a session starts and pass it down by dependency injection; call
// SignOut when the session ends.
type Session struct {
	Journal       *JournalProvider
	Notifications *NotificationProvider
	Onboarding    *OnboardingProvider
}

// NewSession creates providers sharing one API client.
func NewSession(baseURL, token string) *Session {
	c := New(baseURL, token)
	return &Session{
		Journal:       NewJournalProvider(c),
		Notifications: NewNotificationProvider(c),
		Onboarding:    NewOnboardingProvider(c),
	}
}

// SignOut synchronously resets every provider to its empty default. No
// network calls are made.
func (s *Session) SignOut() {
	s.Journal.Reset()
	s.Notifications.Reset()
	s.Onboarding.Reset()
}
