package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingProviderLoadsEmptyDefault(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"completed":false,"responses":{}}`))
	})
	p := NewOnboardingProvider(c)

	require.NoError(t, p.Load(context.Background()))
	assert.Equal(t, StateReady, p.State())
	assert.False(t, p.Completed())
	assert.Empty(t, p.Responses())
}

func TestOnboardingProviderComplete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"completed":false,"responses":{}}`))
		case http.MethodPost:
			w.Write([]byte(`{"success":true}`))
		}
	})
	p := NewOnboardingProvider(c)
	require.NoError(t, p.Load(context.Background()))

	responses := map[string]string{"goal": "sleep better", "notificationTime": "08:00"}
	require.NoError(t, p.Complete(context.Background(), responses))

	assert.True(t, p.Completed())
	assert.Equal(t, responses, p.Responses())
	assert.False(t, p.Saving())

	// The cache holds its own copy of the answers.
	responses["goal"] = "mutated"
	assert.Equal(t, "sleep better", p.Responses()["goal"])
}

func TestOnboardingProviderFailedCompleteLeavesCache(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"completed":false,"responses":{}}`))
		case http.MethodPost:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Internal server error"}`))
		}
	})
	p := NewOnboardingProvider(c)
	require.NoError(t, p.Load(context.Background()))

	err := p.Complete(context.Background(), map[string]string{"goal": "sleep better"})
	require.Error(t, err)

	assert.False(t, p.Completed(), "failed completion must not mark the cache completed")
	assert.Empty(t, p.Responses())
	assert.Error(t, p.Err())
	assert.False(t, p.Saving())
}

func TestOnboardingProviderSingleFlightSave(t *testing.T) {
	p := NewOnboardingProvider(New("http://localhost:0", "tok"))
	p.saving = true

	err := p.Complete(context.Background(), map[string]string{})
	assert.ErrorIs(t, err, ErrSaveInFlight)
}

func TestSessionSignOutResetsAllProviders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/journal/entries":
			w.Write([]byte(`[{"id":"e1","userId":"user-1","date":"2024-01-01","reflections":"good day","intentions":null}]`))
		case "/api/notifications/settings":
			w.Write([]byte(`{"notificationTime":"08:00"}`))
		case "/api/onboarding/status":
			w.Write([]byte(`{"completed":true,"responses":{"goal":"sleep better"}}`))
		}
	})
	s := &Session{
		Journal:       NewJournalProvider(c),
		Notifications: NewNotificationProvider(c),
		Onboarding:    NewOnboardingProvider(c),
	}
	require.NoError(t, s.Journal.Load(context.Background()))
	require.NoError(t, s.Notifications.Load(context.Background()))
	require.NoError(t, s.Onboarding.Load(context.Background()))

	s.SignOut()

	assert.Equal(t, StateUninitialized, s.Journal.State())
	assert.Empty(t, s.Journal.Entries())
	assert.Equal(t, StateUninitialized, s.Notifications.State())
	assert.Nil(t, s.Notifications.NotificationTime())
	assert.Equal(t, StateUninitialized, s.Onboarding.State())
	assert.False(t, s.Onboarding.Completed())
	assert.Empty(t, s.Onboarding.Responses())
}
