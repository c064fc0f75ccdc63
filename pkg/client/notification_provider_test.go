package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationProviderLoadsNullDefault(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"notificationTime":null}`))
	})
	p := NewNotificationProvider(c)

	require.NoError(t, p.Load(context.Background()))
	assert.Equal(t, StateReady, p.State())
	assert.Nil(t, p.NotificationTime())
}

func TestNotificationProviderSaveCachesConfirmedValue(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"notificationTime":null}`))
		case http.MethodPost:
			w.Write([]byte(`{"notificationTime":"08:00"}`))
		}
	})
	p := NewNotificationProvider(c)
	require.NoError(t, p.Load(context.Background()))

	require.NoError(t, p.SaveNotificationTime(context.Background(), "08:00"))

	got := p.NotificationTime()
	require.NotNil(t, got)
	assert.Equal(t, "08:00", *got)
	assert.False(t, p.Saving())
}

func TestNotificationProviderFailedSaveLeavesCache(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"notificationTime":"08:00"}`))
		case http.MethodPost:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Internal server error"}`))
		}
	})
	p := NewNotificationProvider(c)
	require.NoError(t, p.Load(context.Background()))

	err := p.SaveNotificationTime(context.Background(), "21:30")
	require.Error(t, err)

	got := p.NotificationTime()
	require.NotNil(t, got)
	assert.Equal(t, "08:00", *got, "failed save must not touch the cache")
	assert.Error(t, p.Err())
	assert.False(t, p.Saving())
}

func TestNotificationProviderSingleFlightSave(t *testing.T) {
	p := NewNotificationProvider(New("http://localhost:0", "tok"))
	p.saving = true

	err := p.SaveNotificationTime(context.Background(), "08:00")
	assert.ErrorIs(t, err, ErrSaveInFlight)
}
