package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onboardingColumns() []string {
	return []string{"id", "user_id", "responses", "completed", "created_at", "updated_at"}
}

func TestGetOnboardingMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, user_id, responses, completed, created_at, updated_at").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(onboardingColumns()))

	onboarding, err := s.GetOnboarding(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, onboarding, "a user who never started onboarding yields nil, not an error")
}

func TestGetOnboarding(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, user_id, responses, completed, created_at, updated_at").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(onboardingColumns()).
			AddRow("o1", "user-1", []byte(`{"goal":"sleep better","notificationTime":"08:00"}`), true, now, now))

	onboarding, err := s.GetOnboarding(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, onboarding)

	assert.True(t, onboarding.Completed)
	assert.Equal(t, map[string]string{"goal": "sleep better", "notificationTime": "08:00"}, onboarding.Responses)
}

func TestUpsertOnboardingIsSingleStatement(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO onboarding_responses .+ ON CONFLICT .+ RETURNING").
		WithArgs(sqlmock.AnyArg(), "user-1", []byte(`{"goal":"sleep better"}`)).
		WillReturnRows(sqlmock.NewRows(onboardingColumns()).
			AddRow("o1", "user-1", []byte(`{"goal":"sleep better"}`), true, now, now))

	onboarding, err := s.UpsertOnboarding(context.Background(), "user-1", map[string]string{"goal": "sleep better"})
	require.NoError(t, err)

	assert.True(t, onboarding.Completed)
	assert.Equal(t, map[string]string{"goal": "sleep better"}, onboarding.Responses)

	assert.NoError(t, mock.ExpectationsWereMet())
}
