package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/daybreak-app/daybreak-backend/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(userID string) error {
	f.sent = append(f.sent, userID)
	return f.err
}

type fakeDeduper struct {
	allow bool
	keys  []string
}

func (f *fakeDeduper) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	f.keys = append(f.keys, key)
	return redis.NewBoolResult(f.allow, nil)
}

func newTestScheduler(t *testing.T, dedupe reminderDeduper, sender ReminderSender) (*ReminderScheduler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &ReminderScheduler{
		store:  store.New(db),
		dedupe: dedupe,
		sender: sender,
	}, mock
}

func TestDispatchDueSendsToMatchingUsers(t *testing.T) {
	sender := &fakeSender{}
	dedupe := &fakeDeduper{allow: true}
	rs, mock := newTestScheduler(t, dedupe, sender)

	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT user_id FROM user_preferences").
		WithArgs("08:00").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("user-1").AddRow("user-2"))

	rs.DispatchDue(now)

	assert.Equal(t, []string{"user-1", "user-2"}, sender.sent)
	assert.Equal(t, []string{
		"reminder_sent:user-1:2024-01-01",
		"reminder_sent:user-2:2024-01-01",
	}, dedupe.keys)
}

func TestDispatchDueDeduplicates(t *testing.T) {
	sender := &fakeSender{}
	rs, mock := newTestScheduler(t, &fakeDeduper{allow: false}, sender)

	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT user_id FROM user_preferences").
		WithArgs("08:00").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("user-1"))

	rs.DispatchDue(now)

	assert.Empty(t, sender.sent, "an already-claimed reminder must not be re-sent")
}

func TestDispatchDueWithoutDeduper(t *testing.T) {
	sender := &fakeSender{}
	rs, mock := newTestScheduler(t, nil, sender)

	now := time.Date(2024, 1, 1, 21, 30, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT user_id FROM user_preferences").
		WithArgs("21:30").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("user-1"))

	rs.DispatchDue(now)

	assert.Equal(t, []string{"user-1"}, sender.sent)
}

func TestDispatchDueSurvivesStoreFailure(t *testing.T) {
	sender := &fakeSender{}
	rs, mock := newTestScheduler(t, nil, sender)

	mock.ExpectQuery("SELECT user_id FROM user_preferences").
		WillReturnError(errors.New("pq: connection reset"))

	rs.DispatchDue(time.Now())

	assert.Empty(t, sender.sent)
}
