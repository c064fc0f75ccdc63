package services

import (
	"context"
	"log"
	"time"

	"github.com/daybreak-app/daybreak-backend/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

const (
	// reminderSentKeyPrefix is the Redis key prefix marking a reminder as sent
	reminderSentKeyPrefix = "reminder_sent:"
	// reminderDedupeTTL keeps the sent marker for a full day
	reminderDedupeTTL = 24 * time.Hour

	dispatchTimeout = 30 * time.Second
)

// ReminderSender delivers a single daily reminder. The default sender only
// logs; push or email delivery plugs in here.
type ReminderSender interface {
	Send(userID string) error
}

// LogReminderSender logs due reminders instead of delivering them.
type LogReminderSender struct{}

func (LogReminderSender) Send(userID string) error {
	log.Printf("⏰ Daily journal reminder due for user %s", userID)
	return nil
}

// reminderDeduper is the slice of the Redis client the scheduler needs.
type reminderDeduper interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// ReminderScheduler wakes once a minute and dispatches reminders to users
// whose notification time matches the current wall clock. Redis deduplication
// guarantees at most one send per user per day; reminders are best-effort and
// Redis failures fail open.
type ReminderScheduler struct {
	store  *store.Store
	dedupe reminderDeduper
	sender ReminderSender
	cron   *cron.Cron
}

// NewReminderScheduler creates a scheduler. redisClient may be nil, which
// disables deduplication (useful in tests).
func NewReminderScheduler(s *store.Store, redisClient *redis.Client, sender ReminderSender) *ReminderScheduler {
	rs := &ReminderScheduler{
		store:  s,
		sender: sender,
		cron:   cron.New(),
	}
	if redisClient != nil {
		rs.dedupe = redisClient
	}
	return rs
}

// Start schedules the minute tick and launches the cron runner.
func (rs *ReminderScheduler) Start() error {
	if _, err := rs.cron.AddFunc("* * * * *", func() {
		rs.DispatchDue(time.Now())
	}); err != nil {
		return err
	}
	rs.cron.Start()
	return nil
}

// Stop halts the cron runner and waits for a running dispatch to finish.
func (rs *ReminderScheduler) Stop() {
	<-rs.cron.Stop().Done()
}

// DispatchDue sends reminders to every user whose notification time equals
// now's HH:MM.
func (rs *ReminderScheduler) DispatchDue(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	userIDs, err := rs.store.ListUsersWithReminderAt(ctx, now.Format("15:04"))
	if err != nil {
		log.Printf("Reminder dispatch failed to list due users: %v", err)
		CaptureError(err)
		return
	}

	for _, userID := range userIDs {
		if !rs.claim(ctx, userID, now) {
			continue
		}
		if err := rs.sender.Send(userID); err != nil {
			log.Printf("Reminder send failed for user %s: %v", userID, err)
			CaptureError(err)
		}
	}
}

// claim marks today's reminder as sent for userID. Returns false when another
// dispatch already claimed it.
func (rs *ReminderScheduler) claim(ctx context.Context, userID string, now time.Time) bool {
	if rs.dedupe == nil {
		return true
	}
	key := reminderSentKeyPrefix + userID + ":" + now.Format("2006-01-02")
	ok, err := rs.dedupe.SetNX(ctx, key, "1", reminderDedupeTTL).Result()
	if err != nil {
		// Fail open, same policy as the rate limiter
		log.Printf("Reminder dedupe unavailable: %v", err)
		return true
	}
	return ok
}
