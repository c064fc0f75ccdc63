package client

import (
	"context"
	"sync"
)

// NotificationProvider caches the session's daily reminder time.
type NotificationProvider struct {
	mu               sync.Mutex
	client           *Client
	state            State
	saving           bool
	lastErr          error
	notificationTime *string
}

func NewNotificationProvider(c *Client) *NotificationProvider {
	return &NotificationProvider{client: c}
}

func (p *NotificationProvider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *NotificationProvider) Saving() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saving
}

func (p *NotificationProvider) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// NotificationTime returns the cached reminder time, nil when unset.
func (p *NotificationProvider) NotificationTime() *string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.notificationTime == nil {
		return nil
	}
	t := *p.notificationTime
	return &t
}

// Load fetches the settings and populates the cache.
func (p *NotificationProvider) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.state == StateLoading {
		p.mu.Unlock()
		return nil
	}
	p.state = StateLoading
	p.lastErr = nil
	p.mu.Unlock()

	settings, err := p.client.NotificationSettings(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = StateError
		p.lastErr = err
		return err
	}
	p.notificationTime = settings.NotificationTime
	p.state = StateReady
	return nil
}

// Reset clears the cache to its empty default.
func (p *NotificationProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notificationTime = nil
	p.state = StateUninitialized
	p.lastErr = nil
	p.saving = false
}

// SaveNotificationTime upserts the reminder time and caches the value the
// server confirmed. On failure the cache is untouched.
func (p *NotificationProvider) SaveNotificationTime(ctx context.Context, notificationTime string) error {
	p.mu.Lock()
	if p.saving {
		p.mu.Unlock()
		return ErrSaveInFlight
	}
	p.saving = true
	p.lastErr = nil
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.saving = false
		p.mu.Unlock()
	}()

	settings, err := p.client.SaveNotificationSettings(ctx, notificationTime)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.lastErr = err
		return err
	}
	p.notificationTime = settings.NotificationTime
	return nil
}
