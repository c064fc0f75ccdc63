package client

import (
	"context"
	"sync"
)

// OnboardingProvider caches the session's onboarding completion state and
// questionnaire answers.
type OnboardingProvider struct {
	mu        sync.Mutex
	client    *Client
	state     State
	saving    bool
	lastErr   error
	completed bool
	responses map[string]string
}

func NewOnboardingProvider(c *Client) *OnboardingProvider {
	return &OnboardingProvider{client: c, responses: map[string]string{}}
}

func (p *OnboardingProvider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *OnboardingProvider) Saving() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saving
}

func (p *OnboardingProvider) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *OnboardingProvider) Completed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed
}

// Responses returns a copy of the cached answers.
func (p *OnboardingProvider) Responses() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]string, len(p.responses))
	for k, v := range p.responses {
		out[k] = v
	}
	return out
}

// Load fetches the onboarding status and populates the cache.
func (p *OnboardingProvider) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.state == StateLoading {
		p.mu.Unlock()
		return nil
	}
	p.state = StateLoading
	p.lastErr = nil
	p.mu.Unlock()

	status, err := p.client.OnboardingStatus(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = StateError
		p.lastErr = err
		return err
	}
	p.completed = status.Completed
	p.responses = status.Responses
	if p.responses == nil {
		p.responses = map[string]string{}
	}
	p.state = StateReady
	return nil
}

// Reset clears the cache to its empty default.
func (p *OnboardingProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = false
	p.responses = map[string]string{}
	p.state = StateUninitialized
	p.lastErr = nil
	p.saving = false
}

// Complete submits the answers; once the server confirms, the cache reflects
// the completed questionnaire. On failure the cache is untouched.
func (p *OnboardingProvider) Complete(ctx context.Context, responses map[string]string) error {
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

	err := p.client.CompleteOnboarding(ctx, responses)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.lastErr = err
		return err
	}
	p.responses = make(map[string]string, len(responses))
	for k, v := range responses {
		p.responses[k] = v
	}
	p.completed = true
	return nil
}
