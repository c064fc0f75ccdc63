package client

import (
	"context"
	"sync"
)

// JournalProvider caches the session's journal entries. Load populates the
// cache, SaveEntry merges the server's canonical row back in by date, and
// Reset clears everything at sign-out. Safe for concurrent use.
type JournalProvider struct {
	mu      sync.Mutex
	client  *Client
	state   State
	saving  bool
	lastErr error
	entries []Entry
}

func NewJournalProvider(c *Client) *JournalProvider {
	return &JournalProvider{client: c}
}

func (p *JournalProvider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *JournalProvider) Saving() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saving
}

func (p *JournalProvider) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Entries returns a copy of the cached entries.
func (p *JournalProvider) Entries() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// EntryByDate returns the cached entry for a YYYY-MM-DD date, if any.
func (p *JournalProvider) EntryByDate(date string) (Entry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, entry := range p.entries {
		if entry.Date == date {
			return entry, true
		}
	}
	return Entry{}, false
}

// Load fetches all entries and replaces the cache. A load already in flight
// is not restarted. On failure the provider enters StateError and the cache
// keeps whatever it held before.
func (p *JournalProvider) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.state == StateLoading {
		p.mu.Unlock()
		return nil
	}
	p.state = StateLoading
	p.lastErr = nil
	p.mu.Unlock()

	entries, err := p.client.ListJournalEntries(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = StateError
		p.lastErr = err
		return err
	}
	p.entries = entries
	p.state = StateReady
	return nil
}

// Reset clears the cache to its empty default. Called at sign-out;
// synchronous, no network.
func (p *JournalProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = nil
	p.state = StateUninitialized
	p.lastErr = nil
	p.saving = false
}

// SaveEntry upserts the entry for date and merges the server's canonical row
// into the cache: replace when an entry for that date is cached, append
// otherwise. On failure the cache is untouched. The saving flag is cleared on
// both paths.
func (p *JournalProvider) SaveEntry(ctx context.Context, date string, reflections, intentions *string) (Entry, error) {
	p.mu.Lock()
	if p.saving {
		p.mu.Unlock()
		return Entry{}, ErrSaveInFlight
	}
	p.saving = true
	p.lastErr = nil
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.saving = false
		p.mu.Unlock()
	}()

	entry, err := p.client.SaveJournalEntry(ctx, date, reflections, intentions)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.lastErr = err
		return Entry{}, err
	}

	merged := false
	for i := range p.entries {
		if p.entries[i].Date == entry.Date {
			p.entries[i] = entry
			merged = true
			break
		}
	}
	if !merged {
		p.entries = append(p.entries, entry)
	}
	return entry, nil
}
