// Package client is a Go client for the Daybreak API: a thin typed wrapper
// over the HTTP surface plus per-resource providers that cache server state
// for one signed-in session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls the Daybreak API with a fixed bearer token. The token comes
// from the identity provider; the client never refreshes it.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a Client for the API at baseURL authenticating as token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Entry mirrors the server's journal entry resource.
type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Date        string    `json:"date"`
	Reflections *string   `json:"reflections"`
	Intentions  *string   `json:"intentions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NotificationSettings mirrors the notification settings resource.
type NotificationSettings struct {
	NotificationTime *string `json:"notificationTime"`
}

// OnboardingStatus mirrors the onboarding status resource.
type OnboardingStatus struct {
	Completed bool              `json:"completed"`
	Responses map[string]string `json:"responses"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

// ListJournalEntries fetches every journal entry for the session's user.
func (c *Client) ListJournalEntries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.do(ctx, http.MethodGet, "/api/journal/entries", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveJournalEntry upserts the entry for a calendar date and returns the
// canonical row the server persisted. A nil field is omitted from the payload
// and the server keeps its stored value.
func (c *Client) SaveJournalEntry(ctx context.Context, date string, reflections, intentions *string) (Entry, error) {
	body := map[string]interface{}{"date": date}
	if reflections != nil {
		body["reflections"] = *reflections
	}
	if intentions != nil {
		body["intentions"] = *intentions
	}
	var entry Entry
	if err := c.do(ctx, http.MethodPost, "/api/journal/entries", body, &entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// NotificationSettings fetches the user's daily reminder time.
func (c *Client) NotificationSettings(ctx context.Context) (NotificationSettings, error) {
	var settings NotificationSettings
	if err := c.do(ctx, http.MethodGet, "/api/notifications/settings", nil, &settings); err != nil {
		return NotificationSettings{}, err
	}
	return settings, nil
}

// SaveNotificationSettings upserts the user's daily reminder time.
func (c *Client) SaveNotificationSettings(ctx context.Context, notificationTime string) (NotificationSettings, error) {
	body := map[string]string{"notificationTime": notificationTime}
	var settings NotificationSettings
	if err := c.do(ctx, http.MethodPost, "/api/notifications/settings", body, &settings); err != nil {
		return NotificationSettings{}, err
	}
	return settings, nil
}

// OnboardingStatus fetches the user's onboarding completion state and answers.
func (c *Client) OnboardingStatus(ctx context.Context) (OnboardingStatus, error) {
	var status OnboardingStatus
	if err := c.do(ctx, http.MethodGet, "/api/onboarding/status", nil, &status); err != nil {
		return OnboardingStatus{}, err
	}
	return status, nil
}

// CompleteOnboarding submits the questionnaire answers.
func (c *Client) CompleteOnboarding(ctx context.Context, responses map[string]string) error {
	body := map[string]interface{}{"responses": responses}
	return c.do(ctx, http.MethodPost, "/api/onboarding/complete", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
