package models

import "time"

// JournalEntry is one day's reflections and intentions for a user.
// The (UserID, Date) pair is the natural key: at most one entry per user per day.
type JournalEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Date        string    `json:"date"` // calendar date, YYYY-MM-DD
	Reflections *string   `json:"reflections"`
	Intentions  *string   `json:"intentions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
