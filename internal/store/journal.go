package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/daybreak-app/daybreak-backend/internal/models"
	"github.com/google/uuid"
)

const entryDateLayout = "2006-01-02"

// ListEntries returns all journal entries belonging to userID, oldest first.
func (s *Store) ListEntries(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, entry_date, reflections, intentions, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY entry_date
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetEntryByDate returns the entry for (userID, date), or nil when none exists.
func (s *Store) GetEntryByDate(ctx context.Context, userID, date string) (*models.JournalEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, entry_date, reflections, intentions, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1 AND entry_date = $2
	`, userID, date)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// EntryUpdate carries the writable fields of a journal save. The Set flags
// distinguish a field omitted from the payload, which keeps the stored value,
// from an explicit null, which clears it.
type EntryUpdate struct {
	Reflections    *string
	SetReflections bool
	Intentions     *string
	SetIntentions  bool
}

// UpsertEntry inserts the entry for (userID, date) or updates it in place.
// The conflict clause keeps the original row id and created_at across updates
// and only touches the fields the update marks as set.
func (s *Store) UpsertEntry(ctx context.Context, userID, date string, update EntryUpdate) (models.JournalEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO journal_entries (id, user_id, entry_date, reflections, intentions)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, entry_date)
		DO UPDATE SET
			reflections = CASE WHEN $6::boolean THEN EXCLUDED.reflections ELSE journal_entries.reflections END,
			intentions = CASE WHEN $7::boolean THEN EXCLUDED.intentions ELSE journal_entries.intentions END,
			updated_at = NOW()
		RETURNING id, user_id, entry_date, reflections, intentions, created_at, updated_at
	`, uuid.NewString(), userID, date, update.Reflections, update.Intentions, update.SetReflections, update.SetIntentions)

	return scanEntry(row)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (models.JournalEntry, error) {
	var (
		entry       models.JournalEntry
		entryDate   time.Time
		reflections sql.NullString
		intentions  sql.NullString
	)
	if err := row.Scan(&entry.ID, &entry.UserID, &entryDate, &reflections, &intentions, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		return models.JournalEntry{}, err
	}
	entry.Date = entryDate.Format(entryDateLayout)
	entry.Reflections = nullableString(reflections)
	entry.Intentions = nullableString(intentions)
	return entry, nil
}
