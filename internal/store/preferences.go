package store

import (
	"context"
	"database/sql"

	"github.com/daybreak-app/daybreak-backend/internal/models"
	"github.com/google/uuid"
)

// GetPreferences returns the preferences row for userID, or nil when the user
// never saved any. Absence is not an error.
func (s *Store) GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, notification_time, created_at, updated_at
		FROM user_preferences
		WHERE user_id = $1
	`, userID)

	var (
		prefs            models.UserPreferences
		notificationTime sql.NullString
	)
	err := row.Scan(&prefs.ID, &prefs.UserID, &notificationTime, &prefs.CreatedAt, &prefs.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	prefs.NotificationTime = nullableString(notificationTime)
	return &prefs, nil
}

// UpsertPreferences sets the notification time for userID, creating the
// preferences row on first write.
func (s *Store) UpsertPreferences(ctx context.Context, userID, notificationTime string) (models.UserPreferences, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO user_preferences (id, user_id, notification_time)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET notification_time = EXCLUDED.notification_time, updated_at = NOW()
		RETURNING id, user_id, notification_time, created_at, updated_at
	`, uuid.NewString(), userID, notificationTime)

	var (
		prefs  models.UserPreferences
		stored sql.NullString
	)
	if err := row.Scan(&prefs.ID, &prefs.UserID, &stored, &prefs.CreatedAt, &prefs.UpdatedAt); err != nil {
		return models.UserPreferences{}, err
	}
	prefs.NotificationTime = nullableString(stored)
	return prefs, nil
}

// ListUsersWithReminderAt returns the user ids whose notification time equals
// the given HH:MM wall-clock value. Used by the reminder scheduler.
func (s *Store) ListUsersWithReminderAt(ctx context.Context, hhmm string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id
		FROM user_preferences
		WHERE notification_time = $1
	`, hhmm)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}
