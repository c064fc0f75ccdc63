package models

import "time"

// UserPreferences holds a user's notification settings. One row per user.
type UserPreferences struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	NotificationTime *string   `json:"notificationTime"` // HH:MM, nil when the user never set one
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
