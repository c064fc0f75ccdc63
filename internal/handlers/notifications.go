package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

type SaveNotificationSettingsRequest struct {
	NotificationTime *string `json:"notificationTime"`
}

type NotificationSettingsResponse struct {
	NotificationTime *string `json:"notificationTime"`
}

// GetNotificationSettings returns the user's daily reminder time. Users who
// never saved settings get {notificationTime: null}, never an error.
func (h *Handler) GetNotificationSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	prefs, err := h.store.GetPreferences(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	resp := NotificationSettingsResponse{}
	if prefs != nil {
		resp.NotificationTime = prefs.NotificationTime
	}
	writeJSON(w, http.StatusOK, resp)
}

// validNotificationTime reports whether s is a zero-padded 24h HH:MM string.
// The reminder scheduler matches against the wall clock formatted as "15:04",
// so anything else would persist but never fire. Empty clears the reminder.
func validNotificationTime(s string) bool {
	if s == "" {
		return true
	}
	t, err := time.Parse("15:04", s)
	return err == nil && t.Format("15:04") == s
}

// SaveNotificationSettings upserts the user's daily reminder time.
func (h *Handler) SaveNotificationSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req SaveNotificationSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.NotificationTime == nil {
		writeError(w, http.StatusBadRequest, "Notification time is required")
		return
	}
	if !validNotificationTime(*req.NotificationTime) {
		writeError(w, http.StatusBadRequest, "Notification time must be in HH:MM format")
		return
	}

	prefs, err := h.store.UpsertPreferences(r.Context(), userID, *req.NotificationTime)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NotificationSettingsResponse{NotificationTime: prefs.NotificationTime})
}
