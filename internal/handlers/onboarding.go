package handlers

import (
	"encoding/json"
	"net/http"
)

type CompleteOnboardingRequest struct {
	Responses map[string]string `json:"responses"`
}

type OnboardingStatusResponse struct {
	Completed bool              `json:"completed"`
	Responses map[string]string `json:"responses"`
}

type CompleteOnboardingResponse struct {
	Success bool `json:"success"`
}

// GetOnboardingStatus reports whether the user finished the onboarding
// questionnaire and returns their saved answers. Users who never started get
// {completed: false, responses: {}}.
func (h *Handler) GetOnboardingStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	onboarding, err := h.store.GetOnboarding(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	resp := OnboardingStatusResponse{Responses: map[string]string{}}
	if onboarding != nil {
		resp.Completed = onboarding.Completed
		resp.Responses = onboarding.Responses
	}
	writeJSON(w, http.StatusOK, resp)
}

// CompleteOnboarding saves the questionnaire answers and marks onboarding
// completed. When the answers include a notificationTime, the user's reminder
// preference is upserted as a second, independent write: a preference failure
// after a successful onboarding write is reported without rolling back.
func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CompleteOnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Responses == nil {
		writeError(w, http.StatusBadRequest, "Responses are required")
		return
	}
	if !validNotificationTime(req.Responses["notificationTime"]) {
		writeError(w, http.StatusBadRequest, "Notification time must be in HH:MM format")
		return
	}

	if _, err := h.store.UpsertOnboarding(r.Context(), userID, req.Responses); err != nil {
		h.internalError(w, r, err)
		return
	}

	if notificationTime := req.Responses["notificationTime"]; notificationTime != "" {
		if _, err := h.store.UpsertPreferences(r.Context(), userID, notificationTime); err != nil {
			h.internalError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, CompleteOnboardingResponse{Success: true})
}
