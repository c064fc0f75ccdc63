package models

import "time"

// OnboardingResponse stores a user's answers to the onboarding questionnaire.
// Questions are client-defined, so answers are an open key/value mapping.
type OnboardingResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Responses map[string]string `json:"responses"`
	Completed bool              `json:"completed"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
