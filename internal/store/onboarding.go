package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/daybreak-app/daybreak-backend/internal/models"
	"github.com/google/uuid"
)

// GetOnboarding returns the onboarding row for userID, or nil when the user
// never started onboarding.
func (s *Store) GetOnboarding(ctx context.Context, userID string) (*models.OnboardingResponse, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, responses, completed, created_at, updated_at
		FROM onboarding_responses
		WHERE user_id = $1
	`, userID)

	var (
		onboarding   models.OnboardingResponse
		responsesRaw []byte
	)
	err := row.Scan(&onboarding.ID, &onboarding.UserID, &responsesRaw, &onboarding.Completed, &onboarding.CreatedAt, &onboarding.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	onboarding.Responses = make(map[string]string)
	if len(responsesRaw) > 0 {
		if err := json.Unmarshal(responsesRaw, &onboarding.Responses); err != nil {
			return nil, err
		}
	}
	return &onboarding, nil
}

// UpsertOnboarding saves the questionnaire answers for userID and marks
// onboarding completed, creating the row on first write.
func (s *Store) UpsertOnboarding(ctx context.Context, userID string, responses map[string]string) (models.OnboardingResponse, error) {
	responsesJSON, err := json.Marshal(responses)
	if err != nil {
		return models.OnboardingResponse{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO onboarding_responses (id, user_id, responses, completed)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET responses = EXCLUDED.responses, completed = TRUE, updated_at = NOW()
		RETURNING id, user_id, responses, completed, created_at, updated_at
	`, uuid.NewString(), userID, responsesJSON)

	var (
		onboarding models.OnboardingResponse
		storedRaw  []byte
	)
	if err := row.Scan(&onboarding.ID, &onboarding.UserID, &storedRaw, &onboarding.Completed, &onboarding.CreatedAt, &onboarding.UpdatedAt); err != nil {
		return models.OnboardingResponse{}, err
	}

	onboarding.Responses = make(map[string]string)
	if len(storedRaw) > 0 {
		if err := json.Unmarshal(storedRaw, &onboarding.Responses); err != nil {
			return models.OnboardingResponse{}, err
		}
	}
	return onboarding, nil
}
