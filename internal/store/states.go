// internal/store/states.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"advisor-workers/internal/models"
)

// GetOrCreateState loads the user's journey state, lazily creating one at
// ONBOARDING on first access.
func (s *Store) GetOrCreateState(ctx context.Context, userID int64) (*models.UserState, error) {
	var state models.UserState
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, stage, updated_at
		FROM user_states WHERE user_id = $1`, userID).
		Scan(&state.ID, &state.UserID, &state.Stage, &state.UpdatedAt)
	if err == nil {
		return &state, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("get state: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO user_states (user_id, stage, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = user_states.updated_at
		RETURNING id, user_id, stage, updated_at`,
		userID, models.StageOnboarding).
		Scan(&state.ID, &state.UserID, &state.Stage, &state.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create state: %w", err)
	}
	return &state, nil
}

// UpdateStage moves the user to a new journey stage. Writing the current
// stage again is harmless, which keeps transitions idempotent.
func (s *Store) UpdateStage(ctx context.Context, userID int64, stage models.Stage) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE user_states SET stage = $2, updated_at = NOW()
		WHERE user_id = $1`, userID, stage)
	if err != nil {
		return fmt.Errorf("update stage: %w", err)
	}
	return nil
}
