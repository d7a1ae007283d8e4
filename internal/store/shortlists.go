// internal/store/shortlists.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"advisor-workers/internal/models"
)

// ListShortlist returns the user's shortlist entries in creation order.
func (s *Store) ListShortlist(ctx context.Context, userID int64) ([]models.ShortlistEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, university_id, tier, locked, created_at
		FROM shortlists WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list shortlist: %w", err)
	}
	defer rows.Close()

	var entries []models.ShortlistEntry
	for rows.Next() {
		var e models.ShortlistEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.UniversityID, &e.Tier, &e.Locked, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetShortlistEntry loads a single entry by user and university.
func (s *Store) GetShortlistEntry(ctx context.Context, userID, universityID int64) (*models.ShortlistEntry, error) {
	var e models.ShortlistEntry
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, university_id, tier, locked, created_at
		FROM shortlists WHERE user_id = $1 AND university_id = $2`,
		userID, universityID).
		Scan(&e.ID, &e.UserID, &e.UniversityID, &e.Tier, &e.Locked, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetLockedEntry returns the user's locked entry, or sql.ErrNoRows.
func (s *Store) GetLockedEntry(ctx context.Context, userID int64) (*models.ShortlistEntry, error) {
	var e models.ShortlistEntry
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, university_id, tier, locked, created_at
		FROM shortlists WHERE user_id = $1 AND locked = true`, userID).
		Scan(&e.ID, &e.UserID, &e.UniversityID, &e.Tier, &e.Locked, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// AddShortlistEntry upserts an entry. Re-adding an existing university
// refreshes the tier and is otherwise a no-op; the locked flag never changes
// through this path.
func (s *Store) AddShortlistEntry(ctx context.Context, userID, universityID int64, tier models.Tier) (*models.ShortlistEntry, error) {
	if tier == "" {
		tier = models.TierTarget
	}
	var e models.ShortlistEntry
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO shortlists (user_id, university_id, tier, locked, created_at)
		VALUES ($1, $2, $3, false, NOW())
		ON CONFLICT (user_id, university_id) DO UPDATE SET tier = EXCLUDED.tier
		RETURNING id, user_id, university_id, tier, locked, created_at`,
		userID, universityID, tier).
		Scan(&e.ID, &e.UserID, &e.UniversityID, &e.Tier, &e.Locked, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add shortlist entry: %w", err)
	}
	return &e, nil
}

// RemoveShortlistEntry deletes an unlocked entry and reports how many
// entries remain. Callers must refuse locked entries before calling.
func (s *Store) RemoveShortlistEntry(ctx context.Context, userID, universityID int64) (remaining int, err error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM shortlists
		WHERE user_id = $1 AND university_id = $2 AND locked = false`,
		userID, universityID)
	if err != nil {
		return 0, fmt.Errorf("remove shortlist entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, sql.ErrNoRows
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM shortlists WHERE user_id = $1`, userID).
		Scan(&remaining)
	if err != nil {
		return 0, fmt.Errorf("count shortlist: %w", err)
	}
	return remaining, nil
}

// LockUniversity atomically makes the given university the user's single
// locked choice: releases any previous lock, locks the target entry, moves
// the stage to LOCKED and regenerates the application task checklist. The
// whole sequence is one transaction; a missing entry rolls everything back
// with sql.ErrNoRows.
func (s *Store) LockUniversity(ctx context.Context, userID, universityID int64) (*models.ShortlistEntry, []models.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin lock tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE shortlists SET locked = false WHERE user_id = $1`, userID); err != nil {
		return nil, nil, fmt.Errorf("release previous lock: %w", err)
	}

	var entry models.ShortlistEntry
	err = tx.QueryRowContext(ctx, `
		UPDATE shortlists SET locked = true
		WHERE user_id = $1 AND university_id = $2
		RETURNING id, user_id, university_id, tier, locked, created_at`,
		userID, universityID).
		Scan(&entry.ID, &entry.UserID, &entry.UniversityID, &entry.Tier, &entry.Locked, &entry.CreatedAt)
	if err != nil {
		return nil, nil, err // sql.ErrNoRows when the entry is not shortlisted
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE user_states SET stage = $2, updated_at = NOW()
		WHERE user_id = $1`, userID, models.StageLocked); err != nil {
		return nil, nil, fmt.Errorf("update stage: %w", err)
	}

	tasks, err := regenerateTasksTx(ctx, tx, userID, universityID)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit lock tx: %w", err)
	}
	return &entry, tasks, nil
}

// UnlockUniversity releases the user's lock, clears the generated tasks and
// sets the stage according to whether entries remain. Unlocking with no lock
// held is a no-op.
func (s *Store) UnlockUniversity(ctx context.Context, userID int64) (remaining int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin unlock tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE shortlists SET locked = false WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("release lock: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("clear tasks: %w", err)
	}

	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM shortlists WHERE user_id = $1`, userID).
		Scan(&remaining); err != nil {
		return 0, fmt.Errorf("count shortlist: %w", err)
	}

	stage := models.StageShortlist
	if remaining == 0 {
		stage = models.StageDiscovery
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE user_states SET stage = $2, updated_at = NOW()
		WHERE user_id = $1`, userID, stage); err != nil {
		return 0, fmt.Errorf("update stage: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit unlock tx: %w", err)
	}
	return remaining, nil
}
