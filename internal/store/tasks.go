// internal/store/tasks.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"advisor-workers/internal/models"
)

// applicationTaskTemplate is the checklist generated when a university is
// locked. Order matters: it is the order users see.
var applicationTaskTemplate = []struct {
	Title       string
	Description string
}{
	{"Complete Statement of Purpose", "Draft your SOP highlighting why this university aligns with your goals"},
	{"Gather Recommendation Letters", "Request 2-3 letters from professors or supervisors who know your work well"},
	{"Prepare Official Transcripts", "Get official transcripts from your institution, sealed and stamped"},
	{"Check Application Deadlines", "Verify all deadlines for this university and set calendar reminders"},
	{"Prepare Financial Documents", "Gather bank statements and financial proof for visa application"},
	{"Complete Standardized Tests", "Ensure GRE/GMAT and IELTS/TOEFL scores meet university requirements"},
	{"Prepare Resume/CV", "Update your resume highlighting relevant experience and achievements"},
}

// ListTasks returns all tasks for a user in creation order.
func (s *Store) ListTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, COALESCE(description, ''), stage,
		       university_id, completed, created_at
		FROM tasks WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description,
			&t.Stage, &t.UniversityID, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CompleteTask marks one task done. sql.ErrNoRows when the task does not
// belong to the user.
func (s *Store) CompleteTask(ctx context.Context, userID, taskID int64) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET completed = true
		WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ClearTasks removes every task for the user.
func (s *Store) ClearTasks(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	return nil
}

// regenerateTasksTx replaces the user's task list with the application
// template bound to the locked university. Runs inside the lock transaction.
func regenerateTasksTx(ctx context.Context, tx *sql.Tx, userID, universityID int64) ([]models.Task, error) {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("clear tasks: %w", err)
	}

	tasks := make([]models.Task, 0, len(applicationTaskTemplate))
	for _, tpl := range applicationTaskTemplate {
		var t models.Task
		err := tx.QueryRowContext(ctx, `
			INSERT INTO tasks (user_id, title, description, stage, university_id, completed, created_at)
			VALUES ($1, $2, $3, $4, $5, false, NOW())
			RETURNING id, user_id, title, description, stage, university_id, completed, created_at`,
			userID, tpl.Title, tpl.Description, models.StageApplication, universityID).
			Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Stage,
				&t.UniversityID, &t.Completed, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert task %q: %w", tpl.Title, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
