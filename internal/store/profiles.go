// internal/store/profiles.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"advisor-workers/internal/models"

	"github.com/lib/pq"
)

const profileColumns = `
	id, email, COALESCE(name, ''), gpa, COALESCE(degree, ''),
	COALESCE(field_of_study, ''), graduation_year, COALESCE(intended_degree, ''),
	intake_year, COALESCE(preferred_countries, '{}'), budget_per_year,
	COALESCE(funding_plan, ''), COALESCE(ielts_status, 'NOT_STARTED'),
	COALESCE(gre_gmat_status, 'NOT_STARTED'), COALESCE(sop_status, 'NOT_STARTED'),
	profile_complete, created_at, updated_at`

func scanProfile(row interface{ Scan(...interface{}) error }) (*models.UserProfile, error) {
	var p models.UserProfile
	var countries pq.StringArray
	err := row.Scan(
		&p.ID, &p.Email, &p.Name, &p.GPA, &p.Degree,
		&p.FieldOfStudy, &p.GraduationYear, &p.IntendedDegree,
		&p.IntakeYear, &countries, &p.BudgetPerYear,
		&p.FundingPlan, &p.IELTSStatus, &p.GREGMATStatus, &p.SOPStatus,
		&p.ProfileComplete, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.PreferredCountries = []string(countries)
	return &p, nil
}

// GetProfileByEmail loads a profile. sql.ErrNoRows passes through so callers
// can map it to a domain error.
func (s *Store) GetProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM user_profiles WHERE email = $1`, email)
	return scanProfile(row)
}

// GetOrCreateProfile loads a profile by email, creating a bare row on first
// contact.
func (s *Store) GetOrCreateProfile(ctx context.Context, email string) (*models.UserProfile, error) {
	profile, err := s.GetProfileByEmail(ctx, email)
	if err == nil {
		return profile, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO user_profiles (email, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING `+profileColumns, email)
	return scanProfile(row)
}

// UpdateProfile persists the mutable profile fields.
func (s *Store) UpdateProfile(ctx context.Context, p *models.UserProfile) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE user_profiles SET
			name = $2, gpa = $3, degree = $4, field_of_study = $5,
			graduation_year = $6, intended_degree = $7, intake_year = $8,
			preferred_countries = $9, budget_per_year = $10, funding_plan = $11,
			ielts_status = $12, gre_gmat_status = $13, sop_status = $14,
			profile_complete = $15, updated_at = NOW()
		WHERE email = $1`,
		p.Email, p.Name, p.GPA, p.Degree, p.FieldOfStudy,
		p.GraduationYear, p.IntendedDegree, p.IntakeYear,
		pq.Array(p.PreferredCountries), p.BudgetPerYear, p.FundingPlan,
		p.IELTSStatus, p.GREGMATStatus, p.SOPStatus,
		p.ProfileComplete,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
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

// MarkProfileComplete flips the completeness flag.
func (s *Store) MarkProfileComplete(ctx context.Context, email string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE user_profiles SET profile_complete = true, updated_at = NOW()
		WHERE email = $1`, email)
	return err
}
