// internal/store/universities.go
package store

import (
	"context"
	"fmt"
	"strings"

	"advisor-workers/internal/models"

	"github.com/lib/pq"
)

// FetchUniversitiesByCriteria loads the candidate pool: country must match
// one of the given names (case-insensitive), tuition must not exceed the
// ceiling when one is set, ordered by rank with unranked last. No matches
// is an empty slice, not an error.
func (s *Store) FetchUniversitiesByCriteria(ctx context.Context, countries []string, maxCost *int, limit int) ([]models.University, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, name, country, rank, COALESCE(ranking_band, ''), estimated_tuition_usd
		FROM universities
		WHERE country ILIKE ANY($1)`)

	args := []interface{}{pq.Array(countries)}
	if maxCost != nil {
		args = append(args, *maxCost)
		sb.WriteString(fmt.Sprintf(" AND estimated_tuition_usd <= $%d", len(args)))
	}
	args = append(args, limit)
	sb.WriteString(fmt.Sprintf(" ORDER BY rank ASC NULLS LAST LIMIT $%d", len(args)))

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("fetch universities: %w", err)
	}
	defer rows.Close()

	universities := []models.University{}
	for rows.Next() {
		var u models.University
		if err := rows.Scan(&u.ID, &u.Name, &u.Country, &u.Rank, &u.RankingBand, &u.EstimatedTuitionUSD); err != nil {
			return nil, err
		}
		u.Competitiveness = models.CompetitivenessForRank(u.Rank)
		universities = append(universities, u)
	}
	return universities, rows.Err()
}

// FetchUniversitiesByIDs loads specific universities, preserving no
// particular order.
func (s *Store) FetchUniversitiesByIDs(ctx context.Context, ids []int64) ([]models.University, error) {
	if len(ids) == 0 {
		return []models.University{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, country, rank, COALESCE(ranking_band, ''), estimated_tuition_usd
		FROM universities WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("fetch universities by id: %w", err)
	}
	defer rows.Close()

	universities := []models.University{}
	for rows.Next() {
		var u models.University
		if err := rows.Scan(&u.ID, &u.Name, &u.Country, &u.Rank, &u.RankingBand, &u.EstimatedTuitionUSD); err != nil {
			return nil, err
		}
		u.Competitiveness = models.CompetitivenessForRank(u.Rank)
		universities = append(universities, u)
	}
	return universities, rows.Err()
}

// GetUniversity loads one university by id.
func (s *Store) GetUniversity(ctx context.Context, id int64) (*models.University, error) {
	var u models.University
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, country, rank, COALESCE(ranking_band, ''), estimated_tuition_usd
		FROM universities WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Country, &u.Rank, &u.RankingBand, &u.EstimatedTuitionUSD)
	if err != nil {
		return nil, err
	}
	u.Competitiveness = models.CompetitivenessForRank(u.Rank)
	return &u, nil
}
