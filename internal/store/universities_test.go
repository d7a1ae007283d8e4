// internal/store/universities_test.go
package store

import (
	"context"
	"testing"

	"advisor-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func universityRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "country", "rank", "ranking_band", "estimated_tuition_usd"})
}

func TestFetchUniversitiesByCriteria(t *testing.T) {
	s, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, name, country, rank").
		WithArgs(pq.Array([]string{"United States"}), 40000, 30).
		WillReturnRows(universityRows().
			AddRow(1, "MIT", "United States", 1, "TOP_10", 55000).
			AddRow(2, "Purdue", "United States", 120, "TOP_200", 30000).
			AddRow(3, "Unranked College", "United States", nil, "", 12000))

	maxCost := 40000
	universities, err := s.FetchUniversitiesByCriteria(context.Background(), []string{"United States"}, &maxCost, 30)

	assert.NoError(t, err)
	assert.Len(t, universities, 3)
	// Competitiveness is derived from rank during the scan.
	assert.Equal(t, models.CompetitivenessHigh, universities[0].Competitiveness)
	assert.Equal(t, models.CompetitivenessLow, universities[1].Competitiveness)
	assert.Equal(t, models.CompetitivenessVeryLow, universities[2].Competitiveness)
	assert.Nil(t, universities[2].Rank)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchUniversitiesByCriteria_NoCostCeiling(t *testing.T) {
	s, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, name, country, rank").
		WithArgs(pq.Array([]string{"Germany"}), 10).
		WillReturnRows(universityRows())

	universities, err := s.FetchUniversitiesByCriteria(context.Background(), []string{"Germany"}, nil, 10)

	assert.NoError(t, err)
	assert.Empty(t, universities)
	assert.NotNil(t, universities)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchUniversitiesByIDs_EmptyInput(t *testing.T) {
	s, _, cleanup := setupStore(t)
	defer cleanup()

	universities, err := s.FetchUniversitiesByIDs(context.Background(), nil)

	assert.NoError(t, err)
	assert.Empty(t, universities)
}

func TestGetUniversity(t *testing.T) {
	s, mock, cleanup := setupStore(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, name, country, rank").
		WithArgs(int64(7)).
		WillReturnRows(universityRows().AddRow(7, "ETH Zurich", "Switzerland", 9, "TOP_10", 2000))

	u, err := s.GetUniversity(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, "ETH Zurich", u.Name)
	assert.Equal(t, models.CompetitivenessHigh, u.Competitiveness)
	assert.NoError(t, mock.ExpectationsWereMet())
}
