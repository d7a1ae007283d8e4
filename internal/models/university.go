// internal/models/university.go
package models

// Competitiveness buckets universities by admission difficulty.
type Competitiveness string

const (
	CompetitivenessHigh    Competitiveness = "HIGH"
	CompetitivenessMedium  Competitiveness = "MEDIUM"
	CompetitivenessLow     Competitiveness = "LOW"
	CompetitivenessVeryLow Competitiveness = "VERY_LOW"
)

// University is a candidate institution. Rank is nullable: unranked
// institutions sort last and score as if ranked 500.
type University struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Country             string          `json:"country"`
	Rank                *int            `json:"rank,omitempty"`
	RankingBand         string          `json:"rankingBand,omitempty"`
	Competitiveness     Competitiveness `json:"competitiveness"`
	EstimatedTuitionUSD *int            `json:"estimatedTuitionUsd,omitempty"`
}

// CompetitivenessForRank derives the competitiveness bucket from a world rank.
func CompetitivenessForRank(rank *int) Competitiveness {
	if rank == nil {
		return CompetitivenessVeryLow
	}
	switch {
	case *rank <= 50:
		return CompetitivenessHigh
	case *rank <= 100:
		return CompetitivenessMedium
	case *rank <= 300:
		return CompetitivenessLow
	default:
		return CompetitivenessVeryLow
	}
}
