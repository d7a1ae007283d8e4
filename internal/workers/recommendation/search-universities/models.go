// internal/workers/recommendation/search-universities/models.go
package searchuniversities

type Input struct {
	Query        string     `json:"query"`
	Countries    []string   `json:"countries,omitempty"`
	MaxBudget    *int       `json:"maxBudget,omitempty"`
	MaxRank      *int       `json:"maxRank,omitempty"`
	UniversityID string     `json:"universityId,omitempty"`
	Pagination   Pagination `json:"pagination"`
}

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Output struct {
	Results   []map[string]interface{} `json:"results"`
	TotalHits int64                    `json:"totalHits"`
	Took      int64                    `json:"took"` // milliseconds
}
