// internal/workers/recommendation/search-universities/queries/builders.go
package queries

import (
	"encoding/json"
	"fmt"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// UniversitySearch describes a discovery search against the universities index.
type UniversitySearch struct {
	Keywords     string
	Countries    []string
	MaxBudget    *int
	MaxRank      *int
	UniversityID string
	From         int
	Size         int
}

// BuildSearchQuery assembles the request body. When UniversityID is set the
// query becomes a more_like_this lookup and the other filters are ignored.
func BuildSearchQuery(us UniversitySearch) map[string]interface{} {
	if us.UniversityID != "" {
		return buildSimilarUniversitiesQuery(us)
	}

	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if us.Keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  us.Keywords,
				"fields": []string{"name^3", "country^2", "ranking_band"},
				"type":   "best_fields",
			},
		})
	}
	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	if len(us.Countries) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"country": us.Countries},
		})
	}
	if us.MaxBudget != nil && *us.MaxBudget > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"estimated_tuition_usd": map[string]interface{}{"lte": *us.MaxBudget},
			},
		})
	}
	if us.MaxRank != nil && *us.MaxRank > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"rank": map[string]interface{}{"lte": *us.MaxRank},
			},
		})
	}

	boolQuery := map[string]interface{}{"must": mustClauses}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"sort": []map[string]interface{}{
			{"rank": map[string]interface{}{"order": "asc", "missing": "_last"}},
		},
	}
	applyPagination(query, us.From, us.Size)
	return query
}

func buildSimilarUniversitiesQuery(us UniversitySearch) map[string]interface{} {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"more_like_this": map[string]interface{}{
				"fields": []string{"name", "country", "ranking_band"},
				"like": []map[string]interface{}{
					{"_id": us.UniversityID},
				},
				"min_term_freq":   1,
				"max_query_terms": 12,
				"min_doc_freq":    1,
			},
		},
	}
	applyPagination(query, us.From, us.Size)
	return query
}

func applyPagination(query map[string]interface{}, from, size int) {
	if from < 0 {
		from = 0
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	query["from"] = from
	query["size"] = size
}

// Result holds the parsed search response.
type Result struct {
	Hits      []map[string]interface{}
	TotalHits int64
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source map[string]interface{} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// ParseResponse decodes the raw search body into a Result.
func ParseResponse(body []byte) (*Result, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]map[string]interface{}, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		hits = append(hits, hit.Source)
	}
	return &Result{
		Hits:      hits,
		TotalHits: resp.Hits.Total.Value,
	}, nil
}
