// internal/workers/recommendation/search-universities/queries/builders_test.go
package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// ==========================
// Query Builder Tests
// ==========================

func TestBuildSearchQuery_MatchAllWhenEmpty(t *testing.T) {
	query := BuildSearchQuery(UniversitySearch{})

	boolQuery := query["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)
	assert.Contains(t, must[0].(map[string]interface{}), "match_all")
	assert.NotContains(t, boolQuery, "filter")
	assert.Equal(t, 0, query["from"])
	assert.Equal(t, defaultPageSize, query["size"])
}

func TestBuildSearchQuery_KeywordsAndFilters(t *testing.T) {
	query := BuildSearchQuery(UniversitySearch{
		Keywords:  "engineering",
		Countries: []string{"United States", "Canada"},
		MaxBudget: intPtr(40000),
		MaxRank:   intPtr(200),
	})

	boolQuery := query["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)
	multiMatch := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "engineering", multiMatch["query"])

	filters := boolQuery["filter"].([]interface{})
	require.Len(t, filters, 3)
	terms := filters[0].(map[string]interface{})["terms"].(map[string]interface{})
	assert.Equal(t, []string{"United States", "Canada"}, terms["country"])
	budgetRange := filters[1].(map[string]interface{})["range"].(map[string]interface{})
	assert.Equal(t, 40000, budgetRange["estimated_tuition_usd"].(map[string]interface{})["lte"])
}

func TestBuildSearchQuery_ZeroBudgetIgnored(t *testing.T) {
	query := BuildSearchQuery(UniversitySearch{MaxBudget: intPtr(0)})

	boolQuery := query["query"].(map[string]interface{})["bool"].(map[string]interface{})
	assert.NotContains(t, boolQuery, "filter")
}

func TestBuildSearchQuery_SortsByRankMissingLast(t *testing.T) {
	query := BuildSearchQuery(UniversitySearch{Keywords: "toronto"})

	sort := query["sort"].([]map[string]interface{})
	require.Len(t, sort, 1)
	rankSort := sort[0]["rank"].(map[string]interface{})
	assert.Equal(t, "asc", rankSort["order"])
	assert.Equal(t, "_last", rankSort["missing"])
}

func TestBuildSearchQuery_SimilarUniversities(t *testing.T) {
	query := BuildSearchQuery(UniversitySearch{
		UniversityID: "42",
		Keywords:     "ignored when similar lookup",
	})

	mlt := query["query"].(map[string]interface{})["more_like_this"].(map[string]interface{})
	like := mlt["like"].([]map[string]interface{})
	require.Len(t, like, 1)
	assert.Equal(t, "42", like[0]["_id"])
}

func TestBuildSearchQuery_PaginationClamped(t *testing.T) {
	tests := []struct {
		name     string
		from     int
		size     int
		wantFrom int
		wantSize int
	}{
		{"defaults", 0, 0, 0, defaultPageSize},
		{"negative from", -5, 10, 0, 10},
		{"oversized", 40, 500, 40, maxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := BuildSearchQuery(UniversitySearch{From: tt.from, Size: tt.size})
			assert.Equal(t, tt.wantFrom, query["from"])
			assert.Equal(t, tt.wantSize, query["size"])
		})
	}
}

// ==========================
// Response Parsing Tests
// ==========================

func TestParseResponse(t *testing.T) {
	body := []byte(`{
		"took": 4,
		"hits": {
			"total": {"value": 2, "relation": "eq"},
			"max_score": 1.7,
			"hits": [
				{"_id": "1", "_source": {"name": "MIT", "country": "United States", "rank": 20}},
				{"_id": "2", "_source": {"name": "Purdue", "country": "United States", "rank": 120}}
			]
		}
	}`)

	result, err := ParseResponse(body)

	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalHits)
	require.Len(t, result.Hits, 2)
	assert.Equal(t, "MIT", result.Hits[0]["name"])
}

func TestParseResponse_EmptyHits(t *testing.T) {
	result, err := ParseResponse([]byte(`{"hits":{"total":{"value":0},"hits":[]}}`))

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.TotalHits)
	assert.NotNil(t, result.Hits)
	assert.Empty(t, result.Hits)
}

func TestParseResponse_Malformed(t *testing.T) {
	_, err := ParseResponse([]byte(`{not json`))
	assert.Error(t, err)
}
