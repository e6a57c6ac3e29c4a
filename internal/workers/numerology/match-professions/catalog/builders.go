package catalog

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var ErrMissingIndex = errors.New("index name is required")

const maxSize = 1000

// Query describes which professions to pull from the catalogue.
type Query struct {
	Index    string
	Category string
	Keywords string
	Size     int
}

// BuildQuery builds the search request for q. Without a category or keywords it
// matches every profession.
func BuildQuery(q Query) (*esapi.SearchRequest, error) {
	if q.Index == "" {
		return nil, ErrMissingIndex
	}

	size := q.Size
	if size <= 0 {
		size = 200
	}
	if size > maxSize {
		size = maxSize
	}

	body, err := json.Marshal(buildProfessionQuery(q))
	if err != nil {
		return nil, err
	}

	return &esapi.SearchRequest{
		Index: []string{q.Index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}, nil
}

func buildProfessionQuery(q Query) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if q.Keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q.Keywords,
				"fields": []string{"name^3", "description", "category"},
				"type":   "best_fields",
			},
		})
	}

	if q.Category != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"category": q.Category},
		})
	}

	query := map[string]interface{}{"match_all": map[string]interface{}{}}
	if len(mustClauses) > 0 || len(filterClauses) > 0 {
		boolQuery := map[string]interface{}{}
		if len(mustClauses) > 0 {
			boolQuery["must"] = mustClauses
		}
		if len(filterClauses) > 0 {
			boolQuery["filter"] = filterClauses
		}
		query = map[string]interface{}{"bool": boolQuery}
	}

	return map[string]interface{}{
		"query":   query,
		"_source": []string{"name", "category", "description", "profession_vibration"},
		"sort":    []interface{}{"_score", map[string]interface{}{"name.keyword": map[string]interface{}{"order": "asc", "unmapped_type": "keyword"}}},
	}
}
