package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

var ErrIndexNotFound = errors.New("professions index not found")

// Profession is one catalogue document. Vibration is kept raw; the engine decides
// how to read it.
type Profession struct {
	ID          string      `json:"-"`
	Name        string      `json:"name"`
	Category    string      `json:"category,omitempty"`
	Description string      `json:"description,omitempty"`
	Vibration   interface{} `json:"profession_vibration"`
}

type Result struct {
	Professions []Profession
	TotalHits   int64
	Took        int64
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string     `json:"_id"`
			Source Profession `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs q against the catalogue.
func Search(ctx context.Context, esClient *elasticsearch.Client, q Query) (*Result, error) {
	req, err := BuildQuery(q)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, q.Index)
		}
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	professions := make([]Profession, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		p := hit.Source
		p.ID = hit.ID
		professions = append(professions, p)
	}

	return &Result{
		Professions: professions,
		TotalHits:   r.Hits.Total.Value,
		Took:        time.Since(start).Milliseconds(),
	}, nil
}
