// internal/workers/data-access/query-elasticsearch/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// ElasticsearchQuery defines the structure of a query request
type ElasticsearchQuery struct {
	Index      string
	QueryType  string
	Filters    map[string]interface{}
	GarageID   string
	City       string
	Pagination struct {
		From int
		Size int
	}
}

// BuildQuery builds an Elasticsearch search request based on query type and filters
func BuildQuery(esClient *elasticsearch.Client, eq ElasticsearchQuery) (*esapi.SearchRequest, error) {
	if eq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch eq.QueryType {
	case "garage_search":
		queryBody = buildGarageSearchQuery(eq)
	case "related_garages":
		queryBody = buildRelatedGaragesQuery(eq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, eq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index:  []string{eq.Index},
		Body:   strings.NewReader(string(body)),
		From:   &eq.Pagination.From,
		Size:   &eq.Pagination.Size,
		Pretty: true,
	}

	return &req, nil
}

// buildGarageSearchQuery builds the main garage search query dynamically
func buildGarageSearchQuery(eq ElasticsearchQuery) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	// Keyword search
	if keywords, ok := eq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"name^3", "description^2", "services"},
				"type":   "best_fields",
			},
		})
	}

	// City filter
	if city, ok := eq.Filters["city"].(string); ok && city != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"city": city},
		})
	} else if eq.City != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"city": eq.City},
		})
	}

	// Price level filter
	if priceLevel, ok := eq.Filters["priceLevel"].(string); ok && priceLevel != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"price_level": priceLevel},
		})
	}

	// Minimum rating filter
	if minRating, ok := toFloat(eq.Filters["minRating"]); ok && minRating > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"rating": map[string]interface{}{"gte": minRating},
			},
		})
	}

	// Availability filter
	if onlyAvailable, ok := eq.Filters["onlyAvailable"].(bool); ok && onlyAvailable {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"is_available": true},
		})
	}

	// Services filter
	if services, ok := eq.Filters["services"].([]interface{}); ok && len(services) > 0 {
		terms := make([]string, 0, len(services))
		for _, svc := range services {
			if s, ok := svc.(string); ok {
				terms = append(terms, s)
			}
		}
		if len(terms) > 0 {
			filterClauses = append(filterClauses, map[string]interface{}{
				"terms": map[string]interface{}{"services": terms},
			})
		}
	}

	// Default match_all if no keyword
	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}

	// Sorting logic
	if sortBy, ok := eq.Filters["sortBy"].(string); ok {
		switch sortBy {
		case "rating":
			query["sort"] = []map[string]interface{}{{"rating": "desc"}}
		case "name":
			query["sort"] = []map[string]interface{}{{"name": "asc"}}
		}
	}

	return query
}

// buildRelatedGaragesQuery builds "similar garages" query
func buildRelatedGaragesQuery(eq ElasticsearchQuery) map[string]interface{} {
	if eq.GarageID == "" {
		return map[string]interface{}{
			"query": map[string]interface{}{
				"match_none": map[string]interface{}{},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"more_like_this": map[string]interface{}{
				"fields": []string{"name", "description", "services"},
				"like": []map[string]interface{}{
					{"_index": eq.Index, "_id": eq.GarageID},
				},
				"min_term_freq":   1,
				"max_query_terms": 12,
				"min_doc_freq":    1,
				"min_word_length": 3,
			},
		},
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
