// internal/workers/data-access/query-elasticsearch/handler_test.go
package queryelasticsearch

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickup-workers/internal/common/logger"
)

func createTestConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

func createRealElasticsearchClient(t *testing.T) *elasticsearch.Client {
	cfg := elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
	}

	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		t.Skipf("Skipping test: failed to create Elasticsearch client: %v", err)
		return nil
	}

	res, err := esClient.Info()
	if err != nil {
		t.Skipf("Skipping test: Elasticsearch not responding: %v", err)
		return nil
	}
	defer res.Body.Close()

	if res.IsError() {
		t.Skipf("Skipping test: Elasticsearch error: %s", res.String())
		return nil
	}

	return esClient
}

func setupTestGarages(t *testing.T, esClient *elasticsearch.Client) {
	esClient.Indices.Delete([]string{"garages"}, esClient.Indices.Delete.WithIgnoreUnavailable(true))

	indexBody := `{
		"mappings": {
			"properties": {
				"name": {"type": "text"},
				"description": {"type": "text"},
				"services": {"type": "keyword"},
				"city": {"type": "keyword"},
				"price_level": {"type": "keyword"},
				"rating": {"type": "float"},
				"is_available": {"type": "boolean"}
			}
		}
	}`

	res, err := esClient.Indices.Create(
		"garages",
		esClient.Indices.Create.WithBody(strings.NewReader(indexBody)),
	)
	require.NoError(t, err)
	res.Body.Close()

	docs := []string{
		`{"name": "Precision Auto", "description": "Full service auto repair", "services": ["oil_change", "brakes"], "city": "Austin", "price_level": "standard", "rating": 4.7, "is_available": true}`,
		`{"name": "City Motors", "description": "Transmission specialists", "services": ["transmission"], "city": "Dallas", "price_level": "premium", "rating": 4.1, "is_available": false}`,
	}
	for i, doc := range docs {
		res, err := esClient.Index(
			"garages",
			strings.NewReader(doc),
			esClient.Index.WithDocumentID(string(rune('a'+i))),
			esClient.Index.WithRefresh("true"),
		)
		require.NoError(t, err)
		res.Body.Close()
	}
}

func TestHandler_Execute_RealElasticsearch(t *testing.T) {
	esClient := createRealElasticsearchClient(t)
	setupTestGarages(t, esClient)

	handler := NewHandler(createTestConfig(), esClient, logger.NewTestLogger(t))

	input := &Input{
		IndexName: "garages",
		QueryType: "garage_search",
		Filters: map[string]interface{}{
			"keywords": "auto repair",
		},
		Pagination: Pagination{From: 0, Size: 10},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, output.TotalHits, int64(1))
	assert.NotEmpty(t, output.Data)
	assert.Equal(t, "Precision Auto", output.Data[0]["name"])
}

func TestHandler_Execute_CityFilter_RealElasticsearch(t *testing.T) {
	esClient := createRealElasticsearchClient(t)
	setupTestGarages(t, esClient)

	handler := NewHandler(createTestConfig(), esClient, logger.NewTestLogger(t))

	input := &Input{
		IndexName: "garages",
		QueryType: "garage_search",
		Filters: map[string]interface{}{
			"city": "Dallas",
		},
		Pagination: Pagination{From: 0, Size: 10},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, int64(1), output.TotalHits)
	assert.Equal(t, "City Motors", output.Data[0]["name"])
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, output)
}

func TestHandler_ErrorMapping(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, logger.NewTestLogger(t))

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"index not found", ErrIndexNotFound, "INDEX_NOT_FOUND"},
		{"search timeout", ErrSearchTimeout, "SEARCH_TIMEOUT"},
		{"search query failed", ErrSearchQueryFailed, "SEARCH_QUERY_FAILED"},
		{"connection failed", ErrElasticsearchConnectionFailed, "ELASTICSEARCH_CONNECTION_FAILED"},
		{"unknown", assert.AnError, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, handler.mapErrorToCode(tt.err))
		})
	}
}
