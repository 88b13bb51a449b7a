// internal/workers/garage/rank-garages/handler_test.go
package rankgarages

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pickup-workers/internal/common/logger"
	"pickup-workers/internal/models"
	"pickup-workers/internal/ranking"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		MaxResults: 100,
		Timeout:    3 * time.Second,
	}
}

type testLogger struct {
	t *testing.T
}

var _ logger.Logger = (*testLogger)(nil)

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl.WithFields(fields)
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func createTestInput() *Input {
	distance := 3.0
	return &Input{
		Garages: []ranking.GarageInput{
			{
				GarageID: "garage-1", GarageName: "Apex Auto Care",
				Tier: models.TierPremium, AverageRating: 4.8, TotalReviews: 120,
				ResponseTimeHours: 1, CompletionRate: 0.97, CancellationRate: 0.01,
				DistanceKm: &distance, IsAvailable: true, CompletedBookings: 200,
			},
			{
				GarageID: "garage-2", GarageName: "City Mechanics",
				Tier: models.TierAnalytics, AverageRating: 4.2, TotalReviews: 35,
				ResponseTimeHours: 3, CompletionRate: 0.92, IsAvailable: true,
			},
			{
				GarageID: "garage-3", GarageName: "Fresh Wrench",
				Tier: models.TierFree, IsAvailable: true,
			},
		},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	handler := NewHandler(createTestConfig(), newTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput())

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, 3, len(output.RankedGarages))

	// premium garage is featured and therefore first
	assert.Equal(t, "garage-1", output.RankedGarages[0].GarageID)
	assert.True(t, output.RankedGarages[0].IsFeatured)

	// non-featured partition is ordered by score
	assert.Greater(t, output.RankedGarages[1].Score, output.RankedGarages[2].Score)

	for _, g := range output.RankedGarages {
		assert.GreaterOrEqual(t, g.Score, 0.0)
		assert.LessOrEqual(t, g.Score, 100.0)
	}
}

func TestHandler_Execute_FeaturedBeforeHigherScore(t *testing.T) {
	handler := NewHandler(createTestConfig(), newTestLogger(t))

	input := &Input{
		Garages: []ranking.GarageInput{
			{
				GarageID: "free-strong", Tier: models.TierFree,
				AverageRating: 4.9, TotalReviews: 200, ResponseTimeHours: 0.5,
				CompletionRate: 0.99, IsAvailable: true, CompletedBookings: 500,
			},
			{
				GarageID: "premium-weak", Tier: models.TierPremium,
				AverageRating: 2.2, TotalReviews: 4, ResponseTimeHours: 30,
			},
		},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, "premium-weak", output.RankedGarages[0].GarageID)
	assert.Greater(t, output.RankedGarages[1].Score, output.RankedGarages[0].Score)
}

func TestHandler_Execute_DeduplicatesByGarageID(t *testing.T) {
	handler := NewHandler(createTestConfig(), newTestLogger(t))

	input := &Input{
		Garages: []ranking.GarageInput{
			{
				GarageID: "garage-1", Tier: models.TierPremium,
				AverageRating: 4.8, TotalReviews: 120, IsAvailable: true,
			},
			{
				GarageID: "garage-2", Tier: models.TierFree,
				AverageRating: 3.9, TotalReviews: 12, IsAvailable: true,
			},
			// repeated id with different stats: first occurrence wins
			{
				GarageID: "garage-1", Tier: models.TierFree,
				AverageRating: 1.0, TotalReviews: 1,
			},
		},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, 2, len(output.RankedGarages))
	assert.Equal(t, "garage-1", output.RankedGarages[0].GarageID)
	assert.True(t, output.RankedGarages[0].IsFeatured)
	assert.Equal(t, "garage-2", output.RankedGarages[1].GarageID)
}

func TestHandler_Execute_MaxResults(t *testing.T) {
	config := createTestConfig()
	config.MaxResults = 10
	handler := NewHandler(config, newTestLogger(t))

	input := &Input{Garages: make([]ranking.GarageInput, 50)}
	for i := range input.Garages {
		input.Garages[i] = ranking.GarageInput{
			GarageID: fmt.Sprintf("g%d", i),
			Tier:     models.TierFree,
			// spread ratings so ordering is meaningful
			AverageRating: 3.0 + float64(i%20)*0.1,
			TotalReviews:  i,
			IsAvailable:   true,
		}
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, 10, len(output.RankedGarages))
}

func TestHandler_Execute_EmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{"empty garage list", &Input{Garages: []ranking.GarageInput{}}},
		{"nil input", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(createTestConfig(), newTestLogger(t))
			output, err := handler.Execute(context.Background(), tt.input)

			if tt.input == nil {
				assert.Error(t, err)
				assert.Nil(t, output)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, output)
				assert.Equal(t, 0, len(output.RankedGarages))
			}
		})
	}
}
