// internal/workers/data-access/query-postgresql/handler_test.go
package querypostgresql

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickup-workers/internal/common/logger"
	"pickup-workers/internal/models"
	"pickup-workers/internal/workers/data-access/query-postgresql/queries"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

func createValidInput(queryType models.QueryType) *Input {
	input := &Input{
		QueryType: string(queryType),
	}

	switch queryType {
	case models.QueryTypeGarageDetails:
		input.GarageID = "garage-123"
	case models.QueryTypeGarageRankingStats:
		input.GarageID = "garage-123"
	case models.QueryTypeGarageReviews:
		input.GarageID = "garage-123"
	case models.QueryTypeGarageSubscription:
		input.GarageID = "garage-123"
	case models.QueryTypeBookingDetails:
		input.BookingID = "booking-123"
	}

	return input
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		mockQuery      func(mock sqlmock.Sqlmock)
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:  "garage details",
			input: createValidInput(models.QueryTypeGarageDetails),
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "name", "tier", "featured", "rating", "review_count",
					"is_available", "next_available_slot", "price_level", "created_at", "updated_at",
				}).AddRow(
					"garage-123", "Precision Auto", "premium", true, 4.7, 83,
					true, "2025-06-16T10:00:00Z", "standard",
					"2024-01-01", "2025-06-01",
				)
				mock.ExpectQuery(`SELECT id, name, tier, featured, rating, review_count, is_available, next_available_slot, price_level, created_at, updated_at FROM garages WHERE id = \$1`).
					WithArgs("garage-123").
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)
				assert.GreaterOrEqual(t, output.QueryExecutionTime, int64(0))

				data := output.Data.(map[string]interface{})
				assert.Equal(t, "garage-123", data["id"])
				assert.Equal(t, "Precision Auto", data["name"])
				assert.Equal(t, "premium", data["tier"])
				assert.Equal(t, 4.7, data["rating"])
				assert.Equal(t, 83, data["reviewCount"])
				assert.Equal(t, "2025-06-16T10:00:00Z", data["nextAvailableSlot"])
			},
		},
		{
			name: "multiple garage details",
			input: &Input{
				QueryType: string(models.QueryTypeGarageDetails),
				GarageIDs: []string{"garage-123", "garage-456"},
			},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "name", "tier", "featured", "rating", "review_count",
				}).AddRow(
					"garage-123", "Precision Auto", "premium", true, 4.7, 83,
				).AddRow(
					"garage-456", "City Motors", "free", false, 4.1, 25,
				)
				mock.ExpectQuery(`SELECT id, name, tier, featured, rating, review_count FROM garages WHERE id IN \(\$1,\$2\)`).
					WithArgs("garage-123", "garage-456").
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 2, output.RowCount)

				data := output.Data.([]map[string]interface{})
				require.Len(t, data, 2)
				assert.Equal(t, "Precision Auto", data[0]["name"])
				assert.Equal(t, "City Motors", data[1]["name"])
			},
		},
		{
			name:  "garage ranking stats",
			input: createValidInput(models.QueryTypeGarageRankingStats),
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"garage_id", "avg_response_hours", "completed_bookings", "cancelled_bookings",
					"completion_rate", "cancellation_rate", "last_active_at", "refreshed_at",
				}).AddRow(
					"garage-123", 1.5, 120, 2, 0.97, 0.015, "2025-06-15T09:00:00Z", "2025-06-15T12:00:00Z",
				)
				mock.ExpectQuery(`SELECT garage_id, avg_response_hours, completed_bookings, cancelled_bookings, completion_rate, cancellation_rate, last_active_at, refreshed_at FROM garage_stats WHERE garage_id = \$1`).
					WithArgs("garage-123").
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)

				data := output.Data.(map[string]interface{})
				assert.Equal(t, "garage-123", data["garageId"])
				assert.Equal(t, 1.5, data["avgResponseHours"])
				assert.Equal(t, 120, data["completedBookings"])
				assert.Equal(t, 0.97, data["completionRate"])
				assert.Equal(t, "2025-06-15T09:00:00Z", data["lastActiveAt"])
			},
		},
		{
			name:  "garage reviews",
			input: createValidInput(models.QueryTypeGarageReviews),
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "garage_id", "user_id", "rating", "comment", "created_at",
				}).AddRow(
					"review-1", "garage-123", "user-1", 5.0, "Great service", "2025-06-10",
				).AddRow(
					"review-2", "garage-123", "user-2", 4.0, "Quick turnaround", "2025-06-08",
				)
				mock.ExpectQuery(`SELECT id, garage_id, user_id, rating, comment, created_at FROM garage_reviews WHERE garage_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
					WithArgs("garage-123", 20).
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 2, output.RowCount)

				data := output.Data.([]map[string]interface{})
				require.Len(t, data, 2)
				assert.Equal(t, "review-1", data[0]["id"])
				assert.Equal(t, 5.0, data[0]["rating"])
			},
		},
		{
			name:  "garage subscription",
			input: createValidInput(models.QueryTypeGarageSubscription),
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"garage_id", "tier", "expires_at", "is_valid",
				}).AddRow(
					"garage-123", "analytics", "2026-01-01T00:00:00Z", true,
				)
				mock.ExpectQuery(`SELECT garage_id, tier, expires_at, is_valid FROM garage_subscriptions WHERE garage_id = \$1`).
					WithArgs("garage-123").
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)

				data := output.Data.(map[string]interface{})
				assert.Equal(t, "analytics", data["tier"])
				assert.Equal(t, true, data["isValid"])
			},
		},
		{
			name:  "booking details",
			input: createValidInput(models.QueryTypeBookingDetails),
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "user_id", "garage_id", "pickup_time", "amount",
					"status", "stage", "created_at", "updated_at",
				}).AddRow(
					"booking-123", "user-1", "garage-123", "2025-06-20T10:00:00Z", int64(12500),
					"confirmed", "booking_confirmed", "2025-06-14", "2025-06-14",
				)
				mock.ExpectQuery(`SELECT id, user_id, garage_id, pickup_time, amount, status, stage, created_at, updated_at FROM bookings WHERE id = \$1`).
					WithArgs("booking-123").
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)

				data := output.Data.(map[string]interface{})
				assert.Equal(t, "booking-123", data["id"])
				assert.Equal(t, int64(12500), data["amount"])
				assert.Equal(t, "confirmed", data["status"])
				assert.Equal(t, "booking_confirmed", data["stage"])
			},
		},
		{
			name: "bookings by user",
			input: &Input{
				QueryType: string(models.QueryTypeBookingDetails),
				UserID:    "user-1",
			},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "garage_id", "pickup_time", "amount", "status", "stage",
				}).AddRow(
					"booking-123", "garage-123", "2025-06-20T10:00:00Z", int64(12500), "confirmed", "booking_confirmed",
				).AddRow(
					"booking-124", "garage-456", "2025-06-18T14:00:00Z", int64(8000), "completed", "delivered",
				)
				mock.ExpectQuery(`SELECT id, garage_id, pickup_time, amount, status, stage FROM bookings WHERE user_id = \$1 ORDER BY pickup_time DESC`).
					WithArgs("user-1").
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 2, output.RowCount)

				data := output.Data.([]map[string]interface{})
				require.Len(t, data, 2)
				assert.Equal(t, "booking-123", data[0]["id"])
				assert.Equal(t, "delivered", data[1]["stage"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer db.Close()

			tt.mockQuery(mock)

			handler := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))

			output, err := handler.Execute(context.Background(), tt.input)

			assert.NoError(t, err)
			assert.NotNil(t, output)
			assert.NoError(t, mock.ExpectationsWereMet())

			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_QueryErrors(t *testing.T) {
	tests := []struct {
		name          string
		input         *Input
		mockQuery     func(mock sqlmock.Sqlmock)
		expectedErr   error
		errorContains string
	}{
		{
			name: "unknown query type",
			input: &Input{
				QueryType: "unknown_query",
			},
			expectedErr:   ErrInvalidQueryType,
			errorContains: "INVALID_QUERY_TYPE",
		},
		{
			name:  "database error",
			input: createValidInput(models.QueryTypeGarageDetails),
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, tier, featured, rating, review_count, is_available, next_available_slot, price_level, created_at, updated_at FROM garages WHERE id = \$1`).
					WithArgs("garage-123").
					WillReturnError(errors.New("database connection failed"))
			},
			expectedErr:   ErrQueryExecutionFailed,
			errorContains: "QUERY_EXECUTION_FAILED",
		},
		{
			name: "missing garage ID",
			input: &Input{
				QueryType: string(models.QueryTypeGarageRankingStats),
			},
			expectedErr:   queries.ErrMissingParam,
			errorContains: "QUERY_EXECUTION_FAILED",
		},
		{
			name:  "no rows found",
			input: createValidInput(models.QueryTypeBookingDetails),
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id, garage_id, pickup_time, amount, status, stage, created_at, updated_at FROM bookings WHERE id = \$1`).
					WithArgs("booking-123").
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr:   ErrQueryExecutionFailed,
			errorContains: "QUERY_EXECUTION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer db.Close()

			if tt.mockQuery != nil {
				tt.mockQuery(mock)
			}

			handler := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))
			output, err := handler.Execute(context.Background(), tt.input)

			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.expectedErr) || errors.Is(err, ErrQueryExecutionFailed))
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.Nil(t, output)
		})
	}
}

func TestHandler_Execute_Timeout(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, tier, featured, rating, review_count, is_available, next_available_slot, price_level, created_at, updated_at FROM garages WHERE id = \$1`).
		WithArgs("garage-123").
		WillDelayFor(200 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("garage-123"))

	config := createTestConfig()
	config.Timeout = 50 * time.Millisecond

	handler := NewHandler(config, db, logger.NewTestLogger(t))
	input := createValidInput(models.QueryTypeGarageDetails)

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	output, err := handler.Execute(ctx, input)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrQueryTimeout) || errors.Is(err, ErrQueryExecutionFailed))
	assert.Nil(t, output)
}

func TestHandler_Execute_NilInput(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	handler := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, output)
}

// ==========================
// Parameter Handling Tests
// ==========================

func TestHandler_Execute_ReviewLimitFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "garage_id", "user_id", "rating", "comment", "created_at",
	}).AddRow(
		"review-1", "garage-123", "user-1", 5.0, "Great service", "2025-06-10",
	)
	mock.ExpectQuery(`SELECT id, garage_id, user_id, rating, comment, created_at FROM garage_reviews WHERE garage_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("garage-123", 5).
		WillReturnRows(rows)

	handler := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))
	input := &Input{
		QueryType: string(models.QueryTypeGarageReviews),
		GarageID:  "garage-123",
		Filters: map[string]interface{}{
			"limit": float64(5),
		},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, 1, output.RowCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_EmptyGarageIDs(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	handler := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))
	input := &Input{
		QueryType: string(models.QueryTypeGarageDetails),
		GarageIDs: []string{},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.Error(t, err)
	assert.Nil(t, output)
}
