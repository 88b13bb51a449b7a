// internal/common/errors/errors_test.go
package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Constructor Tests
// ==========================

func TestConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"subscription invalid", NewSubscriptionInvalidError("tier unknown"), ErrCodeSubscriptionInvalid, false},
		{"subscription expired", NewSubscriptionExpiredError("expired 2025-01-01"), ErrCodeSubscriptionExpired, false},
		{"subscription check failed", NewSubscriptionCheckFailedError(errors.New("db down")), ErrCodeSubscriptionCheckFailed, true},
		{"database connection failed", NewDatabaseConnectionFailedError(errors.New("refused")), ErrCodeDatabaseConnectionFailed, true},
		{"query timeout", NewQueryTimeoutError("garage_details"), ErrCodeQueryTimeout, true},
		{"invalid query type", NewInvalidQueryTypeError("bogus"), ErrCodeInvalidQueryType, false},
		{"garage score failed", NewGarageScoreFailedError("garage-1", errors.New("no stats")), ErrCodeGarageScoreFailed, true},
		{"booking not found", NewBookingNotFoundError("booking-1"), ErrCodeBookingNotFound, false},
		{"index not found", NewIndexNotFoundError("garages"), ErrCodeIndexNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.NotEmpty(t, tt.err.Message)
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.Contains(t, tt.err.Error(), string(tt.code))
		})
	}
}

// ==========================
// Retry Policy Tests
// ==========================

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeDatabaseConnectionFailed))
	assert.Equal(t, 3, GetRetryCount(ErrCodeGarageScoreFailed))
	assert.Equal(t, 2, GetRetryCount(ErrCodeQueryTimeout))
	assert.Equal(t, 2, GetRetryCount(ErrCodeSearchTimeout))
	assert.Equal(t, 0, GetRetryCount(ErrCodeSubscriptionInvalid))
	assert.Equal(t, 0, GetRetryCount(ErrCodeBookingNotFound))
	assert.Equal(t, 0, GetRetryCount(ErrCodeInvalidPickupTime))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeQueryTimeout))
	assert.False(t, IsRetryableErrorCode(ErrCodeBookingNotFound))
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		category string
	}{
		{ErrCodeSubscriptionExpired, "SUBSCRIPTION"},
		{ErrCodeQueryTimeout, "DATABASE"},
		{ErrCodeSearchQueryFailed, "SEARCH"},
		{ErrCodeSearchTimeout, "SEARCH"},
		{ErrCodeIndexNotFound, "SEARCH"},
		{ErrCodeQueryExecutionFailed, "DATABASE"},
		{ErrCodeGarageScoreFailed, "RANKING"},
		{ErrCodeRankingFailed, "RANKING"},
		{ErrCodeRefundCalcFailed, "BOOKING"},
		{ErrCodeInvalidPickupTime, "BOOKING"},
		{ErrCodeNotificationSendFailed, "NOTIFICATION"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.category, GetErrorCategory(tt.code), string(tt.code))
	}
}

// ==========================
// BPMN Conversion Tests
// ==========================

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewQueryTimeoutError("garage_ranking_stats")

	bpmnErr := ConvertToBPMNError(stdErr)

	require.NotNil(t, bpmnErr)
	assert.Equal(t, "QUERY_TIMEOUT", bpmnErr.Code)
	assert.Equal(t, 2, bpmnErr.Retries)
	assert.True(t, bpmnErr.Retryable)
}

func TestConvertToBPMNError_NonRetryableZeroesRetries(t *testing.T) {
	stdErr := NewBookingNotFoundError("booking-404")

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "BOOKING_NOT_FOUND", bpmnErr.Code)
	assert.Equal(t, 0, bpmnErr.Retries)
	assert.False(t, bpmnErr.Retryable)
}

func TestConvertToBPMNError_UnmappedCodeFallsBack(t *testing.T) {
	stdErr := &StandardError{Code: ErrorCode("SOMETHING_ELSE"), Message: "odd"}

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "SOMETHING_ELSE", bpmnErr.Code)
}

func TestBPMNErrorToErrorVariables(t *testing.T) {
	bpmnErr := &BPMNError{
		Code:      "REFUND_CALC_FAILED",
		Message:   "calculation failed",
		Details:   "bad pickup time",
		Retryable: true,
		ErrorVariables: map[string]interface{}{
			"bookingId": "booking-1",
		},
	}

	vars := bpmnErr.ToErrorVariables()

	assert.Equal(t, "REFUND_CALC_FAILED", vars["errorCode"])
	assert.Equal(t, "calculation failed", vars["errorMessage"])
	assert.Equal(t, "bad pickup time", vars["errorDetails"])
	assert.Equal(t, true, vars["retryable"])
	assert.Equal(t, "booking-1", vars["bookingId"])
}

// ==========================
// ErrorHandler Tests
// ==========================

type capturingLogger struct {
	lastMsg    string
	lastFields map[string]interface{}
}

func (l *capturingLogger) Error(msg string, fields map[string]interface{}) {
	l.lastMsg = msg
	l.lastFields = fields
}

func TestErrorHandler_NormalizeError(t *testing.T) {
	h := NewErrorHandler(&capturingLogger{})

	t.Run("passes through standard errors", func(t *testing.T) {
		stdErr := NewRankingFailedError("empty candidate list")
		normalized := h.normalizeError(stdErr)
		assert.Same(t, stdErr, normalized)
	})

	t.Run("wraps plain errors", func(t *testing.T) {
		normalized := h.normalizeError(errors.New("boom"))
		assert.Equal(t, ErrorCode("INTERNAL_ERROR"), normalized.Code)
		assert.Equal(t, "boom", normalized.Details)
		assert.False(t, normalized.Retryable)
	})
}
