// internal/workers/booking/calculate-refund/refund_test.go
package calculaterefund

import (
	"testing"
	"time"

	"pickup-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC) // a Wednesday

// ==========================
// Decision Rule Tests
// ==========================

func TestCalculateRefund_StatusGuards(t *testing.T) {
	pickup := testNow.Add(48 * time.Hour)

	tests := []struct {
		name   string
		status models.BookingStatus
	}{
		{"in progress", models.BookingStatusInProgress},
		{"completed", models.BookingStatusCompleted},
		{"cancelled", models.BookingStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := CalculateRefund(pickup, 10000, tt.status, "", testNow)

			assert.False(t, calc.CanCancel)
			assert.False(t, calc.Eligible)
			assert.Equal(t, 0, calc.Percentage)
			assert.Equal(t, int64(0), calc.Amount)
			assert.NotEmpty(t, calc.Reason)
		})
	}
}

func TestCalculateRefund_StageGuard(t *testing.T) {
	pickup := testNow.Add(1 * time.Hour)

	stages := []models.ServiceStage{
		models.StageCarPickedUp,
		models.StageAtGarage,
		models.StageServiceInProgress,
		models.StageDriverReturning,
		models.StageDelivered,
	}

	for _, stage := range stages {
		t.Run(string(stage), func(t *testing.T) {
			// status still pending: the stage guard fires on its own
			calc := CalculateRefund(pickup, 9999, models.BookingStatusPending, stage, testNow)

			assert.False(t, calc.CanCancel)
			assert.Equal(t, 0, calc.Percentage)
		})
	}
}

func TestCalculateRefund_StageBeforePickupAllowsCancellation(t *testing.T) {
	pickup := testNow.Add(30 * time.Hour)

	for _, stage := range []models.ServiceStage{models.StageBookingConfirmed, models.StageDriverEnRoute} {
		calc := CalculateRefund(pickup, 10000, models.BookingStatusConfirmed, stage, testNow)
		assert.True(t, calc.CanCancel, "stage %s should not block", stage)
		assert.Equal(t, 100, calc.Percentage)
	}
}

// ==========================
// Time Policy Tests
// ==========================

func TestCalculateRefund_TimeBoundaries(t *testing.T) {
	tests := []struct {
		name           string
		pickupIn       time.Duration
		amount         int64
		wantPercentage int
		wantAmount     int64
	}{
		{"25 hours out is free", 25 * time.Hour, 10000, 100, 10000},
		{"exactly 24 hours is still free", 24 * time.Hour, 10000, 100, 10000},
		{"23h59m is a late cancellation", 23*time.Hour + 59*time.Minute, 10000, 50, 5000},
		{"half refund floors odd amounts", 10 * time.Hour, 9999, 50, 4999},
		{"one minute before pickup", 1 * time.Minute, 10000, 50, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pickup := testNow.Add(tt.pickupIn)
			calc := CalculateRefund(pickup, tt.amount, models.BookingStatusPending, "", testNow)

			assert.True(t, calc.CanCancel)
			assert.True(t, calc.Eligible)
			assert.Equal(t, tt.wantPercentage, calc.Percentage)
			assert.Equal(t, tt.wantAmount, calc.Amount)
			assert.InDelta(t, tt.pickupIn.Hours(), calc.HoursUntilPickup, 0.001)

			if assert.NotNil(t, calc.FreeUntil) {
				assert.Equal(t, pickup.Add(-24*time.Hour), *calc.FreeUntil)
			}
		})
	}
}

func TestCalculateRefund_PickupTimePassed(t *testing.T) {
	pickup := testNow.Add(-6 * time.Hour)

	calc := CalculateRefund(pickup, 10000, models.BookingStatusConfirmed, "", testNow)

	// cancellation is still procedurally allowed, with no money back
	assert.True(t, calc.CanCancel)
	assert.True(t, calc.Eligible)
	assert.Equal(t, 0, calc.Percentage)
	assert.Equal(t, int64(0), calc.Amount)
	assert.Negative(t, calc.HoursUntilPickup)
}

func TestCalculateRefund_Idempotent(t *testing.T) {
	pickup := testNow.Add(30 * time.Hour)

	first := CalculateRefund(pickup, 12345, models.BookingStatusPending, models.StageBookingConfirmed, testNow)
	second := CalculateRefund(pickup, 12345, models.BookingStatusPending, models.StageBookingConfirmed, testNow)

	assert.Equal(t, first, second)
}

// ==========================
// Formatting Tests
// ==========================

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$100.00", FormatAmount(10000))
	assert.Equal(t, "$49.99", FormatAmount(4999))
	assert.Equal(t, "$0.05", FormatAmount(5))
	assert.Equal(t, "$0.00", FormatAmount(0))
}

func TestPolicyMessage(t *testing.T) {
	assert.Contains(t, PolicyMessage(72), "Free cancellation available")
	assert.Contains(t, PolicyMessage(30), "Free cancellation ends")
	assert.Contains(t, PolicyMessage(5), "50%")
	assert.Contains(t, PolicyMessage(-2), "passed")
}
