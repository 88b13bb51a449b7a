// internal/workers/booking/calculate-refund/refund.go
package calculaterefund

import (
	"time"

	"pickup-workers/internal/models"
)

// FreeCancellationHours is the window before pickup inside which
// cancellation stops being free.
const FreeCancellationHours = 24

// CalculateRefund determines whether a booking can be cancelled and what
// fraction of the payment comes back. Pure and total: every input
// combination resolves to a populated Calculation, never an error.
//
// Rules are checked in order, first match wins:
//  1. status in_progress: blocked, the driver has the vehicle
//  2. status completed: blocked
//  3. status cancelled: blocked
//  4. stage says the car was already picked up: blocked even when the
//     status lags behind (stage can lag status in the booking store,
//     so both guards stay)
//  5. otherwise the time-to-pickup policy decides the percentage
func CalculateRefund(pickupTime time.Time, amount int64, status models.BookingStatus, stage models.ServiceStage, now time.Time) Calculation {
	switch status {
	case models.BookingStatusInProgress:
		return blocked(pickupTime, now, "Service is already in progress - the driver has your vehicle")
	case models.BookingStatusCompleted:
		return blocked(pickupTime, now, "This booking has already been completed")
	case models.BookingStatusCancelled:
		return blocked(pickupTime, now, "This booking has already been cancelled")
	}

	if stage != "" && models.PickedUpStages[stage] {
		return blocked(pickupTime, now, "Service has started - your vehicle is with the service team")
	}

	hoursUntil := pickupTime.Sub(now).Hours()
	freeUntil := pickupTime.Add(-FreeCancellationHours * time.Hour)

	switch {
	case hoursUntil >= FreeCancellationHours:
		return Calculation{
			Eligible:         true,
			CanCancel:        true,
			Percentage:       100,
			Amount:           amount,
			Reason:           "Free cancellation - more than 24 hours before pickup",
			HoursUntilPickup: hoursUntil,
			FreeUntil:        &freeUntil,
		}
	case hoursUntil > 0:
		return Calculation{
			Eligible:         true,
			CanCancel:        true,
			Percentage:       50,
			Amount:           amount / 2,
			Reason:           "Late cancellation fee applies - less than 24 hours before pickup",
			HoursUntilPickup: hoursUntil,
			FreeUntil:        &freeUntil,
		}
	default:
		// pickup time passed but the service never started; cancellation
		// is still allowed, just with no money back
		return Calculation{
			Eligible:         true,
			CanCancel:        true,
			Percentage:       0,
			Amount:           0,
			Reason:           "Pickup time has passed - no refund available",
			HoursUntilPickup: hoursUntil,
			FreeUntil:        &freeUntil,
		}
	}
}

func blocked(pickupTime time.Time, now time.Time, reason string) Calculation {
	return Calculation{
		Eligible:         false,
		CanCancel:        false,
		Percentage:       0,
		Amount:           0,
		Reason:           reason,
		HoursUntilPickup: pickupTime.Sub(now).Hours(),
	}
}
