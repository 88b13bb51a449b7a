// internal/workers/booking/calculate-refund/format.go
package calculaterefund

import (
	"fmt"
	"math"
)

// FormatAmount renders minor currency units for display, AUD-style.
func FormatAmount(amount int64) string {
	return fmt.Sprintf("$%d.%02d", amount/100, amount%100)
}

// PolicyMessage is the human explanation shown next to the cancel button.
// Presentational only; its buckets must stay aligned with CalculateRefund.
func PolicyMessage(hoursUntilPickup float64) string {
	hours := int(math.Floor(hoursUntilPickup))
	switch {
	case hoursUntilPickup >= 48:
		return fmt.Sprintf("Free cancellation available for the next %d hours", hours-FreeCancellationHours)
	case hoursUntilPickup >= FreeCancellationHours:
		return fmt.Sprintf("Free cancellation ends in %d hours", hours-FreeCancellationHours)
	case hoursUntilPickup > 0:
		return fmt.Sprintf("Cancelling now refunds 50%% of your payment (%d hours to pickup)", hours)
	default:
		return "Pickup time has passed - cancellation no longer refunds your payment"
	}
}
