// internal/workers/booking/calculate-refund/models.go
package calculaterefund

import (
	"time"

	"pickup-workers/internal/models"
)

type Input struct {
	BookingID string `json:"bookingId"`
	// Inline booking fields; when PickupTime is empty the handler loads
	// the booking row by BookingID instead.
	PickupTime string               `json:"pickupTime,omitempty"`
	Amount     int64                `json:"amount,omitempty"` // minor currency units
	Status     models.BookingStatus `json:"status,omitempty"`
	Stage      models.ServiceStage  `json:"stage,omitempty"`
}

// Calculation is the full refund determination. Eligible means a
// determination was reached, not that money is owed: a passed pickup time
// yields eligible=true with percentage 0.
type Calculation struct {
	Eligible         bool       `json:"eligible"`
	CanCancel        bool       `json:"canCancel"`
	Percentage       int        `json:"percentage"` // 0, 50 or 100
	Amount           int64      `json:"amount"`     // minor currency units
	Reason           string     `json:"reason"`
	HoursUntilPickup float64    `json:"hoursUntilPickup"`
	FreeUntil        *time.Time `json:"freeUntil,omitempty"`
}

type Output struct {
	BookingID string `json:"bookingId"`
	Calculation
	FormattedAmount string `json:"formattedAmount"`
	PolicyMessage   string `json:"policyMessage"`
}
