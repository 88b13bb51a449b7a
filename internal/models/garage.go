// internal/models/garage.go
package models

import "time"

// SubscriptionTier represents a garage's subscription level.
type SubscriptionTier string

const (
	TierFree      SubscriptionTier = "free"
	TierAnalytics SubscriptionTier = "analytics"
	TierPremium   SubscriptionTier = "premium"
)

// PriceLevel is a coarse price indicator shown on garage listings.
// Currently unused in ranking; reserved for a future price-fit signal.
type PriceLevel string

const (
	PriceLevelBudget   PriceLevel = "budget"
	PriceLevelStandard PriceLevel = "standard"
	PriceLevelPremium  PriceLevel = "premium"
)

// Garage represents a service garage on the marketplace.
type Garage struct {
	ID                string                 `json:"id" db:"id"`
	Name              string                 `json:"name" db:"name"`
	OwnerID           string                 `json:"ownerId" db:"owner_id"`
	Tier              SubscriptionTier       `json:"tier" db:"tier"`
	Featured          bool                   `json:"featured" db:"featured"`
	Rating            float64                `json:"rating" db:"rating"`
	ReviewCount       int                    `json:"reviewCount" db:"review_count"`
	IsAvailable       bool                   `json:"isAvailable" db:"is_available"`
	NextAvailableSlot *time.Time             `json:"nextAvailableSlot,omitempty" db:"next_available_slot"`
	PriceLevel        PriceLevel             `json:"priceLevel,omitempty" db:"price_level"`
	Services          []string               `json:"services,omitempty"`
	City              string                 `json:"city" db:"city"`
	Latitude          float64                `json:"latitude" db:"latitude"`
	Longitude         float64                `json:"longitude" db:"longitude"`
	CreatedAt         time.Time              `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time              `json:"updatedAt" db:"updated_at"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
}

// GarageStats holds the aggregated performance numbers the ranking
// pipeline consumes. Sourced from Postgres, cached in Redis.
type GarageStats struct {
	GarageID          string     `json:"garageId" db:"garage_id"`
	AvgResponseHours  float64    `json:"avgResponseHours" db:"avg_response_hours"`
	CompletedBookings int        `json:"completedBookings" db:"completed_bookings"`
	CancelledBookings int        `json:"cancelledBookings" db:"cancelled_bookings"`
	CompletionRate    float64    `json:"completionRate" db:"completion_rate"`
	CancellationRate  float64    `json:"cancellationRate" db:"cancellation_rate"`
	LastActiveAt      *time.Time `json:"lastActiveAt,omitempty" db:"last_active_at"`
	StatsRefreshedAt  time.Time  `json:"statsRefreshedAt" db:"stats_refreshed_at"`
}

// GarageSubscription represents an active subscription row for a garage.
type GarageSubscription struct {
	ID        string           `json:"id" db:"id"`
	GarageID  string           `json:"garageId" db:"garage_id"`
	Tier      SubscriptionTier `json:"tier" db:"tier"`
	Status    string           `json:"status" db:"status"` // "active", "cancelled", "expired"
	StartedAt time.Time        `json:"startedAt" db:"started_at"`
	ExpiresAt *time.Time       `json:"expiresAt,omitempty" db:"expires_at"`
}

// GarageReview represents a customer review of a garage.
type GarageReview struct {
	ID        string    `json:"id" db:"id"`
	GarageID  string    `json:"garageId" db:"garage_id"`
	BookingID string    `json:"bookingId" db:"booking_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Rating    float64   `json:"rating" db:"rating"`
	Comment   string    `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
