// internal/models/booking.go
package models

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// ServiceStage tracks where the vehicle is in the pickup-service-return flow.
type ServiceStage string

const (
	StageBookingConfirmed  ServiceStage = "booking_confirmed"
	StageDriverEnRoute     ServiceStage = "driver_en_route"
	StageCarPickedUp       ServiceStage = "car_picked_up"
	StageAtGarage          ServiceStage = "at_garage"
	StageServiceInProgress ServiceStage = "service_in_progress"
	StageDriverReturning   ServiceStage = "driver_returning"
	StageDelivered         ServiceStage = "delivered"
)

// Booking represents a vehicle pickup and service booking.
type Booking struct {
	ID           string                 `json:"id" db:"id"`
	UserID       string                 `json:"userId" db:"user_id"`
	GarageID     string                 `json:"garageId" db:"garage_id"`
	VehicleID    string                 `json:"vehicleId" db:"vehicle_id"`
	Status       BookingStatus          `json:"status" db:"status"`
	Stage        ServiceStage           `json:"stage" db:"stage"`
	Amount       float64                `json:"amount" db:"amount"`
	Currency     string                 `json:"currency" db:"currency"`
	PickupTime   string                 `json:"pickupTime" db:"pickup_time"`
	PickupAddr   string                 `json:"pickupAddress,omitempty" db:"pickup_address"`
	Services     []string               `json:"services,omitempty"`
	CreatedAt    time.Time              `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time              `json:"updatedAt" db:"updated_at"`
	CancelledAt  *time.Time             `json:"cancelledAt,omitempty" db:"cancelled_at"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// PickedUpStages are the stages at which the vehicle is already with the
// service flow; cancellation is blocked once any of these is reached.
var PickedUpStages = map[ServiceStage]bool{
	StageCarPickedUp:       true,
	StageAtGarage:          true,
	StageServiceInProgress: true,
	StageDriverReturning:   true,
	StageDelivered:         true,
}
