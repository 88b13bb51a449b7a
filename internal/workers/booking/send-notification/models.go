// internal/workers/booking/send-notification/models.go
package sendnotification

type Input struct {
	RecipientID      string                 `json:"recipientId"`
	RecipientType    string                 `json:"recipientType"` // "customer" or "garage"
	NotificationType string                 `json:"notificationType"`
	BookingID        string                 `json:"bookingId,omitempty"`
	Priority         string                 `json:"priority,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeBookingConfirmed = "booking_confirmed"
	TypeBookingCancelled = "booking_cancelled"
	TypeRefundProcessed  = "refund_processed"
	TypePickupReminder   = "pickup_reminder"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Recipient types
const (
	RecipientTypeCustomer = "customer"
	RecipientTypeGarage   = "garage"
)
