// internal/workers/garage/validate-subscription/models.go
package validatesubscription

type Input struct {
	GarageID         string `json:"garageId"`
	SubscriptionTier string `json:"subscriptionTier"`
}

// Output represents the output data after subscription validation
type Output struct {
	IsValid   bool   `json:"isValid"`
	TierLevel string `json:"tierLevel"`
	Boosted   bool   `json:"boosted"` // paid tiers get a ranking boost
}

// Subscription represents a garage subscription record
type Subscription struct {
	GarageID  string `json:"garageId"`
	Tier      string `json:"tier"`
	ExpiresAt string `json:"expiresAt"`
	IsValid   bool   `json:"isValid"`
}
