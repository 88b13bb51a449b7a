// internal/workers/garage/calculate-garage-score/models.go
package calculategaragescore

import "pickup-workers/internal/ranking"

type Input struct {
	GarageID string `json:"garageId"`
	// Garage is the fully-populated ranking input; when present the
	// handler scores it directly without touching storage.
	Garage *ranking.GarageInput `json:"garage,omitempty"`
	// DistanceKm is computed upstream by the geocoding step and is only
	// meaningful when the garage is loaded from storage.
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

type Output struct {
	GarageID   string            `json:"garageId"`
	GarageName string            `json:"garageName"`
	Score      float64           `json:"score"`
	Breakdown  ranking.Breakdown `json:"breakdown"`
	Badges     []string          `json:"badges"`
	IsFeatured bool              `json:"isFeatured"`
}
