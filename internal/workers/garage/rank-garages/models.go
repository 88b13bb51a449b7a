// internal/workers/garage/rank-garages/models.go
package rankgarages

import "pickup-workers/internal/ranking"

type Input struct {
	Garages []ranking.GarageInput `json:"garages"`
}

type Output struct {
	RankedGarages []ranking.Result `json:"rankedGarages"`
}
