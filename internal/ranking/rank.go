// internal/ranking/rank.go
package ranking

import (
	"sort"
	"time"
)

// RankGarages scores every candidate and returns them ordered for display:
// featured garages first (premium tier or explicit flag), then by score
// descending within each partition. The sort is stable, so equal scores
// keep their input order.
func RankGarages(inputs []GarageInput, now time.Time) []Result {
	results := make([]Result, 0, len(inputs))
	for _, in := range inputs {
		results = append(results, CalculateGarageScore(in, now))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].IsFeatured != results[j].IsFeatured {
			return results[i].IsFeatured
		}
		return results[i].Score > results[j].Score
	})

	return results
}
