// internal/ranking/engine.go

// Package ranking computes composite 0-100 scores for garages and orders
// search results. All functions are pure: callers pass the reference time
// explicitly so repeated calls with identical inputs produce identical output.
package ranking

import (
	"math"
	"time"

	"pickup-workers/internal/models"
)

// Weights for the eight sub-scores. Must sum to 1.0.
const (
	WeightTier         = 0.15
	WeightRating       = 0.25
	WeightTrust        = 0.15
	WeightResponse     = 0.12
	WeightCompletion   = 0.10
	WeightDistance     = 0.13
	WeightAvailability = 0.05
	WeightActivity     = 0.05
)

// TierBoost is the multiplicative boost applied to the weighted sum,
// keyed by subscription tier: final = sum * (1 + boost), capped at 100.
var TierBoost = map[models.SubscriptionTier]float64{
	models.TierFree:      0.0,
	models.TierAnalytics: 0.05,
	models.TierPremium:   0.10,
}

var tierScores = map[models.SubscriptionTier]float64{
	models.TierFree:      60,
	models.TierAnalytics: 80,
	models.TierPremium:   100,
}

// GarageInput is one ranking candidate, constructed fresh per search
// request from garage, review and booking records.
type GarageInput struct {
	GarageID          string                  `json:"garageId"`
	GarageName        string                  `json:"garageName"`
	Tier              models.SubscriptionTier `json:"subscriptionTier"`
	IsFeatured        bool                    `json:"isFeatured"`
	AverageRating     float64                 `json:"averageRating"`
	TotalReviews      int                     `json:"totalReviews"`
	ResponseTimeHours float64                 `json:"responseTimeHours"`
	CompletionRate    float64                 `json:"completionRate"`
	CancellationRate  float64                 `json:"cancellationRate"`
	DistanceKm        *float64                `json:"distanceKm,omitempty"`
	IsAvailable       bool                    `json:"isAvailable"`
	NextAvailableSlot *time.Time              `json:"nextAvailableSlot,omitempty"`
	PriceLevel        models.PriceLevel       `json:"priceLevel,omitempty"`
	LastActiveAt      *time.Time              `json:"lastActiveAt,omitempty"`
	CompletedBookings int                     `json:"totalBookingsCompleted"`
}

// Breakdown exposes the eight sub-scores, each in [0,100].
type Breakdown struct {
	TierScore         float64 `json:"tierScore"`
	RatingScore       float64 `json:"ratingScore"`
	TrustScore        float64 `json:"trustScore"`
	ResponseScore     float64 `json:"responseScore"`
	CompletionScore   float64 `json:"completionScore"`
	DistanceScore     float64 `json:"distanceScore"`
	AvailabilityScore float64 `json:"availabilityScore"`
	ActivityScore     float64 `json:"activityScore"`
}

// Result is the scored garage.
type Result struct {
	GarageID   string    `json:"garageId"`
	GarageName string    `json:"garageName"`
	Score      float64   `json:"score"`
	Breakdown  Breakdown `json:"breakdown"`
	Badges     []string  `json:"badges"`
	IsFeatured bool      `json:"isFeatured"`
}

// CalculateGarageScore computes the composite score for one garage.
// Total over all inputs: missing optional fields degrade to neutral
// sub-scores rather than failing.
func CalculateGarageScore(in GarageInput, now time.Time) Result {
	breakdown := Breakdown{
		TierScore:         tierScore(in.Tier),
		RatingScore:       ratingScore(in.AverageRating),
		TrustScore:        trustScore(in.TotalReviews),
		ResponseScore:     responseScore(in.ResponseTimeHours),
		CompletionScore:   completionScore(in.CompletionRate, in.CancellationRate),
		DistanceScore:     distanceScore(in.DistanceKm),
		AvailabilityScore: availabilityScore(in.IsAvailable, in.NextAvailableSlot, now),
		ActivityScore:     activityScore(in.LastActiveAt, in.CompletedBookings, now),
	}

	weighted := breakdown.TierScore*WeightTier +
		breakdown.RatingScore*WeightRating +
		breakdown.TrustScore*WeightTrust +
		breakdown.ResponseScore*WeightResponse +
		breakdown.CompletionScore*WeightCompletion +
		breakdown.DistanceScore*WeightDistance +
		breakdown.AvailabilityScore*WeightAvailability +
		breakdown.ActivityScore*WeightActivity

	boosted := weighted * (1 + TierBoost[in.Tier])
	score := math.Round(math.Min(boosted, 100)*100) / 100

	return Result{
		GarageID:   in.GarageID,
		GarageName: in.GarageName,
		Score:      score,
		Breakdown:  breakdown,
		Badges:     AssignBadges(in),
		IsFeatured: in.IsFeatured || in.Tier == models.TierPremium,
	}
}

func tierScore(tier models.SubscriptionTier) float64 {
	if s, ok := tierScores[tier]; ok {
		return s
	}
	return tierScores[models.TierFree]
}

// ratingScore rewards marginal improvement far more steeply near the top
// of the scale than near the bottom: 4.8 beats 4.3 by more than 3.3 beats 2.8.
func ratingScore(rating float64) float64 {
	if rating <= 0 {
		return 50 // no rating yet, neutral
	}
	switch {
	case rating < 3.0:
		return rating * (40.0 / 3.0)
	case rating < 3.5:
		return 40 + (rating-3.0)*40
	case rating < 4.0:
		return 60 + (rating-3.5)*30
	case rating < 4.5:
		return 75 + (rating-4.0)*30
	default:
		return clamp(90+(rating-4.5)*20, 0, 100)
	}
}

// trustScore is a review-count confidence signal. Zero reviews is a
// new-garage penalty, not zero: no reviews is not proof of poor quality.
func trustScore(reviews int) float64 {
	n := float64(reviews)
	switch {
	case reviews <= 0:
		return 30
	case reviews < 5:
		return 35 + (n-1)*6.25
	case reviews < 20:
		return 60 + (n-5)*(25.0/15.0)
	case reviews < 50:
		return 85 + (n-20)*0.5
	default:
		return 100
	}
}

func responseScore(hours float64) float64 {
	switch {
	case hours <= 1:
		return 100
	case hours <= 4:
		return 100 - (hours-1)*10
	case hours <= 12:
		return 70 - (hours-4)*2.5
	case hours <= 24:
		return 50 - (hours-12)*(5.0/3.0)
	default:
		// keeps decaying past 24h but never below the floor
		return math.Max(20, 30-(hours-24)*0.5)
	}
}

// completionScore penalizes cancellation 3x as heavily as completion is
// rewarded, capped so cancellation rate alone cannot swing more than 30 points.
func completionScore(completionRate, cancellationRate float64) float64 {
	score := completionRate*100 - math.Min(30, cancellationRate*100*3)
	return clamp(score, 0, 100)
}

func distanceScore(km *float64) float64 {
	if km == nil {
		return 50 // customer location unknown
	}
	d := *km
	switch {
	case d <= 5:
		return 100
	case d <= 10:
		return 100 - (d-5)*4
	case d <= 20:
		return 80 - (d-10)*2
	case d <= 35:
		return 60 - (d-20)*(4.0/3.0)
	case d <= 50:
		return 40 - (d-35)*(4.0/3.0)
	default:
		return 20
	}
}

func availabilityScore(available bool, nextSlot *time.Time, now time.Time) float64 {
	if !available {
		return 20
	}
	if nextSlot == nil {
		return 80 // available, no slot data
	}
	hours := nextSlot.Sub(now).Hours()
	switch {
	case hours <= 24:
		return 100
	case hours <= 48:
		return 90
	case hours <= 72:
		return 70
	case hours <= 168:
		return 50
	default:
		return 30
	}
}

func activityScore(lastActive *time.Time, completed int, now time.Time) float64 {
	score := 50.0

	if lastActive == nil {
		score -= 10
	} else {
		days := now.Sub(*lastActive).Hours() / 24
		switch {
		case days <= 1:
			score += 30
		case days <= 7:
			score += 20
		case days <= 30:
			score += 10
		default:
			score -= 10
		}
	}

	switch {
	case completed >= 100:
		score += 20
	case completed >= 50:
		score += 15
	case completed >= 20:
		score += 10
	case completed >= 5:
		score += 5
	}

	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
