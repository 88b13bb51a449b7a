// internal/ranking/badges.go
package ranking

import "pickup-workers/internal/models"

// Badge names surfaced on garage listings.
const (
	BadgePremium        = "premium"
	BadgeTopRated       = "top_rated"
	BadgeQuickResponder = "quick_responder"
	BadgeTrusted        = "trusted"
	BadgeReliable       = "reliable"
	BadgeNew            = "new"
)

// AssignBadges returns all badges the garage qualifies for. Badges are
// independent of the composite score and not mutually exclusive: a garage
// with few reviews but a strong completion rate on a small sample can
// carry both "new" and "reliable".
func AssignBadges(in GarageInput) []string {
	badges := []string{}

	if in.Tier == models.TierPremium {
		badges = append(badges, BadgePremium)
	}
	if in.AverageRating >= 4.5 && in.TotalReviews >= 10 {
		badges = append(badges, BadgeTopRated)
	}
	if in.ResponseTimeHours > 0 && in.ResponseTimeHours <= 2 {
		badges = append(badges, BadgeQuickResponder)
	}
	if in.TotalReviews >= 50 {
		badges = append(badges, BadgeTrusted)
	}
	if in.CompletionRate >= 0.95 && in.CompletedBookings >= 20 {
		badges = append(badges, BadgeReliable)
	}
	if in.TotalReviews < 10 && in.CompletedBookings < 20 {
		badges = append(badges, BadgeNew)
	}

	return badges
}
