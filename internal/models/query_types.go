// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeGarageDetails      QueryType = "garage_details"
	QueryTypeGarageRankingStats QueryType = "garage_ranking_stats"
	QueryTypeGarageReviews      QueryType = "garage_reviews"
	QueryTypeGarageSubscription QueryType = "garage_subscription"
	QueryTypeBookingDetails     QueryType = "booking_details"
)
