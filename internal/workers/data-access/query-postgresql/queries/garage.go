// internal/workers/data-access/query-postgresql/queries/garage.go
package queries

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

func GarageDetails(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	garageID, ok := params["garageId"].(string)
	if !ok {
		garageIDs, multiOK := params["garageIds"].([]string)
		if !multiOK || len(garageIDs) == 0 {
			return nil, 0, 0, ErrMissingParam
		}
		return garagesByIDs(ctx, db, garageIDs)
	}

	start := time.Now()

	var id, name, tier, priceLevel string
	var featured, isAvailable bool
	var rating float64
	var reviewCount int
	var nextAvailableSlot sql.NullString
	var createdAt, updatedAt string

	err := db.QueryRowContext(ctx, `
		SELECT id, name, tier, featured, rating, review_count,
		       is_available, next_available_slot, price_level, created_at, updated_at
		FROM garages
		WHERE id = $1`, garageID).Scan(
		&id, &name, &tier, &featured,
		&rating, &reviewCount,
		&isAvailable, &nextAvailableSlot,
		&priceLevel, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":          id,
		"name":        name,
		"tier":        tier,
		"featured":    featured,
		"rating":      rating,
		"reviewCount": reviewCount,
		"isAvailable": isAvailable,
		"priceLevel":  priceLevel,
		"createdAt":   createdAt,
		"updatedAt":   updatedAt,
	}
	if nextAvailableSlot.Valid {
		result["nextAvailableSlot"] = nextAvailableSlot.String
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func garagesByIDs(ctx context.Context, db *sql.DB, garageIDs []string) (interface{}, int, int64, error) {
	start := time.Now()

	placeholders := make([]string, len(garageIDs))
	args := make([]interface{}, len(garageIDs))
	for i, id := range garageIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `SELECT id, name, tier, featured, rating, review_count
	          FROM garages WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, name, tier string
		var featured bool
		var rating float64
		var reviewCount int
		err := rows.Scan(&id, &name, &tier, &featured, &rating, &reviewCount)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":          id,
			"name":        name,
			"tier":        tier,
			"featured":    featured,
			"rating":      rating,
			"reviewCount": reviewCount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func GarageRankingStats(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	garageID, ok := params["garageId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id string
	var avgResponseHours, completionRate, cancellationRate float64
	var completedBookings, cancelledBookings int
	var lastActiveAt sql.NullString
	var refreshedAt string

	err := db.QueryRowContext(ctx, `
		SELECT garage_id, avg_response_hours, completed_bookings, cancelled_bookings,
		       completion_rate, cancellation_rate, last_active_at, refreshed_at
		FROM garage_stats
		WHERE garage_id = $1`, garageID).Scan(
		&id, &avgResponseHours,
		&completedBookings, &cancelledBookings,
		&completionRate, &cancellationRate,
		&lastActiveAt, &refreshedAt,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"garageId":          id,
		"avgResponseHours":  avgResponseHours,
		"completedBookings": completedBookings,
		"cancelledBookings": cancelledBookings,
		"completionRate":    completionRate,
		"cancellationRate":  cancellationRate,
		"refreshedAt":       refreshedAt,
	}
	if lastActiveAt.Valid {
		result["lastActiveAt"] = lastActiveAt.String
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func GarageReviews(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	garageID, ok := params["garageId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	limit := 20
	if filters, ok := params["filters"].(map[string]interface{}); ok {
		if l, ok := filters["limit"].(float64); ok && l > 0 {
			limit = int(l)
		}
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, garage_id, user_id, rating, comment, created_at
		FROM garage_reviews
		WHERE garage_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, garageID, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, gID, userID, comment, createdAt string
		var rating float64
		err := rows.Scan(&id, &gID, &userID, &rating, &comment, &createdAt)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":        id,
			"garageId":  gID,
			"userId":    userID,
			"rating":    rating,
			"comment":   comment,
			"createdAt": createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func GarageSubscription(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	garageID, ok := params["garageId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var gID, tier string
	var isValid bool
	var expiresAt sql.NullString

	err := db.QueryRowContext(ctx, `
		SELECT garage_id, tier, expires_at, is_valid
		FROM garage_subscriptions
		WHERE garage_id = $1`, garageID).Scan(
		&gID, &tier, &expiresAt, &isValid,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"garageId": gID,
		"tier":     tier,
		"isValid":  isValid,
	}
	if expiresAt.Valid {
		result["expiresAt"] = expiresAt.String
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}
