// internal/workers/data-access/query-postgresql/queries/booking.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

func BookingDetails(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	bookingID, ok := params["bookingId"].(string)
	if !ok {
		if userID, userOK := params["userId"].(string); userOK {
			return bookingsByUser(ctx, db, userID)
		}
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, userID, garageID, pickupTime, status, stage string
	var amount int64
	var createdAt, updatedAt string

	err := db.QueryRowContext(ctx, `
		SELECT id, user_id, garage_id, pickup_time, amount, status, stage, created_at, updated_at
		FROM bookings
		WHERE id = $1`, bookingID).Scan(
		&id, &userID, &garageID,
		&pickupTime, &amount,
		&status, &stage,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":         id,
		"userId":     userID,
		"garageId":   garageID,
		"pickupTime": pickupTime,
		"amount":     amount,
		"status":     status,
		"stage":      stage,
		"createdAt":  createdAt,
		"updatedAt":  updatedAt,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func bookingsByUser(ctx context.Context, db *sql.DB, userID string) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, garage_id, pickup_time, amount, status, stage
		FROM bookings
		WHERE user_id = $1
		ORDER BY pickup_time DESC`, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, garageID, pickupTime, status, stage string
		var amount int64
		err := rows.Scan(&id, &garageID, &pickupTime, &amount, &status, &stage)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":         id,
			"garageId":   garageID,
			"pickupTime": pickupTime,
			"amount":     amount,
			"status":     status,
			"stage":      stage,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}
