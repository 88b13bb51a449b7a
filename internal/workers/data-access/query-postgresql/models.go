// internal/workers/data-access/query-postgresql/models.go
package querypostgresql

import "pickup-workers/internal/models"

type Input struct {
	QueryType string                 `json:"queryType"`
	GarageID  string                 `json:"garageId,omitempty"`
	GarageIDs []string               `json:"garageIds,omitempty"`
	BookingID string                 `json:"bookingId,omitempty"`
	UserID    string                 `json:"userId,omitempty"`
	Filters   map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType
