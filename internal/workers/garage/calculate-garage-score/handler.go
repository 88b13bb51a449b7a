// internal/workers/garage/calculate-garage-score/handler.go
package calculategaragescore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pickup-workers/internal/common/logger"
	"pickup-workers/internal/common/metrics"
	"pickup-workers/internal/ranking"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "calculate-garage-score"
)

var (
	ErrGarageScoreFailed = errors.New("GARAGE_SCORE_FAILED")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "GARAGE_SCORE_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var garage *ranking.GarageInput
	if input.Garage != nil {
		garage = input.Garage
	} else if input.GarageID != "" {
		var err error
		garage, err = h.getGarageInput(ctx, input.GarageID)
		if err != nil {
			return nil, err
		}
		garage.DistanceKm = input.DistanceKm
	} else {
		return nil, ErrGarageScoreFailed
	}

	result := ranking.CalculateGarageScore(*garage, time.Now().UTC())

	metrics.GarageScoresCalculated.WithLabelValues(string(garage.Tier)).Inc()
	metrics.GarageScoreDistribution.Observe(result.Score)

	h.logger.Info("garage score calculated", map[string]interface{}{
		"garageId": result.GarageID,
		"score":    result.Score,
		"badges":   result.Badges,
		"featured": result.IsFeatured,
	})

	return &Output{
		GarageID:   result.GarageID,
		GarageName: result.GarageName,
		Score:      result.Score,
		Breakdown:  result.Breakdown,
		Badges:     result.Badges,
		IsFeatured: result.IsFeatured,
	}, nil
}

func (h *Handler) getGarageInput(ctx context.Context, garageID string) (*ranking.GarageInput, error) {
	cacheKey := "garage:ranking:" + garageID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var garage ranking.GarageInput
		if err := json.Unmarshal([]byte(val), &garage); err == nil {
			return &garage, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT g.id, g.name, g.tier, g.featured, g.rating, g.review_count,
		       g.is_available, g.next_available_slot,
		       s.avg_response_hours, s.completion_rate, s.cancellation_rate,
		       s.completed_bookings, s.last_active_at
		FROM garages g
		LEFT JOIN garage_stats s ON s.garage_id = g.id
		WHERE g.id = $1`, garageID)

	var garage ranking.GarageInput
	var nextSlot, lastActive sql.NullTime
	var responseHours, completionRate, cancellationRate sql.NullFloat64
	var completedBookings sql.NullInt64

	err := row.Scan(&garage.GarageID, &garage.GarageName, &garage.Tier, &garage.IsFeatured,
		&garage.AverageRating, &garage.TotalReviews, &garage.IsAvailable, &nextSlot,
		&responseHours, &completionRate, &cancellationRate, &completedBookings, &lastActive)
	if err != nil {
		return nil, fmt.Errorf("load garage %s: %w", garageID, err)
	}

	if nextSlot.Valid {
		garage.NextAvailableSlot = &nextSlot.Time
	}
	if lastActive.Valid {
		garage.LastActiveAt = &lastActive.Time
	}
	garage.ResponseTimeHours = responseHours.Float64
	garage.CompletionRate = completionRate.Float64
	garage.CancellationRate = cancellationRate.Float64
	garage.CompletedBookings = int(completedBookings.Int64)

	data, _ := json.Marshal(garage)
	h.redis.Set(ctx, cacheKey, data, h.config.StatsCacheTTL)

	return &garage, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, _ int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
