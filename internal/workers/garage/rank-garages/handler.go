// internal/workers/garage/rank-garages/handler.go
package rankgarages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pickup-workers/internal/common/logger"
	"pickup-workers/internal/ranking"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "rank-garages"
)

var (
	ErrNilInput = errors.New("input cannot be nil")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		h.failJob(client, job, "RANKING_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	start := time.Now()

	candidates := dedupeGarages(input.Garages)
	ranked := ranking.RankGarages(candidates, start.UTC())
	if len(ranked) > h.config.MaxResults {
		ranked = ranked[:h.config.MaxResults]
	}

	duration := time.Since(start).Milliseconds()
	h.logger.Info("ranking completed", map[string]interface{}{
		"inputCount":  len(input.Garages),
		"outputCount": len(ranked),
		"durationMs":  duration,
	})

	if duration > 500 {
		h.logger.Warn("ranking exceeded 500ms", map[string]interface{}{
			"durationMs": duration,
		})
	}

	return &Output{RankedGarages: ranked}, nil
}

// dedupeGarages drops repeated garage IDs, keeping the first occurrence.
func dedupeGarages(garages []ranking.GarageInput) []ranking.GarageInput {
	seen := make(map[string]bool, len(garages))
	out := make([]ranking.GarageInput, 0, len(garages))
	for _, g := range garages {
		if seen[g.GarageID] {
			continue
		}
		seen[g.GarageID] = true
		out = append(out, g)
	}
	return out
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
