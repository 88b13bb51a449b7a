// internal/workers/garage/validate-subscription/handler.go
package validatesubscription

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pickup-workers/internal/common/logger"
	"pickup-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "validate-subscription"
)

var (
	ErrSubscriptionInvalid     = errors.New("SUBSCRIPTION_INVALID")
	ErrSubscriptionExpired     = errors.New("SUBSCRIPTION_EXPIRED")
	ErrSubscriptionCheckFailed = errors.New("SUBSCRIPTION_CHECK_FAILED")
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
		errorCode, retries := classifyError(err)
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

// classifyError maps an execution error to a BPMN error code and a retry
// budget. Business errors are not retried.
func classifyError(err error) (string, int32) {
	switch {
	case errors.Is(err, ErrSubscriptionInvalid):
		return "SUBSCRIPTION_INVALID", 0
	case errors.Is(err, ErrSubscriptionExpired):
		return "SUBSCRIPTION_EXPIRED", 0
	case errors.Is(err, ErrSubscriptionCheckFailed):
		return "SUBSCRIPTION_CHECK_FAILED", 3
	default:
		return "UNKNOWN_ERROR", 0
	}
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	cacheKey := "sub:garage:" + input.GarageID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var sub Subscription
		if err := json.Unmarshal([]byte(val), &sub); err == nil {
			// a cached entry can cross its expiry mid-TTL; fall through
			// to the database so a renewal is picked up
			if !subscriptionExpired(sub.ExpiresAt, time.Now()) {
				return &Output{IsValid: sub.IsValid, TierLevel: sub.Tier, Boosted: isBoosted(sub.Tier)}, nil
			}
		}
	}

	var sub Subscription
	query := `SELECT garage_id, tier, expires_at, is_valid FROM garage_subscriptions WHERE garage_id = $1`
	err := h.db.QueryRowContext(ctx, query, input.GarageID).Scan(
		&sub.GarageID, &sub.Tier, &sub.ExpiresAt, &sub.IsValid,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriptionInvalid
		}
		return nil, fmt.Errorf("%w: %v", ErrSubscriptionCheckFailed, err)
	}

	if !sub.IsValid {
		return nil, ErrSubscriptionInvalid
	}

	if subscriptionExpired(sub.ExpiresAt, time.Now()) {
		return nil, ErrSubscriptionExpired
	}

	validTiers := map[string]bool{
		string(models.TierFree):      true,
		string(models.TierAnalytics): true,
		string(models.TierPremium):   true,
	}
	if !validTiers[sub.Tier] {
		return nil, ErrSubscriptionInvalid
	}

	data, _ := json.Marshal(sub)
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

	return &Output{IsValid: true, TierLevel: sub.Tier, Boosted: isBoosted(sub.Tier)}, nil
}

// subscriptionExpired reports whether expiresAt is in the past. An empty
// or unparseable timestamp never expires.
func subscriptionExpired(expiresAt string, now time.Time) bool {
	if expiresAt == "" {
		return false
	}
	exp, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return false
	}
	return now.After(exp)
}

func isBoosted(tier string) bool {
	return tier == string(models.TierAnalytics) || tier == string(models.TierPremium)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
	})

	// Technical failures get retried; business errors become BPMN errors
	if retries > 0 {
		if job.Retries > 0 && job.Retries < retries {
			retries = job.Retries
		}
		_, err := client.NewFailJobCommand().
			JobKey(job.Key).
			Retries(retries).
			ErrorMessage(errorMessage).
			Send(context.Background())
		if err != nil {
			h.logger.Error("failed to fail job", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return
	}

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
