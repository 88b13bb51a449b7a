// internal/workers/booking/calculate-refund/handler.go
package calculaterefund

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"pickup-workers/internal/common/logger"
	"pickup-workers/internal/common/metrics"
	"pickup-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-refund"
)

var (
	ErrRefundCalcFailed = errors.New("REFUND_CALC_FAILED")
	ErrBookingNotFound  = errors.New("BOOKING_NOT_FOUND")
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
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
		if errors.Is(err, ErrBookingNotFound) {
			h.failJob(client, job, "BOOKING_NOT_FOUND", err.Error(), 0)
			return
		}
		h.failJob(client, job, "REFUND_CALC_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	pickupRaw := input.PickupTime
	amount := input.Amount
	status := input.Status
	stage := input.Stage

	if pickupRaw == "" && input.BookingID != "" {
		booking, err := h.getBooking(ctx, input.BookingID)
		if err != nil {
			return nil, err
		}
		pickupRaw = booking.PickupTime
		amount = int64(booking.Amount)
		status = booking.Status
		stage = booking.Stage
	}

	now := time.Now()
	pickupTime := ParsePickupTime(pickupRaw, now)
	calc := CalculateRefund(pickupTime, amount, status, stage, now)

	metrics.RefundDecisions.WithLabelValues(strconv.Itoa(calc.Percentage)).Inc()

	h.logger.Info("refund calculated", map[string]interface{}{
		"bookingId":  input.BookingID,
		"canCancel":  calc.CanCancel,
		"percentage": calc.Percentage,
		"amount":     calc.Amount,
		"reason":     calc.Reason,
	})

	return &Output{
		BookingID:       input.BookingID,
		Calculation:     calc,
		FormattedAmount: FormatAmount(calc.Amount),
		PolicyMessage:   PolicyMessage(calc.HoursUntilPickup),
	}, nil
}

func (h *Handler) getBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	row := h.db.QueryRowContext(ctx, `
		SELECT id, pickup_time, amount, status, stage
		FROM bookings WHERE id = $1`, bookingID)

	var booking models.Booking
	var stage sql.NullString
	err := row.Scan(&booking.ID, &booking.PickupTime, &booking.Amount, &booking.Status, &stage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("load booking %s: %w", bookingID, err)
	}
	booking.Stage = models.ServiceStage(stage.String)

	return &booking, nil
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
