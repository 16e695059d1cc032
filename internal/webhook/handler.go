package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadrelay/internal/call"
	"leadrelay/internal/logger"
	"leadrelay/pkg/health"
	"leadrelay/pkg/logging"
	"leadrelay/pkg/metrics"
	"leadrelay/pkg/worker"
)

type Handler struct {
	service Service
	pool    *worker.Pool
	health  *health.CheckerRegistry
	log     logger.Logger
}

func NewHandler(service Service, pool *worker.Pool, healthRegistry *health.CheckerRegistry, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		pool:    pool,
		health:  healthRegistry,
		log:     log,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.POST("/webhook", h.Receive)
}

// Health reports liveness and configuration presence. It never
// exercises an external call, so it stays cheap under probing.
func (h *Handler) Health(c *gin.Context) {
	result := h.health.Check(c.Request.Context())

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: result.Timestamp.Format(time.RFC3339),
		Services: ServicesStatus{
			OpenAI:    checkPassed(result, "openai"),
			Sheety:    checkPassed(result, "sheety"),
			SheetyURL: checkPassed(result, "sheety_url"),
		},
	})
}

// Receive validates the payload structurally, schedules the detached
// pipeline and acknowledges immediately. The synchronous path never
// waits for the pipeline.
func (h *Handler) Receive(c *gin.Context) {
	receiveTime := time.Now()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		h.reject(c, "Empty payload")
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		h.reject(c, "Invalid payload: expected a JSON object")
		return
	}
	if len(payload) == 0 {
		h.reject(c, "Empty payload")
		return
	}

	// Payloads without a conversation id are processed under a
	// generated identifier rather than rejected; the sender gets the
	// id back in the ack either way.
	requestID, ok := call.ConversationID(payload)
	if !ok {
		requestID = "gen-" + uuid.NewString()
	}

	ctx := logging.WithConversationID(c.Request.Context(), requestID)
	h.log.InfowCtx(ctx, "Received webhook", "payload_size", len(body))

	task := worker.Task{
		ID: requestID,
		Run: func(taskCtx context.Context) {
			h.service.Process(taskCtx, payload, requestID)
		},
	}

	if err := h.pool.Submit(task); err != nil {
		responseTime := time.Since(receiveTime)
		if errors.Is(err, worker.ErrQueueFull) || errors.Is(err, worker.ErrPoolClosed) {
			metrics.WebhooksReceivedTotal.WithLabelValues("rejected").Inc()
			h.log.WarnwCtx(ctx, "Webhook rejected, no background capacity", "error", err)
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Status:              "error",
				Message:             "Service overloaded, webhook not scheduled",
				RequestID:           requestID,
				Error:               err.Error(),
				ResponseTimeSeconds: roundSeconds(responseTime),
			})
			return
		}

		metrics.WebhooksReceivedTotal.WithLabelValues("error").Inc()
		h.log.ErrorwCtx(ctx, "Unexpected error scheduling webhook", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Status:              "error",
			Message:             "Internal server error",
			RequestID:           requestID,
			Error:               err.Error(),
			ResponseTimeSeconds: roundSeconds(responseTime),
		})
		return
	}

	responseTime := time.Since(receiveTime)
	metrics.WebhooksReceivedTotal.WithLabelValues("accepted").Inc()
	metrics.WebhookAckDuration.Observe(float64(responseTime.Microseconds()) / 1000.0)

	h.log.InfowCtx(ctx, "Responding immediately, processing in background",
		"response_time_seconds", responseTime.Seconds(),
	)

	c.JSON(http.StatusAccepted, AcceptedResponse{
		Status:    "accepted",
		Message:   "Webhook received and processing started",
		RequestID: requestID,
		Data: AcceptedData{
			PayloadSize:         len(body),
			ResponseTimeSeconds: roundSeconds(responseTime),
			ProcessingStatus:    "background",
		},
	})
}

func (h *Handler) reject(c *gin.Context, detail string) {
	metrics.WebhooksReceivedTotal.WithLabelValues("rejected").Inc()
	h.log.Warnw("Webhook rejected", "detail", detail)
	c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
}

func checkPassed(result health.Health, name string) bool {
	check, ok := result.Checks[name]
	return ok && check.Status == health.StatusHealthy
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}
