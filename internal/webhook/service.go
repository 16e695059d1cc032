package webhook

import (
	"context"
	"time"

	"leadrelay/internal/call"
	"leadrelay/internal/lead"
	"leadrelay/internal/llm"
	"leadrelay/internal/logger"
	"leadrelay/internal/sheets"
	pkgerrors "leadrelay/pkg/errors"
	"leadrelay/pkg/logging"
	"leadrelay/pkg/metrics"
)

const (
	outcomeDelivered = "delivered"
	outcomeSkipped   = "skipped"
	outcomeFailed    = "failed"
)

// Service runs the detached pipeline for one webhook: normalize,
// build prompts, extract, map, deliver. All failures are terminal and
// local; nothing escalates to the synchronous path and nothing
// retries.
type Service interface {
	Process(ctx context.Context, payload map[string]interface{}, requestID string)
}

type service struct {
	extractor llm.Extractor
	sink      *sheets.Client
	log       logger.Logger
	now       func() time.Time
}

func NewService(extractor llm.Extractor, sink *sheets.Client, log logger.Logger) Service {
	return &service{
		extractor: extractor,
		sink:      sink,
		log:       log,
		now:       time.Now,
	}
}

func (s *service) Process(ctx context.Context, payload map[string]interface{}, requestID string) {
	start := time.Now()
	ctx = logging.WithConversationID(ctx, requestID)

	defer func() {
		if r := recover(); r != nil {
			err := pkgerrors.RecoverPanic(r)
			s.log.ErrorwCtx(ctx, "Unexpected error in background processing",
				"error", err,
				"elapsed_seconds", time.Since(start).Seconds(),
			)
			s.finish(ctx, start, outcomeFailed)
		}
	}()

	s.log.InfowCtx(ctx, "Starting background processing")

	record := call.Normalize(payload)

	if len(record.Transcript) == 0 {
		s.log.WarnwCtx(ctx, "No transcript found in payload")
		s.finish(ctx, start, outcomeSkipped)
		return
	}
	s.log.InfowCtx(ctx, "Payload normalized", "transcript_entries", len(record.Transcript))

	system, user := lead.BuildPrompt(record.Transcript, record.Summary)

	extractStart := time.Now()
	analysis, err := s.extractor.Extract(ctx, system, user)
	metrics.ObserveExtractionDuration(time.Since(extractStart))
	if err != nil {
		metrics.ExtractionRequestsTotal.WithLabelValues("error").Inc()
		s.log.ErrorwCtx(ctx, "Extraction failed", "error", err)
		s.finish(ctx, start, outcomeFailed)
		return
	}
	metrics.ExtractionRequestsTotal.WithLabelValues("success").Inc()

	if analysis.IsEmpty() {
		s.log.WarnwCtx(ctx, "Extraction returned no fields")
	}

	deliveryRecord := lead.ToDeliveryRecord(analysis, record.DynamicVariables, s.now)
	s.log.InfowCtx(ctx, "Lead analysis mapped", "fields", len(deliveryRecord))

	if !s.sink.Enabled() {
		s.log.WarnwCtx(ctx, "Delivery sink not configured, skipping send")
		s.finish(ctx, start, outcomeSkipped)
		return
	}

	deliveryStart := time.Now()
	delivered := s.sink.Post(ctx, deliveryRecord)
	metrics.ObserveDeliveryDuration(time.Since(deliveryStart))

	if delivered {
		metrics.DeliveryRequestsTotal.WithLabelValues("success").Inc()
		s.log.InfowCtx(ctx, "Lead delivered")
		s.finish(ctx, start, outcomeDelivered)
	} else {
		metrics.DeliveryRequestsTotal.WithLabelValues("error").Inc()
		s.log.WarnwCtx(ctx, "Failed to deliver lead")
		s.finish(ctx, start, outcomeFailed)
	}
}

func (s *service) finish(ctx context.Context, start time.Time, outcome string) {
	elapsed := time.Since(start)
	metrics.PipelineTasksTotal.WithLabelValues(outcome).Inc()
	metrics.ObservePipelineDuration(elapsed, outcome)
	s.log.InfowCtx(ctx, "Background processing completed",
		"outcome", outcome,
		"elapsed_seconds", elapsed.Seconds(),
	)
}
