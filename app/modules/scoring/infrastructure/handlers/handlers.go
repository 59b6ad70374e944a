// Package scoringhandlers maps event-bus messages onto scoring service
// operations and publishes the resulting payloads.
package scoringhandlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	scoringservice "github.com/fairway-labs/looper/app/modules/scoring/application"
	scoringevents "github.com/fairway-labs/looper/app/modules/scoring/events"
	"github.com/fairway-labs/looper/app/shared"
	"github.com/fairway-labs/looper/app/shared/attr"
)

// ScoringHandlers subscribes to scoring request subjects.
type ScoringHandlers struct {
	service scoringservice.Service
	bus     shared.EventBus
	logger  *slog.Logger
}

// NewScoringHandlers creates a new ScoringHandlers.
func NewScoringHandlers(service scoringservice.Service, bus shared.EventBus, logger *slog.Logger) *ScoringHandlers {
	return &ScoringHandlers{
		service: service,
		bus:     bus,
		logger:  logger,
	}
}

// Register subscribes every scoring request subject.
func (h *ScoringHandlers) Register(ctx context.Context) error {
	subscriptions := map[string]func(ctx context.Context, msg *message.Message) error{
		scoringevents.ScoreboardRequested:   h.HandleScoreboardRequested,
		scoringevents.ScoreEditRequested:    h.HandleScoreEditRequested,
		scoringevents.InvalidationResolved:  h.HandleInvalidationResolution,
		scoringevents.ScorecardExportNeeded: h.HandleScorecardExportRequested,
	}
	for subject, handler := range subscriptions {
		if err := h.bus.Subscribe(ctx, subject, handler); err != nil {
			return fmt.Errorf("failed to subscribe %s: %w", subject, err)
		}
	}
	return nil
}

// unmarshalPayload decodes a message payload, logging decode failures. A
// malformed payload is dropped (acked), not retried forever.
func (h *ScoringHandlers) unmarshalPayload(ctx context.Context, msg *message.Message, out any) bool {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		h.logger.ErrorContext(ctx, "Failed to unmarshal payload",
			attr.String("message_id", msg.UUID),
			attr.Error(err),
		)
		return false
	}
	return true
}

// publish marshals a payload and sends it on a subject, propagating the
// incoming message's correlation metadata.
func (h *ScoringHandlers) publish(ctx context.Context, subject string, in *message.Message, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", subject, err)
	}
	out := message.NewMessage(watermill.NewUUID(), data)
	if in != nil {
		if cid := in.Metadata.Get("correlation_id"); cid != "" {
			out.Metadata.Set("correlation_id", cid)
		}
	}
	return h.bus.Publish(ctx, subject, out)
}

// handlerContext threads the correlation ID from message metadata into the
// context the service logs from.
func handlerContext(ctx context.Context, msg *message.Message) context.Context {
	if cid := msg.Metadata.Get("correlation_id"); cid != "" {
		return attr.WithCorrelationID(ctx, cid)
	}
	return ctx
}
