package scoringhandlers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	scoringevents "github.com/fairway-labs/looper/app/modules/scoring/events"
	"github.com/fairway-labs/looper/app/shared/attr"
)

// HandleScoreboardRequested recomputes and publishes a scoreboard.
func (h *ScoringHandlers) HandleScoreboardRequested(ctx context.Context, msg *message.Message) error {
	ctx = handlerContext(ctx, msg)

	var payload scoringevents.ScoreboardRequestedPayload
	if !h.unmarshalPayload(ctx, msg, &payload) {
		return nil
	}

	result, err := h.service.ComputeScoreboard(ctx, payload.GameID)
	if err != nil {
		return err
	}

	if result.IsFailure() {
		h.logger.WarnContext(ctx, "Scoreboard computation failed",
			attr.GameID("game_id", string(payload.GameID)),
			attr.String("reason", result.Failure.Error),
		)
		return nil
	}
	return h.publish(ctx, scoringevents.ScoreboardRecomputed, msg, result.Success)
}
