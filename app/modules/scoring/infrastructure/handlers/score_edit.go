package scoringhandlers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	scoringevents "github.com/fairway-labs/looper/app/modules/scoring/events"
)

// HandleScoreEditRequested applies a score edit. The recomputed scoreboard is
// always published; detected invalidations go out on their own subject so the
// caller can prompt for a resolution.
func (h *ScoringHandlers) HandleScoreEditRequested(ctx context.Context, msg *message.Message) error {
	ctx = handlerContext(ctx, msg)

	var payload scoringevents.ScoreEditRequestedPayload
	if !h.unmarshalPayload(ctx, msg, &payload) {
		return nil
	}

	result, err := h.service.EditScore(ctx, payload.GameID, payload.Player, payload.Hole, payload.Gross)
	if err != nil {
		return err
	}

	if result.IsFailure() {
		return h.publish(ctx, scoringevents.ScoreEditFailed, msg, result.Failure)
	}

	if result.Success.Invalidation != nil {
		if err := h.publish(ctx, scoringevents.InvalidationsDetected, msg, result.Success); err != nil {
			return err
		}
	}
	return h.publish(ctx, scoringevents.ScoreboardRecomputed, msg, scoringevents.ScoreboardRecomputedPayload{
		GameID:  payload.GameID,
		Results: result.Success.Results,
	})
}
