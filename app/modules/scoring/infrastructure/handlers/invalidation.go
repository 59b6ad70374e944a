package scoringhandlers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	scoringevents "github.com/fairway-labs/looper/app/modules/scoring/events"
	"github.com/fairway-labs/looper/app/shared/attr"
)

// HandleInvalidationResolution applies a keep/remove/undo choice and
// publishes the scoreboard that results from it.
func (h *ScoringHandlers) HandleInvalidationResolution(ctx context.Context, msg *message.Message) error {
	ctx = handlerContext(ctx, msg)

	var payload scoringevents.InvalidationResolutionPayload
	if !h.unmarshalPayload(ctx, msg, &payload) {
		return nil
	}

	result, err := h.service.ResolveInvalidation(ctx, payload.GameID, payload.EditID, payload.Choice, payload.Items)
	if err != nil {
		return err
	}

	if result.IsFailure() {
		h.logger.WarnContext(ctx, "Invalidation resolution rejected",
			attr.GameID("game_id", string(payload.GameID)),
			attr.String("edit_id", payload.EditID),
			attr.String("reason", result.Failure.Error),
		)
		return nil
	}
	return h.publish(ctx, scoringevents.ScoreboardRecomputed, msg, scoringevents.ScoreboardRecomputedPayload{
		GameID:  payload.GameID,
		Results: result.Success.Results,
	})
}
