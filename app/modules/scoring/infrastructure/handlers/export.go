package scoringhandlers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	scoringevents "github.com/fairway-labs/looper/app/modules/scoring/events"
	"github.com/fairway-labs/looper/app/shared/attr"
)

// HandleScorecardExportRequested renders and publishes a scorecard.
func (h *ScoringHandlers) HandleScorecardExportRequested(ctx context.Context, msg *message.Message) error {
	ctx = handlerContext(ctx, msg)

	var payload scoringevents.ScorecardExportRequestedPayload
	if !h.unmarshalPayload(ctx, msg, &payload) {
		return nil
	}

	result, err := h.service.ExportScorecard(ctx, payload.GameID)
	if err != nil {
		return err
	}

	if result.IsFailure() {
		h.logger.WarnContext(ctx, "Scorecard export failed",
			attr.GameID("game_id", string(payload.GameID)),
			attr.String("reason", result.Failure.Error),
		)
		return nil
	}
	return h.publish(ctx, scoringevents.ScorecardExported, msg, result.Success)
}
