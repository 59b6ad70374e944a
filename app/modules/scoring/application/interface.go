package scoringservice

import (
	"context"

	scoringevents "github.com/fairway-labs/looper/app/modules/scoring/events"
	"github.com/fairway-labs/looper/app/shared/results"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// Operation result types pairing a success payload with a business failure
// payload. Infrastructure errors travel separately as Go errors.
type (
	ScoreboardResult   = results.OperationResult[scoringevents.ScoreboardRecomputedPayload, scoringevents.ScoreboardFailedPayload]
	EditScoreResult    = results.OperationResult[scoringevents.ScoreEditAppliedPayload, scoringevents.ScoreEditFailedPayload]
	ResolutionResult   = results.OperationResult[scoringevents.InvalidationResolvedPayload, scoringevents.InvalidationResolutionFailedPayload]
	ExportResult       = results.OperationResult[scoringevents.ScorecardExportedPayload, scoringevents.ScorecardExportFailedPayload]
)

// Service is the scoring module's operation surface.
type Service interface {
	// ComputeScoreboard recomputes the full scoreboard for a game.
	ComputeScoreboard(ctx context.Context, gameID sharedtypes.GameID) (ScoreboardResult, error)

	// EditScore applies a gross score change, recomputes, and reports any
	// recorded decisions the edit invalidated.
	EditScore(ctx context.Context, gameID sharedtypes.GameID, player sharedtypes.PlayerID, hole int, gross float64) (EditScoreResult, error)

	// ResolveInvalidation applies the user's keep/remove/undo choice for an
	// edit that invalidated recorded decisions.
	ResolveInvalidation(ctx context.Context, gameID sharedtypes.GameID, editID string, choice sharedtypes.InvalidationChoice, items []sharedtypes.InvalidatedItem) (ResolutionResult, error)

	// ExportScorecard renders the scoreboard as an XLSX workbook with a
	// running-total chart.
	ExportScorecard(ctx context.Context, gameID sharedtypes.GameID) (ExportResult, error)
}
