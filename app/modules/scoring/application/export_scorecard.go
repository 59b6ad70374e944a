package scoringservice

import (
	"context"
	"errors"
	"fmt"

	scoringevents "github.com/fairway-labs/looper/app/modules/scoring/events"
	scoringdb "github.com/fairway-labs/looper/app/modules/scoring/infrastructure/repositories"
	"github.com/fairway-labs/looper/app/modules/scoring/scorecard"
	"github.com/fairway-labs/looper/app/shared/results"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// ExportScorecard renders the scoreboard as an XLSX workbook plus a
// running-total chart PNG.
func (s *ScoringService) ExportScorecard(ctx context.Context, gameID sharedtypes.GameID) (ExportResult, error) {
	return withTelemetry(s, ctx, "ExportScorecard", gameID, func(ctx context.Context) (ExportResult, error) {
		game, err := s.loadGame(ctx, nil, gameID)
		if err != nil {
			if errors.Is(err, scoringdb.ErrGameNotFound) {
				return exportFailure(gameID, err), nil
			}
			return ExportResult{}, err
		}

		computed := s.compute(ctx, game)

		workbook, err := scorecard.Render(game, computed)
		if err != nil {
			return ExportResult{}, err
		}
		chartPNG, err := scorecard.RunningTotalChart(computed)
		if err != nil {
			return ExportResult{}, err
		}

		return results.SuccessResult[scoringevents.ScorecardExportedPayload, scoringevents.ScorecardExportFailedPayload](
			scoringevents.ScorecardExportedPayload{
				GameID:   gameID,
				Filename: fmt.Sprintf("scorecard-%s.xlsx", gameID),
				Workbook: workbook,
				ChartPNG: chartPNG,
			}), nil
	})
}

func exportFailure(gameID sharedtypes.GameID, err error) ExportResult {
	return results.FailureResult[scoringevents.ScorecardExportedPayload](
		scoringevents.ScorecardExportFailedPayload{
			GameID: gameID,
			Error:  err.Error(),
		})
}
