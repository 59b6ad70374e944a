package scoringservice

import (
	"context"
	"errors"

	scoringevents "github.com/fairway-labs/looper/app/modules/scoring/events"
	scoringdb "github.com/fairway-labs/looper/app/modules/scoring/infrastructure/repositories"
	"github.com/fairway-labs/looper/app/shared/results"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// ComputeScoreboard recomputes the full scoreboard for a game.
func (s *ScoringService) ComputeScoreboard(ctx context.Context, gameID sharedtypes.GameID) (ScoreboardResult, error) {
	return withTelemetry(s, ctx, "ComputeScoreboard", gameID, func(ctx context.Context) (ScoreboardResult, error) {
		game, err := s.loadGame(ctx, nil, gameID)
		if err != nil {
			if errors.Is(err, scoringdb.ErrGameNotFound) {
				return results.FailureResult[scoringevents.ScoreboardRecomputedPayload](
					scoringevents.ScoreboardFailedPayload{
						GameID: gameID,
						Error:  err.Error(),
					}), nil
			}
			return ScoreboardResult{}, err
		}

		computed := s.compute(ctx, game)
		return results.SuccessResult[scoringevents.ScoreboardRecomputedPayload, scoringevents.ScoreboardFailedPayload](
			scoringevents.ScoreboardRecomputedPayload{
				GameID:  gameID,
				Results: computed,
			}), nil
	})
}
