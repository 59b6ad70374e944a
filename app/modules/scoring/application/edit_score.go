package scoringservice

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/fairway-labs/looper/app/modules/scoring/engine"
	scoringevents "github.com/fairway-labs/looper/app/modules/scoring/events"
	scoringdb "github.com/fairway-labs/looper/app/modules/scoring/infrastructure/repositories"
	"github.com/fairway-labs/looper/app/shared/attr"
	"github.com/fairway-labs/looper/app/shared/results"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// EditScore applies a gross score change, recomputes the scoreboard, and
// checks recorded decisions on later holes against the new state. The edit is
// always applied; invalidations are reported for the user to resolve, with
// the prior gross journaled so undo can restore it exactly.
func (s *ScoringService) EditScore(ctx context.Context, gameID sharedtypes.GameID, player sharedtypes.PlayerID, hole int, gross float64) (EditScoreResult, error) {
	return withTelemetry(s, ctx, "EditScore", gameID, func(ctx context.Context) (EditScoreResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (EditScoreResult, error) {
			game, err := s.loadGame(ctx, db, gameID)
			if err != nil {
				if errors.Is(err, scoringdb.ErrGameNotFound) {
					return editFailure(gameID, player, hole, err), nil
				}
				return EditScoreResult{}, err
			}

			round := game.RoundForPlayer(player)
			if round == nil {
				return editFailure(gameID, player, hole, ErrPlayerNotInGame), nil
			}

			score := scoreRowFor(round, hole)
			if score == nil {
				if !holeInGame(game, hole) {
					return editFailure(gameID, player, hole, ErrHoleNotInGame), nil
				}
				score = &sharedtypes.Score{Hole: hole}
				round.Scores = append(round.Scores, score)
			}

			prevGross := score.Gross
			score.Gross = gross

			computed := s.compute(ctx, game)
			invalidation := engine.DetectInvalidations(game, computed, hole)

			payload := scoringevents.ScoreEditAppliedPayload{
				GameID:  gameID,
				Player:  player,
				Hole:    hole,
				Results: computed,
			}

			if invalidation.HasInvalidations {
				edit := &scoringdb.ScoreEdit{
					GameID:    string(gameID),
					Player:    string(player),
					Hole:      hole,
					PrevGross: prevGross,
					NewGross:  gross,
				}
				if err := s.repo.RecordEdit(ctx, db, edit); err != nil {
					return EditScoreResult{}, err
				}
				payload.EditID = edit.ID.String()
				payload.Invalidation = invalidation

				s.metrics.RecordInvalidationsDetected(ctx, gameID, len(invalidation.Items))
				s.logger.WarnContext(ctx, "Score edit invalidated recorded decisions",
					attr.ExtractCorrelationID(ctx),
					attr.GameID("game_id", string(gameID)),
					attr.HoleNum("hole", hole),
					attr.Int("invalidated_items", len(invalidation.Items)),
				)
			}

			dbStart := time.Now()
			err = s.repo.SaveGame(ctx, db, game)
			s.metrics.RecordDBQueryDuration(ctx, time.Since(dbStart))
			if err != nil {
				return EditScoreResult{}, err
			}

			return results.SuccessResult[scoringevents.ScoreEditAppliedPayload, scoringevents.ScoreEditFailedPayload](payload), nil
		})
	})
}

func editFailure(gameID sharedtypes.GameID, player sharedtypes.PlayerID, hole int, err error) EditScoreResult {
	return results.FailureResult[scoringevents.ScoreEditAppliedPayload](
		scoringevents.ScoreEditFailedPayload{
			GameID: gameID,
			Player: player,
			Hole:   hole,
			Error:  err.Error(),
		})
}

func scoreRowFor(round *sharedtypes.Round, hole int) *sharedtypes.Score {
	for _, s := range round.Scores {
		if s != nil && s.Hole == hole {
			return s
		}
	}
	return nil
}

func holeInGame(game *sharedtypes.Game, hole int) bool {
	for _, n := range game.HoleNumbers() {
		if n == hole {
			return true
		}
	}
	return false
}
