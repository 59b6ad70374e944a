package scoringservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/fairway-labs/looper/app/modules/scoring/engine"
	scoringevents "github.com/fairway-labs/looper/app/modules/scoring/events"
	scoringdb "github.com/fairway-labs/looper/app/modules/scoring/infrastructure/repositories"
	"github.com/fairway-labs/looper/app/shared/attr"
	"github.com/fairway-labs/looper/app/shared/results"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// ResolveInvalidation applies the user's choice for an edit that invalidated
// recorded decisions. Keep leaves everything in place; remove strips the
// invalidated records; undo restores the journaled prior gross. The engine
// never deletes on its own.
func (s *ScoringService) ResolveInvalidation(ctx context.Context, gameID sharedtypes.GameID, editID string, choice sharedtypes.InvalidationChoice, items []sharedtypes.InvalidatedItem) (ResolutionResult, error) {
	return withTelemetry(s, ctx, "ResolveInvalidation", gameID, func(ctx context.Context) (ResolutionResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (ResolutionResult, error) {
			id, err := uuid.Parse(editID)
			if err != nil {
				return resolutionFailure(gameID, editID, err), nil
			}

			edit, err := s.repo.GetEdit(ctx, db, id)
			if err != nil {
				if errors.Is(err, scoringdb.ErrEditNotFound) {
					return resolutionFailure(gameID, editID, err), nil
				}
				return ResolutionResult{}, err
			}

			game, err := s.loadGame(ctx, db, gameID)
			if err != nil {
				if errors.Is(err, scoringdb.ErrGameNotFound) {
					return resolutionFailure(gameID, editID, err), nil
				}
				return ResolutionResult{}, err
			}

			switch choice {
			case sharedtypes.ChoiceKeep:
				// Nothing to change; the user accepted the new state.

			case sharedtypes.ChoiceRemove:
				for _, item := range items {
					engine.RemoveInvalidatedItem(game, item)
				}
				s.logger.InfoContext(ctx, "Removed invalidated decisions",
					attr.ExtractCorrelationID(ctx),
					attr.GameID("game_id", string(gameID)),
					attr.Int("removed_items", len(items)),
				)

			case sharedtypes.ChoiceUndoEdit:
				round := game.RoundForPlayer(sharedtypes.PlayerID(edit.Player))
				if round == nil {
					return resolutionFailure(gameID, editID, ErrPlayerNotInGame), nil
				}
				score := scoreRowFor(round, edit.Hole)
				if score == nil {
					return resolutionFailure(gameID, editID, ErrHoleNotInGame), nil
				}
				score.Gross = edit.PrevGross

			default:
				return resolutionFailure(gameID, editID, ErrUnknownChoice), nil
			}

			computed := s.compute(ctx, game)

			dbStart := time.Now()
			err = s.repo.SaveGame(ctx, db, game)
			s.metrics.RecordDBQueryDuration(ctx, time.Since(dbStart))
			if err != nil {
				return ResolutionResult{}, err
			}
			if err := s.repo.MarkEditResolved(ctx, db, id); err != nil {
				return ResolutionResult{}, err
			}

			return results.SuccessResult[scoringevents.InvalidationResolvedPayload, scoringevents.InvalidationResolutionFailedPayload](
				scoringevents.InvalidationResolvedPayload{
					GameID:  gameID,
					Choice:  choice,
					Results: computed,
				}), nil
		})
	})
}

func resolutionFailure(gameID sharedtypes.GameID, editID string, err error) ResolutionResult {
	return results.FailureResult[scoringevents.InvalidationResolvedPayload](
		scoringevents.InvalidationResolutionFailedPayload{
			GameID: gameID,
			EditID: editID,
			Error:  err.Error(),
		})
}
