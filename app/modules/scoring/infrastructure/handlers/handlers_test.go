package scoringhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scoringservice "github.com/fairway-labs/looper/app/modules/scoring/application"
	scoringevents "github.com/fairway-labs/looper/app/modules/scoring/events"
	"github.com/fairway-labs/looper/app/shared/results"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

func newMsg(t *testing.T, payload any) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), data)
}

func decode[T any](t *testing.T, msg *message.Message) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(msg.Payload, &out))
	return out
}

func TestHandleScoreEditPublishesScoreboard(t *testing.T) {
	computed := &sharedtypes.ComputedResults{}
	service := &fakeService{
		editScoreFn: func(_ context.Context, gameID sharedtypes.GameID, player sharedtypes.PlayerID, hole int, gross float64) (scoringservice.EditScoreResult, error) {
			assert.Equal(t, sharedtypes.GameID("g1"), gameID)
			assert.Equal(t, sharedtypes.PlayerID("p1"), player)
			assert.Equal(t, 4, hole)
			assert.Equal(t, 5.0, gross)
			return results.SuccessResult[scoringevents.ScoreEditAppliedPayload, scoringevents.ScoreEditFailedPayload](
				scoringevents.ScoreEditAppliedPayload{GameID: gameID, Player: player, Hole: hole, Results: computed},
			), nil
		},
	}
	bus := newFakeBus()
	handlers := NewScoringHandlers(service, bus, slog.Default())

	msg := newMsg(t, scoringevents.ScoreEditRequestedPayload{GameID: "g1", Player: "p1", Hole: 4, Gross: 5})
	require.NoError(t, handlers.HandleScoreEditRequested(context.Background(), msg))

	require.Len(t, bus.published[scoringevents.ScoreboardRecomputed], 1)
	assert.Empty(t, bus.published[scoringevents.InvalidationsDetected])

	out := decode[scoringevents.ScoreboardRecomputedPayload](t, bus.published[scoringevents.ScoreboardRecomputed][0])
	assert.Equal(t, sharedtypes.GameID("g1"), out.GameID)
}

func TestHandleScoreEditPublishesInvalidations(t *testing.T) {
	service := &fakeService{
		editScoreFn: func(_ context.Context, gameID sharedtypes.GameID, player sharedtypes.PlayerID, hole int, _ float64) (scoringservice.EditScoreResult, error) {
			return results.SuccessResult[scoringevents.ScoreEditAppliedPayload, scoringevents.ScoreEditFailedPayload](
				scoringevents.ScoreEditAppliedPayload{
					GameID: gameID, Player: player, Hole: hole,
					EditID:  "e1",
					Results: &sharedtypes.ComputedResults{},
					Invalidation: &sharedtypes.InvalidationResult{
						HasInvalidations: true,
						Items:            []sharedtypes.InvalidatedItem{{Name: "double"}},
					},
				},
			), nil
		},
	}
	bus := newFakeBus()
	handlers := NewScoringHandlers(service, bus, slog.Default())

	msg := newMsg(t, scoringevents.ScoreEditRequestedPayload{GameID: "g1", Player: "p1", Hole: 2, Gross: 3})
	require.NoError(t, handlers.HandleScoreEditRequested(context.Background(), msg))

	require.Len(t, bus.published[scoringevents.InvalidationsDetected], 1)
	require.Len(t, bus.published[scoringevents.ScoreboardRecomputed], 1)

	out := decode[scoringevents.ScoreEditAppliedPayload](t, bus.published[scoringevents.InvalidationsDetected][0])
	assert.Equal(t, "e1", out.EditID)
	assert.True(t, out.Invalidation.HasInvalidations)
}

func TestHandleScoreEditPublishesFailure(t *testing.T) {
	service := &fakeService{
		editScoreFn: func(_ context.Context, gameID sharedtypes.GameID, player sharedtypes.PlayerID, hole int, _ float64) (scoringservice.EditScoreResult, error) {
			return results.FailureResult[scoringevents.ScoreEditAppliedPayload](
				scoringevents.ScoreEditFailedPayload{GameID: gameID, Player: player, Hole: hole, Error: "player has no round in this game"},
			), nil
		},
	}
	bus := newFakeBus()
	handlers := NewScoringHandlers(service, bus, slog.Default())

	msg := newMsg(t, scoringevents.ScoreEditRequestedPayload{GameID: "g1", Player: "p9", Hole: 2})
	require.NoError(t, handlers.HandleScoreEditRequested(context.Background(), msg))

	require.Len(t, bus.published[scoringevents.ScoreEditFailed], 1)
	assert.Empty(t, bus.published[scoringevents.ScoreboardRecomputed])
}

func TestHandleScoreEditServiceErrorNacks(t *testing.T) {
	service := &fakeService{
		editScoreFn: func(context.Context, sharedtypes.GameID, sharedtypes.PlayerID, int, float64) (scoringservice.EditScoreResult, error) {
			return scoringservice.EditScoreResult{}, errors.New("db down")
		},
	}
	handlers := NewScoringHandlers(service, newFakeBus(), slog.Default())

	msg := newMsg(t, scoringevents.ScoreEditRequestedPayload{GameID: "g1"})
	err := handlers.HandleScoreEditRequested(context.Background(), msg)
	require.Error(t, err, "infrastructure errors propagate so the message is redelivered")
}

func TestHandleScoreEditMalformedPayloadDropped(t *testing.T) {
	called := false
	service := &fakeService{
		editScoreFn: func(context.Context, sharedtypes.GameID, sharedtypes.PlayerID, int, float64) (scoringservice.EditScoreResult, error) {
			called = true
			return scoringservice.EditScoreResult{}, nil
		},
	}
	bus := newFakeBus()
	handlers := NewScoringHandlers(service, bus, slog.Default())

	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	require.NoError(t, handlers.HandleScoreEditRequested(context.Background(), msg))
	assert.False(t, called)
	assert.Empty(t, bus.published)
}

func TestHandleScoreboardRequestedPropagatesCorrelationID(t *testing.T) {
	service := &fakeService{
		computeScoreboardFn: func(_ context.Context, gameID sharedtypes.GameID) (scoringservice.ScoreboardResult, error) {
			return results.SuccessResult[scoringevents.ScoreboardRecomputedPayload, scoringevents.ScoreboardFailedPayload](
				scoringevents.ScoreboardRecomputedPayload{GameID: gameID, Results: &sharedtypes.ComputedResults{}},
			), nil
		},
	}
	bus := newFakeBus()
	handlers := NewScoringHandlers(service, bus, slog.Default())

	msg := newMsg(t, scoringevents.ScoreboardRequestedPayload{GameID: "g1"})
	msg.Metadata.Set("correlation_id", "corr-42")
	require.NoError(t, handlers.HandleScoreboardRequested(context.Background(), msg))

	require.Len(t, bus.published[scoringevents.ScoreboardRecomputed], 1)
	assert.Equal(t, "corr-42", bus.published[scoringevents.ScoreboardRecomputed][0].Metadata.Get("correlation_id"))
}

func TestHandleScorecardExportRequested(t *testing.T) {
	service := &fakeService{
		exportScorecardFn: func(_ context.Context, gameID sharedtypes.GameID) (scoringservice.ExportResult, error) {
			return results.SuccessResult[scoringevents.ScorecardExportedPayload, scoringevents.ScorecardExportFailedPayload](
				scoringevents.ScorecardExportedPayload{GameID: gameID, Filename: "scorecard-g1.xlsx", Workbook: []byte{1}},
			), nil
		},
	}
	bus := newFakeBus()
	handlers := NewScoringHandlers(service, bus, slog.Default())

	msg := newMsg(t, scoringevents.ScorecardExportRequestedPayload{GameID: "g1"})
	require.NoError(t, handlers.HandleScorecardExportRequested(context.Background(), msg))

	require.Len(t, bus.published[scoringevents.ScorecardExported], 1)
	out := decode[scoringevents.ScorecardExportedPayload](t, bus.published[scoringevents.ScorecardExported][0])
	assert.Equal(t, "scorecard-g1.xlsx", out.Filename)
}

func TestHandleInvalidationResolution(t *testing.T) {
	service := &fakeService{
		resolveInvalidationFn: func(_ context.Context, gameID sharedtypes.GameID, editID string, choice sharedtypes.InvalidationChoice, _ []sharedtypes.InvalidatedItem) (scoringservice.ResolutionResult, error) {
			assert.Equal(t, "e1", editID)
			assert.Equal(t, sharedtypes.ChoiceRemove, choice)
			return results.SuccessResult[scoringevents.InvalidationResolvedPayload, scoringevents.InvalidationResolutionFailedPayload](
				scoringevents.InvalidationResolvedPayload{GameID: gameID, Choice: choice, Results: &sharedtypes.ComputedResults{}},
			), nil
		},
	}
	bus := newFakeBus()
	handlers := NewScoringHandlers(service, bus, slog.Default())

	msg := newMsg(t, scoringevents.InvalidationResolutionPayload{GameID: "g1", EditID: "e1", Choice: sharedtypes.ChoiceRemove})
	require.NoError(t, handlers.HandleInvalidationResolution(context.Background(), msg))
	require.Len(t, bus.published[scoringevents.ScoreboardRecomputed], 1)
}
