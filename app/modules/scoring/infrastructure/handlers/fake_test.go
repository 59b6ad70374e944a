package scoringhandlers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	scoringservice "github.com/fairway-labs/looper/app/modules/scoring/application"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// fakeService is a programmable scoringservice.Service.
type fakeService struct {
	computeScoreboardFn   func(ctx context.Context, gameID sharedtypes.GameID) (scoringservice.ScoreboardResult, error)
	editScoreFn           func(ctx context.Context, gameID sharedtypes.GameID, player sharedtypes.PlayerID, hole int, gross float64) (scoringservice.EditScoreResult, error)
	resolveInvalidationFn func(ctx context.Context, gameID sharedtypes.GameID, editID string, choice sharedtypes.InvalidationChoice, items []sharedtypes.InvalidatedItem) (scoringservice.ResolutionResult, error)
	exportScorecardFn     func(ctx context.Context, gameID sharedtypes.GameID) (scoringservice.ExportResult, error)
}

func (f *fakeService) ComputeScoreboard(ctx context.Context, gameID sharedtypes.GameID) (scoringservice.ScoreboardResult, error) {
	return f.computeScoreboardFn(ctx, gameID)
}

func (f *fakeService) EditScore(ctx context.Context, gameID sharedtypes.GameID, player sharedtypes.PlayerID, hole int, gross float64) (scoringservice.EditScoreResult, error) {
	return f.editScoreFn(ctx, gameID, player, hole, gross)
}

func (f *fakeService) ResolveInvalidation(ctx context.Context, gameID sharedtypes.GameID, editID string, choice sharedtypes.InvalidationChoice, items []sharedtypes.InvalidatedItem) (scoringservice.ResolutionResult, error) {
	return f.resolveInvalidationFn(ctx, gameID, editID, choice, items)
}

func (f *fakeService) ExportScorecard(ctx context.Context, gameID sharedtypes.GameID) (scoringservice.ExportResult, error) {
	return f.exportScorecardFn(ctx, gameID)
}

// fakeBus records published messages per subject.
type fakeBus struct {
	published  map[string][]*message.Message
	publishErr error
}

func newFakeBus() *fakeBus {
	return &fakeBus{published: make(map[string][]*message.Message)}
}

func (f *fakeBus) Publish(_ context.Context, subject string, msg *message.Message) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published[subject] = append(f.published[subject], msg)
	return nil
}

func (f *fakeBus) Subscribe(context.Context, string, func(ctx context.Context, msg *message.Message) error) error {
	return nil
}

func (f *fakeBus) CreateStream(context.Context, string, ...string) error { return nil }

func (f *fakeBus) Close() error { return nil }
