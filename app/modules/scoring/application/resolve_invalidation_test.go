package scoringservice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// editWithInvalidation applies the birdie edit that invalidates team 1's
// recorded double and returns the journaled edit ID.
func editWithInvalidation(t *testing.T, service *ScoringService, game *sharedtypes.Game) string {
	t.Helper()
	result, err := service.EditScore(context.Background(), game.ID, "p1", 1, 3)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	require.NotEmpty(t, result.Success.EditID)
	return result.Success.EditID
}

func TestResolveInvalidationKeep(t *testing.T) {
	game := testGame(t)
	repo := newFakeRepo(game)
	service := newTestService(repo)
	editID := editWithInvalidation(t, service, game)

	result, err := service.ResolveInvalidation(context.Background(), game.ID, editID, sharedtypes.ChoiceKeep, nil)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	// everything stays: the edit and the recorded double both survive
	assert.Equal(t, 3.0, game.RoundForPlayer("p1").Scores[0].Gross)
	assert.Len(t, game.Holes[1].Multipliers, 1)
	for _, edit := range repo.edits {
		assert.True(t, edit.Resolved)
	}
}

func TestResolveInvalidationRemove(t *testing.T) {
	game := testGame(t)
	repo := newFakeRepo(game)
	service := newTestService(repo)
	editID := editWithInvalidation(t, service, game)

	items := []sharedtypes.InvalidatedItem{{
		Kind: sharedtypes.InvalidationMultiplier, HoleNum: 2, TeamID: "1", Name: "double",
	}}
	result, err := service.ResolveInvalidation(context.Background(), game.ID, editID, sharedtypes.ChoiceRemove, items)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	// the stale double is gone, the edit stays
	assert.Empty(t, game.Holes[1].Multipliers)
	assert.Equal(t, 3.0, game.RoundForPlayer("p1").Scores[0].Gross)
}

func TestResolveInvalidationUndoRestoresPriorScore(t *testing.T) {
	game := testGame(t)
	repo := newFakeRepo(game)
	service := newTestService(repo)
	editID := editWithInvalidation(t, service, game)

	result, err := service.ResolveInvalidation(context.Background(), game.ID, editID, sharedtypes.ChoiceUndoEdit, nil)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	// the prior gross is back and the double is a legal play again
	assert.Equal(t, 4.0, game.RoundForPlayer("p1").Scores[0].Gross)
	assert.Len(t, game.Holes[1].Multipliers, 1)

	hole1 := result.Success.Results.HoleResult(1)
	assert.Equal(t, 0.0, hole1.TeamFor("1").Points)
}

func TestResolveInvalidationUnknownChoice(t *testing.T) {
	game := testGame(t)
	service := newTestService(newFakeRepo(game))
	editID := editWithInvalidation(t, service, game)

	result, err := service.ResolveInvalidation(context.Background(), game.ID, editID, "shrug", nil)
	require.NoError(t, err)
	require.True(t, result.IsFailure())
	assert.Contains(t, result.Failure.Error, "unknown invalidation choice")
}

func TestResolveInvalidationUnknownEdit(t *testing.T) {
	game := testGame(t)
	service := newTestService(newFakeRepo(game))

	result, err := service.ResolveInvalidation(context.Background(), game.ID, uuid.NewString(), sharedtypes.ChoiceKeep, nil)
	require.NoError(t, err)
	require.True(t, result.IsFailure())
	assert.Contains(t, result.Failure.Error, "score edit not found")
}

func TestResolveInvalidationMalformedEditID(t *testing.T) {
	game := testGame(t)
	service := newTestService(newFakeRepo(game))

	result, err := service.ResolveInvalidation(context.Background(), game.ID, "not-a-uuid", sharedtypes.ChoiceKeep, nil)
	require.NoError(t, err)
	require.True(t, result.IsFailure())
}
