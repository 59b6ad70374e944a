package scoringservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

func TestComputeScoreboard(t *testing.T) {
	game := testGame(t)
	service := newTestService(newFakeRepo(game))

	result, err := service.ComputeScoreboard(context.Background(), game.ID)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	computed := result.Success.Results
	require.NotNil(t, computed)
	require.Len(t, computed.Holes, 2)

	// team 2's marked prox is the only hole-1 scoring
	hole1 := computed.HoleResult(1)
	assert.Equal(t, 0.0, hole1.TeamFor("1").Points)
	assert.Equal(t, 1.0, hole1.TeamFor("2").Points)
	assert.Equal(t, 1.0, hole1.TeamFor("2").RunningTotal)
}

func TestComputeScoreboardGameNotFound(t *testing.T) {
	service := newTestService(newFakeRepo())

	result, err := service.ComputeScoreboard(context.Background(), "missing")
	require.NoError(t, err, "a missing game is a business failure, not an error")
	require.True(t, result.IsFailure())
	assert.Equal(t, sharedtypes.GameID("missing"), result.Failure.GameID)
	assert.Contains(t, result.Failure.Error, "not found")
}

func TestComputeScoreboardRepoError(t *testing.T) {
	repo := newFakeRepo()
	repo.getGameErr = errors.New("connection refused")
	service := newTestService(repo)

	_, err := service.ComputeScoreboard(context.Background(), "g-service")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ComputeScoreboard")
}
