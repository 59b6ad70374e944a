package engine

import (
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// WolfPlayerIndex returns the index into the game's wolf order of the player
// who is the wolf on a hole, or -1 when the game has no usable rotation
// (missing order, order not covering every player, or the hole falls past the
// last full rotation).
func WolfPlayerIndex(game *sharedtypes.Game, hole int) int {
	if game == nil || len(game.Players) == 0 {
		return -1
	}
	order := game.Scope.WolfOrder
	if len(order) == 0 || len(order) != len(game.Players) {
		return -1
	}

	holeCount := len(game.HoleNumbers())
	playerCount := len(order)
	rotation := (hole - 1) / playerCount
	if (rotation+1)*playerCount > holeCount {
		return -1
	}
	return (hole - 1) % playerCount
}

// WolfPlayer returns the wolf on a hole, or "" when there is none.
func WolfPlayer(game *sharedtypes.Game, hole int) sharedtypes.PlayerID {
	i := WolfPlayerIndex(game, hole)
	if i < 0 {
		return ""
	}
	return game.Scope.WolfOrder[i]
}
