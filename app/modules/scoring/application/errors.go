package scoringservice

import "errors"

// Business validation errors surfaced as failure payloads, never as Go
// errors, so handlers can publish them.
var (
	ErrPlayerNotInGame = errors.New("player has no round in this game")
	ErrHoleNotInGame   = errors.New("hole is not part of this game")
	ErrUnknownChoice   = errors.New("unknown invalidation choice")
)
