package scoringservice

import (
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/fairway-labs/looper/app/shared/observability"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

func newTestService(repo *fakeRepo) *ScoringService {
	return NewScoringService(
		repo,
		slog.Default(),
		observability.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
}

// testGame builds a two-hole, two-team game. Hole 1 gives team 2 a one-point
// lead through a marked prox, making team 1 "down the most" going into hole 2
// where it has recorded a double.
func testGame(t *testing.T) *sharedtypes.Game {
	t.Helper()

	spec := &sharedtypes.GameSpec{
		Key:    "press_game",
		Name:   "Press Game",
		Type:   sharedtypes.FormatPoints,
		Better: "higher",
		Options: []*sharedtypes.Option{
			{
				Name: "prox", Disp: "Prox", Type: sharedtypes.OptionTypeJunk,
				Scope: "player", BasedOn: sharedtypes.BasedOnUser, Default: "1",
			},
			{
				Name: "birdie", Disp: "Birdie", Type: sharedtypes.OptionTypeJunk,
				Scope: "player", BasedOn: sharedtypes.BasedOnGross,
				ScoreToPar: "less_than 0", Default: "2",
			},
			{
				Name: "double", Disp: "2x", Type: sharedtypes.OptionTypeMultiplier,
				SubType: "press", Scope: sharedtypes.ScopeHole, BasedOn: sharedtypes.BasedOnUser,
				Availability:       `{'team_down_the_most': [{'getPrevHole': []}, {'var': 'team'}]}`,
				InvalidationReason: "Team is no longer down the most",
				Default:            "2",
			},
		},
	}

	tee := &sharedtypes.Tee{Name: "white", Slope: 113, Holes: []*sharedtypes.TeeHole{
		{Number: 1, Par: 4, Allocation: 1},
		{Number: 2, Par: 4, Allocation: 2},
	}}

	game := &sharedtypes.Game{
		ID:    "g-service",
		Name:  "Service Test Game",
		Specs: []*sharedtypes.GameSpec{spec},
		Holes: []*sharedtypes.GameHole{
			{Hole: 1, Teams: []*sharedtypes.GameTeam{
				{Team: "1", Players: []sharedtypes.PlayerID{"p1", "p2"}},
				{Team: "2", Players: []sharedtypes.PlayerID{"p3", "p4"},
					Junk: []sharedtypes.JunkRecord{{Name: "prox", Player: "p3", Value: true}}},
			}},
			{Hole: 2, Teams: []*sharedtypes.GameTeam{
				{Team: "1", Players: []sharedtypes.PlayerID{"p1", "p2"}},
				{Team: "2", Players: []sharedtypes.PlayerID{"p3", "p4"}},
			}, Multipliers: []*sharedtypes.MultiplierRecord{
				{Name: "double", Team: "1", FirstHole: 2},
			}},
		},
	}

	for _, id := range []sharedtypes.PlayerID{"p1", "p2", "p3", "p4"} {
		game.Players = append(game.Players, &sharedtypes.Player{ID: id, Name: string(id)})
		game.Rounds = append(game.Rounds, &sharedtypes.Round{
			Player: id,
			Tee:    tee,
			Scores: []*sharedtypes.Score{
				{Hole: 1, Gross: 4},
				{Hole: 2, Gross: 4},
			},
		})
	}
	return game
}
