package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

func vegasTeam(id sharedtypes.TeamID, grosses []float64, junk ...string) *sharedtypes.TeamScore {
	t := &sharedtypes.TeamScore{Team: id}
	for i, g := range grosses {
		p := &sharedtypes.PlayerHoleScore{
			Player: sharedtypes.PlayerID(string(id) + "-p"),
			Gross:  sharedtypes.ScoreValue{Value: g, Valid: true},
		}
		if i < len(junk) && junk[i] != "" {
			p.Junk = []sharedtypes.AwardedJunk{{Name: junk[i], Player: p.Player}}
		}
		t.Players = append(t.Players, p)
	}
	return t
}

func vegasGame(birdiesCancel bool) *sharedtypes.Game {
	return &sharedtypes.Game{
		ID:    "g-vegas",
		Scope: sharedtypes.GameScope{Holes: sharedtypes.HolesAll18},
		Specs: []*sharedtypes.GameSpec{{
			Key: "vegas", Type: sharedtypes.FormatPoints, Better: "lower",
			Options: []*sharedtypes.Option{{
				Name: "birdies_cancel_flip", Type: sharedtypes.OptionTypeGame,
				SubType: "bool", Default: map[bool]string{true: "true", false: "false"}[birdiesCancel],
			}},
		}},
	}
}

func TestVegasTeamPoints(t *testing.T) {
	t.Run("low digit leads", func(t *testing.T) {
		team := vegasTeam("1", []float64{6, 4})
		other := vegasTeam("2", []float64{5, 5})
		assert.Equal(t, 46.0, vegasTeamPoints(vegasGame(false), 1, team, other, sharedtypes.BasedOnGross))
	})

	t.Run("opposing birdie flips the digits", func(t *testing.T) {
		team := vegasTeam("1", []float64{6, 4})
		other := vegasTeam("2", []float64{3, 5}, "birdie")
		assert.Equal(t, 64.0, vegasTeamPoints(vegasGame(false), 1, team, other, sharedtypes.BasedOnGross))
	})

	t.Run("own birdie cancels the flip when the option is on", func(t *testing.T) {
		team := vegasTeam("1", []float64{3, 6}, "birdie")
		other := vegasTeam("2", []float64{3, 5}, "birdie")
		assert.Equal(t, 36.0, vegasTeamPoints(vegasGame(true), 1, team, other, sharedtypes.BasedOnGross))
	})

	t.Run("birdie does not cancel an opposing eagle", func(t *testing.T) {
		team := vegasTeam("1", []float64{3, 6}, "birdie")
		other := vegasTeam("2", []float64{2, 5}, "eagle")
		assert.Equal(t, 63.0, vegasTeamPoints(vegasGame(true), 1, team, other, sharedtypes.BasedOnGross))
	})

	t.Run("cancel option off flips regardless", func(t *testing.T) {
		team := vegasTeam("1", []float64{3, 6}, "birdie")
		other := vegasTeam("2", []float64{3, 5}, "birdie")
		assert.Equal(t, 63.0, vegasTeamPoints(vegasGame(false), 1, team, other, sharedtypes.BasedOnGross))
	})

	t.Run("lone player cannot make a number", func(t *testing.T) {
		team := vegasTeam("1", []float64{4})
		other := vegasTeam("2", []float64{5, 5})
		assert.Equal(t, 0.0, vegasTeamPoints(vegasGame(false), 1, team, other, sharedtypes.BasedOnGross))
	})
}

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "+3", FormatPoints(3))
	assert.Equal(t, "-2", FormatPoints(-2))
	assert.Equal(t, "0", FormatPoints(0))
	assert.Equal(t, "+2.50", FormatPoints(2.5))
}

func TestFormatMatch(t *testing.T) {
	assert.Equal(t, "4 & 3", FormatMatch(4, "4 & 3", true))
	assert.Equal(t, "2 up", FormatMatch(2, "", true))
	assert.Equal(t, "2 dn", FormatMatch(-2, "", true))
	assert.Equal(t, "", FormatMatch(-2, "", false))
	assert.Equal(t, "tied", FormatMatch(0, "", true))
}

func TestFormatToPar(t *testing.T) {
	assert.Equal(t, "E", FormatToPar(0))
	assert.Equal(t, "+1", FormatToPar(1))
	assert.Equal(t, "-3", FormatToPar(-3))
}
