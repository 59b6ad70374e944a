package engine

import (
	"sort"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// vegasTeamPoints computes a team's Vegas number for a hole: the two player
// scores on the basis (gross or net) become digits, low digit first. A
// birdie or eagle by the other team flips the digits high-first; the
// birdies_cancel_flip option lets an equal or better score cancel the flip.
func vegasTeamPoints(game *sharedtypes.Game, hole int, team, other *sharedtypes.TeamScore, basedOn string) float64 {
	digits := make([]float64, 0, len(team.Players))
	for _, p := range team.Players {
		v, ok := p.LogicVar(basedOn)
		if !ok {
			continue
		}
		f, _ := v.(float64)
		digits = append(digits, f)
	}
	if len(digits) < 2 {
		return 0
	}
	sort.Float64s(digits)

	flip := false
	if other != nil {
		thisBirdies := team.CountJunk("birdie")
		thisEagles := team.CountJunk("eagle")
		otherBirdies := other.CountJunk("birdie")
		otherEagles := other.CountJunk("eagle")
		cancel := gameOptionValue(game, "birdies_cancel_flip", hole).True()

		if otherBirdies > 0 && (!cancel || (thisBirdies == 0 && thisEagles == 0)) {
			flip = true
		}
		if otherEagles > 0 && (!cancel || thisEagles == 0) {
			flip = true
		}
	}

	if flip {
		sort.Sort(sort.Reverse(sort.Float64Slice(digits)))
	}
	return digits[0]*10 + digits[1]
}
