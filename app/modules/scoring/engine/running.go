package engine

import (
	"fmt"
	"strconv"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// accumulate runs the cross-hole pass: running totals, running diffs for
// points games, and match-play state. Holes missing scores freeze the running
// total instead of mixing partial holes into it.
func accumulate(game *sharedtypes.Game, result *sharedtypes.ComputedResults, pointsGame, matchGame, betterLower bool) {
	allScoredSoFar := true
	matchOver := false
	matchResult := ""
	var winner sharedtypes.TeamID

	for i, h := range result.Holes {
		if h.ScoresEntered < len(game.Players) {
			allScoredSoFar = false
		}

		for _, t := range h.Teams {
			last := 0.0
			if i > 0 {
				if prev := result.Holes[i-1].TeamFor(t.Team); prev != nil {
					last = prev.RunningTotal
				}
			}
			t.RunningTotal = last
			if h.ScoresEntered == len(game.Players) {
				t.RunningTotal += t.HoleTotal
			}
		}

		if len(h.Teams) != 2 {
			continue
		}
		for _, t := range h.Teams {
			if matchGame && matchOver {
				t.MatchLabel = matchResult
				t.MatchOver = true
				t.Win = t.Team == winner
				continue
			}
			other := h.OtherTeam(t.Team)
			diff := t.RunningTotal - other.RunningTotal

			if pointsGame {
				t.RunningDiff = diff
				if betterLower {
					t.RunningDiff = -diff
				}
			}

			holesRemaining := len(result.Holes) - i - 1
			t.MatchDiff = diff
			if matchGame && diff > float64(holesRemaining) && allScoredSoFar {
				matchResult = clinchLabel(diff, holesRemaining)
				matchOver = true
				winner = t.Team
				t.MatchOver = true
				t.Win = true
				t.MatchLabel = matchResult
				other.MatchOver = true
				other.MatchLabel = matchResult
			}
		}
	}

	result.MatchOver = matchOver
	result.MatchResult = matchResult
	result.Winner = winner
}

// clinchLabel renders a decided match: "4 & 3" with holes to spare, the bare
// margin when the match ends on the last hole.
func clinchLabel(diff float64, holesRemaining int) string {
	d := strconv.FormatFloat(diff, 'f', -1, 64)
	if holesRemaining > 0 {
		return fmt.Sprintf("%s & %d", d, holesRemaining)
	}
	return d
}
