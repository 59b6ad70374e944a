package engine

import (
	"sort"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// rankedTeam pairs a team with its comparable score and competition rank.
type rankedTeam struct {
	Team  sharedtypes.TeamID
	Score float64
	Rank  int
}

// rankTeams assigns competition ranks: teams are sorted by score in dir
// ("asc" or "desc"), tied teams share the rank of the first of their group,
// and the team after a tie group takes its positional rank (1,1,3 not 1,1,2).
// The sort is stable so equal scores keep input order.
func rankTeams(teams []rankedTeam, dir string) []rankedTeam {
	out := make([]rankedTeam, len(teams))
	copy(out, teams)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == "desc" {
			return out[i].Score > out[j].Score
		}
		return out[i].Score < out[j].Score
	})
	for i := range out {
		if i > 0 && out[i].Score == out[i-1].Score {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out
}

// rankOf returns a team's rank in a ranked slice, or 0 when absent.
func rankOf(ranked []rankedTeam, id sharedtypes.TeamID) int {
	for _, r := range ranked {
		if r.Team == id {
			return r.Rank
		}
	}
	return 0
}

// countAtRank counts teams holding a rank.
func countAtRank(ranked []rankedTeam, rank int) int {
	n := 0
	for _, r := range ranked {
		if r.Rank == rank {
			n++
		}
	}
	return n
}

// runningTotalRanks ranks a hole's teams by running total. Direction follows
// the game's better setting: when higher is better the team down the most is
// the lowest total, so ascending puts it at rank 1 (and vice versa).
func runningTotalRanks(hole *sharedtypes.HoleScoringResult, betterLower bool) []rankedTeam {
	dir := "asc"
	if betterLower {
		dir = "desc"
	}
	teams := make([]rankedTeam, 0, len(hole.Teams))
	for _, t := range hole.Teams {
		teams = append(teams, rankedTeam{Team: t.Team, Score: t.RunningTotal})
	}
	return rankTeams(teams, dir)
}
