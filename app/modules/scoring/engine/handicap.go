package engine

import (
	"math"
	"strconv"
	"strings"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// standardSlope is the USGA baseline slope rating all course slopes are
// compared against.
const standardSlope = 113

// CourseHandicap converts a handicap index string and a tee slope into a
// course handicap. A leading "+" marks a plus handicap and negates the index.
// The boolean is false when the index is unparsable or the slope is unknown;
// callers must treat that as "unavailable", never as zero.
func CourseHandicap(index string, slope int) (int, bool) {
	trimmed := strings.TrimSpace(index)
	if trimmed == "" || slope == 0 {
		return 0, false
	}
	plus := strings.HasPrefix(trimmed, "+")
	n, err := strconv.ParseFloat(strings.TrimPrefix(trimmed, "+"), 64)
	if err != nil {
		return 0, false
	}
	if plus {
		n = -n
	}
	return int(math.Round(n * float64(slope) / standardSlope)), true
}

// Pops returns the strokes received (positive) or given (negative) on a hole
// for an effective handicap, given the hole's difficulty allocation
// (1 = hardest .. 18 = easiest). Allocations outside [1,18] mean "no
// allocation data" and yield zero.
//
// Positive handicaps take floor(h/18) strokes everywhere plus one more on the
// h mod 18 hardest holes. Plus handicaps give strokes back symmetrically on
// the easiest holes.
func Pops(effectiveHandicap float64, allocation int) float64 {
	if allocation < 1 || allocation > 18 {
		return 0
	}

	var base float64
	if effectiveHandicap >= 0 {
		base = math.Floor(effectiveHandicap / 18)
	} else {
		base = math.Ceil(effectiveHandicap / 18)
	}
	rem := math.Mod(effectiveHandicap, 18)

	extra := 0.0
	if effectiveHandicap >= 0 && float64(allocation) <= rem {
		extra = 1
	}
	if effectiveHandicap < 0 && float64(18-allocation) < -rem {
		extra = -1
	}
	return base + extra
}

// effectiveHandicap returns a round's handicap for this game: the game
// handicap when set, otherwise the course handicap. False when neither
// parses.
func effectiveHandicap(round *sharedtypes.Round) (float64, bool) {
	if round == nil {
		return 0, false
	}
	if h, err := strconv.ParseFloat(strings.TrimSpace(round.GameHandicap), 64); err == nil && round.GameHandicap != "" {
		return h, true
	}
	if h, err := strconv.ParseFloat(strings.TrimSpace(round.CourseHandicap), 64); err == nil && round.CourseHandicap != "" {
		return h, true
	}
	return 0, false
}

// AdjustHandicapsToLow rebases a set of effective handicaps against the
// field's minimum, so the lowest-handicap player plays at zero. Used when
// the handicap_index_from option selects "low" mode.
func AdjustHandicapsToLow(handicaps map[sharedtypes.PlayerID]float64) map[sharedtypes.PlayerID]float64 {
	if len(handicaps) == 0 {
		return map[sharedtypes.PlayerID]float64{}
	}
	low := math.Inf(1)
	for _, h := range handicaps {
		if h < low {
			low = h
		}
	}
	out := make(map[sharedtypes.PlayerID]float64, len(handicaps))
	for id, h := range handicaps {
		out[id] = h - low
	}
	return out
}

// ApplyPops writes derived pops into every round's score rows. Score entry
// and edits call this before scoring so the pipeline only ever reads pops off
// the snapshot, the same place user-entered scores live.
func ApplyPops(game *sharedtypes.Game) {
	derived := DerivePops(game)
	for _, r := range game.Rounds {
		if r == nil {
			continue
		}
		for _, s := range r.Scores {
			if s != nil {
				s.Pops = derived[r.Player][s.Hole]
			}
		}
	}
}

// DerivePops computes every player's per-hole pops from the round's tee data
// and the game's handicap options, returning a (player, hole) -> pops lookup.
// Pops stay zero when use_handicaps is off or the round has no tee.
func DerivePops(game *sharedtypes.Game) map[sharedtypes.PlayerID]map[int]float64 {
	firstHole := 1
	if holes := game.HoleNumbers(); len(holes) > 0 {
		firstHole = holes[0]
	}
	useHandicaps := gameOptionValue(game, "use_handicaps", firstHole).True()

	effective := make(map[sharedtypes.PlayerID]float64)
	for _, r := range game.Rounds {
		if h, ok := effectiveHandicap(r); ok {
			effective[r.Player] = h
		}
	}
	if useHandicaps {
		from := gameOptionValue(game, "handicap_index_from", firstHole)
		if from.Kind == ValueText && from.Text == "low" {
			effective = AdjustHandicapsToLow(effective)
		}
	}

	out := make(map[sharedtypes.PlayerID]map[int]float64, len(game.Rounds))
	for _, r := range game.Rounds {
		if r == nil {
			continue
		}
		perHole := make(map[int]float64)
		out[r.Player] = perHole
		if !useHandicaps || r.Tee == nil {
			continue
		}
		h, ok := effective[r.Player]
		if !ok {
			continue
		}
		for _, th := range r.Tee.Holes {
			if th != nil {
				perHole[th.Number] = Pops(h, th.Allocation)
			}
		}
	}
	return out
}

// teeHoleFor returns the tee's hole record for a hole number, or nil when the
// round has no tee assigned or the tee lacks the hole.
func teeHoleFor(round *sharedtypes.Round, hole int) *sharedtypes.TeeHole {
	if round == nil || round.Tee == nil {
		return nil
	}
	for _, th := range round.Tee.Holes {
		if th != nil && th.Number == hole {
			return th
		}
	}
	return nil
}
