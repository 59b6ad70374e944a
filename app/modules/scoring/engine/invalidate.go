package engine

import (
	"fmt"
	"math"
	"strings"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

const defaultInvalidationReason = "Availability condition no longer met"

// DetectInvalidations finds recorded user decisions (played multipliers, tee
// flip outcomes) whose preconditions no longer hold after a score edit on
// editedHole. results must be the scoreboard already recomputed from the
// edited snapshot. The engine only reports; removal is a separate, explicit
// choice.
func DetectInvalidations(game *sharedtypes.Game, results *sharedtypes.ComputedResults, editedHole int) *sharedtypes.InvalidationResult {
	out := &sharedtypes.InvalidationResult{}
	if game == nil || results == nil {
		return out
	}
	betterLower := specBetterLower(game)

	multItems := detectMultiplierInvalidations(game, results, editedHole, betterLower)
	out.Items = append(out.Items, multItems...)
	if teeFlipEnabled(game) {
		out.Items = append(out.Items, detectTeeFlipInvalidations(game, results, editedHole)...)
	}
	out.ScoreImpact = scoreImpact(results, multItems, editedHole)
	out.HasInvalidations = len(out.Items) > 0
	return out
}

func teeFlipEnabled(game *sharedtypes.Game) bool {
	holes := game.HoleNumbers()
	if len(holes) == 0 {
		return false
	}
	return gameOptionValue(game, "tee_flip", holes[0]).True()
}

// detectMultiplierInvalidations re-evaluates availability for every played
// multiplier on holes after the edit. Hole-scoped plays are checked on their
// hole; rest_of_nine plays are checked once against their activation hole.
// A cascade pass then flags multipliers that depended on an invalidated one.
func detectMultiplierInvalidations(game *sharedtypes.Game, results *sharedtypes.ComputedResults, editedHole int, betterLower bool) []sharedtypes.InvalidatedItem {
	allMults := activeOptions(game, sharedtypes.OptionTypeMultiplier)

	// presses carry availability despite being automatic, so they are always
	// re-checked alongside user-played multipliers
	checkable := make(map[string]*activeOption)
	for _, m := range allMults {
		if (m.SubType == "press" || m.BasedOn == sharedtypes.BasedOnUser) && m.CompiledAvailability != nil {
			checkable[m.Name] = m
		}
	}
	if len(checkable) == 0 {
		return nil
	}

	var items []sharedtypes.InvalidatedItem
	checkedRestOfNine := map[string]bool{}

	for _, holeNum := range holesAfter(game, editedHole) {
		holeResult := results.HoleResult(holeNum)
		gHole := game.GameHoleFor(holeNum)
		if holeResult == nil || gHole == nil {
			continue
		}
		for _, rec := range gHole.Multipliers {
			if rec == nil {
				continue
			}
			mult := checkable[rec.Name]
			if mult == nil || rec.FirstHole == 0 {
				continue
			}

			checkHole := holeNum
			checkResult := holeResult
			if mult.Scope == sharedtypes.ScopeRestOfNine {
				// activation plus inherited copies share one check
				key := fmt.Sprintf("%s:%s:%d", mult.Name, rec.Team, rec.FirstHole)
				if checkedRestOfNine[key] {
					continue
				}
				checkedRestOfNine[key] = true
				checkHole = rec.FirstHole
				checkResult = results.HoleResult(rec.FirstHole)
				if checkResult == nil {
					continue
				}
			} else if rec.FirstHole != holeNum {
				continue
			}

			team := checkResult.TeamFor(rec.Team)
			if team == nil {
				continue
			}
			env := newScoringEnv(game, results.Holes, checkHole, betterLower)
			env.with("team", team).with("teams", checkResult.Teams).with("possiblePoints", checkResult.PossiblePoints)
			ok, err := env.eval(mult.CompiledAvailability)
			if err == nil && ok {
				continue
			}
			reason := mult.InvalidationReason
			if reason == "" {
				reason = defaultInvalidationReason
			}
			items = append(items, sharedtypes.InvalidatedItem{
				Kind: sharedtypes.InvalidationMultiplier,
				HoleNum: checkHole, TeamID: rec.Team,
				Name: mult.Name, Disp: mult.Disp, Reason: reason,
			})
		}
	}

	for _, ci := range cascadeInvalidations(game, items, allMults) {
		dupe := false
		for _, i := range items {
			if i.Kind == sharedtypes.InvalidationMultiplier && i.HoleNum == ci.HoleNum && i.TeamID == ci.TeamID && i.Name == ci.Name {
				dupe = true
				break
			}
		}
		if !dupe {
			items = append(items, ci)
		}
	}
	return items
}

// cascadeInvalidations flags multipliers whose availability references an
// invalidated multiplier through other_team_multiplied_with. The dependency
// is found by matching the quoted name inside the availability expression.
func cascadeInvalidations(game *sharedtypes.Game, invalidated []sharedtypes.InvalidatedItem, allMults []*activeOption) []sharedtypes.InvalidatedItem {
	var out []sharedtypes.InvalidatedItem
	for _, inv := range invalidated {
		if inv.Kind != sharedtypes.InvalidationMultiplier {
			continue
		}
		for _, dep := range allMults {
			if dep.Availability == "" ||
				!strings.Contains(dep.Availability, "other_team_multiplied_with") ||
				!(strings.Contains(dep.Availability, "'"+inv.Name+"'") || strings.Contains(dep.Availability, `"`+inv.Name+`"`)) {
				continue
			}
			gHole := game.GameHoleFor(inv.HoleNum)
			if gHole == nil {
				continue
			}
			for _, rec := range gHole.Multipliers {
				if rec == nil || rec.Name != dep.Name || rec.FirstHole != inv.HoleNum || rec.Team == inv.TeamID {
					continue
				}
				out = append(out, sharedtypes.InvalidatedItem{
					Kind: sharedtypes.InvalidationMultiplier,
					HoleNum: inv.HoleNum, TeamID: rec.Team,
					Name: dep.Name, Disp: dep.Disp,
					Reason: fmt.Sprintf("Depends on Team %s's %s", inv.TeamID, inv.Disp),
				})
			}
		}
	}
	return out
}

// detectTeeFlipInvalidations flags recorded tee flip outcomes on holes after
// the edit where the previous hole's running diffs show the teams are no
// longer tied. Missing flips where teams became tied are not reported; the
// normal flip prompt covers those.
func detectTeeFlipInvalidations(game *sharedtypes.Game, results *sharedtypes.ComputedResults, editedHole int) []sharedtypes.InvalidatedItem {
	var items []sharedtypes.InvalidatedItem
	holes := game.HoleNumbers()
	for idx, holeNum := range holes {
		if holeNum <= editedHole {
			continue
		}
		gHole := game.GameHoleFor(holeNum)
		if gHole == nil || !hasTeeFlipRecord(gHole, holeNum) {
			continue
		}
		if !teamsTiedBefore(results, holes, idx) {
			items = append(items, sharedtypes.InvalidatedItem{
				Kind:    sharedtypes.InvalidationTeeFlip,
				HoleNum: holeNum,
				Reason:  "Teams are no longer tied",
			})
		}
	}
	return items
}

func hasTeeFlipRecord(gHole *sharedtypes.GameHole, holeNum int) bool {
	for _, f := range gHole.TeeFlips {
		if f != nil && f.Hole == holeNum && (f.Winner != "" || f.Declined) {
			return true
		}
	}
	return false
}

// teamsTiedBefore reports whether every team's running diff was zero entering
// the hole at holeIdx. The first hole always counts as tied.
func teamsTiedBefore(results *sharedtypes.ComputedResults, holes []int, holeIdx int) bool {
	if holeIdx == 0 {
		return true
	}
	prev := results.HoleResult(holes[holeIdx-1])
	if prev == nil {
		return true
	}
	if len(prev.Teams) < 2 {
		return false
	}
	for _, t := range prev.Teams {
		if t.RunningDiff != 0 {
			return false
		}
	}
	return true
}

// scoreImpact projects each team's total after removing the invalidated
// multipliers. The per-hole delta is points*(1-1/removedMult): approximate,
// but a faithful preview of what removal would do.
func scoreImpact(results *sharedtypes.ComputedResults, multItems []sharedtypes.InvalidatedItem, editedHole int) []sharedtypes.ScoreImpact {
	currentTotals := map[sharedtypes.TeamID]float64{}
	var teamOrder []sharedtypes.TeamID
	if n := len(results.Holes); n > 0 {
		for _, t := range results.Holes[n-1].Teams {
			currentTotals[t.Team] = t.RunningTotal
			teamOrder = append(teamOrder, t.Team)
		}
	}

	invalidatedSet := map[string]bool{}
	for _, m := range multItems {
		invalidatedSet[string(m.TeamID)+":"+m.Name] = true
	}

	deltas := map[sharedtypes.TeamID]float64{}
	if len(invalidatedSet) > 0 {
		for _, h := range results.Holes {
			if h.Hole <= editedHole {
				continue
			}
			for _, t := range h.Teams {
				removedMult := 1.0
				for _, m := range h.Multipliers {
					if m.Team == t.Team && invalidatedSet[string(t.Team)+":"+m.Name] && m.Value != 0 {
						removedMult *= m.Value
					}
				}
				if removedMult <= 1 {
					continue
				}
				deltas[t.Team] += t.HoleTotal * (1 - 1/removedMult)
			}
		}
	}

	out := make([]sharedtypes.ScoreImpact, 0, len(teamOrder))
	for _, id := range teamOrder {
		out = append(out, sharedtypes.ScoreImpact{
			TeamID:         id,
			CurrentTotal:   currentTotals[id],
			ProjectedTotal: math.Round(currentTotals[id] - deltas[id]),
		})
	}
	return out
}

// holesAfter lists the game's hole numbers strictly after the given hole.
func holesAfter(game *sharedtypes.Game, hole int) []int {
	var out []int
	for _, h := range game.HoleNumbers() {
		if h > hole {
			out = append(out, h)
		}
	}
	return out
}

// RemoveInvalidatedItem strips the recorded decision behind an invalidated
// item from the game snapshot. Rest-of-nine multipliers lose every inherited
// copy sharing the activation hole. The caller rescores afterwards.
func RemoveInvalidatedItem(game *sharedtypes.Game, item sharedtypes.InvalidatedItem) {
	switch item.Kind {
	case sharedtypes.InvalidationMultiplier:
		for _, gHole := range game.Holes {
			if gHole == nil {
				continue
			}
			kept := gHole.Multipliers[:0]
			for _, rec := range gHole.Multipliers {
				if rec != nil && rec.Name == item.Name && rec.Team == item.TeamID && rec.FirstHole == item.HoleNum {
					continue
				}
				kept = append(kept, rec)
			}
			gHole.Multipliers = kept
		}
	case sharedtypes.InvalidationTeeFlip:
		gHole := game.GameHoleFor(item.HoleNum)
		if gHole == nil {
			return
		}
		kept := gHole.TeeFlips[:0]
		for _, f := range gHole.TeeFlips {
			if f != nil && f.Hole == item.HoleNum {
				continue
			}
			kept = append(kept, f)
		}
		gHole.TeeFlips = kept
	}
}
