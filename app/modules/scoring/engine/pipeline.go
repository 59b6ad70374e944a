package engine

import (
	"fmt"
	"strconv"
	"strings"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// Score computes the full scoreboard for a game snapshot. It is a pure
// function of the snapshot: every call rederives all holes, so edits are
// handled by editing the snapshot and scoring again.
func Score(game *sharedtypes.Game) *sharedtypes.ComputedResults {
	if game == nil {
		return &sharedtypes.ComputedResults{}
	}

	allJunk := activeOptions(game, sharedtypes.OptionTypeJunk)
	allMults := activeOptions(game, sharedtypes.OptionTypeMultiplier)
	pointsGame := specHasFormat(game, sharedtypes.FormatPoints)
	matchGame := specHasFormat(game, sharedtypes.FormatMatch)
	betterLower := specBetterLower(game)

	summaries := make(map[sharedtypes.PlayerID]*sharedtypes.PlayerSummary, len(game.Players))
	result := &sharedtypes.ComputedResults{}
	for _, p := range game.Players {
		if p == nil {
			continue
		}
		s := &sharedtypes.PlayerSummary{Player: p.ID, Name: p.Name}
		if round := game.RoundForPlayer(p.ID); round != nil {
			if ch, err := strconv.ParseFloat(strings.TrimSpace(round.CourseHandicap), 64); err == nil {
				s.CourseHandicap = ch
			}
		}
		summaries[p.ID] = s
		result.Players = append(result.Players, s)
	}

	for _, holeNum := range game.HoleNumbers() {
		if game.GameHoleFor(holeNum) == nil {
			continue
		}
		hr := scoreHole(game, holeNum, allJunk, allMults, betterLower, summaries)
		result.Holes = append(result.Holes, hr)
	}

	accumulate(game, result, pointsGame, matchGame, betterLower)
	return result
}

func specHasFormat(game *sharedtypes.Game, f sharedtypes.Format) bool {
	for _, s := range game.Specs {
		if s != nil && s.Type == f {
			return true
		}
	}
	return false
}

func specBetterLower(game *sharedtypes.Game) bool {
	for _, s := range game.Specs {
		if s != nil && s.Better == "lower" {
			return true
		}
	}
	return false
}

// mergedScoring concatenates the linked specs' scoring rule lists by type.
func mergedScoring(game *sharedtypes.Game) map[string][]sharedtypes.ScoringRule {
	out := map[string][]sharedtypes.ScoringRule{}
	for _, s := range game.Specs {
		if s == nil {
			continue
		}
		for typ, rules := range s.Scoring {
			out[typ] = append(out[typ], rules...)
		}
	}
	return out
}

func scoreHole(
	game *sharedtypes.Game,
	holeNum int,
	allJunk, allMults []*activeOption,
	betterLower bool,
	summaries map[sharedtypes.PlayerID]*sharedtypes.PlayerSummary,
) *sharedtypes.HoleScoringResult {
	gHole := game.GameHoleFor(holeNum)
	hr := &sharedtypes.HoleScoringResult{Hole: holeNum, HoleMultiplier: 1}

	// possible points from group-limited junk in play on this hole
	for _, junk := range allJunk {
		if !junk.onHole(holeNum) {
			continue
		}
		if junk.Limit == sharedtypes.LimitOneTeamPerGroup || junk.Limit == sharedtypes.LimitOnePerGroup {
			hr.PossiblePoints += junk.resolveValue(holeNum).Number()
		}
	}

	// per-player scores and junk, grouped by team
	for _, gTeam := range gHole.Teams {
		if gTeam == nil {
			continue
		}
		team := &sharedtypes.TeamScore{Team: gTeam.Team, Score: map[string][]float64{}}
		for _, pid := range gTeam.Players {
			if summaries[pid] == nil {
				hr.Errors = append(hr.Errors, fmt.Sprintf("team %s references unknown player %s", gTeam.Team, pid))
				continue
			}
			ps, tp, pp := scorePlayerHole(game, holeNum, pid, gTeam, allJunk, summaries)
			team.Points += tp
			hr.PossiblePoints += pp
			if ps.Gross.Valid && ps.Gross.Value > 0 {
				hr.ScoresEntered++
			}
			team.Players = append(team.Players, ps)
		}
		hr.Teams = append(hr.Teams, team)
	}

	allScored := hr.ScoresEntered == len(game.Players)
	if allScored {
		calcTeamScores(game, holeNum, hr, allJunk, betterLower)
		hr.PossiblePoints += calcTeamJunk(game, holeNum, hr, allJunk, betterLower)
	}

	resolveMultipliers(game, holeNum, gHole, hr, allMults, betterLower)

	// hole totals and per-player points
	for _, t := range hr.Teams {
		t.HoleTotal = t.Points * hr.HoleMultiplier
		for _, p := range t.Players {
			p.Points = sharedtypes.ScoreValue{Value: t.HoleTotal, Valid: true}
			summaries[p.Player].Points += t.HoleTotal
		}
	}
	if len(hr.Teams) == 2 {
		// head-to-head: points become the margin over the other team
		for _, t := range hr.Teams {
			other := hr.OtherTeam(t.Team)
			net := t.HoleTotal - other.HoleTotal
			if betterLower {
				net = other.HoleTotal - t.HoleTotal
			}
			t.HoleNetTotal = net
			t.HasNetTotal = true
			for _, p := range t.Players {
				p.Points = sharedtypes.ScoreValue{Value: net, Valid: true}
				summaries[p.Player].NetPoints += net
			}
		}
	}

	// unmarked group junk warning
	for _, junk := range allJunk {
		if junk.Scope != "player" || junk.Limit != sharedtypes.LimitOnePerGroup || !junk.onHole(holeNum) {
			continue
		}
		hr.RequiredJunk++
		for _, t := range hr.Teams {
			for _, p := range t.Players {
				if p.HasJunk(junk.Name) {
					hr.MarkedJunk++
				}
			}
		}
	}
	if hr.MarkedJunk < hr.RequiredJunk && allScored {
		hr.Warnings = append(hr.Warnings, "Mark all possible points")
	}

	return hr
}

// scorePlayerHole builds one player's line for a hole and returns it with the
// team points and possible points their junk contributes.
func scorePlayerHole(
	game *sharedtypes.Game,
	holeNum int,
	pid sharedtypes.PlayerID,
	gTeam *sharedtypes.GameTeam,
	allJunk []*activeOption,
	summaries map[sharedtypes.PlayerID]*sharedtypes.PlayerSummary,
) (*sharedtypes.PlayerHoleScore, float64, float64) {
	round := game.RoundForPlayer(pid)
	teeHole := teeHoleFor(round, holeNum)
	par := 0.0
	if teeHole != nil {
		par = float64(teeHole.Par)
	}

	gross, popVal := 0.0, 0.0
	if round != nil {
		for _, s := range round.Scores {
			if s != nil && s.Hole == holeNum {
				gross, popVal = s.Gross, s.Pops
				break
			}
		}
	}
	scored := gross > 0

	ps := &sharedtypes.PlayerHoleScore{Player: pid}
	ps.Pops = sharedtypes.ScoreValue{Value: popVal, Valid: true}
	if scored {
		net := gross - popVal
		ps.Gross = sharedtypes.ScoreValue{Value: gross, ToPar: gross - par, Valid: true}
		ps.Net = sharedtypes.ScoreValue{Value: net, ToPar: net - par, Valid: true}

		sum := summaries[pid]
		sum.Gross += gross
		sum.GrossToPar += gross - par
		sum.Net += net
		sum.NetToPar += net - par
		sum.HolesScored++
	}

	teamPoints, possible := 0.0, 0.0
	for _, junk := range allJunk {
		if junk.Scope != "player" || !junk.onHole(holeNum) {
			continue
		}
		earned := false
		switch junk.BasedOn {
		case sharedtypes.BasedOnUser:
			earned = markedJunkValue(gTeam, junk.Name, pid)
		case sharedtypes.BasedOnGross:
			earned = scored && scoreToParMatch(junk.ScoreToPar, ps.Gross.Value, par)
		case sharedtypes.BasedOnNet:
			earned = scored && scoreToParMatch(junk.ScoreToPar, ps.Net.Value, par)
		}
		if !earned {
			continue
		}
		v := junk.resolveValue(holeNum).Number()
		if junk.Limit == "" {
			possible += v
		}
		teamPoints += v
		ps.Junk = append(ps.Junk, sharedtypes.AwardedJunk{
			Name: junk.Name, Disp: junk.Disp, Value: v, Limit: junk.Limit, Player: pid,
		})
	}
	return ps, teamPoints, possible
}

func markedJunkValue(gTeam *sharedtypes.GameTeam, name string, pid sharedtypes.PlayerID) bool {
	for _, j := range gTeam.Junk {
		if j.Name == name && j.Player == pid {
			return j.Value
		}
	}
	return false
}

// scoreToParMatch evaluates a "<fit> <amount>" predicate against a score.
func scoreToParMatch(scoreToPar string, score, par float64) bool {
	fields := strings.Fields(scoreToPar)
	if len(fields) != 2 {
		return false
	}
	amount, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return false
	}
	diff := score - par
	switch fields[0] {
	case "exactly":
		return diff == amount
	case "less_than":
		return diff < amount
	case "greater_than":
		return diff > amount
	}
	return false
}

// calcTeamScores applies spec-level team scoring rules and computes the
// per-junk basis arrays used for team junk tie-breaking. Only runs once all
// scores are in.
func calcTeamScores(game *sharedtypes.Game, holeNum int, hr *sharedtypes.HoleScoringResult, allJunk []*activeOption, betterLower bool) {
	scoring := mergedScoring(game)
	for _, t := range hr.Teams {
		for _, rule := range scoring["hole"] {
			if rule.Scope == "team" && rule.Type == "vegas" {
				t.Points += vegasTeamPoints(game, holeNum, t, hr.OtherTeam(t.Team), rule.BasedOn)
			}
		}

		for _, junk := range allJunk {
			if junk.Scope != "team" || junk.SubType != "dot" || !junk.onHole(holeNum) {
				continue
			}
			switch junk.Calculation {
			case sharedtypes.CalcLogic:
				pts := 0.0
				env := newScoringEnv(game, []*sharedtypes.HoleScoringResult{hr}, holeNum, betterLower)
				env.with("team", t).with("teams", hr.Teams).with("junk", junk)
				if ok, err := env.eval(junk.CompiledLogic); err == nil && ok {
					pts = junk.resolveValue(holeNum).Number()
				}
				t.Score[junk.Name] = []float64{pts}
			case sharedtypes.CalcBestBall:
				vals := make([]float64, 0, len(t.Players))
				for _, p := range t.Players {
					if v, ok := p.LogicVar(junk.BasedOn); ok {
						f, _ := v.(float64)
						vals = append(vals, f)
					}
				}
				sortAscending(vals)
				t.Score[junk.Name] = vals
			case sharedtypes.CalcSum:
				sum := 0.0
				for _, p := range t.Players {
					if v, ok := p.LogicVar(junk.BasedOn); ok {
						f, _ := v.(float64)
						sum += f
					}
				}
				t.Score[junk.Name] = []float64{sum}
			}
		}
	}
}

func sortAscending(vals []float64) {
	for i := 1; i < len(vals); i++ {
		for j := i; j > 0 && vals[j] < vals[j-1]; j-- {
			vals[j], vals[j-1] = vals[j-1], vals[j]
		}
	}
}

// calcTeamJunk awards team-scope junk from the basis arrays and returns the
// extra possible points the awards add. Only runs once all scores are in.
func calcTeamJunk(game *sharedtypes.Game, holeNum int, hr *sharedtypes.HoleScoringResult, allJunk []*activeOption, betterLower bool) float64 {
	maxJunkPoints := 0.0

	for _, junk := range allJunk {
		if junk.Scope != "team" || junk.SubType != "dot" || !junk.onHole(holeNum) {
			continue
		}

		if junk.Calculation == sharedtypes.CalcLogic {
			// logic mode already computed each team's points
			sign := 1.0
			if betterLower {
				sign = -1
			}
			for _, t := range hr.Teams {
				vals := t.Score[junk.Name]
				if len(vals) == 0 || vals[0] == 0 {
					continue
				}
				t.Junk = append(t.Junk, sharedtypes.AwardedJunk{
					Name: junk.Name, Disp: junk.Disp, Value: vals[0], Limit: junk.Limit,
				})
				t.Points += vals[0] * sign
				if vals[0] > maxJunkPoints {
					maxJunkPoints = vals[0]
				}
			}
			continue
		}

		// tie-break across basis arrays: first ball decides unless
		// next_ball_breaks_ties lets later balls split ties
		lenOfScores := 1
		if gameOptionValue(game, "next_ball_breaks_ties", holeNum).True() {
			for _, t := range hr.Teams {
				if n := len(t.Score[junk.Name]); n > lenOfScores {
					lenOfScores = n
				}
			}
		}

		best := 0
		countOfBest := 1
		validScores := true
		for i := 1; i < len(hr.Teams); i++ {
			challenger := hr.Teams[i].Score[junk.Name]
			leader := hr.Teams[best].Score[junk.Name]
			for j := 0; j < lenOfScores; j++ {
				if j >= len(challenger) || j >= len(leader) {
					validScores = false
					break
				}
				if challenger[j] == leader[j] {
					countOfBest++
				}
				beats := challenger[j] < leader[j]
				if junk.Better == "higher" {
					beats = challenger[j] > leader[j]
				}
				if beats {
					best = i
					countOfBest = 1
					break
				}
			}
		}
		if validScores && countOfBest <= lenOfScores {
			t := hr.Teams[best]
			v := junk.resolveValue(holeNum).Number()
			t.Junk = append(t.Junk, sharedtypes.AwardedJunk{
				Name: junk.Name, Disp: junk.Disp, Value: v, Limit: junk.Limit,
			})
			t.Points += v
		}
	}
	return maxJunkPoints
}

// resolveMultipliers collects the multipliers active on a hole (user-played
// records plus junk-triggered ones whose availability holds) and folds them
// into the hole multiplier. An override multiplier replaces the product.
func resolveMultipliers(
	game *sharedtypes.Game,
	holeNum int,
	gHole *sharedtypes.GameHole,
	hr *sharedtypes.HoleScoringResult,
	allMults []*activeOption,
	betterLower bool,
) {
	for _, mult := range allMults {
		if !mult.onHole(holeNum) {
			continue
		}
		if mult.BasedOn == sharedtypes.BasedOnUser {
			for _, rec := range gHole.Multipliers {
				if rec == nil || rec.Name != mult.Name {
					continue
				}
				hr.Multipliers = append(hr.Multipliers, sharedtypes.ActiveMultiplier{
					Name: mult.Name, Disp: mult.Disp, Team: rec.Team,
					Value:    multiplierValue(mult, rec, holeNum),
					Override: mult.Override,
				})
			}
			continue
		}

		// junk-triggered: one activation per player holding the trigger junk
		for _, t := range hr.Teams {
			for _, p := range t.Players {
				if !p.HasJunk(mult.BasedOn) {
					continue
				}
				env := newScoringEnv(game, []*sharedtypes.HoleScoringResult{hr}, holeNum, betterLower)
				env.with("team", t).with("teams", hr.Teams).with("possiblePoints", hr.PossiblePoints)
				ok, err := env.eval(mult.CompiledAvailability)
				if err != nil || !ok {
					continue
				}
				hr.Multipliers = append(hr.Multipliers, sharedtypes.ActiveMultiplier{
					Name: mult.Name, Disp: mult.Disp, Team: t.Team,
					Value:    multiplierValue(mult, nil, holeNum),
					Override: mult.Override,
				})
			}
		}
	}

	for _, m := range hr.Multipliers {
		if m.Override {
			hr.HoleMultiplier = m.Value
			break
		}
		if m.Value != 0 {
			hr.HoleMultiplier *= m.Value
		}
	}
}

// multiplierValue resolves a multiplier's factor: the catalog value map when
// set, otherwise the user-entered record value for input_value multipliers.
func multiplierValue(mult *activeOption, rec *sharedtypes.MultiplierRecord, holeNum int) float64 {
	if v := mult.resolveValue(holeNum); !v.IsNull() && v.Number() != 0 {
		return v.Number()
	}
	if rec != nil {
		return rec.Value
	}
	return 0
}
