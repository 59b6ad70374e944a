package engine

import (
	"fmt"
	"strings"

	"github.com/fairway-labs/looper/app/modules/scoring/engine/rules"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// scoringEnv implements rules.Env for one hole's expression evaluations. The
// holes slice is the scoring context visible to getPrevHole/getCurrHole: the
// hole pipeline passes just the hole being scored, while invalidation checks
// pass a fully recomputed result set so cross-hole operators see real running
// totals.
type scoringEnv struct {
	game        *sharedtypes.Game
	holes       []*sharedtypes.HoleScoringResult
	curr        int
	betterLower bool
	vars        map[string]any
}

func newScoringEnv(game *sharedtypes.Game, holes []*sharedtypes.HoleScoringResult, curr int, betterLower bool) *scoringEnv {
	return &scoringEnv{
		game:        game,
		holes:       holes,
		curr:        curr,
		betterLower: betterLower,
		vars:        map[string]any{},
	}
}

// with sets an extra variable for the next evaluation and returns the env for
// chaining. Evaluations on the same env share the variable set.
func (e *scoringEnv) with(name string, v any) *scoringEnv {
	e.vars[name] = v
	return e
}

func (e *scoringEnv) Var(name string) (any, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func (e *scoringEnv) eval(node *rules.Node) (bool, error) {
	v, err := rules.Apply(node, e)
	if err != nil {
		return false, err
	}
	return rules.Truthy(v), nil
}

func (e *scoringEnv) Call(op string, args []any) (any, error) {
	switch op {
	case "getPrevHole":
		return e.holeResult(e.curr - 1), nil
	case "getCurrHole":
		return e.holeResult(e.curr), nil
	case "team":
		return e.getTeam(argString(args, 0, "this")), nil
	case "team_down_the_most":
		return e.teamDownTheMost(asHole(arg(args, 0)), asTeam(arg(args, 1))), nil
	case "team_second_to_last":
		return e.teamSecondToLast(asHole(arg(args, 0)), asTeam(arg(args, 1))), nil
	case "rankWithTies":
		return e.rankWithTies(argInt(args, 0), argInt(args, 1))
	case "other_team_multiplied_with":
		return e.otherTeamMultipliedWith(asHole(arg(args, 0)), asTeam(arg(args, 1)), argString(args, 2, "")), nil
	case "countJunk":
		t := asTeam(arg(args, 0))
		if t == nil {
			return 0.0, nil
		}
		return float64(t.CountJunk(argString(args, 1, ""))), nil
	case "parOrBetter":
		return e.parOrBetter(argString(args, 1, "gross")), nil
	case "holePar":
		return float64(e.teeHolePar()), nil
	case "playersOnTeam":
		t := e.getTeam(argString(args, 0, "this"))
		if t == nil {
			return 0.0, nil
		}
		return float64(len(t.Players)), nil
	case "isWolfPlayer":
		pkey := argString(args, 0, "")
		return pkey != "" && WolfPlayer(e.game, e.curr) == sharedtypes.PlayerID(pkey), nil
	case "existingPreMultiplierTotal":
		h := asHole(arg(args, 0))
		threshold, _ := argFloat(args, 1)
		return preMultiplierTotal(h) >= threshold, nil
	}
	return nil, fmt.Errorf("unsupported operator %q", op)
}

func (e *scoringEnv) holeResult(num int) any {
	for _, h := range e.holes {
		if h != nil && h.Hole == num {
			return h
		}
	}
	// untyped nil so expressions see a plain null, not a typed nil pointer
	return nil
}

// getTeam resolves the "this"/"other" team from the evaluation variables.
func (e *scoringEnv) getTeam(which string) *sharedtypes.TeamScore {
	this, _ := e.vars["team"].(*sharedtypes.TeamScore)
	if which == "this" || which == "" {
		return this
	}
	if which != "other" || this == nil {
		return nil
	}
	teams, _ := e.vars["teams"].([]*sharedtypes.TeamScore)
	for _, t := range teams {
		if t.Team != this.Team {
			return t
		}
	}
	return nil
}

// teamDownTheMost reports whether the team trails the field on the given
// hole's running totals. No hole context means the match hasn't diverged yet,
// so every team counts as down.
func (e *scoringEnv) teamDownTheMost(hole *sharedtypes.HoleScoringResult, team *sharedtypes.TeamScore) bool {
	if hole == nil || team == nil {
		return true
	}
	ranked := runningTotalRanks(hole, e.betterLower)
	r := rankOf(ranked, team.Team)
	if r == 0 {
		return true
	}
	return r == 1
}

// teamSecondToLast reports whether the team sits at rank 2 of the running
// totals. Unlike teamDownTheMost, no hole context means false.
func (e *scoringEnv) teamSecondToLast(hole *sharedtypes.HoleScoringResult, team *sharedtypes.TeamScore) bool {
	if hole == nil {
		return false
	}
	if team == nil {
		return true
	}
	ranked := runningTotalRanks(hole, e.betterLower)
	r := rankOf(ranked, team.Team)
	if r == 0 {
		return true
	}
	return r == 2
}

// rankWithTies reports whether the evaluation's team holds the given rank on
// the current junk's basis score, with exactly teamsAtRank teams tied there.
func (e *scoringEnv) rankWithTies(rank, teamsAtRank int) (any, error) {
	junk, _ := e.vars["junk"].(*activeOption)
	teams, _ := e.vars["teams"].([]*sharedtypes.TeamScore)
	this, _ := e.vars["team"].(*sharedtypes.TeamScore)
	if junk == nil || this == nil || len(teams) == 0 {
		return false, fmt.Errorf("rankWithTies requires junk and team context")
	}

	dir := "asc"
	if junk.Better != "lower" {
		dir = "desc"
	}
	scores := make([]rankedTeam, 0, len(teams))
	for _, t := range teams {
		if len(t.Players) == 0 {
			continue
		}
		v, ok := t.Players[0].LogicVar(junk.BasedOn)
		if !ok {
			continue
		}
		f, _ := v.(float64)
		scores = append(scores, rankedTeam{Team: t.Team, Score: f})
	}
	ranked := rankTeams(scores, dir)
	if rankOf(ranked, this.Team) != rank {
		return false, nil
	}
	return countAtRank(ranked, rank) == teamsAtRank, nil
}

// otherTeamMultipliedWith reports whether a different team played the named
// multiplier on the hole.
func (e *scoringEnv) otherTeamMultipliedWith(hole *sharedtypes.HoleScoringResult, this *sharedtypes.TeamScore, multName string) bool {
	if hole == nil || this == nil {
		return false
	}
	gHole := e.game.GameHoleFor(hole.Hole)
	if gHole == nil {
		return false
	}
	for _, m := range gHole.Multipliers {
		if m != nil && m.Name == multName {
			return m.Team != this.Team
		}
	}
	return false
}

// parOrBetter checks the evaluation's score against the tee hole par.
// An unentered score never qualifies.
func (e *scoringEnv) parOrBetter(scoreType string) bool {
	score, _ := e.vars["score"].(*sharedtypes.PlayerHoleScore)
	if score == nil || !score.Gross.Valid || score.Gross.Value <= 0 {
		return false
	}
	s := score.Gross.Value
	if scoreType == "net" {
		s = score.Net.Value
	}
	par := e.teeHolePar()
	return par > 0 && s <= float64(par)
}

func (e *scoringEnv) teeHolePar() int {
	th, _ := e.vars["hole"].(*sharedtypes.TeeHole)
	if th == nil {
		return 0
	}
	return th.Par
}

// preMultiplierTotal multiplies the pre-round multipliers already active on a
// hole result. Values come from the resolved active multiplier list.
func preMultiplierTotal(hole *sharedtypes.HoleScoringResult) float64 {
	tot := 1.0
	if hole == nil {
		return tot
	}
	for _, m := range hole.Multipliers {
		if strings.HasPrefix(m.Name, "pre_") && m.Value != 0 {
			tot *= m.Value
		}
	}
	return tot
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func argString(args []any, i int, deflt string) string {
	if s, ok := arg(args, i).(string); ok && s != "" {
		return s
	}
	return deflt
}

func argFloat(args []any, i int) (float64, bool) {
	switch t := arg(args, i).(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	}
	return 0, false
}

func argInt(args []any, i int) int {
	f, _ := argFloat(args, i)
	return int(f)
}

func asTeam(v any) *sharedtypes.TeamScore {
	t, _ := v.(*sharedtypes.TeamScore)
	return t
}

func asHole(v any) *sharedtypes.HoleScoringResult {
	h, _ := v.(*sharedtypes.HoleScoringResult)
	return h
}
