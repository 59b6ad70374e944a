package sharedtypes

// ScoreValue is a single computed score figure. Valid distinguishes "no data
// yet" from an actual zero; callers must never treat an invalid value as 0.
type ScoreValue struct {
	Value float64 `json:"value"`
	ToPar float64 `json:"to_par"`
	Valid bool    `json:"valid"`
}

// AwardedJunk is a junk item earned by a player or team on a hole.
type AwardedJunk struct {
	Name   string   `json:"name"`
	Disp   string   `json:"disp,omitempty"`
	Value  float64  `json:"value"`
	Limit  string   `json:"limit,omitempty"`
	Player PlayerID `json:"player,omitempty"`
}

// PlayerHoleScore is one player's computed line for one hole.
type PlayerHoleScore struct {
	Player PlayerID      `json:"player"`
	Gross  ScoreValue    `json:"gross"`
	Net    ScoreValue    `json:"net"`
	Pops   ScoreValue    `json:"pops"`
	Points ScoreValue    `json:"points"`
	Junk   []AwardedJunk `json:"junk,omitempty"`
}

// LogicVar exposes player fields to rule expressions.
func (p *PlayerHoleScore) LogicVar(name string) (any, bool) {
	switch name {
	case "pkey":
		return string(p.Player), true
	case "gross":
		return p.Gross.Value, true
	case "net":
		return p.Net.Value, true
	case "pops":
		return p.Pops.Value, true
	case "points":
		return p.Points.Value, true
	}
	return nil, false
}

// HasJunk reports whether the player earned a junk item by name.
func (p *PlayerHoleScore) HasJunk(name string) bool {
	for _, j := range p.Junk {
		if j.Name == name {
			return true
		}
	}
	return false
}

// TeamScore is one team's computed line for one hole, including its running
// state after the accumulator pass.
type TeamScore struct {
	Team    TeamID             `json:"team"`
	Players []*PlayerHoleScore `json:"players"`

	// Score holds per-junk-name basis arrays used for tie-breaking
	// (best_ball keeps every ball, sum keeps a single element).
	Score map[string][]float64 `json:"score,omitempty"`

	Junk         []AwardedJunk `json:"junk,omitempty"`
	Points       float64       `json:"points"`
	HoleTotal    float64       `json:"hole_total"`
	HoleNetTotal float64       `json:"hole_net_total"`
	HasNetTotal  bool          `json:"has_net_total"`

	RunningTotal float64 `json:"running_total"`
	RunningDiff  float64 `json:"running_diff"`
	MatchDiff    float64 `json:"match_diff"`
	MatchLabel   string  `json:"match_label,omitempty"`
	MatchOver    bool    `json:"match_over"`
	Win          bool    `json:"win"`
}

// LogicVar exposes team fields to rule expressions.
func (t *TeamScore) LogicVar(name string) (any, bool) {
	switch name {
	case "team":
		return string(t.Team), true
	case "points":
		return t.Points, true
	case "holeTotal":
		return t.HoleTotal, true
	case "runningTotal":
		return t.RunningTotal, true
	case "players":
		out := make([]any, 0, len(t.Players))
		for _, p := range t.Players {
			out = append(out, p)
		}
		return out, true
	}
	return nil, false
}

// CountJunk counts a named junk item across the team's players.
func (t *TeamScore) CountJunk(name string) int {
	n := 0
	for _, p := range t.Players {
		for _, j := range p.Junk {
			if j.Name == name {
				n++
			}
		}
	}
	return n
}

// ActiveMultiplier is a multiplier in effect on a hole.
type ActiveMultiplier struct {
	Name     string  `json:"name"`
	Disp     string  `json:"disp,omitempty"`
	Team     TeamID  `json:"team,omitempty"`
	Value    float64 `json:"value"`
	Override bool    `json:"override,omitempty"`
}

// HoleScoringResult is the computed result for one hole.
type HoleScoringResult struct {
	Hole           int                `json:"hole"`
	Teams          []*TeamScore       `json:"teams"`
	Multipliers    []ActiveMultiplier `json:"multipliers,omitempty"`
	HoleMultiplier float64            `json:"hole_multiplier"`
	PossiblePoints float64            `json:"possible_points"`
	ScoresEntered  int                `json:"scores_entered"`
	MarkedJunk     int                `json:"marked_junk"`
	RequiredJunk   int                `json:"required_junk"`
	Warnings       []string           `json:"warnings,omitempty"`
	// Errors lists structural problems that aborted scoring of this hole
	// only (e.g. a team referencing a player not in the game).
	Errors []string `json:"errors,omitempty"`
}

// TeamFor returns the named team's result on this hole, or nil.
func (h *HoleScoringResult) TeamFor(id TeamID) *TeamScore {
	for _, t := range h.Teams {
		if t.Team == id {
			return t
		}
	}
	return nil
}

// OtherTeam returns the structurally-other team in a two-team hole, or nil.
func (h *HoleScoringResult) OtherTeam(id TeamID) *TeamScore {
	if len(h.Teams) != 2 {
		return nil
	}
	for _, t := range h.Teams {
		if t.Team != id {
			return t
		}
	}
	return nil
}

// LogicVar exposes hole fields to rule expressions.
func (h *HoleScoringResult) LogicVar(name string) (any, bool) {
	switch name {
	case "hole":
		return float64(h.Hole), true
	case "holeMultiplier":
		return h.HoleMultiplier, true
	case "possiblePoints":
		return h.PossiblePoints, true
	case "teams":
		out := make([]any, 0, len(h.Teams))
		for _, t := range h.Teams {
			out = append(out, t)
		}
		return out, true
	}
	return nil, false
}

// PlayerSummary is a player's cumulative line across all holes.
type PlayerSummary struct {
	Player         PlayerID `json:"player"`
	Name           string   `json:"name,omitempty"`
	Gross          float64  `json:"gross"`
	GrossToPar     float64  `json:"gross_to_par"`
	Net            float64  `json:"net"`
	NetToPar       float64  `json:"net_to_par"`
	Points         float64  `json:"points"`
	NetPoints      float64  `json:"net_points"`
	CourseHandicap float64  `json:"course_handicap"`
	HolesScored    int      `json:"holes_scored"`
}

// ComputedResults is the full output of one scoring pass: a pure function of
// the Game snapshot it was derived from.
type ComputedResults struct {
	Holes   []*HoleScoringResult `json:"holes"`
	Players []*PlayerSummary     `json:"players"`

	MatchOver   bool   `json:"match_over"`
	MatchResult string `json:"match_result,omitempty"`
	Winner      TeamID `json:"winner,omitempty"`
}

// HoleResult returns the result for a hole number, or nil.
func (r *ComputedResults) HoleResult(hole int) *HoleScoringResult {
	for _, h := range r.Holes {
		if h.Hole == hole {
			return h
		}
	}
	return nil
}
