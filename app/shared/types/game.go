package sharedtypes

// GameID identifies a game aggregate.
type GameID string

// PlayerID identifies a player.
type PlayerID string

// TeamID identifies a team within a hole ("1", "2", ...).
type TeamID string

// Hole list scopes.
const (
	HolesAll18  = "all18"
	HolesFront9 = "front9"
	HolesBack9  = "back9"
)

// GameScope carries game-level play configuration.
type GameScope struct {
	Holes       string     `json:"holes" yaml:"holes"`
	TeamsRotate string     `json:"teams_rotate,omitempty" yaml:"teams_rotate,omitempty"`
	WolfOrder   []PlayerID `json:"wolf_order,omitempty" yaml:"wolf_order,omitempty"`
}

// JunkRecord is a user-marked junk flag for one player on one hole.
type JunkRecord struct {
	Name   string   `json:"name"`
	Player PlayerID `json:"player"`
	Value  bool     `json:"value"`
}

// MultiplierRecord is a user decision to play a multiplier on a hole.
// Value is only set for input_value multipliers (custom factors).
type MultiplierRecord struct {
	Name      string  `json:"name"`
	Team      TeamID  `json:"team"`
	FirstHole int     `json:"first_hole"`
	Value     float64 `json:"value,omitempty"`
}

// TeeFlipRecord is the recorded outcome of a tee flip on a hole.
type TeeFlipRecord struct {
	Hole     int    `json:"hole"`
	Winner   TeamID `json:"winner,omitempty"`
	Declined bool   `json:"declined,omitempty"`
}

// GameTeam is the ordered player set for one team on one hole.
type GameTeam struct {
	Team    TeamID       `json:"team"`
	Players []PlayerID   `json:"players"`
	Junk    []JunkRecord `json:"junk,omitempty"`
}

// GameHole holds per-hole team assignments and recorded user decisions.
type GameHole struct {
	Hole        int                 `json:"hole"`
	Teams       []*GameTeam         `json:"teams"`
	Multipliers []*MultiplierRecord `json:"multipliers,omitempty"`
	TeeFlips    []*TeeFlipRecord    `json:"tee_flips,omitempty"`
}

// Player is a game participant.
type Player struct {
	ID             PlayerID `json:"id"`
	Name           string   `json:"name"`
	HandicapIndex  string   `json:"handicap_index,omitempty"`
	HandicapSource string   `json:"handicap_source,omitempty"`
}

// TeeHole is one hole's data on a tee: par, difficulty allocation, yards.
type TeeHole struct {
	Number     int `json:"number"`
	Par        int `json:"par"`
	Allocation int `json:"allocation"`
	Yards      int `json:"yards,omitempty"`
}

// LogicVar exposes tee hole fields to rule expressions.
func (t *TeeHole) LogicVar(name string) (any, bool) {
	switch name {
	case "number":
		return float64(t.Number), true
	case "par":
		return float64(t.Par), true
	case "allocation":
		return float64(t.Allocation), true
	case "yards":
		return float64(t.Yards), true
	}
	return nil, false
}

// Tee is a course tee with its rating data.
type Tee struct {
	Name   string     `json:"name"`
	Slope  int        `json:"slope"`
	Rating float64    `json:"rating,omitempty"`
	Holes  []*TeeHole `json:"holes"`
}

// Score is one player's recorded values for one hole. Gross 0 means not yet
// entered. Pops is derived from handicap data before scoring, never entered.
type Score struct {
	Hole  int     `json:"hole"`
	Gross float64 `json:"gross"`
	Pops  float64 `json:"pops"`
}

// Round is one player's play context for a game.
type Round struct {
	Player PlayerID `json:"player"`
	Tee    *Tee     `json:"tee,omitempty"`
	// CourseHandicap and GameHandicap are strings because the original data
	// model records them as entered; empty means unset.
	CourseHandicap string   `json:"course_handicap,omitempty"`
	GameHandicap   string   `json:"game_handicap,omitempty"`
	Scores         []*Score `json:"scores,omitempty"`
}

// GameOptionOverride replaces a catalog option's whole value map for a game.
type GameOptionOverride struct {
	Name   string          `json:"name"`
	Values []ValueForHoles `json:"values"`
}

// Game is the aggregate snapshot scoring operates on. Scoring never mutates
// it; computed results are always rederived from this snapshot.
type Game struct {
	ID      GameID               `json:"id"`
	Name    string               `json:"name,omitempty"`
	Scope   GameScope            `json:"scope"`
	Specs   []*GameSpec          `json:"specs"`
	Options []GameOptionOverride `json:"options,omitempty"`
	Holes   []*GameHole          `json:"holes"`
	Players []*Player            `json:"players"`
	Rounds  []*Round             `json:"rounds"`
}

// RoundForPlayer finds the round belonging to a player, or nil.
func (g *Game) RoundForPlayer(id PlayerID) *Round {
	for _, r := range g.Rounds {
		if r != nil && r.Player == id {
			return r
		}
	}
	return nil
}

// HoleNumbers returns the hole numbers in play order. An explicit hole list
// wins; otherwise the scope's hole range is expanded.
func (g *Game) HoleNumbers() []int {
	if len(g.Holes) > 0 {
		out := make([]int, 0, len(g.Holes))
		for _, h := range g.Holes {
			out = append(out, h.Hole)
		}
		return out
	}
	switch g.Scope.Holes {
	case HolesFront9:
		return holeRange(1, 9)
	case HolesBack9:
		return holeRange(10, 18)
	case HolesAll18, "":
		return holeRange(1, 18)
	}
	return nil
}

// GameHoleFor returns the GameHole record for a hole number, or nil.
func (g *Game) GameHoleFor(hole int) *GameHole {
	for _, h := range g.Holes {
		if h != nil && h.Hole == hole {
			return h
		}
	}
	return nil
}

func holeRange(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
