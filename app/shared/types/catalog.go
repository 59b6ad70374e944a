// Package sharedtypes holds the boundary types exchanged between the rule
// catalog, the scoring engine, and the persistence layer. Catalog records are
// read-only inputs to scoring; computed results are ephemeral outputs.
package sharedtypes

import (
	"github.com/fairway-labs/looper/app/modules/scoring/engine/rules"
)

// SpecKey identifies a published game spec in the catalog.
type SpecKey string

// Format is the scoring format of a game spec.
type Format string

const (
	FormatPoints Format = "points"
	FormatMatch  Format = "match"
	FormatSkins  Format = "skins"
)

// OptionType discriminates the Option tagged union.
type OptionType string

const (
	OptionTypeGame       OptionType = "game"
	OptionTypeJunk       OptionType = "junk"
	OptionTypeMultiplier OptionType = "multiplier"
)

// Junk limit rules.
const (
	LimitOnePerGroup     = "one_per_group"
	LimitOneTeamPerGroup = "one_team_per_group"
)

// Junk/multiplier eligibility bases.
const (
	BasedOnUser  = "user"
	BasedOnGross = "gross"
	BasedOnNet   = "net"
	BasedOnLogic = "logic"
)

// Team junk calculation modes.
const (
	CalcSum      = "sum"
	CalcBestBall = "best_ball"
	CalcLogic    = "logic"
)

// Multiplier scopes.
const (
	ScopeHole       = "hole"
	ScopeRestOfNine = "rest_of_nine"
)

// ValueForHoles is one entry of an option's per-hole value map.
type ValueForHoles struct {
	Value string `json:"value" yaml:"value"`
	// Holes is nil for "all holes in the game".
	Holes []int `json:"holes" yaml:"holes"`
}

// Option is a rule-catalog option: a game setting, a junk side-bet, or a
// score multiplier, depending on Type. Options are immutable once published.
type Option struct {
	Name string     `json:"name" yaml:"name"`
	Disp string     `json:"disp" yaml:"disp"`
	Seq  int        `json:"seq" yaml:"seq"`
	Type OptionType `json:"type" yaml:"type"`

	// SubType: game options carry bool|menu|num|text; junk carries
	// dot|skin|carryover; multipliers may carry press.
	SubType string `json:"sub_type,omitempty" yaml:"sub_type,omitempty"`

	// Scope: junk is player|team; multipliers are hole|rest_of_nine.
	Scope       string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Limit       string `json:"limit,omitempty" yaml:"limit,omitempty"`
	BasedOn     string `json:"based_on,omitempty" yaml:"based_on,omitempty"`
	Better      string `json:"better,omitempty" yaml:"better,omitempty"`
	Calculation string `json:"calculation,omitempty" yaml:"calculation,omitempty"`

	// ScoreToPar is a "<fit> <amount>" predicate for gross/net junk.
	ScoreToPar string `json:"score_to_par,omitempty" yaml:"score_to_par,omitempty"`

	// Logic and Availability are rule expressions (see the rules package).
	Logic        string `json:"logic,omitempty" yaml:"logic,omitempty"`
	Availability string `json:"availability,omitempty" yaml:"availability,omitempty"`

	// InvalidationReason is the user-facing reason shown when this
	// multiplier is invalidated by a score edit.
	InvalidationReason string `json:"invalidation_reason,omitempty" yaml:"invalidation_reason,omitempty"`

	// Override means this multiplier replaces all others on the hole.
	Override bool `json:"override,omitempty" yaml:"override,omitempty"`
	// InputValue means the multiplier value is entered by the user.
	InputValue bool `json:"input_value,omitempty" yaml:"input_value,omitempty"`

	Choices []string        `json:"choices,omitempty" yaml:"choices,omitempty"`
	Default string          `json:"default,omitempty" yaml:"default,omitempty"`
	Values  []ValueForHoles `json:"values,omitempty" yaml:"values,omitempty"`

	// Compiled expression trees, attached once at catalog load.
	CompiledLogic        *rules.Node `json:"-" yaml:"-"`
	CompiledAvailability *rules.Node `json:"-" yaml:"-"`
}

// ScoringRule is a spec-level team scoring entry (e.g. the Vegas hole score).
type ScoringRule struct {
	Scope   string `json:"scope" yaml:"scope"`
	Type    string `json:"type" yaml:"type"`
	BasedOn string `json:"based_on" yaml:"based_on"`
}

// GameSpec is a named, versioned rule set. Referenced, never owned, by games.
type GameSpec struct {
	Key     SpecKey `json:"key" yaml:"key"`
	Name    string  `json:"name" yaml:"name"`
	Short   string  `json:"short,omitempty" yaml:"short,omitempty"`
	Version int     `json:"version" yaml:"version"`

	Type   Format `json:"type" yaml:"type"`
	Better string `json:"better,omitempty" yaml:"better,omitempty"`

	TeamsForced bool `json:"teams_forced,omitempty" yaml:"teams_forced,omitempty"`
	TeamSize    int  `json:"team_size,omitempty" yaml:"team_size,omitempty"`

	Options []*Option                `json:"options,omitempty" yaml:"options,omitempty"`
	Scoring map[string][]ScoringRule `json:"scoring,omitempty" yaml:"scoring,omitempty"`
}
