package engine

import (
	"slices"
	"strconv"
	"strings"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// ValueKind discriminates resolved option values.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueNum
	ValueText
)

// Value is an option's resolved effective value for a hole. Null means the
// option has no value there; callers must not collapse that to zero or false.
type Value struct {
	Kind ValueKind
	Bool bool
	Num  float64
	Text string
}

// IsNull reports whether no value resolved.
func (v Value) IsNull() bool { return v.Kind == ValueNull }

// True reports a resolved boolean true.
func (v Value) True() bool { return v.Kind == ValueBool && v.Bool }

// Number returns the numeric value, or 0 for non-numeric kinds.
func (v Value) Number() float64 {
	if v.Kind == ValueNum {
		return v.Num
	}
	return 0
}

// activeOption is a catalog option activated for a game, with its value map
// materialized: empty maps become a single default entry spanning all holes,
// and a game-level override replaces the whole map.
type activeOption struct {
	*sharedtypes.Option
	Spec   sharedtypes.SpecKey
	Values []sharedtypes.ValueForHoles
}

// activeOptions collects options of one type across the game's linked specs,
// in spec declaration order. When two linked specs activate the same option
// name, the first-registered spec wins; later duplicates are dropped. This
// precedence is deliberate, not accidental.
func activeOptions(game *sharedtypes.Game, typ sharedtypes.OptionType) []*activeOption {
	allHoles := game.HoleNumbers()
	seen := make(map[string]bool)
	var out []*activeOption

	for _, spec := range game.Specs {
		if spec == nil {
			continue
		}
		for _, opt := range spec.Options {
			if opt == nil || opt.Type != typ || seen[opt.Name] {
				continue
			}
			seen[opt.Name] = true

			values := opt.Values
			if len(values) == 0 {
				values = []sharedtypes.ValueForHoles{{Value: opt.Default, Holes: allHoles}}
			} else {
				expanded := make([]sharedtypes.ValueForHoles, 0, len(values))
				for _, v := range values {
					if v.Holes == nil {
						v.Holes = allHoles
					}
					expanded = append(expanded, v)
				}
				values = expanded
			}

			// A game-level override replaces the whole value map, never merges.
			for _, override := range game.Options {
				if override.Name == opt.Name {
					values = override.Values
					break
				}
			}

			out = append(out, &activeOption{Option: opt, Spec: spec.Key, Values: values})
		}
	}
	return out
}

// onHole reports whether any value-map entry lists the hole.
func (o *activeOption) onHole(hole int) bool {
	for _, v := range o.Values {
		if slices.Contains(v.Holes, hole) {
			return true
		}
	}
	return false
}

// resolveValue returns the option's effective value for a hole: the last
// matching value-map entry wins; bool sub-types normalize "true"; numeric
// strings parse to float; anything else stays text; no match resolves null.
// Pure; resolution must not be cached across edits.
func (o *activeOption) resolveValue(hole int) Value {
	raw := ""
	found := false
	for _, v := range o.Values {
		if slices.Contains(v.Holes, hole) {
			raw = v.Value
			found = true
		}
	}
	if !found {
		return Value{}
	}

	if o.SubType == "bool" {
		return Value{Kind: ValueBool, Bool: raw == "true"}
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && strings.TrimSpace(raw) != "" {
		return Value{Kind: ValueNum, Num: n}
	}
	if raw == "true" || raw == "false" {
		return Value{Kind: ValueBool, Bool: raw == "true"}
	}
	if raw == "" {
		return Value{}
	}
	return Value{Kind: ValueText, Text: raw}
}

// gameOptionValue resolves a game-scope option by name for a hole.
// Returns null when the option is not activated by any linked spec.
func gameOptionValue(game *sharedtypes.Game, name string, hole int) Value {
	for _, opt := range activeOptions(game, sharedtypes.OptionTypeGame) {
		if opt.Name == name {
			return opt.resolveValue(hole)
		}
	}
	return Value{}
}

// findActive returns the named active option of a type, or nil.
func findActive(opts []*activeOption, name string) *activeOption {
	for _, o := range opts {
		if o.Name == name {
			return o
		}
	}
	return nil
}
