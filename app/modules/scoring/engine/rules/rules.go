// Package rules evaluates the boolean/value expressions that game specs use
// for junk eligibility and multiplier availability.
//
// Catalog expressions are JSON-encoded trees (historically authored with
// single quotes, which Compile normalizes). An expression compiles once at
// catalog load into a Node tree and is evaluated per hole against an Env.
// The operator set is closed: generic logic/arithmetic operators are handled
// here, and the fixed set of domain operators dispatches through Env.Call.
// There is no runtime operator registration.
package rules

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Env supplies named values and domain operators to an evaluation.
// Implementations must be side-effect free.
type Env interface {
	// Var resolves a top-level variable name ("team", "possiblePoints", ...).
	Var(name string) (any, bool)
	// Call dispatches a domain operator with already-evaluated arguments.
	Call(op string, args []any) (any, error)
}

// Varer lets result structs expose fields to dot-path variable lookups
// ("team.points") without the evaluator knowing their concrete types.
type Varer interface {
	LogicVar(name string) (any, bool)
}

type nodeKind int

const (
	kindLiteral nodeKind = iota
	kindArray
	kindOp
)

// Node is one compiled expression node.
type Node struct {
	kind nodeKind
	lit  any
	list []*Node
	op   string
	args []*Node
}

// Op returns the operator name for operator nodes, or "".
func (n *Node) Op() string { return n.op }

// generic operators evaluated by this package. Everything else must be a
// domain operator implemented by the Env.
var genericOps = map[string]bool{
	"var": true, "if": true, "and": true, "or": true, "!": true, "!!": true,
	"==": true, "===": true, "!=": true, "!==": true,
	">": true, ">=": true, "<": true, "<=": true,
	"+": true, "-": true, "*": true, "/": true,
	"min": true, "max": true, "in": true,
}

// domainOps is the closed set of scoring operators an Env must answer.
var domainOps = map[string]bool{
	"team":                       true,
	"team_down_the_most":         true,
	"team_second_to_last":        true,
	"rankWithTies":               true,
	"other_team_multiplied_with": true,
	"countJunk":                  true,
	"parOrBetter":                true,
	"holePar":                    true,
	"playersOnTeam":              true,
	"isWolfPlayer":               true,
	"existingPreMultiplierTotal": true,
	"getPrevHole":                true,
	"getCurrHole":                true,
}

// Compile parses an expression string into a Node tree. Single quotes are
// normalized to double quotes before JSON decoding. Unknown operators are a
// compile error so malformed catalogs fail at load, not mid-round.
func Compile(expr string) (*Node, error) {
	normalized := strings.ReplaceAll(expr, "'", `"`)
	var decoded any
	if err := json.Unmarshal([]byte(normalized), &decoded); err != nil {
		return nil, fmt.Errorf("parse expression: %w", err)
	}
	return build(decoded)
}

func build(v any) (*Node, error) {
	switch t := v.(type) {
	case map[string]any:
		if len(t) != 1 {
			return nil, fmt.Errorf("operation object must have exactly one key, got %d", len(t))
		}
		for op, rawArgs := range t {
			if !genericOps[op] && !domainOps[op] {
				return nil, fmt.Errorf("unknown operator %q", op)
			}
			var args []*Node
			// single non-array argument is shorthand for a one-element list
			if list, ok := rawArgs.([]any); ok {
				for _, a := range list {
					n, err := build(a)
					if err != nil {
						return nil, err
					}
					args = append(args, n)
				}
			} else {
				n, err := build(rawArgs)
				if err != nil {
					return nil, err
				}
				args = []*Node{n}
			}
			return &Node{kind: kindOp, op: op, args: args}, nil
		}
		return nil, fmt.Errorf("empty operation object")
	case []any:
		list := make([]*Node, 0, len(t))
		for _, item := range t {
			n, err := build(item)
			if err != nil {
				return nil, err
			}
			list = append(list, n)
		}
		return &Node{kind: kindArray, list: list}, nil
	default:
		return &Node{kind: kindLiteral, lit: v}, nil
	}
}

// Apply evaluates a compiled expression against env.
func Apply(n *Node, env Env) (any, error) {
	if n == nil {
		return nil, nil
	}
	switch n.kind {
	case kindLiteral:
		return n.lit, nil
	case kindArray:
		out := make([]any, 0, len(n.list))
		for _, item := range n.list {
			v, err := Apply(item, env)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case kindOp:
		return applyOp(n, env)
	}
	return nil, fmt.Errorf("invalid node")
}

// Truthy reports jsonlogic truthiness: nil, false, 0, "", and empty arrays
// are false; everything else is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	}
	return true
}

func applyOp(n *Node, env Env) (any, error) {
	switch n.op {
	case "var":
		return applyVar(n, env)
	case "if":
		return applyIf(n, env)
	case "and":
		var last any = true
		for _, arg := range n.args {
			v, err := Apply(arg, env)
			if err != nil {
				return nil, err
			}
			if !Truthy(v) {
				return v, nil
			}
			last = v
		}
		return last, nil
	case "or":
		var last any = false
		for _, arg := range n.args {
			v, err := Apply(arg, env)
			if err != nil {
				return nil, err
			}
			if Truthy(v) {
				return v, nil
			}
			last = v
		}
		return last, nil
	}

	args := make([]any, 0, len(n.args))
	for _, arg := range n.args {
		v, err := Apply(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	switch n.op {
	case "!":
		return !Truthy(arg0(args)), nil
	case "!!":
		return Truthy(arg0(args)), nil
	case "==":
		return looseEquals(arg0(args), arg1(args)), nil
	case "!=":
		return !looseEquals(arg0(args), arg1(args)), nil
	case "===":
		return strictEquals(arg0(args), arg1(args)), nil
	case "!==":
		return !strictEquals(arg0(args), arg1(args)), nil
	case ">", ">=", "<", "<=":
		return compareNumbers(n.op, args)
	case "+", "-", "*", "/":
		return arithmetic(n.op, args)
	case "min", "max":
		return minMax(n.op, args)
	case "in":
		return applyIn(arg0(args), arg1(args)), nil
	}

	if domainOps[n.op] {
		return env.Call(n.op, args)
	}
	return nil, fmt.Errorf("unknown operator %q", n.op)
}

func applyVar(n *Node, env Env) (any, error) {
	if len(n.args) == 0 {
		return nil, fmt.Errorf("var requires a path")
	}
	raw, err := Apply(n.args[0], env)
	if err != nil {
		return nil, err
	}
	path, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("var path must be a string, got %T", raw)
	}
	var deflt any
	if len(n.args) > 1 {
		if deflt, err = Apply(n.args[1], env); err != nil {
			return nil, err
		}
	}

	segments := strings.Split(path, ".")
	current, ok := env.Var(segments[0])
	if !ok {
		return deflt, nil
	}
	for _, seg := range segments[1:] {
		current, ok = lookupField(current, seg)
		if !ok {
			return deflt, nil
		}
	}
	return current, nil
}

func lookupField(v any, name string) (any, bool) {
	switch t := v.(type) {
	case Varer:
		return t.LogicVar(name)
	case map[string]any:
		out, ok := t[name]
		return out, ok
	case []any:
		idx, err := strconv.Atoi(name)
		if err != nil || idx < 0 || idx >= len(t) {
			return nil, false
		}
		return t[idx], true
	}
	return nil, false
}

func applyIf(n *Node, env Env) (any, error) {
	// [cond, then, cond2, then2, ..., else]
	i := 0
	for ; i+1 < len(n.args); i += 2 {
		cond, err := Apply(n.args[i], env)
		if err != nil {
			return nil, err
		}
		if Truthy(cond) {
			return Apply(n.args[i+1], env)
		}
	}
	if i < len(n.args) {
		return Apply(n.args[i], env)
	}
	return nil, nil
}

func applyIn(needle, haystack any) bool {
	switch t := haystack.(type) {
	case string:
		s, ok := needle.(string)
		return ok && strings.Contains(t, s)
	case []any:
		for _, item := range t {
			if looseEquals(needle, item) {
				return true
			}
		}
	}
	return false
}

func arg0(args []any) any {
	if len(args) > 0 {
		return args[0]
	}
	return nil
}

func arg1(args []any) any {
	if len(args) > 1 {
		return args[1]
	}
	return nil
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	case nil:
		return 0, true
	}
	return 0, false
}

func looseEquals(a, b any) bool {
	if strictEquals(a, b) {
		return true
	}
	na, aok := toNumber(a)
	nb, bok := toNumber(b)
	return aok && bok && na == nb
}

func strictEquals(a, b any) bool {
	switch ta := a.(type) {
	case float64:
		nb, ok := numericStrict(b)
		return ok && ta == nb
	case int:
		nb, ok := numericStrict(b)
		return ok && float64(ta) == nb
	case string:
		tb, ok := b.(string)
		return ok && ta == tb
	case bool:
		tb, ok := b.(bool)
		return ok && ta == tb
	case nil:
		return b == nil
	}
	return false
}

func numericStrict(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	}
	return 0, false
}

func compareNumbers(op string, args []any) (any, error) {
	a, aok := toNumber(arg0(args))
	b, bok := toNumber(arg1(args))
	if !aok || !bok {
		return false, nil
	}
	switch op {
	case ">":
		return a > b, nil
	case ">=":
		return a >= b, nil
	case "<":
		return a < b, nil
	case "<=":
		return a <= b, nil
	}
	return nil, fmt.Errorf("bad comparison %q", op)
}

func arithmetic(op string, args []any) (any, error) {
	if op == "-" && len(args) == 1 {
		n, _ := toNumber(args[0])
		return -n, nil
	}
	if len(args) == 0 {
		return 0.0, nil
	}
	acc, _ := toNumber(args[0])
	for _, v := range args[1:] {
		n, _ := toNumber(v)
		switch op {
		case "+":
			acc += n
		case "-":
			acc -= n
		case "*":
			acc *= n
		case "/":
			if n == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			acc /= n
		}
	}
	return acc, nil
}

func minMax(op string, args []any) (any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	best, _ := toNumber(args[0])
	for _, v := range args[1:] {
		n, _ := toNumber(v)
		if (op == "min" && n < best) || (op == "max" && n > best) {
			best = n
		}
	}
	return best, nil
}
