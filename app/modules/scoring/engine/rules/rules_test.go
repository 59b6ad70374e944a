package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEnv is a programmable Env for evaluator tests.
type fakeEnv struct {
	vars  map[string]any
	calls map[string]func(args []any) (any, error)
	trace []string
}

func (f *fakeEnv) Var(name string) (any, bool) {
	v, ok := f.vars[name]
	return v, ok
}

func (f *fakeEnv) Call(op string, args []any) (any, error) {
	f.trace = append(f.trace, op)
	if fn, ok := f.calls[op]; ok {
		return fn(args)
	}
	return nil, fmt.Errorf("no handler for %q", op)
}

type varerStub struct{ fields map[string]any }

func (v varerStub) LogicVar(name string) (any, bool) {
	out, ok := v.fields[name]
	return out, ok
}

func TestCompileNormalizesSingleQuotes(t *testing.T) {
	n, err := Compile(`{'===': [{'var': 'team.points'}, {'var': 'possiblePoints'}]}`)
	require.NoError(t, err)
	assert.Equal(t, "===", n.Op())
}

func TestCompileRejectsUnknownOperator(t *testing.T) {
	_, err := Compile(`{'launch_missiles': [1, 2]}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "launch_missiles")

	// unknown operators nested inside known ones fail too
	_, err = Compile(`{'and': [true, {'frobnicate': []}]}`)
	require.Error(t, err)
}

func TestCompileRejectsMalformedJSON(t *testing.T) {
	_, err := Compile(`{'and': [`)
	require.Error(t, err)
}

func TestApplyOperators(t *testing.T) {
	env := &fakeEnv{vars: map[string]any{
		"n": 4.0, "s": "hi", "zero": 0.0, "list": []any{1.0, 2.0, 3.0},
	}}
	tests := []struct {
		expr string
		want any
	}{
		{`{'==': [1, '1']}`, true},
		{`{'===': [1, '1']}`, false},
		{`{'===': [1, 1]}`, true},
		{`{'!=': [1, 2]}`, true},
		{`{'!==': [1, '1']}`, true},
		{`{'>': [{'var': 'n'}, 3]}`, true},
		{`{'<=': [{'var': 'n'}, 4]}`, true},
		{`{'+': [1, 2, 3]}`, 6.0},
		{`{'-': [5, 2]}`, 3.0},
		{`{'-': [5]}`, -5.0},
		{`{'*': [2, 3, 4]}`, 24.0},
		{`{'/': [12, 4]}`, 3.0},
		{`{'min': [4, 2, 9]}`, 2.0},
		{`{'max': [4, 2, 9]}`, 9.0},
		{`{'!': [{'var': 'zero'}]}`, true},
		{`{'!!': [{'var': 's'}]}`, true},
		{`{'in': [2, {'var': 'list'}]}`, true},
		{`{'in': ['h', {'var': 's'}]}`, true},
		{`{'if': [{'var': 'zero'}, 'a', 'b']}`, "b"},
		{`{'if': [false, 'a', true, 'b', 'c']}`, "b"},
		{`{'and': [1, 'x', 3]}`, 3.0},
		{`{'and': [1, 0, 3]}`, 0.0},
		{`{'or': [0, '', 'x']}`, "x"},
		{`{'or': [0, '']}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			n, err := Compile(tt.expr)
			require.NoError(t, err)
			got, err := Apply(n, env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyVarDotPaths(t *testing.T) {
	env := &fakeEnv{vars: map[string]any{
		"team": varerStub{fields: map[string]any{
			"points": 6.0,
			"players": []any{
				varerStub{fields: map[string]any{"net": 3.0}},
			},
		}},
	}}

	tests := []struct {
		expr string
		want any
	}{
		{`{'var': 'team.points'}`, 6.0},
		{`{'var': 'team.players.0.net'}`, 3.0},
		{`{'var': ['missing', 'fallback']}`, "fallback"},
		{`{'var': 'team.absent'}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			n, err := Compile(tt.expr)
			require.NoError(t, err)
			got, err := Apply(n, env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyShortCircuits(t *testing.T) {
	env := &fakeEnv{calls: map[string]func(args []any) (any, error){
		"countJunk": func([]any) (any, error) { return 1.0, nil },
	}}

	n, err := Compile(`{'and': [false, {'countJunk': [{'var': 'team'}, 'prox']}]}`)
	require.NoError(t, err)
	got, err := Apply(n, env)
	require.NoError(t, err)
	assert.False(t, Truthy(got))
	assert.Empty(t, env.trace, "and must not evaluate past a false operand")

	n, err = Compile(`{'or': [true, {'countJunk': []}]}`)
	require.NoError(t, err)
	got, err = Apply(n, env)
	require.NoError(t, err)
	assert.True(t, Truthy(got))
	assert.Empty(t, env.trace)
}

func TestApplyDispatchesDomainOperators(t *testing.T) {
	env := &fakeEnv{
		vars: map[string]any{"team": "t1"},
		calls: map[string]func(args []any) (any, error){
			"team_down_the_most": func(args []any) (any, error) {
				assert.Len(t, args, 2)
				assert.Nil(t, args[0])
				assert.Equal(t, "t1", args[1])
				return true, nil
			},
			"getPrevHole": func([]any) (any, error) { return nil, nil },
		},
	}

	n, err := Compile(`{'team_down_the_most': [{'getPrevHole': []}, {'var': 'team'}]}`)
	require.NoError(t, err)
	got, err := Apply(n, env)
	require.NoError(t, err)
	assert.Equal(t, true, got)
	assert.Equal(t, []string{"getPrevHole", "team_down_the_most"}, env.trace)
}

func TestApplyDivisionByZero(t *testing.T) {
	n, err := Compile(`{'/': [1, 0]}`)
	require.NoError(t, err)
	_, err = Apply(n, &fakeEnv{})
	require.Error(t, err)
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy(0.0))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy([]any{}))
	assert.True(t, Truthy(true))
	assert.True(t, Truthy(0.5))
	assert.True(t, Truthy("x"))
	assert.True(t, Truthy([]any{1}))
}
