package input

import (
	"testing"

	"github.com/NikitaCOEUR/clinput/internal/definition"
	"github.com/NikitaCOEUR/clinput/internal/derrors"
	"github.com/NikitaCOEUR/clinput/internal/token"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArgument(t *testing.T, name string, mode definition.ArgumentMode) *definition.Argument {
	t.Helper()
	a, err := definition.NewArgument(name, mode, "", nil)
	require.NoError(t, err)
	return a
}

func newOption(t *testing.T, name, shortcut string, mode definition.ValueMode, def any) *definition.Option {
	t.Helper()
	o, err := definition.NewOption(name, shortcut, mode, "", def)
	require.NoError(t, err)
	return o
}

// buildDefinition mirrors a typical "build" command
func buildDefinition(t *testing.T) *definition.Definition {
	t.Helper()
	d, err := definition.New("build",
		[]*definition.Argument{
			newArgument(t, "target", definition.ArgumentRequired),
			newArgument(t, "files", definition.ArgumentOptional|definition.ArgumentIsArray),
		},
		[]*definition.Option{
			newOption(t, "verbose", "v", definition.ValueNone, nil),
			newOption(t, "out", "o", definition.ValueRequired, nil),
			newOption(t, "tag", "t", definition.ValueRequired|definition.ValueIsArray, nil),
			newOption(t, "color", "c", definition.ValueOptional, "auto"),
			newOption(t, "level", "", definition.ValueOptional, nil),
			newOption(t, "extract", "x", definition.ValueNone, nil),
			newOption(t, "file", "f", definition.ValueRequired, nil),
		},
	)
	require.NoError(t, err)
	return d
}

func mustParse(t *testing.T, def *definition.Definition, tokens ...string) *Input {
	t.Helper()
	in, err := ParseArgv(def, tokens)
	require.NoError(t, err)
	return in
}

func TestParseArgv_BuildScenario(t *testing.T) {
	d, err := definition.New("build",
		[]*definition.Argument{newArgument(t, "target", definition.ArgumentRequired)},
		[]*definition.Option{
			newOption(t, "verbose", "", definition.ValueNone, nil),
			newOption(t, "out", "", definition.ValueRequired, nil),
		},
	)
	require.NoError(t, err)

	in := mustParse(t, d, "--verbose", "build", "--out=dist")

	assert.Equal(t, map[string]any{"verbose": true, "out": "dist"}, in.Options())
	assert.Equal(t, map[string]any{"target": "build"}, in.Arguments())
	assert.NoError(t, in.Validate())
}

func TestParseArgv_ClusterWithTrailingValue(t *testing.T) {
	d, err := definition.New("", nil, []*definition.Option{
		newOption(t, "x", "x", definition.ValueNone, nil),
		newOption(t, "v", "v", definition.ValueNone, nil),
		newOption(t, "f", "f", definition.ValueRequired, nil),
	})
	require.NoError(t, err)

	in := mustParse(t, d, "-xvf", "file.txt")

	assert.True(t, in.BoolOption("x"))
	assert.True(t, in.BoolOption("v"))
	assert.Equal(t, "file.txt", in.StringOption("f"))
}

func TestParseArgv_TerminatorScenario(t *testing.T) {
	d := buildDefinition(t)

	in := mustParse(t, d, "--", "--looks-like-option")

	assert.Equal(t, "--looks-like-option", in.StringArgument("target"))
	assert.True(t, in.Terminated())
	assert.Empty(t, in.SetOptionNames())
}

func TestParseArgv_UnknownOptionSuggestsClosest(t *testing.T) {
	d := buildDefinition(t)

	_, err := ParseArgv(d, []string{"--bogus"})

	var unknown *derrors.UnknownOptionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bogus", unknown.Name)
	assert.Equal(t, "--out", unknown.Suggestion)
	assert.Contains(t, unknown.Valid, "--verbose")
	assert.Contains(t, err.Error(), `did you mean "--out"?`)
}

func TestParseArgv_Values(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		options map[string]any
		args    map[string]any
	}{
		{
			name:    "dash is a value",
			tokens:  []string{"--out", "-", "t"},
			options: map[string]any{"out": "-"},
			args:    map[string]any{"target": "t"},
		},
		{
			name:    "empty token is a value",
			tokens:  []string{"--out", "", "t"},
			options: map[string]any{"out": ""},
			args:    map[string]any{"target": "t"},
		},
		{
			name:    "equals value may start with a dash",
			tokens:  []string{"--out=-v", "t"},
			options: map[string]any{"out": "-v"},
			args:    map[string]any{"target": "t"},
		},
		{
			name:    "empty equals value",
			tokens:  []string{"--out=", "t"},
			options: map[string]any{"out": ""},
			args:    map[string]any{"target": "t"},
		},
		{
			name:    "attached short value",
			tokens:  []string{"-odist", "t"},
			options: map[string]any{"out": "dist"},
			args:    map[string]any{"target": "t"},
		},
		{
			name:    "attached short value starting with a dash",
			tokens:  []string{"-o-v", "t"},
			options: map[string]any{"out": "-v"},
			args:    map[string]any{"target": "t"},
		},
		{
			name:    "cluster ending with value option",
			tokens:  []string{"-vo", "dist", "t"},
			options: map[string]any{"verbose": true, "out": "dist"},
			args:    map[string]any{"target": "t"},
		},
		{
			name:    "cluster with attached value",
			tokens:  []string{"-vodist", "t"},
			options: map[string]any{"verbose": true, "out": "dist"},
			args:    map[string]any{"target": "t"},
		},
		{
			name:    "array accumulates",
			tokens:  []string{"-t", "a", "--tag=b", "t", "-tc", "--tag", "d"},
			options: map[string]any{"tag": []string{"a", "b", "c", "d"}},
			args:    map[string]any{"target": "t"},
		},
		{
			name:    "optional value present",
			tokens:  []string{"--color", "red", "t"},
			options: map[string]any{"color": "red"},
			args:    map[string]any{"target": "t"},
		},
		{
			name:    "optional value absent binds default",
			tokens:  []string{"t", "--color", "--verbose"},
			options: map[string]any{"color": "auto", "verbose": true},
			args:    map[string]any{"target": "t"},
		},
		{
			name:    "optional value without default",
			tokens:  []string{"t", "--level"},
			options: map[string]any{"level": nil},
			args:    map[string]any{"target": "t"},
		},
		{
			name:    "negation binds false",
			tokens:  []string{"--verbose", "--no-verbose", "t"},
			options: map[string]any{"verbose": false},
			args:    map[string]any{"target": "t"},
		},
		{
			name:    "last occurrence wins",
			tokens:  []string{"--no-verbose", "--verbose", "-o", "a", "-o", "b", "t"},
			options: map[string]any{"verbose": true, "out": "b"},
			args:    map[string]any{"target": "t"},
		},
		{
			name:   "stdin marker is positional",
			tokens: []string{"-"},
			args:   map[string]any{"target": "-"},
		},
		{
			name:   "array argument absorbs the rest",
			tokens: []string{"t", "a", "--", "-b", "--"},
			args:   map[string]any{"target": "t", "files": []string{"a", "-b", "--"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := mustParse(t, buildDefinition(t), tt.tokens...)

			options := map[string]any{}
			for _, name := range in.SetOptionNames() {
				options[name], _ = in.Option(name)
			}
			if tt.options == nil {
				tt.options = map[string]any{}
			}
			assert.Equal(t, tt.options, options)

			args := map[string]any{}
			for name := range tt.args {
				require.True(t, in.IsArgumentSet(name), name)
				args[name], _ = in.Argument(name)
			}
			assert.Equal(t, tt.args, args)
			assert.Equal(t, len(tt.args), in.BoundArguments())
		})
	}
}

func TestParseArgv_Errors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "missing value at end",
			tokens: []string{"--out"},
			check: func(t *testing.T, err error) {
				var e *derrors.MissingValueError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "out", e.Option)
			},
		},
		{
			name:   "missing value before option",
			tokens: []string{"-o", "--verbose"},
			check: func(t *testing.T, err error) {
				var e *derrors.MissingValueError
				require.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "missing value before terminator",
			tokens: []string{"--out", "--", "x"},
			check: func(t *testing.T, err error) {
				var e *derrors.MissingValueError
				require.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "value given to switch",
			tokens: []string{"--verbose=yes"},
			check: func(t *testing.T, err error) {
				var e *derrors.UnexpectedValueError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "verbose", e.Option)
			},
		},
		{
			name:   "value given to negation",
			tokens: []string{"--no-verbose=1"},
			check: func(t *testing.T, err error) {
				var e *derrors.UnexpectedValueError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "no-verbose", e.Option)
			},
		},
		{
			name:   "unknown shortcut in cluster",
			tokens: []string{"-xzv"},
			check: func(t *testing.T, err error) {
				var e *derrors.MalformedClusterError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "xzv", e.Cluster)
				assert.Equal(t, "z", e.Shortcut)
				assert.Equal(t, []string{"c", "f", "o", "t", "v", "x"}, e.Shortcuts)
			},
		},
		{
			name:   "unknown single shortcut",
			tokens: []string{"-z"},
			check: func(t *testing.T, err error) {
				var e *derrors.UnknownOptionError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "z", e.Name)
				assert.Contains(t, err.Error(), `"-z"`)
				assert.Contains(t, e.Valid, "-v")
			},
		},
		{
			name:   "negation of value option",
			tokens: []string{"--no-out"},
			check: func(t *testing.T, err error) {
				var e *derrors.UnknownOptionError
				require.ErrorAs(t, err, &e)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseArgv(buildDefinition(t), tt.tokens)
			assert.Nil(t, in)
			require.Error(t, err)
			assert.True(t, derrors.IsParseError(err))
			tt.check(t, err)
		})
	}
}

func TestParseArgv_TooManyArguments(t *testing.T) {
	d, err := definition.New("deploy",
		[]*definition.Argument{newArgument(t, "env", definition.ArgumentRequired)},
		nil,
	)
	require.NoError(t, err)

	_, err = ParseArgv(d, []string{"prod", "extra"})

	var e *derrors.TooManyArgumentsError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "deploy", e.Command)
	assert.Equal(t, "extra", e.Token)
	assert.Contains(t, err.Error(), `"deploy" command`)

	none, err := definition.New("status", nil, nil)
	require.NoError(t, err)
	_, err = ParseArgv(none, []string{"x"})
	require.ErrorAs(t, err, &e)
	assert.Contains(t, err.Error(), `no arguments expected for "status" command`)
}

func TestParseArgv_OptionEqualsFormMatchesSpaceForm(t *testing.T) {
	values := []string{"dist", "a b", "", "-", "x=y", "'quoted'"}

	for _, v := range values {
		for _, option := range []string{"out", "tag", "color"} {
			equals := mustParse(t, buildDefinition(t), "--"+option+"="+v, "t")
			spaced := mustParse(t, buildDefinition(t), "--"+option, v, "t")

			if diff := cmp.Diff(equals.Options(), spaced.Options()); diff != "" {
				t.Errorf("--%s=%q vs --%s %q (-equals +spaced):\n%s", option, v, option, v, diff)
			}
		}
	}
}

func TestParseArgv_ClusterMatchesSeparateShortcuts(t *testing.T) {
	tests := [][2][]string{
		{{"-vx"}, {"-v", "-x"}},
		{{"-xv", "t"}, {"-x", "-v", "t"}},
		{{"-vxf", "a"}, {"-v", "-x", "-f", "a"}},
		{{"-xfa"}, {"-x", "-f", "a"}},
	}

	for _, tt := range tests {
		clustered := mustParse(t, buildDefinition(t), tt[0]...)
		separate := mustParse(t, buildDefinition(t), tt[1]...)

		assert.Equal(t, separate.Options(), clustered.Options(), "%v vs %v", tt[0], tt[1])
		assert.Equal(t, separate.Arguments(), clustered.Arguments(), "%v vs %v", tt[0], tt[1])
	}
}

func TestParseArgv_OptionPositionDoesNotChangeArguments(t *testing.T) {
	orders := [][]string{
		{"--verbose", "-t", "x", "first", "second", "third"},
		{"first", "--verbose", "second", "-t", "x", "third"},
		{"first", "second", "third", "-t", "x", "--verbose"},
		{"first", "-v", "second", "--tag=x", "third"},
	}

	want := mustParse(t, buildDefinition(t), orders[0]...)
	for _, tokens := range orders[1:] {
		got := mustParse(t, buildDefinition(t), tokens...)
		if diff := cmp.Diff(want.Arguments(), got.Arguments()); diff != "" {
			t.Errorf("arguments differ for %v (-want +got):\n%s", tokens, diff)
		}
		if diff := cmp.Diff(want.Options(), got.Options()); diff != "" {
			t.Errorf("options differ for %v (-want +got):\n%s", tokens, diff)
		}
	}

	assert.Equal(t, "first", want.StringArgument("target"))
	assert.Equal(t, []string{"second", "third"}, want.StringsArgument("files"))
}

func TestParseArgv_AfterTerminatorEverythingIsPositional(t *testing.T) {
	in := mustParse(t, buildDefinition(t), "t", "--", "--verbose", "-x", "--out=a", "-")

	assert.Equal(t, []string{"--verbose", "-x", "--out=a", "-"}, in.StringsArgument("files"))
	assert.False(t, in.IsOptionSet("verbose"))
	assert.False(t, in.IsOptionSet("extract"))
}

func TestInput_RoundTrip(t *testing.T) {
	inputs := [][]string{
		{"--verbose", "build", "--out=dist"},
		{"-t", "a b", "-t", "it's", "x", "y z"},
		{"--no-verbose", "--", "-dash", "--"},
		{"--level", "--", "b"},
		{"--color", "--out=", "t"},
		{"-ofoo;bar", "$HOME", "`cmd`", "\"q\""},
		{"--color=", "t", "", "\\"},
		{"-"},
		{},
	}

	for _, tokens := range inputs {
		first := mustParse(t, buildDefinition(t), tokens...)

		words, err := token.Split(first.String())
		require.NoError(t, err, first.String())

		second := mustParse(t, buildDefinition(t), words...)

		if diff := cmp.Diff(first.Options(), second.Options()); diff != "" {
			t.Errorf("options changed for %q via %q (-first +second):\n%s", tokens, first.String(), diff)
		}
		if diff := cmp.Diff(first.Arguments(), second.Arguments()); diff != "" {
			t.Errorf("arguments changed for %q via %q (-first +second):\n%s", tokens, first.String(), diff)
		}
	}
}

func TestInput_String(t *testing.T) {
	in := mustParse(t, buildDefinition(t), "build", "--verbose", "-o", "my dist", "a")

	assert.Equal(t, []string{"--verbose", "--out=my dist", "build", "a"}, in.Args())

	words, err := token.Split(in.String())
	require.NoError(t, err)
	assert.Equal(t, in.Args(), words)
}

func TestParseArgv_Partial(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		pending string
	}{
		{name: "long option at end", tokens: []string{"--out"}, pending: "out"},
		{name: "shortcut at end", tokens: []string{"t", "-o"}, pending: "out"},
		{name: "cluster at end", tokens: []string{"-vf"}, pending: "file"},
		{name: "optional value at end", tokens: []string{"--color"}, pending: "color"},
		{name: "value present", tokens: []string{"--out", "x"}, pending: ""},
		{name: "no options", tokens: []string{"t"}, pending: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseArgv(buildDefinition(t), tt.tokens, Partial())
			require.NoError(t, err)
			assert.Equal(t, tt.pending, in.Pending())
		})
	}

	_, err := ParseArgv(buildDefinition(t), []string{"--out", "--verbose"}, Partial())
	var missing *derrors.MissingValueError
	assert.ErrorAs(t, err, &missing, "only a trailing option may be pending")
}

func TestInput_Accessors(t *testing.T) {
	in := mustParse(t, buildDefinition(t), "t", "--verbose")

	_, ok := in.Option("nope")
	assert.False(t, ok)
	_, ok = in.Argument("nope")
	assert.False(t, ok)

	v, ok := in.Option("color")
	assert.True(t, ok)
	assert.Equal(t, "auto", v)
	assert.False(t, in.IsOptionSet("color"))
	assert.True(t, in.IsOptionSet("verbose"))

	assert.Equal(t, []string{}, in.StringsArgument("files"))
	assert.Equal(t, []string{}, in.StringsOption("tag"))
	assert.Equal(t, "", in.StringOption("out"))
	assert.Equal(t, []string{"t", "--verbose"}, in.Tokens())

	next, ok := in.NextArgument()
	require.True(t, ok)
	assert.Equal(t, "files", next.Name())
}

func TestInput_Validate(t *testing.T) {
	in := mustParse(t, buildDefinition(t), "--verbose")

	err := in.Validate()
	var missing *derrors.MissingArgumentsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"target"}, missing.Missing)
}

func TestInput_ValuesAreCopies(t *testing.T) {
	in := mustParse(t, buildDefinition(t), "-t", "a", "t")

	tags := in.StringsOption("tag")
	tags[0] = "mutated"

	assert.Equal(t, []string{"a"}, in.StringsOption("tag"))
}
