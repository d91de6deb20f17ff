package clap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clapgo/clap/clerr"
)

//
// Fixtures --------------------------------------------------------------------------------
//

// newVersionCmd builds the single-select version-bump fixture used by the
// group tests: exactly one of --set-ver, --major, --minor, --patch.
func newVersionCmd() *Command {
	return New("prog").
		Arg(NewArg("set-ver").Long("set-ver")).
		Arg(NewArg("major").Long("major").ActionFn(SetTrue)).
		Arg(NewArg("minor").Long("minor").ActionFn(SetTrue)).
		Arg(NewArg("patch").Long("patch").ActionFn(SetTrue)).
		ArgGroup(NewGroup("vers").
			Arg("set-ver").Arg("major").Arg("minor").Arg("patch").
			Required(true))
}

//
// Tests -----------------------------------------------------------------------------------
//

// TestValidate_ConflictSymmetry checks that a declared conflict fires
// in both argv orders, naming both arguments.
func TestValidate_ConflictSymmetry(t *testing.T) {
	t.Parallel()

	build := func() *Command {
		return New("prog").
			Arg(NewArg("a").Long("a").ActionFn(SetTrue).ConflictsWith("b")).
			Arg(NewArg("b").Long("b").ActionFn(SetTrue))
	}

	tt := []struct {
		name     string
		argv     []string
		offender string
		prior    string
	}{
		{name: "a then b", argv: []string{"prog", "--a", "--b"}, offender: "--b", prior: "--a"},
		{name: "b then a", argv: []string{"prog", "--b", "--a"}, offender: "--a", prior: "--b"},
	}

	for _, tc := range tt {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := build().Parse(tc.argv)
			require.NotNil(t, err)
			require.Equal(t, clerr.ArgumentConflict, err.Kind)

			invalid, ok := err.Context(clerr.InvalidArg)
			require.True(t, ok)
			assert.Equal(t, tc.offender, invalid.String)

			prior, ok := err.Context(clerr.PriorArg)
			require.True(t, ok)
			assert.Equal(t, tc.prior, prior.String)
		})
	}
}

// TestValidate_RequiredGroup checks that an empty invocation reports
// the group as missing; two members of a single-select group conflict.
func TestValidate_RequiredGroup(t *testing.T) {
	t.Parallel()

	_, err := newVersionCmd().Parse([]string{"prog"})
	require.NotNil(t, err)
	require.Equal(t, clerr.MissingRequiredArgument, err.Kind)

	missing, ok := err.Context(clerr.InvalidArg)
	require.True(t, ok)
	assert.Equal(t, []string{"<vers>"}, missing.Strings)

	_, err = newVersionCmd().Parse([]string{"prog", "--major", "--minor"})
	require.NotNil(t, err)
	assert.Equal(t, clerr.ArgumentConflict, err.Kind)

	m, err := newVersionCmd().Parse([]string{"prog", "--patch"})
	require.Nil(t, err)
	assert.True(t, m.IsPresent("patch"))
}

// TestValidate_GroupMultiple checks that Multiple lifts the implicit member
// conflict.
func TestValidate_GroupMultiple(t *testing.T) {
	t.Parallel()

	cmd := New("prog").
		Arg(NewArg("major").Long("major").ActionFn(SetTrue)).
		Arg(NewArg("minor").Long("minor").ActionFn(SetTrue)).
		ArgGroup(NewGroup("vers").Arg("major").Arg("minor").Multiple(true))

	m, err := cmd.Parse([]string{"prog", "--major", "--minor"})
	require.Nil(t, err)
	assert.True(t, m.IsPresent("major"))
	assert.True(t, m.IsPresent("minor"))
}

// TestValidate_MissingRequired checks the plain required path and the
// attached usage snippet.
func TestValidate_MissingRequired(t *testing.T) {
	t.Parallel()

	cmd := New("prog").
		Arg(NewArg("input").Positional(1).Required(true)).
		Arg(NewArg("verbose").Long("verbose").ActionFn(SetTrue))

	_, err := cmd.Parse([]string{"prog"})
	require.NotNil(t, err)
	require.Equal(t, clerr.MissingRequiredArgument, err.Kind)

	missing, ok := err.Context(clerr.InvalidArg)
	require.True(t, ok)
	assert.Equal(t, []string{"<input>"}, missing.Strings)

	usage, ok := err.Context(clerr.Usage)
	require.True(t, ok)
	assert.Contains(t, usage.String, "prog")
	assert.Contains(t, usage.String, "<input>")
}

// TestValidate_RequiresEntailment checks that presence of one argument pulls
// its requirements into the graph.
func TestValidate_RequiresEntailment(t *testing.T) {
	t.Parallel()

	build := func() *Command {
		return New("prog").
			Arg(NewArg("user").Long("user").Requires("password")).
			Arg(NewArg("password").Long("password"))
	}

	_, err := build().Parse([]string{"prog", "--user", "alice"})
	require.NotNil(t, err)
	assert.Equal(t, clerr.MissingRequiredArgument, err.Kind)

	m, err := build().Parse([]string{"prog", "--user", "alice", "--password", "s3cret"})
	require.Nil(t, err)
	assert.True(t, m.IsPresent("password"))

	// Absent user entails nothing.
	_, err = build().Parse([]string{"prog"})
	assert.Nil(t, err)
}

// TestValidate_RequiredUnless checks required_unless_any and
// required_unless_all.
func TestValidate_RequiredUnless(t *testing.T) {
	t.Parallel()

	build := func() *Command {
		return New("prog").
			Arg(NewArg("token").Long("token").RequiredUnlessAny("config", "anonymous")).
			Arg(NewArg("config").Long("config")).
			Arg(NewArg("anonymous").Long("anonymous").ActionFn(SetTrue))
	}

	_, err := build().Parse([]string{"prog"})
	require.NotNil(t, err)
	assert.Equal(t, clerr.MissingRequiredArgument, err.Kind)

	m, err := build().Parse([]string{"prog", "--config", "app.toml"})
	require.Nil(t, err)
	assert.False(t, m.IsPresent("token"))

	m, err = build().Parse([]string{"prog", "--token", "abc"})
	require.Nil(t, err)
	assert.True(t, m.IsPresent("token"))

	all := New("prog").
		Arg(NewArg("token").Long("token").RequiredUnlessAll("host", "port")).
		Arg(NewArg("host").Long("host")).
		Arg(NewArg("port").Long("port"))

	_, err = all.Parse([]string{"prog", "--host", "example.com"})
	require.NotNil(t, err)
	assert.Equal(t, clerr.MissingRequiredArgument, err.Kind)
}

// TestValidate_RequiredIf checks conditional requirements keyed on another
// argument's value.
func TestValidate_RequiredIf(t *testing.T) {
	t.Parallel()

	build := func() *Command {
		return New("prog").
			Arg(NewArg("auth").Long("auth")).
			Arg(NewArg("password").Long("password").
				RequiredIfAny(CondRequirement{ID: "auth", Predicate: ValueEquals("auth", "basic")}))
	}

	_, err := build().Parse([]string{"prog", "--auth", "basic"})
	require.NotNil(t, err)
	assert.Equal(t, clerr.MissingRequiredArgument, err.Kind)

	m, err := build().Parse([]string{"prog", "--auth", "none"})
	require.Nil(t, err)
	assert.False(t, m.IsPresent("password"))
}

// TestValidate_Exclusive checks that an exclusive argument rejects any
// co-occurrence without listing conflicts.
func TestValidate_Exclusive(t *testing.T) {
	t.Parallel()

	build := func() *Command {
		return New("prog").
			Arg(NewArg("init").Long("init").ActionFn(SetTrue).Exclusive(true)).
			Arg(NewArg("out").Long("out"))
	}

	_, err := build().Parse([]string{"prog", "--init", "--out", "dir"})
	require.NotNil(t, err)
	assert.Equal(t, clerr.ArgumentConflict, err.Kind)

	m, err := build().Parse([]string{"prog", "--init"})
	require.Nil(t, err)
	assert.True(t, m.IsPresent("init"))
}

// TestValidate_SubcommandRequired checks MissingSubcommand and its valid
// list.
func TestValidate_SubcommandRequired(t *testing.T) {
	t.Parallel()

	cmd := New("prog").
		SubcommandRequired(true).
		Subcommand(New("run")).
		Subcommand(New("stop"))

	_, err := cmd.Parse([]string{"prog"})
	require.NotNil(t, err)
	require.Equal(t, clerr.MissingSubcommand, err.Kind)

	valid, ok := err.Context(clerr.ValidSubcommand)
	require.True(t, ok)
	assert.Equal(t, []string{"run", "stop"}, valid.Strings)
}

// TestValidate_SubcommandNegatesReqs checks that choosing a subcommand
// waives the parent's required arguments.
func TestValidate_SubcommandNegatesReqs(t *testing.T) {
	t.Parallel()

	build := func() *Command {
		return New("prog").
			SubcommandNegatesReqs(true).
			Arg(NewArg("input").Positional(1).Required(true)).
			Subcommand(New("init"))
	}

	m, err := build().Parse([]string{"prog", "init"})
	require.Nil(t, err)
	name, _, _ := m.Subcommand()
	assert.Equal(t, "init", name)

	_, err = build().Parse([]string{"prog"})
	require.NotNil(t, err)
	assert.Equal(t, clerr.MissingRequiredArgument, err.Kind)
}

// TestValidate_ArgRequiredElseHelp checks the display-help-on-empty kind.
func TestValidate_ArgRequiredElseHelp(t *testing.T) {
	t.Parallel()

	cmd := New("prog").
		ArgRequiredElseHelp(true).
		Arg(NewArg("out").Long("out"))

	_, err := cmd.Parse([]string{"prog"})
	require.NotNil(t, err)
	assert.Equal(t, clerr.DisplayHelpOnMissingArgumentOrSubcommand, err.Kind)
	assert.Equal(t, 0, err.ExitCode())

	m, err := cmd.Parse([]string{"prog", "--out", "x"})
	require.Nil(t, err)
	assert.True(t, m.IsPresent("out"))
}

// TestValidate_ConflictExcusesRequired checks that a required argument in
// conflict with something present is not reported missing.
func TestValidate_ConflictExcusesRequired(t *testing.T) {
	t.Parallel()

	cmd := New("prog").
		Arg(NewArg("file").Long("file").Required(true)).
		Arg(NewArg("stdin").Long("stdin").ActionFn(SetTrue).ConflictsWith("file"))

	_, err := cmd.Parse([]string{"prog", "--stdin"})
	assert.Nil(t, err)
}

// TestValidate_GroupRequires checks group-level requires entailment.
func TestValidate_GroupRequires(t *testing.T) {
	t.Parallel()

	build := func() *Command {
		return New("prog").
			Arg(NewArg("major").Long("major").ActionFn(SetTrue)).
			Arg(NewArg("minor").Long("minor").ActionFn(SetTrue)).
			Arg(NewArg("changelog").Long("changelog")).
			ArgGroup(NewGroup("vers").Arg("major").Arg("minor").Requires("changelog"))
	}

	_, err := build().Parse([]string{"prog", "--major"})
	require.NotNil(t, err)
	assert.Equal(t, clerr.MissingRequiredArgument, err.Kind)

	m, err := build().Parse([]string{"prog", "--major", "--changelog", "notes.md"})
	require.Nil(t, err)
	assert.True(t, m.IsPresent("changelog"))
}

// TestValidate_GroupConflicts checks a conflict declared between a group and
// an outside argument.
func TestValidate_GroupConflicts(t *testing.T) {
	t.Parallel()

	cmd := New("prog").
		Arg(NewArg("major").Long("major").ActionFn(SetTrue)).
		Arg(NewArg("dry-run").Long("dry-run").ActionFn(SetTrue)).
		ArgGroup(NewGroup("vers").Arg("major").ConflictsWith("dry-run"))

	_, err := cmd.Parse([]string{"prog", "--major", "--dry-run"})
	require.NotNil(t, err)
	assert.Equal(t, clerr.ArgumentConflict, err.Kind)
}

// TestValidate_SubcommandMatcherIsValidated checks that the terminal
// command's rules run against the terminal matcher.
func TestValidate_SubcommandMatcherIsValidated(t *testing.T) {
	t.Parallel()

	cmd := New("prog").
		Subcommand(New("run").
			Arg(NewArg("script").Positional(1).Required(true)))

	_, err := cmd.Parse([]string{"prog", "run"})
	require.NotNil(t, err)
	assert.Equal(t, clerr.MissingRequiredArgument, err.Kind)
}

// TestValidate_IgnoreErrorsSwallowsValidation checks that IgnoreErrors on a
// command swallows its own validation failures.
func TestValidate_IgnoreErrorsSwallowsValidation(t *testing.T) {
	t.Parallel()

	cmd := New("prog").
		IgnoreErrors(true).
		Arg(NewArg("input").Positional(1).Required(true))

	m, err := cmd.Parse([]string{"prog"})
	assert.Nil(t, err)
	assert.False(t, m.IsPresent("input"))
}
