package clerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// Tests -----------------------------------------------------------------------------------
//

// TestError_ContextOrder checks that context entries preserve insertion
// order and that the first entry wins on duplicate kinds.
func TestError_ContextOrder(t *testing.T) {
	t.Parallel()

	e := New(ArgumentConflict).
		WithString(InvalidArg, "--b").
		WithString(PriorArg, "--a").
		WithString(InvalidArg, "shadowed")

	v, ok := e.Context(InvalidArg)
	require.True(t, ok)
	assert.Equal(t, "--b", v.String)

	v, ok = e.Context(PriorArg)
	require.True(t, ok)
	assert.Equal(t, "--a", v.String)

	_, ok = e.Context(Usage)
	assert.False(t, ok)
}

// TestError_Unwrap checks errors.Is chaining through the Source field.
func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("not a number")
	e := New(InvalidValue).WithSource(underlying)

	assert.True(t, errors.Is(e, underlying))
	assert.Contains(t, e.Error(), "not a number")
}

// TestKind_ExitCodes checks the display-flow split: display kinds exit 0,
// everything else exits 2.
func TestKind_ExitCodes(t *testing.T) {
	t.Parallel()

	display := []Kind{DisplayHelp, DisplayHelpOnMissingArgumentOrSubcommand, DisplayVersion}
	for _, k := range display {
		assert.True(t, k.IsDisplay(), k.String())
		assert.Equal(t, 0, k.ExitCode(), k.String())
	}

	failures := []Kind{
		ArgumentConflict, EmptyValue, InvalidValue, InvalidSubcommand,
		UnrecognizedSubcommand, MissingRequiredArgument, MissingSubcommand,
		TooManyValues, TooFewValues, WrongNumberOfValues, UnknownArgument,
		InvalidUtf8, Io, Format,
	}
	for _, k := range failures {
		assert.False(t, k.IsDisplay(), k.String())
		assert.Equal(t, 2, k.ExitCode(), k.String())
	}
}

// TestKind_String checks that every declared kind has a label.
func TestKind_String(t *testing.T) {
	t.Parallel()

	for k := Unknown; k <= Format; k++ {
		assert.NotEmpty(t, k.String())
		assert.NotEqual(t, "unrecognized error kind", k.String())
	}
}
