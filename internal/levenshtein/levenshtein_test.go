package levenshtein

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

//
// Tests -----------------------------------------------------------------------------------
//

func TestDistance(t *testing.T) {
	t.Parallel()

	tt := []struct {
		a, b string
		exp  int
	}{
		{a: "", b: "", exp: 0},
		{a: "", b: "abc", exp: 3},
		{a: "abc", b: "", exp: 3},
		{a: "kitten", b: "sitting", exp: 3},
		{a: "flaw", b: "lawn", exp: 2},
		{a: "install", b: "install", exp: 0},
		{a: "verbos", b: "verbose", exp: 1},
	}

	for _, tc := range tt {
		assert.Equal(t, tc.exp, Distance(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
	}
}

func TestSuggestions(t *testing.T) {
	t.Parallel()

	choices := []string{"install", "uninstall", "update", "upgrade"}

	got := Suggestions("instal", choices, 2)
	assert.Equal(t, []string{"install"}, got)

	got = Suggestions("upd", choices, 0)
	assert.NotContains(t, got, "install")

	assert.Nil(t, Suggestions("anything", nil, 1))
}

func TestClosest(t *testing.T) {
	t.Parallel()

	choice, dist := Closest("instal", []string{"install", "update"})
	assert.Equal(t, "install", choice)
	assert.Equal(t, 1, dist)

	choice, _ = Closest("x", nil)
	assert.Equal(t, "", choice)
}
