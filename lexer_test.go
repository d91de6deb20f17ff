package clap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// Tests -----------------------------------------------------------------------------------
//

// TestClassify checks the token classification table against every shape of
// raw argv element.
func TestClassify(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name     string
		raw      string
		allowNeg bool
		expKind  tokenKind
		expName  string
		expValue string
		expHasEq bool
	}{
		{name: "escape", raw: "--", expKind: tokEscape},
		{name: "long", raw: "--verbose", expKind: tokLong, expName: "verbose"},
		{name: "long with value", raw: "--out=file.txt", expKind: tokLong, expName: "out", expValue: "file.txt", expHasEq: true},
		{name: "long with empty value", raw: "--out=", expKind: tokLong, expName: "out", expValue: "", expHasEq: true},
		{name: "long value keeps later equals", raw: "--env=K=V", expKind: tokLong, expName: "env", expValue: "K=V", expHasEq: true},
		{name: "short cluster", raw: "-abc", expKind: tokShort, expName: "abc"},
		{name: "short single", raw: "-v", expKind: tokShort, expName: "v"},
		{name: "lone dash is a value", raw: "-", expKind: tokValue},
		{name: "plain value", raw: "file.txt", expKind: tokValue},
		{name: "negative number as short when not allowed", raw: "-1", expKind: tokShort, expName: "1"},
		{name: "negative number as value when allowed", raw: "-1", allowNeg: true, expKind: tokValue},
		{name: "negative float as value when allowed", raw: "-1.5", allowNeg: true, expKind: tokValue},
		{name: "negative-looking word stays short", raw: "-x2", allowNeg: true, expKind: tokShort, expName: "x2"},
	}

	for _, tc := range tt {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tok := classify(tc.raw, tc.allowNeg)

			assert.Equal(t, tc.expKind, tok.kind)
			assert.Equal(t, tc.raw, tok.raw)
			assert.Equal(t, tc.expName, tok.name)
			assert.Equal(t, tc.expValue, tok.value)
			assert.Equal(t, tc.expHasEq, tok.hasEq)
		})
	}
}

// TestTokenStream exercises the cursor operations the parser relies on:
// peeking, re-injection, and bulk capture of the remainder.
func TestTokenStream(t *testing.T) {
	t.Parallel()

	s := newTokenStream([]string{"a", "b", "c"})

	peeked, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, "a", peeked)
	assert.Equal(t, 3, s.Remaining())

	next, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, "a", next)

	s.PushFront("injected")
	next, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, "injected", next)

	rest := s.Rest()
	assert.Equal(t, []string{"b", "c"}, rest)
	assert.True(t, s.Done())

	_, ok = s.Next()
	assert.False(t, ok)
}

// TestFileStem checks the multicall applet-name derivation from argv[0].
func TestFileStem(t *testing.T) {
	t.Parallel()

	tt := []struct {
		path string
		exp  string
	}{
		{path: "/usr/bin/busybox", exp: "busybox"},
		{path: "busybox", exp: "busybox"},
		{path: "C:\\tools\\applet.exe", exp: "applet"},
		{path: "./hostname", exp: "hostname"},
		{path: ".hidden", exp: ".hidden"},
	}

	for _, tc := range tt {
		assert.Equal(t, tc.exp, fileStem(tc.path), "path %q", tc.path)
	}
}
