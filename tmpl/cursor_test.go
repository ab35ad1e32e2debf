package tmpl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorAdvanceLineBookkeeping(t *testing.T) {
	t.Run("LF breaks", func(t *testing.T) {
		c := NewCursor("ab\ncd")
		c.Advance(3)
		require.Equal(t, Position{Offset: 3, Line: 2, Column: 1}, c.Snapshot())
	})

	t.Run("CRLF counts as one break", func(t *testing.T) {
		c := NewCursor("ab\r\ncd")
		c.Advance(4)
		require.Equal(t, Position{Offset: 4, Line: 2, Column: 1}, c.Snapshot())
	})

	t.Run("lone CR breaks too", func(t *testing.T) {
		c := NewCursor("ab\rcd")
		c.Advance(3)
		require.Equal(t, Position{Offset: 3, Line: 2, Column: 1}, c.Snapshot())
	})

	t.Run("codepoint columns, not bytes", func(t *testing.T) {
		c := NewCursor("héllo")
		c.Advance(2)
		require.Equal(t, Position{Offset: 2, Line: 1, Column: 3}, c.Snapshot())
	})
}

func TestCursorPeekAtAndStartsWith(t *testing.T) {
	c := NewCursor("hello")
	r, ok := c.PeekAt(0)
	require.True(t, ok)
	require.Equal(t, 'h', r)

	_, ok = c.PeekAt(10)
	require.False(t, ok)

	require.True(t, c.StartsWith("hel"))
	require.False(t, c.StartsWith("bye"))
	require.True(t, c.StartsWithFold("HEL"))
}

func TestCursorSkipWhitespace(t *testing.T) {
	c := NewCursor("  \t\nabc")
	n := c.SkipWhitespace()
	require.Equal(t, 4, n)
	require.True(t, c.StartsWith("abc"))
}

func TestCursorSelectionRoundTrip(t *testing.T) {
	src := "hello world"
	c := NewCursor(src)
	start := c.Snapshot()
	c.Advance(5)
	loc := c.Selection(start)
	require.Equal(t, "hello", loc.Source)
	require.Equal(t, src[loc.Start.Offset:loc.End.Offset], loc.Source)
}

func TestCursorNeverAdvancesPastEOF(t *testing.T) {
	c := NewCursor("ab")
	consumed := c.Advance(100)
	require.Equal(t, "ab", consumed)
	require.True(t, c.EOF())
}
