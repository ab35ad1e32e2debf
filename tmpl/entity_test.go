package tmpl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeDefault(t *testing.T, s string, mode TextMode) (string, []Code) {
	t.Helper()
	d := NewEntityDecoder(DefaultNamedCharacterReferences)
	var codes []Code
	out := d.Decode(s, mode, func(_ int, c Code) {
		codes = append(codes, c)
	})
	return out, codes
}

func TestEntityDecodeNamedReferences(t *testing.T) {
	t.Run("amp resolves first, leaving a literal lt", func(t *testing.T) {
		// scenario: "decoding &amp;lt;&gt; yields &lt;>"
		out, codes := decodeDefault(t, "&amp;lt;&gt;", TextModeData)
		require.Equal(t, "&lt;>", out)
		require.Empty(t, codes)
	})

	t.Run("amp with trailing semicolon reports no diagnostic", func(t *testing.T) {
		out, codes := decodeDefault(t, "a &amp; b", TextModeData)
		require.Equal(t, "a & b", out)
		require.Empty(t, codes)
	})

	t.Run("amp without semicolon reports missing-semicolon", func(t *testing.T) {
		out, codes := decodeDefault(t, "a &amp b", TextModeData)
		require.Equal(t, "a & b", out)
		require.Equal(t, []Code{MissingSemicolonAfterCharacterReference}, codes)
	})

	t.Run("unknown named reference kept literally", func(t *testing.T) {
		out, codes := decodeDefault(t, "&notareference;", TextModeData)
		require.Equal(t, "&notareference;", out)
		require.Equal(t, []Code{UnknownNamedCharacterReference}, codes)
	})

	t.Run("legacy attribute rule keeps raw name before '='", func(t *testing.T) {
		table := map[string]string{"not": "¬"}
		d := NewEntityDecoder(table)
		var codes []Code
		out := d.Decode("&not=foo", TextModeAttributeValue, func(_ int, c Code) { codes = append(codes, c) })
		require.Equal(t, "&not=foo", out)
		require.Empty(t, codes)
	})
}

func TestEntityDecodeNumericReferences(t *testing.T) {
	replacementChar := string(rune(0xFFFD))

	t.Run("null reference substitutes replacement char", func(t *testing.T) {
		out, codes := decodeDefault(t, "&#0;", TextModeData)
		require.Equal(t, replacementChar, out)
		require.Equal(t, []Code{NullCharacterReference}, codes)
	})

	t.Run("outside unicode range", func(t *testing.T) {
		out, codes := decodeDefault(t, "&#x110000;", TextModeData)
		require.Equal(t, replacementChar, out)
		require.Equal(t, []Code{CharacterReferenceOutsideUnicodeRange}, codes)
	})

	t.Run("surrogate reference", func(t *testing.T) {
		out, codes := decodeDefault(t, "&#xD800;", TextModeData)
		require.Equal(t, replacementChar, out)
		require.Equal(t, []Code{SurrogateCharacterReference}, codes)
	})

	t.Run("windows-1252 remap for control range", func(t *testing.T) {
		out, codes := decodeDefault(t, "&#128;", TextModeData) // 0x80 -> EURO SIGN
		require.Equal(t, "€", out)
		require.Equal(t, []Code{ControlCharacterReference}, codes)
	})

	t.Run("control range without remap entry keeps codepoint", func(t *testing.T) {
		out, codes := decodeDefault(t, "&#1;", TextModeData) // 0x01, no win1252 entry
		require.Equal(t, string(rune(1)), out)
		require.Equal(t, []Code{ControlCharacterReference}, codes)
	})

	t.Run("absence of digits", func(t *testing.T) {
		out, codes := decodeDefault(t, "&#;", TextModeData)
		require.Equal(t, "&#;", out)
		require.Equal(t, []Code{AbsenceOfDigitsInNumericCharacterReference}, codes)
	})

	t.Run("missing semicolon on an otherwise fine numeric ref", func(t *testing.T) {
		out, codes := decodeDefault(t, "&#65", TextModeData)
		require.Equal(t, "A", out)
		require.Equal(t, []Code{MissingSemicolonAfterCharacterReference}, codes)
	})

	t.Run("hex form", func(t *testing.T) {
		out, codes := decodeDefault(t, "&#x41;", TextModeData)
		require.Equal(t, "A", out)
		require.Empty(t, codes)
	})
}
