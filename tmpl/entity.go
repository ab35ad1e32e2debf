package tmpl

import "strings"

// win1252Remap is the fixed C1-control substitution table for numeric
// character references in range 0x80-0x9F, per the HTML5 spec's handling of
// legacy Windows-1252 code points. Entries absent from this table (the
// "holes" at 0x81, 0x8D, 0x8F, 0x90, 0x9D) are left unmapped.
var win1252Remap = map[rune]rune{
	0x80: 0x20AC,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9E: 0x017E,
	0x9F: 0x0178,
}

// DefaultNamedCharacterReferences is the minimal table this decoder requires as
// the default when Options.NamedCharacterReferences is unset. It carries the
// semicolon-terminated form of each reference and, for every name except
// apos, its legacy no-semicolon form (a historical HTML allowance for this
// particular handful of names), so that decodeNamed's direct table lookup can still match a
// candidate missing its trailing ";" and raise
// MissingSemicolonAfterCharacterReference instead of falling through to
// UnknownNamedCharacterReference.
var DefaultNamedCharacterReferences = map[string]string{
	"gt;":   ">",
	"lt;":   "<",
	"amp;":  "&",
	"apos;": "'",
	"quot;": "\"",
	"gt":    ">",
	"lt":    "<",
	"amp":   "&",
	"quot":  "\"",
}

// EntityDecoder decodes named and numeric character references within text
// data, RAWTEXT and CDATA modes never decode; callers
// simply don't invoke the decoder for those modes.
type EntityDecoder struct {
	table      map[string]string
	maxNameLen int
}

// NewEntityDecoder builds a decoder over the given named-reference table,
// computing maxNameLen once up front.
func NewEntityDecoder(table map[string]string) *EntityDecoder {
	if table == nil {
		table = DefaultNamedCharacterReferences
	}
	maxLen := 0
	for name := range table {
		if l := len([]rune(name)); l > maxLen {
			maxLen = l
		}
	}
	return &EntityDecoder{table: table, maxNameLen: maxLen}
}

// decodeResult carries the decoded string for one reference together with
// the diagnostic (if any) and the number of input runes consumed.
type decodeResult struct {
	text     string
	code     Code
	hasCode  bool
	consumed int
}

// Decode scans s (the already-extracted raw text of one Text/Attribute
// node, mode DATA/RCDATA/ATTRIBUTE_VALUE) and returns the fully decoded
// string. diagAt is called once per diagnostic with the rune offset (within
// s) where the reference began, so the caller can translate it into an
// absolute source Location.
func (d *EntityDecoder) Decode(s string, mode TextMode, diagAt func(offset int, code Code)) string {
	runes := []rune(s)
	var out strings.Builder
	i := 0
	for i < len(runes) {
		if runes[i] != '&' {
			out.WriteRune(runes[i])
			i++
			continue
		}
		res, ok := d.decodeAt(runes, i, mode)
		if !ok {
			out.WriteRune('&')
			i++
			continue
		}
		if res.hasCode && diagAt != nil {
			diagAt(i, res.code)
		}
		out.WriteString(res.text)
		i += res.consumed
	}
	return out.String()
}

// decodeAt attempts to decode a single reference starting at runes[i] == '&'.
// It returns ok=false only when there is nothing at all to special-case
// (i.e. the caller should emit the '&' literally and advance by one); every
// other outcome (including "unknown reference, keep literally") is returned
// as a result with the full consumed span so '&' is not re-examined.
func (d *EntityDecoder) decodeAt(runes []rune, i int, mode TextMode) (decodeResult, bool) {
	if i+1 >= len(runes) {
		return decodeResult{}, false
	}
	next := runes[i+1]
	if next == '#' {
		return d.decodeNumeric(runes, i), true
	}
	if isAlnumLower(next) || isAsciiLetter(next) || isAsciiDigit(next) {
		if r, ok := d.decodeNamed(runes, i, mode); ok {
			return r, true
		}
	}
	return decodeResult{}, false
}

func isAlnumLower(r rune) bool { return r >= '0' && r <= '9' }
func isAsciiLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
func isAsciiDigit(r rune) bool { return r >= '0' && r <= '9' }

// decodeNamed implements the longest-match named-reference resolution rule.
func (d *EntityDecoder) decodeNamed(runes []rune, i int, mode TextMode) (decodeResult, bool) {
	avail := len(runes) - (i + 1)
	maxLen := d.maxNameLen
	if avail < maxLen {
		maxLen = avail
	}
	for l := maxLen; l >= 1; l-- {
		cand := string(runes[i+1 : i+1+l])
		repl, ok := d.table[cand]
		if !ok {
			continue
		}
		hasSemi := strings.HasSuffix(cand, ";")
		consumed := 1 + l // '&' + candidate

		if !hasSemi && mode == TextModeAttributeValue {
			var after rune
			if i+1+l < len(runes) {
				after = runes[i+1+l]
			}
			if after == '=' || isAsciiLower(after) || isAsciiDigit(after) {
				// HTML legacy attribute rule: keep raw "&name" literally.
				return decodeResult{text: "&" + cand, consumed: consumed}, true
			}
		}

		if !hasSemi {
			return decodeResult{
				text: repl, code: MissingSemicolonAfterCharacterReference, hasCode: true,
				consumed: consumed,
			}, true
		}
		return decodeResult{text: repl, consumed: consumed}, true
	}
	// No hit at all: keep '&' + the longest candidate literally, using the
	// single next run of name characters as the candidate span.
	end := i + 1
	for end < len(runes) && isNameChar(runes[end]) {
		end++
	}
	if end == i+1 {
		end = i + 2
		if end > len(runes) {
			end = len(runes)
		}
	}
	return decodeResult{
		text: string(runes[i:end]), code: UnknownNamedCharacterReference, hasCode: true,
		consumed: end - i,
	}, true
}

func isAsciiLower(r rune) bool { return r >= 'a' && r <= 'z' }

func isNameChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// decodeNumeric implements &#digits; and &#xhex; resolution.
func (d *EntityDecoder) decodeNumeric(runes []rune, i int) decodeResult {
	pos := i + 2 // past "&#"
	hex := false
	if pos < len(runes) && (runes[pos] == 'x' || runes[pos] == 'X') {
		hex = true
		pos++
	}
	digitsStart := pos
	for pos < len(runes) && isDigitFor(runes[pos], hex) {
		pos++
	}
	if pos == digitsStart {
		// No digits: not a numeric reference at all, keep the literal prefix.
		consumed := digitsStart - i
		return decodeResult{
			text: string(runes[i:digitsStart]), code: AbsenceOfDigitsInNumericCharacterReference, hasCode: true,
			consumed: consumed,
		}
	}
	digits := string(runes[digitsStart:pos])
	cp := parseCodepoint(digits, hex)

	hasSemi := pos < len(runes) && runes[pos] == ';'
	consumed := pos - i
	if hasSemi {
		consumed++
	}

	repl, code, hasCode := resolveCodepoint(cp)
	if !hasCode && !hasSemi {
		code, hasCode = MissingSemicolonAfterCharacterReference, true
	} else if hasCode && !hasSemi {
		// The missing-semicolon condition is secondary: codepoint-resolution
		// diagnostics (e.g. NULL_CHARACTER_REFERENCE) take priority and are
		// not overridden here.
	}
	return decodeResult{text: repl, code: code, hasCode: hasCode, consumed: consumed}
}

func isDigitFor(r rune, hex bool) bool {
	if hex {
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	}
	return r >= '0' && r <= '9'
}

func parseCodepoint(digits string, hex bool) int64 {
	var n int64
	base := int64(10)
	if hex {
		base = 16
	}
	for _, r := range digits {
		var v int64
		switch {
		case r >= '0' && r <= '9':
			v = int64(r - '0')
		case r >= 'a' && r <= 'f':
			v = int64(r-'a') + 10
		case r >= 'A' && r <= 'F':
			v = int64(r-'A') + 10
		}
		n = n*base + v
		if n > 0x7FFFFFFF {
			n = 0x7FFFFFFF // clamp; still well outside the Unicode range
		}
	}
	return n
}

// resolveCodepoint applies the ordered substitution rules from 
func resolveCodepoint(cp int64) (repl string, code Code, hasCode bool) {
	switch {
	case cp == 0:
		return "�", NullCharacterReference, true
	case cp > 0x10FFFF:
		return "�", CharacterReferenceOutsideUnicodeRange, true
	case cp >= 0xD800 && cp <= 0xDFFF:
		return "�", SurrogateCharacterReference, true
	case (cp >= 0xFDD0 && cp <= 0xFDEF) || (cp&0xFFFE == 0xFFFE):
		return string(rune(cp)), NonCharacterCharacterReference, true
	case isC0C1Control(cp):
		if mapped, ok := win1252Remap[rune(cp)]; ok {
			return string(mapped), ControlCharacterReference, true
		}
		return string(rune(cp)), ControlCharacterReference, true
	default:
		return string(rune(cp)), 0, false
	}
}

func isC0C1Control(cp int64) bool {
	switch {
	case cp >= 0x01 && cp <= 0x08:
		return true
	case cp == 0x0B:
		return true
	case cp >= 0x0D && cp <= 0x1F:
		return true
	case cp >= 0x7F && cp <= 0x9F:
		return true
	}
	return false
}
