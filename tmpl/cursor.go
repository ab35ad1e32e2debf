package tmpl

// Cursor is a mutable position over an immutable source buffer. It owns the
// remaining-source view and the current Position, and never yields a
// negative advance. Line bookkeeping treats CRLF as a single break.
type Cursor struct {
	source  string // the full, original source
	runes   []rune // codepoint view of the full source, for O(1) PeekAt/StartsWith
	pos     Position
	runePos int // index into runes corresponding to pos.Offset
}

// NewCursor creates a Cursor positioned at the start of source.
func NewCursor(source string) *Cursor {
	return &Cursor{
		source: source,
		runes:  []rune(source),
		pos:    Position{Offset: 0, Line: 1, Column: 1},
	}
}

// Source returns the full original source buffer.
func (c *Cursor) Source() string { return c.source }

// Snapshot returns the current Position.
func (c *Cursor) Snapshot() Position { return c.pos }

// EOF reports whether the cursor has consumed the entire source.
func (c *Cursor) EOF() bool { return c.runePos >= len(c.runes) }

// Remaining returns the unconsumed tail of the source as a string.
func (c *Cursor) Remaining() string { return string(c.runes[c.runePos:]) }

// PeekAt returns the codepoint i positions ahead of the cursor (0 = next
// unconsumed rune) and whether it exists.
func (c *Cursor) PeekAt(i int) (rune, bool) {
	idx := c.runePos + i
	if idx < 0 || idx >= len(c.runes) {
		return 0, false
	}
	return c.runes[idx], true
}

// StartsWith reports whether the remaining source begins with s.
func (c *Cursor) StartsWith(s string) bool {
	sr := []rune(s)
	if c.runePos+len(sr) > len(c.runes) {
		return false
	}
	for i, r := range sr {
		if c.runes[c.runePos+i] != r {
			return false
		}
	}
	return true
}

// StartsWithFold is like StartsWith but performs a simple ASCII
// case-insensitive comparison, used for tag-name matching.
func (c *Cursor) StartsWithFold(s string) bool {
	sr := []rune(s)
	if c.runePos+len(sr) > len(c.runes) {
		return false
	}
	for i, r := range sr {
		if toLowerRune(c.runes[c.runePos+i]) != toLowerRune(r) {
			return false
		}
	}
	return true
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// Advance consumes n codepoints from the head of the remaining source,
// updating offset/line/column bookkeeping. n must be >= 0; a request to
// advance past EOF is clamped to the available length.
func (c *Cursor) Advance(n int) string {
	if n <= 0 {
		return ""
	}
	end := c.runePos + n
	if end > len(c.runes) {
		end = len(c.runes)
	}
	s := string(c.runes[c.runePos:end])
	c.pos = advancePosition(c.pos, s)
	c.runePos = end
	return s
}

// SkipWhitespace consumes a run of HTML whitespace (\t \r \n \f space) and
// returns the number of codepoints skipped.
func (c *Cursor) SkipWhitespace() int {
	n := 0
	for {
		r, ok := c.PeekAt(0)
		if !ok || !isHTMLSpace(r) {
			break
		}
		c.Advance(1)
		n++
	}
	return n
}

func isHTMLSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

// Selection returns the Location spanning from start to the cursor's
// current position. If end is provided it is used instead of the current
// position (useful when the caller has already advanced past the node but
// wants to report a location ending earlier).
func (c *Cursor) Selection(start Position, end ...Position) Location {
	e := c.pos
	if len(end) > 0 {
		e = end[0]
	}
	return Location{
		Start:  start,
		End:    e,
		Source: c.source[byteOffset(c.runes, start.Offset):byteOffset(c.runes, e.Offset)],
	}
}

// byteOffset converts a rune index into a byte offset of the original
// source. Since Cursor always slices `runes` consistently with `source`,
// this is exact (no partial-rune surrogate issues).
func byteOffset(runes []rune, runeIdx int) int {
	if runeIdx <= 0 {
		return 0
	}
	if runeIdx >= len(runes) {
		return len(string(runes))
	}
	return len(string(runes[:runeIdx]))
}
