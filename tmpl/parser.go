package tmpl

import (
	"errors"
	"strings"
)

// parser is the recursive-descent driver over a Cursor, It
// has no lookahead beyond what Cursor.PeekAt/StartsWith provide and never
// backtracks; every branch either consumes forward or reports a diagnostic
// and recovers locally.
type parser struct {
	cur     *Cursor
	opts    Options
	decoder *EntityDecoder
}

// ancestorFrame tracks one currently-open element for end-tag matching and
// namespace/text-mode inheritance.
type ancestorFrame struct {
	tag string
	ns  Namespace
	el  *ElementNode
}

// Parse parses source into a RootNode per the given Options, returning every
// diagnostic raised during the parse joined with errors.Join. The returned
// error is nil only when parsing raised no diagnostics at all.
func Parse(source string, opts Options) (*RootNode, error) {
	root, diags := ParseCollecting(source, opts)
	errs := make([]error, len(diags))
	for i, d := range diags {
		errs[i] = d
	}
	return root, errors.Join(errs...)
}

// ParseCollecting parses source and also returns every diagnostic raised
// during the parse, in the order raised, regardless of whether
// opts.OnError was set (both happen: the sink is called, and the
// diagnostics are collected for the caller's convenience).
func ParseCollecting(source string, opts Options) (*RootNode, []Diagnostic) {
	opts = opts.withDefaults()

	var diags []Diagnostic
	userSink := opts.OnError
	opts.OnError = func(d Diagnostic) {
		diags = append(diags, d)
		userSink(d)
	}

	p := &parser{
		cur:     NewCursor(source),
		opts:    opts,
		decoder: NewEntityDecoder(opts.NamedCharacterReferences),
	}

	start := p.cur.Snapshot()
	children := p.parseChildren(TextModeData, NamespaceHTML, nil)
	end := p.cur.Snapshot()

	root := &RootNode{
		Location: Location{Start: start, End: end, Source: source},
		Children: children,
	}
	return root, diags
}

func (p *parser) error(code Code, loc Location) {
	p.opts.OnError(Diagnostic{Code: code, Loc: loc})
}

func (p *parser) pointLoc(at Position) Location {
	return Location{Start: at, End: at}
}

// ---- children ----

func (p *parser) parseChildren(mode TextMode, ns Namespace, ancestors []ancestorFrame) []Node {
	var children []Node

	for {
		if p.cur.EOF() {
			return children
		}
		if mode != TextModeCDATA && p.isEnd(mode, ancestors) {
			return children
		}
		if mode == TextModeCDATA && p.cur.StartsWith("]]>") {
			return children
		}

		if (mode == TextModeData || mode == TextModeRCDATA) && p.cur.StartsWith(p.opts.Delimiters[0]) {
			if node, text := p.parseInterpolation(mode); node != nil {
				children = append(children, node)
			} else if text != nil {
				children = p.pushText(children, text)
			}
			continue
		}

		if mode == TextModeData && p.cur.StartsWith("<") {
			children = p.parseMarkup(ns, ancestors, children)
			continue
		}

		text := p.parseText(mode)
		children = p.pushText(children, text)
	}
}

// parseMarkup handles every "<"-prefixed construct reachable from DATA mode
// ( step 2) and returns the (possibly extended) children slice.
func (p *parser) parseMarkup(ns Namespace, ancestors []ancestorFrame, children []Node) []Node {
	start := p.cur.Snapshot()

	switch {
	case p.cur.StartsWith("<!--"):
		children = append(children, p.parseComment())
		return children

	case p.cur.StartsWithFold("<!DOCTYPE"):
		p.cur.Advance(len("<!DOCTYPE"))
		children = append(children, p.parseBogusComment(start))
		return children

	case p.cur.StartsWith("<![CDATA["):
		if ns != NamespaceHTML {
			p.cur.Advance(len("<![CDATA["))
			nodes := p.parseCDATABody(start)
			for _, n := range nodes {
				if t, ok := n.(*TextNode); ok {
					children = p.pushText(children, t)
				} else {
					children = append(children, n)
				}
			}
			return children
		}
		p.error(CDATAInHTMLContent, p.pointLoc(start))
		p.cur.Advance(len("<![CDATA["))
		children = append(children, p.parseBogusComment(start))
		return children

	case p.cur.StartsWith("</"):
		return p.parseEndTagInText(start, ancestors, children)

	case p.cur.StartsWith("<?"):
		p.error(UnexpectedQuestionMarkInsteadOfTagName, p.pointLoc(start))
		p.cur.Advance(1) // consume just '<'; '?' becomes part of the bogus comment content
		children = append(children, p.parseBogusComment(start))
		return children

	case p.cur.StartsWith("<!"):
		p.error(IncorrectlyOpenedComment, p.pointLoc(start))
		p.cur.Advance(2)
		children = append(children, p.parseBogusComment(start))
		return children

	default:
		if r, ok := p.cur.PeekAt(1); ok && isASCIILetter(r) {
			el := p.parseElement(ns, ancestors, start)
			children = append(children, el)
			return children
		}
		// Invalid first character of tag name: the '<' is not actually a
		// tag start; fall back to plain text so forward progress is made.
		p.error(InvalidFirstCharacterOfTagName, p.pointLoc(start))
		text := p.parseText(TextModeData)
		children = p.pushText(children, text)
		return children
	}
}

// parseEndTagInText handles the "</" branch of  step 2 when
// reached from parseChildren's markup dispatch (i.e. isEnd did not already
// stop the loop, so this end tag matches no open ancestor).
func (p *parser) parseEndTagInText(start Position, ancestors []ancestorFrame, children []Node) []Node {
	if _, ok := p.cur.PeekAt(2); !ok {
		p.error(EOFBeforeTagName, p.pointLoc(start))
		p.cur.Advance(2)
		return children
	}
	if r, _ := p.cur.PeekAt(2); r == '>' {
		p.error(MissingEndTagName, p.pointLoc(start))
		p.cur.Advance(3)
		return children
	}
	p.error(XInvalidEndTag, p.pointLoc(start))
	p.parseTag(true, start) // consumes "</" itself; parsed and discarded
	return children
}

// ---- end-tag matching ----

// tagMatchesAt reports whether the cursor, at the given lookahead offset
// (past "</"), begins a case-insensitive match of tag followed by a
// terminator char in [\t\n\f />] (EOF counts as '>').
func (p *parser) tagMatchesAt(offset int, tag string) bool {
	tr := []rune(tag)
	for i, want := range tr {
		r, ok := p.cur.PeekAt(offset + i)
		if !ok || toLowerRune(r) != toLowerRune(want) {
			return false
		}
	}
	term, ok := p.cur.PeekAt(offset + len(tr))
	if !ok {
		return true // EOS treated as '>'
	}
	switch term {
	case '\t', '\n', '\f', ' ', '/', '>':
		return true
	}
	return false
}

// matchEndTag scans ancestors from innermost to outermost looking for one
// whose tag matches the end tag at the cursor (which must start with "</").
// It returns the matched index into ancestors, or -1.
func (p *parser) matchEndTag(ancestors []ancestorFrame) int {
	if !p.cur.StartsWith("</") {
		return -1
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if p.tagMatchesAt(2, ancestors[i].tag) {
			return i
		}
	}
	return -1
}

func (p *parser) isEnd(mode TextMode, ancestors []ancestorFrame) bool {
	if p.cur.EOF() {
		return true
	}
	switch mode {
	case TextModeData:
		return p.matchEndTag(ancestors) >= 0
	case TextModeRCDATA, TextModeRAWTEXT:
		if len(ancestors) == 0 {
			return false
		}
		return p.cur.StartsWith("</") && p.tagMatchesAt(2, ancestors[len(ancestors)-1].tag)
	default:
		return false
	}
}

// ---- text & entities ----

func (p *parser) parseText(mode TextMode) *TextNode {
	start := p.cur.Snapshot()
	remaining := p.cur.Remaining()
	rs := []rune(remaining)

	end := len(rs)
	if idx := indexFrom(rs, 1, '<'); mode != TextModeCDATA && idx >= 0 && idx < end {
		end = idx
	}
	if idx := indexOfString(rs, p.opts.Delimiters[0]); idx >= 0 && idx < end {
		end = idx
	}
	if mode == TextModeCDATA {
		if idx := indexOfString(rs, "]]>"); idx >= 0 && idx < end {
			end = idx
		}
	}
	if end == 0 {
		end = 1 // always make forward progress
	}

	raw := string(rs[:end])
	p.cur.Advance(end)
	loc := p.cur.Selection(start)

	content := raw
	if mode.decodesEntities() {
		content = p.decoder.Decode(raw, mode, func(offset int, code Code) {
			at := advancePosition(start, string([]rune(raw)[:offset]))
			p.error(code, p.pointLoc(at))
		})
	}
	return &TextNode{Location: loc, Content: content}
}

func indexFrom(rs []rune, from int, target rune) int {
	for i := from; i < len(rs); i++ {
		if rs[i] == target {
			return i
		}
	}
	return -1
}

func indexOfString(rs []rune, s string) int {
	if s == "" {
		return -1
	}
	sr := []rune(s)
	for i := 0; i+len(sr) <= len(rs); i++ {
		match := true
		for j, r := range sr {
			if rs[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// pushText implements the adjacent-Text-merging invariant (, §4.4)
// and the ignoreSpaces production rule.
func (p *parser) pushText(children []Node, t *TextNode) []Node {
	if len(children) > 0 {
		if prev, ok := children[len(children)-1].(*TextNode); ok && prev.Location.End.Offset == t.Location.Start.Offset {
			prev.Content += t.Content
			prev.Location.End = t.Location.End
			prev.Location.Source += t.Location.Source
			return children
		}
	}
	if p.opts.IgnoreSpaces != nil && *p.opts.IgnoreSpaces && t.IsEmpty() {
		return children
	}
	return append(children, t)
}

// ---- interpolation ----

func (p *parser) parseInterpolation(mode TextMode) (*InterpolationNode, *TextNode) {
	start := p.cur.Snapshot()
	open, closeDelim := p.opts.Delimiters[0], p.opts.Delimiters[1]

	remaining := []rune(p.cur.Remaining())
	openLen := len([]rune(open))
	closeIdx := indexOfString(remaining[openLen:], closeDelim)

	if closeIdx < 0 {
		p.error(XMissingInterpolationEnd, p.pointLoc(start))
		raw := string(remaining)
		p.cur.Advance(len(remaining))
		loc := p.cur.Selection(start)
		content := raw
		if mode.decodesEntities() {
			content = p.decoder.Decode(raw, mode, func(offset int, code Code) {
				at := advancePosition(start, string([]rune(raw)[:offset]))
				p.error(code, p.pointLoc(at))
			})
		}
		return nil, &TextNode{Location: loc, Content: content}
	}

	innerRaw := string(remaining[openLen : openLen+closeIdx])
	afterOpenPos := advancePosition(start, open)

	trimmedLeft := strings.TrimLeft(innerRaw, whitespaceChars)
	leadWS := innerRaw[:len(innerRaw)-len(trimmedLeft)]
	trimmed := strings.TrimRight(trimmedLeft, whitespaceChars)

	innerStart := advancePosition(afterOpenPos, leadWS)
	innerEnd := advancePosition(innerStart, trimmed)

	totalLen := openLen + closeIdx + len([]rune(closeDelim))
	p.cur.Advance(totalLen)
	outerLoc := p.cur.Selection(start)

	inner := &SimpleExpressionNode{
		Location: Location{Start: innerStart, End: innerEnd, Source: trimmed},
		Content:  trimmed,
		IsStatic: false,
	}
	return &InterpolationNode{Location: outerLoc, Inner: inner}, nil
}

const whitespaceChars = " \t\r\n\f"

// ---- comments & bogus comments ----

func (p *parser) parseComment() *CommentNode {
	start := p.cur.Snapshot()
	p.cur.Advance(4) // "<!--"

	if p.cur.StartsWith(">") {
		p.error(AbruptClosingOfEmptyComment, p.pointLoc(start))
		p.cur.Advance(1)
		return &CommentNode{Location: p.cur.Selection(start), Content: ""}
	}
	if p.cur.StartsWith("->") {
		p.error(AbruptClosingOfEmptyComment, p.pointLoc(start))
		p.cur.Advance(2)
		return &CommentNode{Location: p.cur.Selection(start), Content: ""}
	}

	contentStart := p.cur.Snapshot()
	sawNested := false
	for {
		if p.cur.EOF() {
			p.error(EOFInComment, p.pointLoc(start))
			content := p.cur.Selection(contentStart).Source
			return &CommentNode{Location: p.cur.Selection(start), Content: content}
		}
		if p.cur.StartsWith("-->") {
			content := p.cur.Selection(contentStart).Source
			p.cur.Advance(3)
			return &CommentNode{Location: p.cur.Selection(start), Content: content}
		}
		if p.cur.StartsWith("--!>") {
			p.error(IncorrectlyClosedComment, p.pointLoc(start))
			content := p.cur.Selection(contentStart).Source
			p.cur.Advance(4)
			return &CommentNode{Location: p.cur.Selection(start), Content: content}
		}
		if p.cur.StartsWith("<!--") {
			if !sawNested {
				p.error(NestedComment, p.pointLoc(start))
				sawNested = true
			}
			p.cur.Advance(4)
			continue
		}
		p.cur.Advance(1)
	}
}

// parseBogusComment consumes everything up to (and including) the next '>'
// or EOF. The caller has already advanced past whatever marker (e.g. "<!",
// "<", "<!DOCTYPE") preceded the bogus content.
func (p *parser) parseBogusComment(start Position) *CommentNode {
	contentStart := p.cur.Snapshot()
	for !p.cur.EOF() && !p.cur.StartsWith(">") {
		p.cur.Advance(1)
	}
	content := p.cur.Selection(contentStart).Source
	if !p.cur.EOF() {
		p.cur.Advance(1)
	}
	return &CommentNode{Location: p.cur.Selection(start), Content: content}
}

// parseCDATABody consumes up to "]]>" or EOF and returns zero or one Text
// nodes to splice directly into the parent's children (: "in
// non-HTML namespace -> nested CDATA children").
func (p *parser) parseCDATABody(start Position) []Node {
	contentStart := p.cur.Snapshot()
	for !p.cur.EOF() && !p.cur.StartsWith("]]>") {
		p.cur.Advance(1)
	}
	contentEnd := p.cur.Snapshot()
	contentLoc := p.cur.Selection(contentStart, contentEnd)
	if p.cur.EOF() {
		p.error(EOFInCDATA, p.pointLoc(start))
	} else {
		p.cur.Advance(3)
	}
	if contentLoc.Source == "" {
		return nil
	}
	return []Node{&TextNode{Location: contentLoc, Content: contentLoc.Source}}
}
