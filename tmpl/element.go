package tmpl

import (
	"strings"

	"github.com/dpotapov/tmplreactive/tmpl/internal/tagset"
)

// parseElement parses a start tag, its attributes, and (unless void or
// self-closing) its children and matching end tag. The cursor must be
// positioned at the "<" that starts the tag; start is that position.
func (p *parser) parseElement(parentNS Namespace, ancestors []ancestorFrame, start Position) *ElementNode {
	tag, props, selfClosing := p.parseTag(false, start)

	var parentEl *ElementNode
	if len(ancestors) > 0 {
		parentEl = ancestors[len(ancestors)-1].el
	}
	ns := p.opts.GetNamespace(tag, parentEl)

	el := &ElementNode{
		Tag:           tag,
		TagType:       tagType(tagset.ClassifyTag(tag)),
		Namespace:     ns,
		Props:         props,
		IsSelfClosing: selfClosing,
	}

	isVoid := p.opts.IsVoidTag(strings.ToLower(tag))
	if selfClosing || isVoid {
		el.Location = p.cur.Selection(start)
		return el
	}

	mode := p.opts.GetTextMode(tag, ns)
	newAncestors := append(append([]ancestorFrame{}, ancestors...), ancestorFrame{tag: tag, ns: ns, el: el})
	el.Children = p.parseChildren(mode, ns, newAncestors)

	switch {
	case p.cur.EOF():
		if strings.EqualFold(tag, "script") && childrenStartWithCommentOpen(el.Children) {
			p.error(EOFInScriptHTMLCommentLikeText, p.cur.Selection(start))
		} else {
			p.error(XMissingEndTag, p.cur.Selection(start))
		}
	case p.cur.StartsWith("</"):
		idx := p.matchEndTag(ancestors) // parent-level ancestors only: does THIS end tag belong to us or an outer ancestor?
		matchesSelf := p.tagMatchesAt(2, tag)
		if matchesSelf {
			p.consumeEndTag(tag)
		} else if idx >= 0 {
			// An outer ancestor's end tag: this element closes implicitly
			// without consuming it; the enclosing parseElement will match it.
			p.error(XMissingEndTag, p.cur.Selection(start))
		} else {
			p.error(XMissingEndTag, p.cur.Selection(start))
		}
	}

	el.Location = p.cur.Selection(start)
	return el
}

// childrenStartWithCommentOpen reports whether el's first child is a Text
// node whose content begins with "<!--". A script element is RAWTEXT, so
// "<!--" appearing there is never parsed as a CommentNode; it stays
// literal text, which is exactly the "script-data-escaped" shape that
// triggers the comment-like-text EOF diagnostic.
func childrenStartWithCommentOpen(children []Node) bool {
	if len(children) == 0 {
		return false
	}
	t, ok := children[0].(*TextNode)
	return ok && strings.HasPrefix(t.Content, "<!--")
}

func tagType(t int) TagType {
	switch t {
	case tagset.TagSlot:
		return TagSlot
	case tagset.TagTemplate:
		return TagTemplate
	case tagset.TagComponent:
		return TagComponent
	default:
		return TagElement
	}
}

// consumeEndTag consumes "</tag" plus whatever trailing junk precedes '>',
// emitting EndTagWithAttributes / EndTagWithTrailingSolidus as needed.
func (p *parser) consumeEndTag(tag string) {
	etStart := p.cur.Snapshot()
	p.cur.Advance(2) // "</"
	p.cur.Advance(len([]rune(tag)))
	p.cur.SkipWhitespace()

	sawAttr := false
	for {
		if p.cur.EOF() {
			p.error(EOFInTag, p.pointLoc(etStart))
			return
		}
		if p.cur.StartsWith("/>") {
			p.error(EndTagWithTrailingSolidus, p.pointLoc(p.cur.Snapshot()))
			p.cur.Advance(2)
			return
		}
		if p.cur.StartsWith(">") {
			p.cur.Advance(1)
			return
		}
		if !sawAttr {
			p.error(EndTagWithAttributes, p.pointLoc(p.cur.Snapshot()))
			sawAttr = true
		}
		// Discard whatever attribute-shaped content follows.
		p.parseAttribute(nil)
		p.cur.SkipWhitespace()
	}
}

// parseTag implements  parse_tag for both start and end tags
// (isEndTag selects which). It returns the tag name, the parsed
// props (nil for end tags, which never carry attributes in the AST), and
// whether the tag was self-closing ("/>"). The cursor must be at "<" (start
// tags) or "</" (end tags, only used internally by parseEndTagInText via
// the discard path, which ignores the returned props).
func (p *parser) parseTag(isEndTag bool, start Position) (tag string, props []Node, selfClosing bool) {
	if isEndTag {
		p.cur.Advance(2) // "</"
	} else {
		p.cur.Advance(1) // "<"
	}

	nameStart := p.cur.Snapshot()
	for {
		r, ok := p.cur.PeekAt(0)
		if !ok || isHTMLSpace(r) || r == '>' || r == '/' {
			break
		}
		p.cur.Advance(1)
	}
	// Tag case is preserved here: the tagType rule keys off
	// uppercase letters in the raw tag text ("contains any uppercase or
	// '-' -> Component"), so lowercasing at this point would destroy that
	// signal. End-tag matching (tagMatchesAt) and the default namespace
	// hooks already do their own case-insensitive comparison.
	tag = p.cur.Selection(nameStart).Source

	var lastAttrName string
	seen := map[string]bool{}

	for {
		p.cur.SkipWhitespace()
		if p.cur.EOF() {
			p.error(EOFInTag, p.pointLoc(p.cur.Snapshot()))
			return tag, props, selfClosing
		}
		if p.cur.StartsWith("/>") {
			p.cur.Advance(2)
			selfClosing = true
			return tag, props, selfClosing
		}
		if p.cur.StartsWith(">") {
			p.cur.Advance(1)
			return tag, props, selfClosing
		}
		if p.cur.StartsWith("/") {
			p.error(UnexpectedSolidusInTag, p.pointLoc(p.cur.Snapshot()))
			p.cur.Advance(1)
			continue
		}

		if lastAttrName != "" {
			// lastAttrName is set right after an attribute finished parsing,
			// below; if we reach here it means the loop continued without
			// whitespace before the next attribute started.
		}

		beforeAttr := p.cur.Snapshot()
		node, name := p.parseAttribute(seen)
		if isEndTag {
			continue // name/value collected only to advance the cursor; discarded
		}
		if node != nil {
			props = append(props, node)
		}
		_ = beforeAttr
		lastAttrName = name
	}
}

// parseAttribute parses one "name[=value]" pair starting at the cursor
// (which must not be whitespace, '>' or '/'). seen tracks attribute names
// already collected on this tag for duplicate detection; pass nil to skip
// duplicate tracking (used when discarding an end tag's bogus attributes).
func (p *parser) parseAttribute(seen map[string]bool) (Node, string) {
	nameStart := p.cur.Snapshot()

	leadEquals := false
	if r, ok := p.cur.PeekAt(0); ok && r == '=' {
		leadEquals = true
	}

	for {
		r, ok := p.cur.PeekAt(0)
		if !ok || isHTMLSpace(r) || r == '>' || r == '/' || (r == '=' && p.cur.Snapshot() != nameStart) {
			break
		}
		if r == '"' || r == '\'' || r == '<' {
			p.error(UnexpectedCharacterInAttributeName, p.pointLoc(p.cur.Snapshot()))
		}
		p.cur.Advance(1)
	}
	name := p.cur.Selection(nameStart).Source
	nameLoc := p.cur.Selection(nameStart)

	if leadEquals {
		p.error(UnexpectedEqualsSignBeforeAttributeName, p.pointLoc(nameStart))
	}
	if seen != nil {
		if seen[strings.ToLower(name)] {
			p.error(DuplicateAttribute, nameLoc)
		}
		seen[strings.ToLower(name)] = true
	}

	wsBeforeEq := p.cur.SkipWhitespace()
	hasValue := p.cur.StartsWith("=")
	if !hasValue {
		if wsBeforeEq > 0 {
			// whitespace consumed but no '=' followed; nothing to undo since
			// plain whitespace before the next attribute is always valid.
		}
		return p.buildProp(name, nameLoc, nil, seen == nil), name
	}
	p.cur.Advance(1) // '='
	p.cur.SkipWhitespace()

	if p.cur.StartsWith(">") {
		p.error(MissingAttributeValue, p.pointLoc(p.cur.Snapshot()))
		return p.buildProp(name, nameLoc, &TextNode{Location: p.pointLoc(p.cur.Snapshot()), Content: ""}, seen == nil), name
	}

	value := p.parseAttributeValue()
	return p.buildProp(name, nameLoc, value, seen == nil), name
}

// parseAttributeValue implements  parse_attribute_value.
func (p *parser) parseAttributeValue() *TextNode {
	if r, ok := p.cur.PeekAt(0); ok && (r == '"' || r == '\'') {
		quote := r
		p.cur.Advance(1)
		contentStart := p.cur.Snapshot()
		for {
			cr, ok := p.cur.PeekAt(0)
			if !ok || cr == quote {
				break
			}
			p.cur.Advance(1)
		}
		contentEnd := p.cur.Snapshot()
		loc := p.cur.Selection(contentStart, contentEnd)
		if _, ok := p.cur.PeekAt(0); ok {
			p.cur.Advance(1) // closing quote
		}
		content := p.decoder.Decode(loc.Source, TextModeAttributeValue, func(offset int, code Code) {
			at := advancePosition(loc.Start, string([]rune(loc.Source)[:offset]))
			p.error(code, p.pointLoc(at))
		})
		return &TextNode{Location: loc, Content: content}
	}

	contentStart := p.cur.Snapshot()
	for {
		r, ok := p.cur.PeekAt(0)
		if !ok || isHTMLSpace(r) || r == '>' {
			break
		}
		if r == '"' || r == '\'' || r == '<' || r == '=' || r == '`' {
			p.error(UnexpectedCharacterInUnquotedAttributeValue, p.pointLoc(p.cur.Snapshot()))
		}
		p.cur.Advance(1)
	}
	loc := p.cur.Selection(contentStart)
	content := p.decoder.Decode(loc.Source, TextModeAttributeValue, func(offset int, code Code) {
		at := advancePosition(loc.Start, string([]rune(loc.Source)[:offset]))
		p.error(code, p.pointLoc(at))
	})
	return &TextNode{Location: loc, Content: content}
}

// buildProp turns a parsed name/value pair into an AttributeNode or a
// DirectiveNode, directive recognition. When quiet is
// true (the name set wasn't tracked, i.e. this is a discarded end-tag
// attribute) diagnostics about malformed directive syntax are still
// reported, since those reflect genuine template-source issues.
func (p *parser) buildProp(name string, nameLoc Location, value *TextNode, quiet bool) Node {
	if !isDirectiveName(name) {
		return &AttributeNode{Location: p.spanAttr(nameLoc, value), Name: name, Value: value}
	}

	parsed := parseDirectiveName(name)
	if parsed.name == "" {
		// Malformed directive-looking name (e.g. bare "v-" or bare ":"); fall
		// back to treating it as a plain attribute rather than dropping it.
		return &AttributeNode{Location: p.spanAttr(nameLoc, value), Name: name, Value: value}
	}

	d := &DirectiveNode{
		Location: p.spanAttr(nameLoc, value),
		Name:     strings.ToLower(parsed.name),
	}

	if parsed.hasArg {
		runes := []rune(name)
		argRawStart := advancePosition(nameLoc.Start, string(runes[:parsed.argStart]))
		if strings.HasPrefix(parsed.argRaw, "[") {
			inner := parsed.argRaw[1:]
			closed := strings.HasSuffix(inner, "]")
			if closed {
				inner = inner[:len(inner)-1]
			} else {
				p.error(XMissingDynamicDirectiveArgumentEnd, nameLoc)
			}
			innerStart := advancePosition(argRawStart, "[")
			innerEnd := advancePosition(innerStart, inner)
			d.Arg = &SimpleExpressionNode{
				Location: Location{Start: innerStart, End: innerEnd, Source: inner},
				Content:  inner,
				IsStatic: false,
			}
		} else {
			argEnd := advancePosition(argRawStart, parsed.argRaw)
			d.Arg = &SimpleExpressionNode{
				Location: Location{Start: argRawStart, End: argEnd, Source: parsed.argRaw},
				Content:  parsed.argRaw,
				IsStatic: true,
			}
		}
	}

	d.Modifiers = splitModifiers(parsed.modsRaw)

	if value != nil {
		d.Exp = &SimpleExpressionNode{Location: value.Location, Content: value.Content, IsStatic: false}
	}
	return d
}

func (p *parser) spanAttr(nameLoc Location, value *TextNode) Location {
	if value == nil {
		return nameLoc
	}
	// The cursor sits just past the value (and its closing quote, if any).
	return p.cur.Selection(nameLoc.Start)
}
