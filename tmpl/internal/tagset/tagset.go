// Package tagset provides the default void-tag table and tag-type
// classification the parser falls back to when the caller's Options leave
// the corresponding hook unset. It leans on golang.org/x/net/html/atom for
// the common-tag fast path, the same atom.Atom switch a tokenizer-driven
// HTML parser would use.
package tagset

import (
	"strings"

	"golang.org/x/net/html/atom"
)

var voidAtoms = map[atom.Atom]bool{
	atom.Area:    true,
	atom.Base:    true,
	atom.Br:      true,
	atom.Col:     true,
	atom.Embed:   true,
	atom.Hr:      true,
	atom.Img:     true,
	atom.Input:   true,
	atom.Link:    true,
	atom.Meta:    true,
	atom.Param:   true,
	atom.Source:  true,
	atom.Track:   true,
	atom.Wbr:     true,
}

// IsVoid reports whether tag is one of the HTML5 void elements, which can
// never have children or an end tag.
func IsVoid(tag string) bool {
	return voidAtoms[atom.Lookup([]byte(tag))]
}

// Raw-text and RCDATA element sets, exposed for callers building their own
// GetTextMode hook. The parser's default GetTextMode does not consult them.
var (
	rawTextAtoms = map[atom.Atom]bool{
		atom.Script: true,
		atom.Style:  true,
	}
	rcdataAtoms = map[atom.Atom]bool{
		atom.Title:    true,
		atom.Textarea: true,
	}
)

// IsRawText reports whether tag's content should be scanned verbatim with
// no entity decoding and no child-tag recognition.
func IsRawText(tag string) bool {
	return rawTextAtoms[atom.Lookup([]byte(tag))]
}

// IsRCDATA reports whether tag's content should be scanned for entities but
// not for child tags.
func IsRCDATA(tag string) bool {
	return rcdataAtoms[atom.Lookup([]byte(tag))]
}

// ClassifyTag implements the tagType rule: `slot` -> Slot,
// `template` -> Template, any uppercase or hyphen -> Component, else
// Element. tag is matched against "slot"/"template" case-insensitively (the
// teacher's own namespace lookups are case-insensitive); the uppercase
// check runs against the tag's original casing, since that is the signal
// that distinguishes a PascalCase component from a plain HTML element.
func ClassifyTag(tag string) int {
	switch {
	case strings.EqualFold(tag, "slot"):
		return TagSlot
	case strings.EqualFold(tag, "template"):
		return TagTemplate
	case hasUpperOrHyphen(tag):
		return TagComponent
	default:
		return TagElement
	}
}

func hasUpperOrHyphen(tag string) bool {
	for _, r := range tag {
		if r == '-' || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// Tag-type constants mirrored here (rather than imported from tmpl, which
// would create an import cycle since tmpl/options.go depends on this
// package for IsVoid).
const (
	TagElement = iota
	TagComponent
	TagSlot
	TagTemplate
)
