package tmpl

// Node is the common interface every AST variant satisfies. Each variant
// carries a Source Location; the tree is immutable once
// Parse returns.
type Node interface {
	Loc() Location
	astNode()
}

// TagType classifies an Element
type TagType int

const (
	TagElement TagType = iota
	TagComponent
	TagSlot
	TagTemplate
)

func (t TagType) String() string {
	switch t {
	case TagComponent:
		return "Component"
	case TagSlot:
		return "Slot"
	case TagTemplate:
		return "Template"
	default:
		return "Element"
	}
}

// RootNode is the document root produced by Parse.
type RootNode struct {
	Location   Location
	Children   []Node
	Imports    []string
	Statements []string
	Hoists     []Node
}

func (n *RootNode) Loc() Location { return n.Location }
func (*RootNode) astNode()        {}

// ElementNode is a tag and its children.
type ElementNode struct {
	Location      Location
	Namespace     Namespace
	Tag           string
	TagType       TagType
	Props         []Node // AttributeNode or DirectiveNode, in source order
	IsSelfClosing bool
	Children      []Node
}

func (n *ElementNode) Loc() Location { return n.Location }
func (*ElementNode) astNode()        {}

// AttributeNode is a plain (non-directive) HTML attribute.
type AttributeNode struct {
	Location Location
	Name     string
	Value    *TextNode // nil when the attribute has no value
}

func (n *AttributeNode) Loc() Location { return n.Location }
func (*AttributeNode) astNode()        {}

// DirectiveNode is a `v-`/`:`/`@`/`#`-prefixed attribute.
type DirectiveNode struct {
	Location   Location
	Name       string // always non-empty, lowercase
	Arg        *SimpleExpressionNode
	Exp        *SimpleExpressionNode
	Modifiers  []string
}

func (n *DirectiveNode) Loc() Location { return n.Location }
func (*DirectiveNode) astNode()        {}

// TextNode holds fully entity-decoded text.
type TextNode struct {
	Location Location
	Content  string
}

func (n *TextNode) Loc() Location { return n.Location }
func (*TextNode) astNode()        {}

// IsEmpty reports whether the trimmed content is empty.
func (n *TextNode) IsEmpty() bool {
	return trimHTMLSpace(n.Content) == ""
}

func trimHTMLSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isHTMLSpaceByte(s[start]) {
		start++
	}
	for end > start && isHTMLSpaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isHTMLSpaceByte(b byte) bool {
	switch b {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

// InterpolationNode is a `{{ expr }}` mustache.
type InterpolationNode struct {
	Location Location
	Inner    *SimpleExpressionNode
}

func (n *InterpolationNode) Loc() Location { return n.Location }
func (*InterpolationNode) astNode()        {}

// CommentNode holds the raw text between comment delimiters.
type CommentNode struct {
	Location Location
	Content  string
}

func (n *CommentNode) Loc() Location { return n.Location }
func (*CommentNode) astNode()        {}

// SimpleExpressionNode is an opaque expression fragment: either a dynamic
// piece of script (isStatic=false) or a literal string argument
// (isStatic=true, e.g. a directive argument that was not `[...]`-wrapped).
type SimpleExpressionNode struct {
	Location Location
	Content  string
	IsStatic bool
}

func (n *SimpleExpressionNode) Loc() Location { return n.Location }
func (*SimpleExpressionNode) astNode()         {}

var (
	_ Node = (*RootNode)(nil)
	_ Node = (*ElementNode)(nil)
	_ Node = (*AttributeNode)(nil)
	_ Node = (*DirectiveNode)(nil)
	_ Node = (*TextNode)(nil)
	_ Node = (*InterpolationNode)(nil)
	_ Node = (*CommentNode)(nil)
	_ Node = (*SimpleExpressionNode)(nil)
)
