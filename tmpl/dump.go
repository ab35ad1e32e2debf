package tmpl

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders the AST rooted at n as an indented, Lisp-ish tree, in the
// spirit of the String() methods a hand-written recursive-descent parser's
// AST types carry (e.g. ha1tch-tsqlparser's ast package): one line per
// node, children indented two spaces further than their parent. It is a
// debugging/tooling aid for cmd/tmplfmt, not part of the core parse
// contract.
func Dump(n Node) string {
	var b strings.Builder
	dumpNode(&b, n, 0)
	return b.String()
}

func dumpNode(b *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *RootNode:
		fmt.Fprintf(b, "%sRoot\n", indent)
		for _, c := range v.Children {
			dumpNode(b, c, depth+1)
		}
	case *ElementNode:
		fmt.Fprintf(b, "%sElement(%s tag=%s self-closing=%t)\n", indent, v.TagType, v.Tag, v.IsSelfClosing)
		for _, p := range v.Props {
			dumpNode(b, p, depth+1)
		}
		for _, c := range v.Children {
			dumpNode(b, c, depth+1)
		}
	case *AttributeNode:
		if v.Value != nil {
			fmt.Fprintf(b, "%sAttribute(%s=%s)\n", indent, v.Name, strconv.Quote(v.Value.Content))
		} else {
			fmt.Fprintf(b, "%sAttribute(%s)\n", indent, v.Name)
		}
	case *DirectiveNode:
		fmt.Fprintf(b, "%sDirective(%s", indent, v.Name)
		if v.Arg != nil {
			fmt.Fprintf(b, " arg=%s", v.Arg.Content)
		}
		if len(v.Modifiers) > 0 {
			fmt.Fprintf(b, " mods=%s", strings.Join(v.Modifiers, "."))
		}
		b.WriteString(")\n")
		if v.Exp != nil {
			fmt.Fprintf(b, "%s  exp=%s\n", indent, v.Exp.Content)
		}
	case *TextNode:
		fmt.Fprintf(b, "%sText(%s)\n", indent, strconv.Quote(v.Content))
	case *InterpolationNode:
		fmt.Fprintf(b, "%sInterpolation(%s)\n", indent, v.Inner.Content)
	case *CommentNode:
		fmt.Fprintf(b, "%sComment(%s)\n", indent, strconv.Quote(v.Content))
	case *SimpleExpressionNode:
		fmt.Fprintf(b, "%sExpression(%s static=%t)\n", indent, v.Content, v.IsStatic)
	default:
		fmt.Fprintf(b, "%s<unknown node %T>\n", indent, n)
	}
}
