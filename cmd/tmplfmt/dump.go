package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dpotapov/tmplreactive/tmpl"
)

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "dump the AST as JSON instead of an indented tree")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tmplfmt dump [-json] <file>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "tmplfmt: %v\n", err)
		os.Exit(1)
	}

	root, diags := tmpl.ParseCollecting(string(data), tmpl.Options{})
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s: %s\n", d.Loc.Start, d.Code)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonNode(root)); err != nil {
			fmt.Fprintf(os.Stderr, "tmplfmt: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Print(tmpl.Dump(root))
}

// jsonNode flattens an AST node into a JSON-friendly shape; tmpl's own
// Node types carry Location structs whose Source field would otherwise
// duplicate the whole template text at every nesting level.
func jsonNode(n tmpl.Node) any {
	switch v := n.(type) {
	case *tmpl.RootNode:
		return map[string]any{"kind": "Root", "children": jsonNodes(v.Children)}
	case *tmpl.ElementNode:
		return map[string]any{
			"kind": "Element", "tag": v.Tag, "tagType": v.TagType.String(),
			"selfClosing": v.IsSelfClosing, "props": jsonNodes(v.Props), "children": jsonNodes(v.Children),
		}
	case *tmpl.AttributeNode:
		m := map[string]any{"kind": "Attribute", "name": v.Name}
		if v.Value != nil {
			m["value"] = v.Value.Content
		}
		return m
	case *tmpl.DirectiveNode:
		m := map[string]any{"kind": "Directive", "name": v.Name, "modifiers": v.Modifiers}
		if v.Arg != nil {
			m["arg"] = v.Arg.Content
		}
		if v.Exp != nil {
			m["exp"] = v.Exp.Content
		}
		return m
	case *tmpl.TextNode:
		return map[string]any{"kind": "Text", "content": v.Content}
	case *tmpl.InterpolationNode:
		return map[string]any{"kind": "Interpolation", "inner": v.Inner.Content}
	case *tmpl.CommentNode:
		return map[string]any{"kind": "Comment", "content": v.Content}
	default:
		return map[string]any{"kind": fmt.Sprintf("%T", n)}
	}
}

func jsonNodes(ns []tmpl.Node) []any {
	out := make([]any, len(ns))
	for i, n := range ns {
		out[i] = jsonNode(n)
	}
	return out
}
