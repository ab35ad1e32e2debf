// Package exprbridge compiles tmpl's opaque SimpleExpressionNode fragments
// (directive arguments, directive expressions, interpolation inner
// expressions) with github.com/expr-lang/expr, the same expression
// language chtml.NewExpr uses for its own interpolation and condition
// syntax. The core parser (package tmpl) treats expression content as
// opaque text; this package is the ambient/tooling layer that gives
// cmd/tmplfmt's check subcommand something to actually run.
package exprbridge

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"

	"github.com/dpotapov/tmplreactive/tmpl"
)

// CheckResult is the outcome of statically parsing one expression fragment.
type CheckResult struct {
	// Node is the location-bearing AST node the fragment came from
	// (*tmpl.SimpleExpressionNode, *tmpl.InterpolationNode's Inner, or a
	// DirectiveNode's Arg/Exp).
	Node *tmpl.SimpleExpressionNode
	Err  error
}

// CheckExpression parses (but does not compile or run) a single expression
// fragment, returning the parse error if the fragment is not valid
// expr-lang syntax. Directive arguments marked IsStatic (a literal
// attribute-style argument, not a `[...]`-wrapped dynamic one) are skipped:
//  defines those as non-expression text.
func CheckExpression(n *tmpl.SimpleExpressionNode) CheckResult {
	if n == nil || n.IsStatic {
		return CheckResult{Node: n}
	}
	_, err := parser.Parse(n.Content)
	return CheckResult{Node: n, Err: err}
}

// CheckTree walks every Interpolation and Directive node in root and
// statically parses their expression fragments, returning one CheckResult
// per fragment examined. It never short-circuits on the first error, since
// `tmplfmt check` wants to report every bad expression in a template.
func CheckTree(root *tmpl.RootNode) []CheckResult {
	var results []CheckResult
	var walk func(n tmpl.Node)
	walk = func(n tmpl.Node) {
		switch v := n.(type) {
		case *tmpl.RootNode:
			for _, c := range v.Children {
				walk(c)
			}
		case *tmpl.ElementNode:
			for _, p := range v.Props {
				walk(p)
			}
			for _, c := range v.Children {
				walk(c)
			}
		case *tmpl.DirectiveNode:
			if v.Arg != nil {
				results = append(results, CheckExpression(v.Arg))
			}
			if v.Exp != nil {
				results = append(results, CheckExpression(v.Exp))
			}
		case *tmpl.InterpolationNode:
			results = append(results, CheckExpression(v.Inner))
		}
	}
	walk(root)
	return results
}

// Compile compiles an expression fragment's content into a runnable
// expr-lang program against env (typically a map[string]any describing the
// variables in scope), mirroring chtml/expr.go's NewExpr/compileTransformed
// pair minus the CHTML-specific cast()/Shape transform (
// scopes the AST-to-code transform pipeline out of core; this is the
// tooling-only analogue).
func Compile(n *tmpl.SimpleExpressionNode, env any) (*vm.Program, error) {
	if n == nil {
		return nil, nil
	}
	if n.IsStatic {
		return nil, fmt.Errorf("exprbridge: %q is a static directive argument, not an expression", n.Content)
	}
	if _, err := parser.Parse(n.Content); err != nil {
		return nil, err
	}
	return expr.Compile(n.Content, expr.Env(env))
}
