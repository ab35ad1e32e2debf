package tmpl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// shapeOpts ignores every Location, the same way chtml's reflect-based
// shape tests ignore positional/bookkeeping fields and compare only the
// logical tree shape: tag names, attributes, and nesting.
var shapeOpts = cmp.Options{
	cmpopts.IgnoreFields(Location{}, "Start", "End", "Source"),
	cmpopts.IgnoreFields(RootNode{}, "Imports", "Statements", "Hoists"),
}

func TestParse_TreeShapeMatchesExpected(t *testing.T) {
	root, diags := parseDefault(t, `<ul><li v-for="item in items">{{ item }}</li></ul>`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	want := &RootNode{
		Children: []Node{
			&ElementNode{
				Tag:     "ul",
				TagType: TagElement,
				Children: []Node{
					&ElementNode{
						Tag:     "li",
						TagType: TagElement,
						Props: []Node{
							&DirectiveNode{
								Name: "for",
								Exp:  &SimpleExpressionNode{Content: "item in items"},
							},
						},
						Children: []Node{
							&InterpolationNode{
								Inner: &SimpleExpressionNode{Content: "item"},
							},
						},
					},
				},
			},
		},
	}

	if diff := cmp.Diff(want, root, shapeOpts); diff != "" {
		t.Errorf("tree shape mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_AttributeShapeIgnoresSourcePositions(t *testing.T) {
	rootA, _ := parseDefault(t, `<img src="a.png" alt="A">`)
	rootB, _ := parseDefault(t, "<img\n  src=\"a.png\"\n  alt=\"A\">") // reformatted, different positions

	if diff := cmp.Diff(rootA, rootB, shapeOpts); diff != "" {
		t.Errorf("reformatted markup should have identical shape (-a +b):\n%s", diff)
	}
}
