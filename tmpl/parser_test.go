package tmpl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parseDefault(t *testing.T, source string) (*RootNode, []Diagnostic) {
	t.Helper()
	return ParseCollecting(source, Options{})
}

func TestParseSimpleElementWithAttributeAndInterpolation(t *testing.T) {
	// scenario: <div id=a>{{ msg }}</div>
	root, diags := parseDefault(t, "<div id=a>{{ msg }}</div>")
	require.Empty(t, diags)
	require.Len(t, root.Children, 1)

	el, ok := root.Children[0].(*ElementNode)
	require.True(t, ok)
	require.Equal(t, "div", el.Tag)
	require.Equal(t, TagElement, el.TagType)
	require.False(t, el.IsSelfClosing)
	require.Len(t, el.Props, 1)

	attr, ok := el.Props[0].(*AttributeNode)
	require.True(t, ok)
	require.Equal(t, "id", attr.Name)
	require.NotNil(t, attr.Value)
	require.Equal(t, "a", attr.Value.Content)

	require.Len(t, el.Children, 1)
	interp, ok := el.Children[0].(*InterpolationNode)
	require.True(t, ok)
	require.Equal(t, "msg", interp.Inner.Content)
}

func TestParseNestedCommentReportsOnlyOnce(t *testing.T) {
	// scenario: <!--x<!--y--> reports NestedComment once, the
	// comment body runs through to the first "-->".
	_, diags := parseDefault(t, "<!--x<!--y-->")
	var nested int
	for _, d := range diags {
		if d.Code == NestedComment {
			nested++
		}
	}
	require.Equal(t, 1, nested)
}

func TestParseMissingInterpolationEnd(t *testing.T) {
	// scenario: {{ foo (no closing delimiter) reports
	// XMissingInterpolationEnd and the whole remainder becomes text.
	root, diags := parseDefault(t, "{{ foo")
	require.Len(t, diags, 1)
	require.Equal(t, XMissingInterpolationEnd, diags[0].Code)
	require.Len(t, root.Children, 1)
	text, ok := root.Children[0].(*TextNode)
	require.True(t, ok)
	require.Equal(t, "{{ foo", text.Content)
}

func TestParseDynamicDirectiveArgumentWithModifiers(t *testing.T) {
	// scenario: <div v-bind:[key].sync="v">
	root, diags := parseDefault(t, `<div v-bind:[key].sync="v"></div>`)
	require.Empty(t, diags)
	el := root.Children[0].(*ElementNode)
	require.Len(t, el.Props, 1)

	d, ok := el.Props[0].(*DirectiveNode)
	require.True(t, ok)
	require.Equal(t, "bind", d.Name)
	require.NotNil(t, d.Arg)
	require.False(t, d.Arg.IsStatic)
	require.Equal(t, "key", d.Arg.Content)
	require.Equal(t, []string{"sync"}, d.Modifiers)
	require.NotNil(t, d.Exp)
	require.Equal(t, "v", d.Exp.Content)
}

func TestParseStaticDirectiveArgument(t *testing.T) {
	root, _ := parseDefault(t, `<a v-on:click.stop="go()"></a>`)
	el := root.Children[0].(*ElementNode)
	d := el.Props[0].(*DirectiveNode)
	require.Equal(t, "on", d.Name)
	require.True(t, d.Arg.IsStatic)
	require.Equal(t, "click", d.Arg.Content)
	require.Equal(t, []string{"stop"}, d.Modifiers)
}

func TestParseShorthandDirectives(t *testing.T) {
	root, _ := parseDefault(t, `<input :value="x" @input="onInput" #default="slotProps">`)
	el := root.Children[0].(*ElementNode)
	require.Len(t, el.Props, 3)

	bind := el.Props[0].(*DirectiveNode)
	require.Equal(t, "bind", bind.Name)
	require.Equal(t, "value", bind.Arg.Content)

	on := el.Props[1].(*DirectiveNode)
	require.Equal(t, "on", on.Name)
	require.Equal(t, "input", on.Arg.Content)

	slot := el.Props[2].(*DirectiveNode)
	require.Equal(t, "slot", slot.Name)
	require.Equal(t, "default", slot.Arg.Content)
}

func TestParseVoidElementNeverOpensChildren(t *testing.T) {
	root, diags := parseDefault(t, "<br><p>after</p>")
	require.Empty(t, diags)
	require.Len(t, root.Children, 2)
	br := root.Children[0].(*ElementNode)
	require.Equal(t, "br", br.Tag)
	require.Nil(t, br.Children)
}

func TestParseSelfClosingNonVoidElement(t *testing.T) {
	root, diags := parseDefault(t, "<MyWidget/>after")
	require.Empty(t, diags)
	el := root.Children[0].(*ElementNode)
	require.Equal(t, "MyWidget", el.Tag)
	require.Equal(t, TagComponent, el.TagType)
	require.True(t, el.IsSelfClosing)
	require.Nil(t, el.Children)
}

func TestParseComponentTagDetectsHyphenAndUppercase(t *testing.T) {
	root, _ := parseDefault(t, "<my-widget></my-widget><Card></Card><span></span>")
	require.Equal(t, TagComponent, root.Children[0].(*ElementNode).TagType)
	require.Equal(t, TagComponent, root.Children[1].(*ElementNode).TagType)
	require.Equal(t, TagElement, root.Children[2].(*ElementNode).TagType)
}

func TestParseMismatchedEndTagReportsMissingEndTag(t *testing.T) {
	_, diags := parseDefault(t, "<div><span></div>")
	var missing int
	for _, d := range diags {
		if d.Code == XMissingEndTag {
			missing++
		}
	}
	require.GreaterOrEqual(t, missing, 1)
}

func TestParseDuplicateAttributeReportsButKeepsBoth(t *testing.T) {
	root, diags := parseDefault(t, `<div id="a" id="b"></div>`)
	require.Len(t, diags, 1)
	require.Equal(t, DuplicateAttribute, diags[0].Code)

	el := root.Children[0].(*ElementNode)
	require.Len(t, el.Props, 2)
	require.Equal(t, "a", el.Props[0].(*AttributeNode).Value.Content)
	require.Equal(t, "b", el.Props[1].(*AttributeNode).Value.Content)
}

func TestParseTextAroundVoidElementDecodesEntities(t *testing.T) {
	root, _ := parseDefault(t, "a&amp;b<br>c&amp;d")
	require.Len(t, root.Children, 3)
	require.Equal(t, "a&b", root.Children[0].(*TextNode).Content)
	require.Equal(t, "c&d", root.Children[2].(*TextNode).Content)
}

func TestParseRawTextElementSkipsMarkupAndInterpolation(t *testing.T) {
	opts := Options{
		GetTextMode: func(tag string, _ Namespace) TextMode {
			if tag == "script" {
				return TextModeRAWTEXT
			}
			return TextModeData
		},
	}
	root, _ := ParseCollecting("<script>if (a < b) { {{ not-interpolated }} }</script>", opts)
	script := root.Children[0].(*ElementNode)
	require.Len(t, script.Children, 1)
	text := script.Children[0].(*TextNode)
	require.Equal(t, "if (a < b) { {{ not-interpolated }} }", text.Content)
}

func TestParseCustomDelimiters(t *testing.T) {
	opts := Options{Delimiters: [2]string{"${", "}"}}
	root, diags := ParseCollecting("${msg}", opts)
	require.Empty(t, diags)
	interp := root.Children[0].(*InterpolationNode)
	require.Equal(t, "msg", interp.Inner.Content)
}

func TestParseAttributeLocationSourceSpansNameAndValue(t *testing.T) {
	root, diags := parseDefault(t, `<div id="a">x</div>`)
	require.Empty(t, diags)
	el := root.Children[0].(*ElementNode)
	attr := el.Props[0].(*AttributeNode)
	require.Equal(t, `id="a"`, attr.Location.Source)
}

func TestParseScriptEOFWithCommentLikeTextReportsDedicatedCode(t *testing.T) {
	opts := Options{
		GetTextMode: func(tag string, _ Namespace) TextMode {
			if tag == "script" {
				return TextModeRAWTEXT
			}
			return TextModeData
		},
	}
	root, diags := ParseCollecting("<script><!--var x = 1;", opts)
	require.Len(t, diags, 1)
	require.Equal(t, EOFInScriptHTMLCommentLikeText, diags[0].Code)

	script := root.Children[0].(*ElementNode)
	require.Equal(t, "<!--var x = 1;", script.Children[0].(*TextNode).Content)
}

func TestParseScriptEOFWithoutCommentLikeTextReportsMissingEndTag(t *testing.T) {
	opts := Options{
		GetTextMode: func(tag string, _ Namespace) TextMode {
			if tag == "script" {
				return TextModeRAWTEXT
			}
			return TextModeData
		},
	}
	root, diags := ParseCollecting("<script>var x = 1;", opts)
	require.Len(t, diags, 1)
	require.Equal(t, XMissingEndTag, diags[0].Code)
	require.Len(t, root.Children, 1)
}

func TestParseReturnsJoinedDiagnosticsAsError(t *testing.T) {
	root, err := Parse(`<div id="a" id="b">`, Options{})
	require.NotNil(t, root)
	require.Error(t, err)
	require.Contains(t, err.Error(), DuplicateAttribute.String())

	root, err = Parse("<div>x</div>", Options{})
	require.NotNil(t, root)
	require.NoError(t, err)
}
