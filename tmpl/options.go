package tmpl

import "github.com/dpotapov/tmplreactive/tmpl/internal/tagset"

// Options configures a single Parse call. Every field has a documented
// default, matching 
type Options struct {
	// Delimiters is the (open, close) pair recognized for interpolation.
	// Defaults to ("{{", "}}").
	Delimiters [2]string

	// IgnoreSpaces drops empty Text nodes when true. Defaults to true; pass
	// a pointer to false to keep them (e.g. for source-preserving tooling).
	IgnoreSpaces *bool

	// GetNamespace classifies the namespace an element's children will be
	// parsed in, given the tag name and the parent element (nil at the
	// document root). Defaults to always NamespaceHTML.
	GetNamespace func(tag string, parent *ElementNode) Namespace

	// GetTextMode selects the TextMode children are parsed in for a given
	// tag/namespace. Defaults to always TextModeData.
	GetTextMode func(tag string, ns Namespace) TextMode

	// IsVoidTag reports whether a tag can never have children or an end
	// tag. Defaults to the built-in HTML5 void-element set.
	IsVoidTag func(tag string) bool

	// NamedCharacterReferences is the entity name -> replacement table.
	// Defaults to DefaultNamedCharacterReferences.
	NamedCharacterReferences map[string]string

	// OnError receives every diagnostic as it is produced. Defaults to a
	// no-op; use DefaultErrorSink to print to stderr.
	OnError ErrorSink
}

// withDefaults returns a copy of o with every unset field filled in.
func (o Options) withDefaults() Options {
	if o.Delimiters[0] == "" && o.Delimiters[1] == "" {
		o.Delimiters = [2]string{"{{", "}}"}
	}
	if o.IgnoreSpaces == nil {
		t := true
		o.IgnoreSpaces = &t
	}
	if o.GetNamespace == nil {
		o.GetNamespace = func(string, *ElementNode) Namespace { return NamespaceHTML }
	}
	if o.GetTextMode == nil {
		o.GetTextMode = func(string, Namespace) TextMode { return TextModeData }
	}
	if o.IsVoidTag == nil {
		o.IsVoidTag = tagset.IsVoid
	}
	if o.NamedCharacterReferences == nil {
		o.NamedCharacterReferences = DefaultNamedCharacterReferences
	}
	if o.OnError == nil {
		o.OnError = discardSink
	}
	return o
}
