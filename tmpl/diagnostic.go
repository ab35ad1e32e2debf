package tmpl

import (
	"fmt"
	"os"
)

// Code enumerates every diagnostic the parser can emit. Names mirror the
// HTML parsing-error set for the HTML-derived codes, plus an X_-prefixed
// extension set for template-language-specific conditions.
type Code int

const (
	EOFBeforeTagName Code = iota + 1
	EOFInTag
	EOFInComment
	EOFInCDATA
	EOFInScriptHTMLCommentLikeText
	AbruptClosingOfEmptyComment
	IncorrectlyClosedComment
	NestedComment
	IncorrectlyOpenedComment
	CDATAInHTMLContent
	InvalidFirstCharacterOfTagName
	MissingEndTagName
	XInvalidEndTag
	XMissingEndTag
	UnexpectedQuestionMarkInsteadOfTagName
	UnexpectedSolidusInTag
	EndTagWithAttributes
	EndTagWithTrailingSolidus
	MissingWhitespaceBetweenAttributes
	DuplicateAttribute
	UnexpectedEqualsSignBeforeAttributeName
	UnexpectedCharacterInAttributeName
	MissingAttributeValue
	UnexpectedCharacterInUnquotedAttributeValue
	XMissingInterpolationEnd
	XMissingDynamicDirectiveArgumentEnd
	MissingSemicolonAfterCharacterReference
	UnknownNamedCharacterReference
	AbsenceOfDigitsInNumericCharacterReference
	NullCharacterReference
	CharacterReferenceOutsideUnicodeRange
	SurrogateCharacterReference
	NonCharacterCharacterReference
	ControlCharacterReference
)

var codeNames = map[Code]string{
	EOFBeforeTagName:                             "eof-before-tag-name",
	EOFInTag:                                     "eof-in-tag",
	EOFInComment:                                 "eof-in-comment",
	EOFInCDATA:                                   "eof-in-cdata",
	EOFInScriptHTMLCommentLikeText:               "eof-in-script-html-comment-like-text",
	AbruptClosingOfEmptyComment:                  "abrupt-closing-of-empty-comment",
	IncorrectlyClosedComment:                     "incorrectly-closed-comment",
	NestedComment:                                "nested-comment",
	IncorrectlyOpenedComment:                      "incorrectly-opened-comment",
	CDATAInHTMLContent:                           "cdata-in-html-content",
	InvalidFirstCharacterOfTagName:               "invalid-first-character-of-tag-name",
	MissingEndTagName:                            "missing-end-tag-name",
	XInvalidEndTag:                               "x-invalid-end-tag",
	XMissingEndTag:                               "x-missing-end-tag",
	UnexpectedQuestionMarkInsteadOfTagName:       "unexpected-question-mark-instead-of-tag-name",
	UnexpectedSolidusInTag:                       "unexpected-solidus-in-tag",
	EndTagWithAttributes:                         "end-tag-with-attributes",
	EndTagWithTrailingSolidus:                    "end-tag-with-trailing-solidus",
	MissingWhitespaceBetweenAttributes:           "missing-whitespace-between-attributes",
	DuplicateAttribute:                           "duplicate-attribute",
	UnexpectedEqualsSignBeforeAttributeName:      "unexpected-equals-sign-before-attribute-name",
	UnexpectedCharacterInAttributeName:           "unexpected-character-in-attribute-name",
	MissingAttributeValue:                        "missing-attribute-value",
	UnexpectedCharacterInUnquotedAttributeValue:  "unexpected-character-in-unquoted-attribute-value",
	XMissingInterpolationEnd:                     "x-missing-interpolation-end",
	XMissingDynamicDirectiveArgumentEnd:          "x-missing-dynamic-directive-argument-end",
	MissingSemicolonAfterCharacterReference:      "missing-semicolon-after-character-reference",
	UnknownNamedCharacterReference:               "unknown-named-character-reference",
	AbsenceOfDigitsInNumericCharacterReference:   "absence-of-digits-in-numeric-character-reference",
	NullCharacterReference:                       "null-character-reference",
	CharacterReferenceOutsideUnicodeRange:        "character-reference-outside-unicode-range",
	SurrogateCharacterReference:                  "surrogate-character-reference",
	NonCharacterCharacterReference:               "noncharacter-character-reference",
	ControlCharacterReference:                    "control-character-reference",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Diagnostic is a single parse error, always tied to a source Location. The
// parser never fails hard: every diagnostic is routed through an ErrorSink
// and parsing continues with a local recovery.
type Diagnostic struct {
	Code Code
	Loc  Location
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s at %s: %s", d.Code, d.Loc.Start, d.Loc.Source)
}

// ErrorSink receives diagnostics as the parser discovers them.
type ErrorSink func(Diagnostic)

// discardSink is the default when no OnError option is given, matching the
// "writes to stderr equivalent" contract from  without actually
// coupling the core parser to an output stream; callers that want stderr
// get DefaultErrorSink explicitly.
func discardSink(Diagnostic) {}

// DefaultErrorSink prints diagnostics to stderr, one per line.
func DefaultErrorSink(d Diagnostic) {
	fmt.Fprintln(os.Stderr, d.Error())
}
