package tmpl

import "strings"

// directiveShorthand maps the single-character directive sigils to their
// long-form directive name,
var directiveShorthand = map[byte]string{
	':': "bind",
	'@': "on",
	'#': "slot",
}

// isDirectiveName reports whether an attribute name should be parsed as a
// directive rather than a plain attribute.
func isDirectiveName(name string) bool {
	if strings.HasPrefix(name, "v-") {
		return true
	}
	if len(name) == 0 {
		return false
	}
	_, ok := directiveShorthand[name[0]]
	return ok
}

// parsedDirectiveName is the result of splitting a raw directive attribute
// name into its three syntactic parts, mirroring the named capture groups
// of the equivalent directive regex:
//
//	/(?:^v-([a-z0-9-]+))?(?:(?::|^@|^#)([^\.]+))?(.+)?$/i
type parsedDirectiveName struct {
	name      string // always lowercase, non-empty
	argRaw    string // raw text between the arg-introducing sigil and the first '.', "" if absent
	hasArg    bool
	modsRaw   string // raw text after argRaw (and after the name, if no arg), includes leading dots
	nameEnd   int    // rune offset, within the original name string, where the directive-name part ends
	argStart  int    // rune offset where argRaw begins (only meaningful if hasArg)
	argEnd    int    // rune offset where argRaw ends
}

// parseDirectiveName splits a raw attribute name (e.g. "v-bind:[key].sync",
// "@click.stop", "#header") into directive-name/arg/modifiers components.
func parseDirectiveName(raw string) parsedDirectiveName {
	runes := []rune(raw)
	var res parsedDirectiveName

	i := 0
	if strings.HasPrefix(raw, "v-") {
		i = 2
		start := i
		for i < len(runes) && isDirectiveNameChar(runes[i]) {
			i++
		}
		res.name = strings.ToLower(string(runes[start:i]))
		res.nameEnd = i
	}

	// Look for the arg-introducing sigil: a literal ':' anywhere in the
	// remainder (for the "v-xxx:arg" form), or '@'/'#' at the very start
	// (for the shorthand forms, where res.name is still unset).
	argSigilAt := -1
	if res.name != "" {
		// v-xxx:arg form: colon must appear at or after nameEnd.
		for j := res.nameEnd; j < len(runes); j++ {
			if runes[j] == ':' {
				argSigilAt = j
				break
			}
			if runes[j] == '.' {
				break // modifiers start before any colon was found
			}
		}
	} else if len(runes) > 0 {
		switch runes[0] {
		case '@', '#':
			argSigilAt = 0
		case ':':
			argSigilAt = 0
		}
		if sh, ok := directiveShorthand[byte(runes[0])]; ok {
			res.name = sh
		}
	}

	modsStart := res.nameEnd
	if argSigilAt >= 0 {
		start := argSigilAt + 1
		end := start
		for end < len(runes) && runes[end] != '.' {
			end++
		}
		res.argRaw = string(runes[start:end])
		res.hasArg = true
		res.argStart = start
		res.argEnd = end
		modsStart = end
	}

	if modsStart < len(runes) {
		res.modsRaw = string(runes[modsStart:])
	}
	return res
}

func isDirectiveNameChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
}

// splitModifiers turns ".sync.foo" into ["sync", "foo"]. A leading dot with
// no following segments (or an empty raw string) yields nil.
func splitModifiers(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ".")
	var mods []string
	for _, p := range parts {
		if p != "" {
			mods = append(mods, p)
		}
	}
	return mods
}
