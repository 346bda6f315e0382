// regex.go — Regexp literal re-emission, the `lit` Regexp case.
//
// Grounded on nooga-paserati's pkg/vm/regex.go, which reaches for
// github.com/dlclark/regexp2 because Go's standard `regexp` (RE2) cannot
// parse the Perl/Ruby-flavored syntax (backreferences, lookaround, inline
// flags) the source language's regex literals use. This core needs the
// same validator for the same reason: before re-emitting a source regex
// literal as target RegExp source text, it must know the literal parses
// at all — regexp2 is asked to compile it (and never asked to run it;
// executing the target program is out of this core's scope) purely to
// reject malformed literals as StructuralError instead of silently
// emitting broken target code.
package opal

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// RegexLiteralText renders a source regex literal's (pattern, flags) pair
// as target RegExp literal source text: `/pattern/flags`, with the
// pattern's own forward slashes escaped, and the empty pattern special-
// cased to `/^/` — the empty regex `//` is replaced by `/^/`. Returns an
// error if regexp2 cannot parse the pattern under the requested flags.
func RegexLiteralText(pattern, flags string) (string, error) {
	opts := regexp2.None
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 'x':
			opts |= regexp2.IgnorePatternWhitespace
		}
	}
	if _, err := regexp2.Compile(pattern, opts); err != nil {
		return "", err
	}

	body := pattern
	if body == "" {
		body = "^"
	} else {
		body = strings.ReplaceAll(body, "/", `\/`)
	}
	return "/" + body + "/" + targetFlags(flags), nil
}

// targetFlags keeps only the flag letters the target RegExp literal
// syntax understands (i, m); the source language's 'x' (free-spacing)
// has no target-language equivalent and is consumed during validation
// only, never re-emitted.
func targetFlags(flags string) string {
	var b strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm':
			b.WriteRune(f)
		}
	}
	return b.String()
}
