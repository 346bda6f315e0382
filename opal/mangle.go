// mangle.go — deterministic source-identifier → target-identifier mapping.
//
// Grounded on the teacher's printer.go (isIdent, quoteString: the
// teacher's own name-validity and string-escaping helpers) generalized
// into three pure functions: the method-id accessor rule, the
// reserved-word suffix rule, and the ivar-accessor rule. All three are
// total, deterministic functions of their input, so the same source
// identifier always mangles to the same target identifier.
package opal

import "strings"

// reservedWords is the fixed target-language keyword set.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "finally": true, "for": true, "function": true,
	"if": true, "in": true, "instanceof": true, "new": true,
	"return": true, "switch": true, "this": true, "throw": true,
	"try": true, "typeof": true, "var": true, "let": true,
	"void": true, "while": true, "with": true, "class": true,
	"enum": true, "export": true, "extends": true, "import": true,
	"super": true, "true": true, "false": true, "native": true,
	"const": true, "static": true,
}

// IsReserved reports whether name collides with a target-language keyword.
func IsReserved(name string) bool { return reservedWords[name] }

// MangleLocal applies the reserved-word guard: a local/parameter colliding
// with a reserved word is suffixed with a single `$`.
func MangleLocal(name string) string {
	if IsReserved(name) {
		return name + "$"
	}
	return name
}

// jsidSpecialChars are the characters that force the bracket-accessor
// form of a method id rather than the dotted form.
const jsidSpecialChars = "=+-*/!?<>&|^%~["

// MidToJSID implements the method-id → property-accessor rule: `foo` →
// `.$foo`, `==` → `['$==']`. Returns the accessor text to append directly
// after a receiver expression (no leading space).
func MidToJSID(name string) string {
	if strings.ContainsAny(name, jsidSpecialChars) {
		return "['$" + name + "']"
	}
	return ".$" + name
}

// IvarAccessor implements the ivar-accessor rule: `@name` → `.name` if
// name is not reserved, else `['name']`.
func IvarAccessor(name string) string {
	if IsReserved(name) {
		return "['" + name + "']"
	}
	return "." + name
}

// ivarProperty strips the leading '@' from a source ivar name, producing
// the bare property name IvarAccessor expects and the string recorded in
// Scope.IVars — ivars must hold only strings usable as target property
// accessors.
func ivarProperty(name string) string {
	return strings.TrimPrefix(name, "@")
}

// mangleClassVar turns `@@name` into the literal key Opal.cvars is keyed
// by: the cvar/cvasgn cases use the name verbatim, including the leading
// @@, as the map key.
func mangleClassVar(name string) string { return name }
