// Package types provides domain values shared across Gavel components.
//
// Zero-dependency design: types.go and errors.go use only the standard
// library so the evaluation core stays free of transitive weight. ID
// utilities in ids.go import uuid but are isolated for selective inclusion.
package types

// Undefined is the distinguished "no value" marker.
//
// Rule expressions distinguish three states for an operand: a present
// value, JSON null (Go nil), and undefined (field absent, or an aggregate
// over insufficient data). Most library functions unify nil and Undefined
// as "missing"; set functions normalize nil to Undefined so both occupy a
// single set element.
var Undefined = UndefinedValue{}

// UndefinedValue is the type of the Undefined sentinel. Comparable, so it
// can be used directly as a map key and in == checks against any.
type UndefinedValue struct{}

// String implements fmt.Stringer for diagnostics and CLI output.
func (UndefinedValue) String() string { return "undefined" }

// IsMissing reports whether v is null (nil) or the Undefined sentinel.
// This is the single definition of "missing" used by the function library.
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(UndefinedValue)
	return ok
}

// Resource limits enforced by the expression runtime.
const (
	// MaxSequenceElements caps NumberSequence generation. A pathological
	// near-zero step errors out instead of hanging the evaluation session.
	MaxSequenceElements = 1_000_000

	// MaxFunctionNameLength bounds registered function names. 128 chars
	// accommodates namespaced user functions without unbounded keys.
	MaxFunctionNameLength = 128

	// MaxPathDepth bounds payload path resolution depth.
	MaxPathDepth = 16
)
