// Package functions implements the expression function library of the
// rule engine: stateless pure functions grouped by domain, a frozen
// name-to-implementation registry, and the per-session scope they are
// bound to.
package functions

import (
	"github.com/gavelhq/gavel/internal/date"
	"github.com/gavelhq/gavel/internal/number"
	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Evaluation scope.
 *
 * A Scope is created once per evaluation session by Registry.Bind and is
 * immutable for the session's duration. Nothing in it is mutated after
 * construction, so a bound function table may be shared read-only across
 * concurrent sessions. The normalizer and calculator are injection points:
 * a host can swap either for a high-precision implementation without
 * touching the library.
 */

// Scope is the per-session bundle injected into every library function.
type Scope struct {
	// SessionID correlates failures to the evaluation session.
	SessionID types.SessionID

	// ZoneID is the session's IANA zone id; empty means the host zone.
	ZoneID string

	// Normalize corrects a host float to canonical decimal64 semantics.
	Normalize func(float64) float64

	// Calculator performs all date/datetime work. Never nil after Bind.
	Calculator date.Calculator

	// MaxSequence caps NumberSequence generation; 0 applies the default.
	MaxSequence int
}

// Implementation is the uniform signature of every library function.
// args carries resolved rule-expression operands; absent trailing
// parameters are padded to Undefined by the binding layer.
type Implementation func(s *Scope, args []any) (any, error)

// Declaration pairs a function name with its implementation for
// registration.
type Declaration struct {
	Name           string
	Implementation Implementation
}

// defaultScope fills unset injection points ahead of a session.
func defaultScope(s *Scope) *Scope {
	out := *s
	if out.SessionID == "" {
		out.SessionID = types.NewSessionID()
	}
	if out.Normalize == nil {
		out.Normalize = number.NormalizeFloat
	}
	if out.Calculator == nil {
		out.Calculator = date.NewDefaultCalculator()
	}
	return &out
}

// arg returns the i-th argument, Undefined when absent. Functions decide
// themselves whether a missing value defaults or violates a mandatory
// parameter.
func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return types.Undefined
}
