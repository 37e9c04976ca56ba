package functions

import (
	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Quantifier functions.
 *
 * Any and All fold host-language truthiness over a collection. Empty and
 * missing collections follow vacuous-truth convention: Any is false, All
 * is true.
 */

// fnAny implements Any: true when at least one element is truthy.
func fnAny(s *Scope, args []any) (any, error) {
	arr, ok := asArray(arg(args, 0))
	if !ok {
		return nil, types.NewFunctionError("Any", "Expected array but got %s.", typeName(arg(args, 0)))
	}
	for _, v := range arr {
		if truthy(v) {
			return true, nil
		}
	}
	return false, nil
}

// fnAll implements All: true when every element is truthy, vacuously true
// for empty or missing collections.
func fnAll(s *Scope, args []any) (any, error) {
	arr, ok := asArray(arg(args, 0))
	if !ok {
		return nil, types.NewFunctionError("All", "Expected array but got %s.", typeName(arg(args, 0)))
	}
	for _, v := range arr {
		if !truthy(v) {
			return false, nil
		}
	}
	return true, nil
}
