package functions

import (
	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Array functions.
 *
 * Collections arriving from the data graph are []any. Missing collections
 * normalize per function: Count treats missing as empty, Flat propagates
 * the missing value, Join treats missing operands as empty arrays.
 */

// fnCount implements Count: array length, 0 for missing, 1 for any other
// scalar.
func fnCount(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return float64(0), nil
	}
	if arr, ok := v.([]any); ok {
		return float64(len(arr)), nil
	}
	return float64(1), nil
}

// fnFlat implements Flat: one level of sub-array flattening. Non-array
// elements pass through unchanged, whatever their kind. Missing input
// propagates; a present non-array is an error.
func fnFlat(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return types.Undefined, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, types.NewFunctionError("Flat", "Expected array but got %s.", typeName(v))
	}
	out := make([]any, 0, len(arr))
	for _, elem := range arr {
		if sub, ok := elem.([]any); ok {
			out = append(out, sub...)
		} else {
			out = append(out, elem)
		}
	}
	return out, nil
}

// fnJoin implements Join: pure concatenation preserving order and
// duplicates. Missing operands normalize to empty arrays.
func fnJoin(s *Scope, args []any) (any, error) {
	a, ok := asArray(arg(args, 0))
	if !ok {
		return nil, types.NewFunctionError("Join", "Expected array but got %s.", typeName(arg(args, 0)))
	}
	b, ok := asArray(arg(args, 1))
	if !ok {
		return nil, types.NewFunctionError("Join", "Expected array but got %s.", typeName(arg(args, 1)))
	}
	out := make([]any, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out, nil
}
