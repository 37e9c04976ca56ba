package functions

import (
	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Set functions.
 *
 * Set semantics over value equality with null normalized to Undefined as a
 * set member, so null and undefined occupy one element. Missing operand
 * arrays normalize to empty sets. Results are insertion-ordered by first
 * occurrence across operand order.
 *
 * Membership runs the _eq unification (valueEqual), so numbers compare
 * normalized and dates compare by instant. Rule collections are small;
 * quadratic membership keeps the equality semantics in one place.
 */

// setElement normalizes a value for set membership: null becomes Undefined.
func setElement(v any) any {
	if v == nil {
		return types.Undefined
	}
	return v
}

// setOperands normalizes the two operand arrays of a set function.
func setOperands(function string, args []any) ([]any, []any, error) {
	a, ok := asArray(arg(args, 0))
	if !ok {
		return nil, nil, types.NewFunctionError(function, "Expected array but got %s.", typeName(arg(args, 0)))
	}
	b, ok := asArray(arg(args, 1))
	if !ok {
		return nil, nil, types.NewFunctionError(function, "Expected array but got %s.", typeName(arg(args, 1)))
	}
	return a, b, nil
}

// containsValue reports set membership under _eq unification.
func containsValue(s *Scope, set []any, v any) bool {
	for _, elem := range set {
		if valueEqual(s, elem, v) {
			return true
		}
	}
	return false
}

// distinctAppend appends v if not already present, preserving first
// occurrence order.
func distinctAppend(s *Scope, set []any, v any) []any {
	v = setElement(v)
	if containsValue(s, set, v) {
		return set
	}
	return append(set, v)
}

// fnUnion implements Union: distinct elements of both operands.
func fnUnion(s *Scope, args []any) (any, error) {
	a, b, err := setOperands("Union", args)
	if err != nil {
		return nil, err
	}
	out := []any{}
	for _, v := range a {
		out = distinctAppend(s, out, v)
	}
	for _, v := range b {
		out = distinctAppend(s, out, v)
	}
	return out, nil
}

// fnIntersection implements Intersection: distinct elements present in both.
func fnIntersection(s *Scope, args []any) (any, error) {
	a, b, err := setOperands("Intersection", args)
	if err != nil {
		return nil, err
	}
	normalized := make([]any, 0, len(b))
	for _, v := range b {
		normalized = append(normalized, setElement(v))
	}
	out := []any{}
	for _, v := range a {
		e := setElement(v)
		if containsValue(s, normalized, e) && !containsValue(s, out, e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// fnDifference implements Difference: distinct elements of the first
// operand absent from the second.
func fnDifference(s *Scope, args []any) (any, error) {
	a, b, err := setOperands("Difference", args)
	if err != nil {
		return nil, err
	}
	normalized := make([]any, 0, len(b))
	for _, v := range b {
		normalized = append(normalized, setElement(v))
	}
	out := []any{}
	for _, v := range a {
		e := setElement(v)
		if !containsValue(s, normalized, e) && !containsValue(s, out, e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// fnSymmetricDifference implements SymmetricDifference: distinct elements
// present in exactly one operand, first-operand elements first.
func fnSymmetricDifference(s *Scope, args []any) (any, error) {
	a, b, err := setOperands("SymmetricDifference", args)
	if err != nil {
		return nil, err
	}
	na := make([]any, 0, len(a))
	for _, v := range a {
		na = append(na, setElement(v))
	}
	nb := make([]any, 0, len(b))
	for _, v := range b {
		nb = append(nb, setElement(v))
	}
	out := []any{}
	for _, v := range na {
		if !containsValue(s, nb, v) && !containsValue(s, out, v) {
			out = append(out, v)
		}
	}
	for _, v := range nb {
		if !containsValue(s, na, v) && !containsValue(s, out, v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// fnDistinct implements Distinct: first occurrence of each element, with
// null and undefined collapsing into a single Undefined member.
func fnDistinct(s *Scope, args []any) (any, error) {
	arr, ok := asArray(arg(args, 0))
	if !ok {
		return nil, types.NewFunctionError("Distinct", "Expected array but got %s.", typeName(arg(args, 0)))
	}
	out := []any{}
	for _, v := range arr {
		out = distinctAppend(s, out, v)
	}
	return out, nil
}
