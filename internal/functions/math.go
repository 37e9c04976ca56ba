package functions

import (
	"github.com/gavelhq/gavel/internal/number"
	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Math and aggregate functions.
 *
 * Aggregates over empty or missing collections return Undefined, not zero
 * and not an error: "insufficient data" lets the orchestrator skip the
 * rule instead of failing it. Every result passes back through decimal64
 * normalization, never raw float arithmetic.
 */

// numericElements coerces every element of an aggregate's operand,
// rejecting mixed content with the offending type named.
func numericElements(function string, arr []any) ([]float64, error) {
	out := make([]float64, 0, len(arr))
	for _, v := range arr {
		n, err := asNumber(function, v)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// fnSum implements Sum: decimal-exact accumulation, Undefined on
// insufficient data.
func fnSum(s *Scope, args []any) (any, error) {
	arr, ok := asArray(arg(args, 0))
	if !ok {
		return nil, types.NewFunctionError("Sum", "Expected array but got %s.", typeName(arg(args, 0)))
	}
	if len(arr) == 0 {
		return types.Undefined, nil
	}
	nums, err := numericElements("Sum", arr)
	if err != nil {
		return nil, err
	}
	sum := nums[0]
	for _, n := range nums[1:] {
		sum = number.Add(sum, n)
	}
	return s.Normalize(sum), nil
}

// fnAvg implements Avg: Sum divided by the element count, Undefined on
// insufficient data.
func fnAvg(s *Scope, args []any) (any, error) {
	arr, ok := asArray(arg(args, 0))
	if !ok {
		return nil, types.NewFunctionError("Avg", "Expected array but got %s.", typeName(arg(args, 0)))
	}
	if len(arr) == 0 {
		return types.Undefined, nil
	}
	nums, err := numericElements("Avg", arr)
	if err != nil {
		return nil, err
	}
	sum := nums[0]
	for _, n := range nums[1:] {
		sum = number.Add(sum, n)
	}
	avg, err := number.Div(sum, float64(len(nums)))
	if err != nil {
		return nil, types.WrapFunctionError("Avg", err)
	}
	return avg, nil
}

// extremum implements the shared Min/Max contract: either a single array
// operand or two scalar operands, elements all numbers or all dates, and
// Undefined on insufficient data.
func extremum(s *Scope, function string, args []any, wantMax bool) (any, error) {
	first := arg(args, 0)
	second := arg(args, 1)

	var elems []any
	if arr, isArr := first.([]any); isArr && types.IsMissing(second) {
		elems = arr
	} else if types.IsMissing(first) && types.IsMissing(second) {
		return types.Undefined, nil
	} else {
		if types.IsMissing(first) {
			return nil, types.MandatoryError(function, 1)
		}
		if types.IsMissing(second) {
			return nil, types.MandatoryError(function, 2)
		}
		elems = []any{first, second}
	}
	if len(elems) == 0 {
		return types.Undefined, nil
	}

	numeric := isNumeric(elems[0])
	best := elems[0]
	for _, v := range elems[1:] {
		if isNumeric(v) != numeric {
			return nil, types.NewFunctionError(function,
				"All elements must be of the same type, got %s and %s.", typeName(best), typeName(v))
		}
		c, err := compareOrder(s, function, v, best)
		if err != nil {
			return nil, err
		}
		if (wantMax && c > 0) || (!wantMax && c < 0) {
			best = v
		}
	}
	if numeric {
		n, err := asNumber(function, best)
		if err != nil {
			return nil, err
		}
		return s.Normalize(n), nil
	}
	return best, nil
}

// fnMin implements Min.
func fnMin(s *Scope, args []any) (any, error) {
	return extremum(s, "Min", args, false)
}

// fnMax implements Max.
func fnMax(s *Scope, args []any) (any, error) {
	return extremum(s, "Max", args, true)
}

// unaryNumber coerces the single mandatory numeric operand of the scalar
// math functions.
func unaryNumber(function string, args []any) (float64, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return 0, types.MandatoryError(function, 1)
	}
	return asNumber(function, v)
}

// fnAbs implements Abs.
func fnAbs(s *Scope, args []any) (any, error) {
	n, err := unaryNumber("Abs", args)
	if err != nil {
		return nil, err
	}
	return number.Abs(n), nil
}

// fnSign implements Sign: -1, 0 or 1.
func fnSign(s *Scope, args []any) (any, error) {
	n, err := unaryNumber("Sign", args)
	if err != nil {
		return nil, err
	}
	return number.Sign(n), nil
}

// fnFloor implements Floor: rounding toward negative infinity to an
// integer.
func fnFloor(s *Scope, args []any) (any, error) {
	n, err := unaryNumber("Floor", args)
	if err != nil {
		return nil, err
	}
	return number.Floor(n, 0), nil
}

// fnCeil implements Ceil: rounding toward positive infinity to an integer.
func fnCeil(s *Scope, args []any) (any, error) {
	n, err := unaryNumber("Ceil", args)
	if err != nil {
		return nil, err
	}
	return number.Ceil(n, 0), nil
}

// roundScale reads the optional scale parameter of Round/RoundEven.
func roundScale(function string, args []any) (int, error) {
	v := arg(args, 1)
	if types.IsMissing(v) {
		return 0, nil
	}
	return asInt(function, v)
}

// fnRound implements Round: half-up rounding at an optional scale.
func fnRound(s *Scope, args []any) (any, error) {
	n, err := unaryNumber("Round", args)
	if err != nil {
		return nil, err
	}
	scale, err := roundScale("Round", args)
	if err != nil {
		return nil, err
	}
	return number.Round(n, scale), nil
}

// fnRoundEven implements RoundEven: half-even rounding at an optional
// scale.
func fnRoundEven(s *Scope, args []any) (any, error) {
	n, err := unaryNumber("RoundEven", args)
	if err != nil {
		return nil, err
	}
	scale, err := roundScale("RoundEven", args)
	if err != nil {
		return nil, err
	}
	return number.RoundEven(n, scale), nil
}

// fnSqrt implements Sqrt; negative operands are a range violation.
func fnSqrt(s *Scope, args []any) (any, error) {
	n, err := unaryNumber("Sqrt", args)
	if err != nil {
		return nil, err
	}
	root, err := number.Sqrt(n)
	if err != nil {
		return nil, types.NewFunctionError("Sqrt", "Square root of negative number %v.", n)
	}
	return root, nil
}

// fnNumberSequence implements NumberSequence(from, to, step=1): the
// inclusive decimal-exact sequence. A step that cannot reach the endpoint
// is rejected rather than looping forever.
func fnNumberSequence(s *Scope, args []any) (any, error) {
	from := arg(args, 0)
	if types.IsMissing(from) {
		return nil, types.MandatoryError("NumberSequence", 1)
	}
	to := arg(args, 1)
	if types.IsMissing(to) {
		return nil, types.MandatoryError("NumberSequence", 2)
	}
	nfrom, err := asNumber("NumberSequence", from)
	if err != nil {
		return nil, err
	}
	nto, err := asNumber("NumberSequence", to)
	if err != nil {
		return nil, err
	}
	step := 1.0
	if v := arg(args, 2); !types.IsMissing(v) {
		step, err = asNumber("NumberSequence", v)
		if err != nil {
			return nil, err
		}
	}
	seq, err := number.Sequence(nfrom, nto, step, s.MaxSequence)
	if err != nil {
		return nil, types.WrapFunctionError("NumberSequence", err)
	}
	out := make([]any, len(seq))
	for i, n := range seq {
		out[i] = n
	}
	return out, nil
}
