package functions

import (
	"reflect"
	"time"

	"github.com/gavelhq/gavel/internal/date"
	"github.com/gavelhq/gavel/internal/number"
	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Native operator functions.
 *
 * The expression compiler lowers infix operators to these underscore-named
 * functions. Equality unifies null and undefined into one missing value
 * and compares dates by instant; ordering requires both operands to
 * already be same-kind comparable (number or date) and errors otherwise.
 *
 * Why function-based: operators are plain registry entries like any other
 * function, so the binding layer needs no special operator path.
 */

// valueEqual implements the `_eq` unification: missing == missing, numbers
// compare after normalization (Money by amount), dates and datetimes by
// instant, arrays element-wise, everything else by strict equality.
func valueEqual(s *Scope, a, b any) bool {
	aMissing, bMissing := types.IsMissing(a), types.IsMissing(b)
	if aMissing || bMissing {
		return aMissing && bMissing
	}
	if isNumeric(a) && isNumeric(b) {
		na, _ := asNumber("_eq", a)
		nb, _ := asNumber("_eq", b)
		return s.Normalize(na) == s.Normalize(nb)
	}
	if isNumeric(a) != isNumeric(b) {
		return false
	}
	if ia, ok := instantOf(s, a); ok {
		ib, ok := instantOf(s, b)
		return ok && ia.Equal(ib)
	}
	switch x := a.(type) {
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !valueEqual(s, x[i], y[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// instantOf resolves any date or datetime representation to its instant.
func instantOf(s *Scope, v any) (time.Time, bool) {
	if !s.Calculator.IsDate(v) && !s.Calculator.IsDateTime(v) {
		return time.Time{}, false
	}
	d, err := date.ToDefault(s.Calculator, v)
	if err != nil {
		return time.Time{}, false
	}
	switch x := d.(type) {
	case date.Date:
		return x.Time(), true
	case date.DateTime:
		return x.Time(), true
	default:
		return time.Time{}, false
	}
}

// fnEq implements `_eq`.
func fnEq(s *Scope, args []any) (any, error) {
	return valueEqual(s, arg(args, 0), arg(args, 1)), nil
}

// fnNeq implements `_neq`.
func fnNeq(s *Scope, args []any) (any, error) {
	return !valueEqual(s, arg(args, 0), arg(args, 1)), nil
}

// compareOrder implements the shared ordering contract of _lt/_lte/_mt/_mte.
// Returns -1, 0 or 1. Both operands are mandatory and must already be
// same-kind comparable: numbers (Money included) or dates.
func compareOrder(s *Scope, function string, a, b any) (int, error) {
	if types.IsMissing(a) {
		return 0, types.MandatoryError(function, 1)
	}
	if types.IsMissing(b) {
		return 0, types.MandatoryError(function, 2)
	}
	if isNumeric(a) && isNumeric(b) {
		na, err := asNumber(function, a)
		if err != nil {
			return 0, err
		}
		nb, err := asNumber(function, b)
		if err != nil {
			return 0, err
		}
		na, nb = s.Normalize(na), s.Normalize(nb)
		switch {
		case na < nb:
			return -1, nil
		case na > nb:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if ia, ok := instantOf(s, a); ok {
		if ib, ok := instantOf(s, b); ok {
			switch {
			case ia.Before(ib):
				return -1, nil
			case ia.After(ib):
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return 0, types.NewFunctionError(function, "Operands must both be numbers or both be dates, got %s and %s.", typeName(a), typeName(b))
}

// fnLt implements `_lt`.
func fnLt(s *Scope, args []any) (any, error) {
	c, err := compareOrder(s, "_lt", arg(args, 0), arg(args, 1))
	if err != nil {
		return nil, err
	}
	return c < 0, nil
}

// fnLte implements `_lte`.
func fnLte(s *Scope, args []any) (any, error) {
	c, err := compareOrder(s, "_lte", arg(args, 0), arg(args, 1))
	if err != nil {
		return nil, err
	}
	return c <= 0, nil
}

// fnMt implements `_mt` (more-than).
func fnMt(s *Scope, args []any) (any, error) {
	c, err := compareOrder(s, "_mt", arg(args, 0), arg(args, 1))
	if err != nil {
		return nil, err
	}
	return c > 0, nil
}

// fnMte implements `_mte`.
func fnMte(s *Scope, args []any) (any, error) {
	c, err := compareOrder(s, "_mte", arg(args, 0), arg(args, 1))
	if err != nil {
		return nil, err
	}
	return c >= 0, nil
}

// fnIn implements `_in`: membership with _eq unification. A missing array
// is false, a present non-array is an error.
func fnIn(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return false, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, types.NewFunctionError("_in", "Expected array but got %s.", typeName(v))
	}
	needle := arg(args, 1)
	for _, elem := range arr {
		if valueEqual(s, elem, needle) {
			return true, nil
		}
	}
	return false, nil
}

// binaryOperands coerces the two mandatory numeric operands of an
// arithmetic operator.
func binaryOperands(function string, args []any) (float64, float64, error) {
	a := arg(args, 0)
	if types.IsMissing(a) {
		return 0, 0, types.MandatoryError(function, 1)
	}
	b := arg(args, 1)
	if types.IsMissing(b) {
		return 0, 0, types.MandatoryError(function, 2)
	}
	na, err := asNumber(function, a)
	if err != nil {
		return 0, 0, err
	}
	nb, err := asNumber(function, b)
	if err != nil {
		return 0, 0, err
	}
	return na, nb, nil
}

// fnAdd implements `_add`.
func fnAdd(s *Scope, args []any) (any, error) {
	a, b, err := binaryOperands("_add", args)
	if err != nil {
		return nil, err
	}
	return number.Add(a, b), nil
}

// fnSub implements `_sub`.
func fnSub(s *Scope, args []any) (any, error) {
	a, b, err := binaryOperands("_sub", args)
	if err != nil {
		return nil, err
	}
	return number.Sub(a, b), nil
}

// fnMult implements `_mult`.
func fnMult(s *Scope, args []any) (any, error) {
	a, b, err := binaryOperands("_mult", args)
	if err != nil {
		return nil, err
	}
	return number.Mult(a, b), nil
}

// fnDiv implements `_div`. The zero-divisor message is contractual.
func fnDiv(s *Scope, args []any) (any, error) {
	a, b, err := binaryOperands("_div", args)
	if err != nil {
		return nil, err
	}
	q, err := number.Div(a, b)
	if err != nil {
		return nil, types.NewFunctionError("_div", "Division by zero. Rule will be ignored due to missing data.")
	}
	return q, nil
}

// fnMod implements `_mod`: truncated-division remainder, sign follows the
// dividend.
func fnMod(s *Scope, args []any) (any, error) {
	a, b, err := binaryOperands("_mod", args)
	if err != nil {
		return nil, err
	}
	r, err := number.Mod(a, b)
	if err != nil {
		return nil, types.NewFunctionError("_mod", "Division by zero. Rule will be ignored due to missing data.")
	}
	return r, nil
}

// fnPow implements `_pow`: exponent truncated toward zero.
func fnPow(s *Scope, args []any) (any, error) {
	a, b, err := binaryOperands("_pow", args)
	if err != nil {
		return nil, err
	}
	p, err := number.Pow(a, b)
	if err != nil {
		return nil, types.NewFunctionError("_pow", "Division by zero. Rule will be ignored due to missing data.")
	}
	return p, nil
}

// fnNeg implements `_neg`: unary numeric negation.
func fnNeg(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return nil, types.MandatoryError("_neg", 1)
	}
	n, err := asNumber("_neg", v)
	if err != nil {
		return nil, err
	}
	return number.Sub(0, n), nil
}

// fnNot implements `_not`: strict boolean negation.
func fnNot(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return nil, types.MandatoryError("_not", 1)
	}
	b, ok := v.(bool)
	if !ok {
		return nil, types.NewFunctionError("_not", "Expected boolean but got %s.", typeName(v))
	}
	return !b, nil
}
