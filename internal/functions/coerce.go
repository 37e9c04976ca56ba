package functions

import (
	"fmt"
	"math"

	"github.com/gavelhq/gavel/internal/date"
	"github.com/gavelhq/gavel/internal/money"
	"github.com/gavelhq/gavel/internal/number"
	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Coercion discipline.
 *
 * The whole library follows one contract: null and Undefined are
 * interchangeable "missing" unless a parameter is declared mandatory, and
 * a present value of the wrong kind is always an error naming the received
 * type, never a silent conversion. The narrow documented exceptions
 * (numeric second parameter of the string containment functions) are
 * implemented where they apply, not here.
 *
 * Money is recognized ahead of plain numbers everywhere a number is
 * expected, both as the native Money type and as its decoded-JSON map
 * shape.
 */

// typeName renders the runtime kind of a value for error messages.
func typeName(v any) string {
	switch x := v.(type) {
	case nil:
		return "Null"
	case types.UndefinedValue:
		return "Undefined"
	case bool:
		return "Boolean"
	case float64, int, int64:
		return "Number"
	case string:
		return "String"
	case []any:
		return "Array"
	case date.Date:
		return "Date"
	case date.DateTime:
		return "DateTime"
	default:
		if money.IsMoney(x) {
			return "Money"
		}
		if _, ok := money.FromMap(x); ok {
			return "Money"
		}
		return fmt.Sprintf("%T", v)
	}
}

// asNumber coerces a present value to float64. Money contributes its
// amount; everything non-numeric errors with the received type.
func asNumber(function string, v any) (float64, error) {
	if m, ok := moneyValue(v); ok {
		return m, nil
	}
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, types.NewFunctionError(function, "Parameter is not a finite number.")
		}
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, types.NewFunctionError(function, "Expected number but got %s.", typeName(v))
	}
}

// moneyValue extracts the amount of either Money form.
func moneyValue(v any) (float64, bool) {
	if money.IsMoney(v) {
		return money.Amount(v), true
	}
	if m, ok := money.FromMap(v); ok {
		return m.Amount, true
	}
	return 0, false
}

// isNumeric reports whether v would pass asNumber.
func isNumeric(v any) bool {
	if _, ok := moneyValue(v); ok {
		return true
	}
	switch v.(type) {
	case float64, int, int64:
		return true
	default:
		return false
	}
}

// asString coerces a present value to string, rejecting other kinds.
func asString(function string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", types.NewFunctionError(function, "Expected string but got %s.", typeName(v))
	}
	return s, nil
}

// asInt coerces a present numeric value to an integer index/amount.
func asInt(function string, v any) (int, error) {
	n, err := asNumber(function, v)
	if err != nil {
		return 0, err
	}
	return int(math.Trunc(n)), nil
}

// asArray views a value as an element slice. Missing normalizes to an
// empty slice; a present non-array reports ok=false so the caller can
// raise its function-specific error.
func asArray(v any) ([]any, bool) {
	if types.IsMissing(v) {
		return nil, true
	}
	arr, ok := v.([]any)
	return arr, ok
}

// truthy implements host-language boolean coercion: missing and false are
// false, zero numbers and empty strings are false, everything else is true.
func truthy(v any) bool {
	if types.IsMissing(v) {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case int64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

// stringifyLenient renders a string-or-number operand for the containment
// functions' historical leniency: numbers stringify through the decimal
// normalizer, strings pass through, anything else reports ok=false.
func stringifyLenient(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		return number.ToString(x), true
	case int:
		return number.ToString(float64(x)), true
	case int64:
		return number.ToString(float64(x)), true
	default:
		return "", false
	}
}
