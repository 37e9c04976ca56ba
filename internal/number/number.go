// Package number implements the decimal normalization layer of the
// expression runtime.
package number

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

/*
 * Decimal normalization and arithmetic.
 *
 * Emulates a 64-bit decimal floating-point type (IEEE-754 Decimal64) over
 * the host's binary float64: every value entering arithmetic is converted
 * to an exact decimal via the float's shortest round-trip representation,
 * then rounded to 16 significant digits with half-even rounding. Every
 * arithmetic result is re-normalized the same way before conversion back,
 * so intermediate precision beyond 16 digits is discarded identically to a
 * decimal64 host.
 *
 * Key invariant: Normalize(Normalize(x)) == Normalize(x). Idempotence is
 * what lets the function library renormalize freely after each operation.
 *
 * Division and square root carry guard digits (scale 40) before the final
 * significant-digit rounding so the 16th digit is decided by the exact
 * quotient, not an early truncation.
 */

// Precision is the significant-digit budget of the emulated decimal64 type.
const Precision = 16

// guardScale is the decimal-place budget for inexact intermediate results
// (division, square root) before significant-digit rounding.
const guardScale = 40

// ErrDivisionByZero indicates an exact-zero divisor. The function library,
// not this package, owns the user-facing message for it.
var ErrDivisionByZero = errors.New("division by zero")

// ErrNegativeSqrt indicates a square root of a negative operand.
var ErrNegativeSqrt = errors.New("square root of negative number")

// Normalize converts a host float64 into the canonical decimal value:
// exact shortest-representation parse, then 16 significant digits, half-even.
// Precondition: n is finite; the coercion layer rejects NaN and infinities.
func Normalize(n float64) decimal.Decimal {
	return roundSignificant(decimal.NewFromFloat(n))
}

// NormalizeFloat is Normalize composed with the float64 conversion. It is
// the default scope normalizer injected into every evaluation session.
func NormalizeFloat(n float64) float64 {
	return ToFloat(Normalize(n))
}

// ToFloat converts a decimal back to the host representation.
func ToFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// roundSignificant rounds d to Precision significant digits, half-even.
// Values already within the budget pass through untouched (idempotence).
func roundSignificant(d decimal.Decimal) decimal.Decimal {
	digits := int32(d.NumDigits())
	if digits <= Precision {
		return d
	}
	// Keep the 16 most significant digits: the least significant retained
	// digit sits at 10^(exponent + digits - 16).
	places := Precision - digits - d.Exponent()
	return d.RoundBank(places)
}

// Add returns a + b under decimal64 semantics.
func Add(a, b float64) float64 {
	return ToFloat(roundSignificant(Normalize(a).Add(Normalize(b))))
}

// Sub returns a - b under decimal64 semantics.
func Sub(a, b float64) float64 {
	return ToFloat(roundSignificant(Normalize(a).Sub(Normalize(b))))
}

// Mult returns a * b under decimal64 semantics.
func Mult(a, b float64) float64 {
	return ToFloat(roundSignificant(Normalize(a).Mul(Normalize(b))))
}

// Div returns a / b under decimal64 semantics.
// An exact-zero divisor returns ErrDivisionByZero; the caller owns the
// contractual message.
func Div(a, b float64) (float64, error) {
	nb := Normalize(b)
	if nb.IsZero() {
		return 0, ErrDivisionByZero
	}
	q := Normalize(a).DivRound(nb, guardScale)
	return ToFloat(roundSignificant(q)), nil
}

// Mod returns the remainder of a / b. The sign follows the dividend,
// matching truncated-division remainder semantics: Mod(-1.0, 0.3) == -0.1.
func Mod(a, b float64) (float64, error) {
	nb := Normalize(b)
	if nb.IsZero() {
		return 0, ErrDivisionByZero
	}
	return ToFloat(roundSignificant(Normalize(a).Mod(nb))), nil
}

// Pow returns a raised to the exponent truncated toward zero, matching
// integer-exponent decimal power semantics. Pow(x, 0) == 1, including x == 0.
func Pow(a, exponent float64) (float64, error) {
	n := int64(math.Trunc(exponent))
	if n == 0 {
		return 1, nil
	}
	neg := n < 0
	if neg {
		n = -n
	}
	base := Normalize(a)
	if neg && base.IsZero() {
		return 0, ErrDivisionByZero
	}
	result := decimal.NewFromInt(1)
	// Binary exponentiation; guard rounding per step keeps the coefficient
	// bounded without disturbing the 16th significant digit of the result.
	for n > 0 {
		if n&1 == 1 {
			result = guardRound(result.Mul(base))
		}
		base = guardRound(base.Mul(base))
		n >>= 1
	}
	if neg {
		result = decimal.NewFromInt(1).DivRound(result, guardScale)
	}
	return ToFloat(roundSignificant(result)), nil
}

// Sqrt returns the square root under decimal64 semantics via Newton
// iteration seeded from the host sqrt.
func Sqrt(a float64) (float64, error) {
	na := Normalize(a)
	if na.Sign() < 0 {
		return 0, ErrNegativeSqrt
	}
	if na.IsZero() {
		return 0, nil
	}
	x := decimal.NewFromFloat(math.Sqrt(a))
	two := decimal.NewFromInt(2)
	// The float64 seed is accurate to ~15 digits; a handful of iterations
	// at guard scale pins the 16th digit.
	for i := 0; i < 6; i++ {
		x = x.Add(na.DivRound(x, guardScale)).DivRound(two, guardScale)
	}
	return ToFloat(roundSignificant(x)), nil
}

// Abs returns the absolute value of the normalized operand.
func Abs(a float64) float64 {
	return ToFloat(Normalize(a).Abs())
}

// Sign returns -1, 0 or 1 for the normalized operand.
func Sign(a float64) float64 {
	return float64(Normalize(a).Sign())
}

// Round rounds to the given scale with half-up (half away from zero)
// rounding, then renormalizes.
func Round(a float64, scale int) float64 {
	return ToFloat(roundSignificant(Normalize(a).Round(int32(scale))))
}

// RoundEven rounds to the given scale with half-even rounding.
func RoundEven(a float64, scale int) float64 {
	return ToFloat(roundSignificant(Normalize(a).RoundBank(int32(scale))))
}

// Floor rounds toward negative infinity at the given scale.
func Floor(a float64, scale int) float64 {
	return ToFloat(Normalize(a).RoundFloor(int32(scale)))
}

// Ceil rounds toward positive infinity at the given scale.
func Ceil(a float64, scale int) float64 {
	return ToFloat(Normalize(a).RoundCeil(int32(scale)))
}

// ToString renders the normalized value in plain decimal notation, never
// exponent form. This is the string conversion used by NumberToString and
// by money amounts.
func ToString(a float64) string {
	return Normalize(a).String()
}

// guardRound bounds an exact intermediate product to guard precision.
func guardRound(d decimal.Decimal) decimal.Decimal {
	digits := int32(d.NumDigits())
	if digits <= 2*Precision {
		return d
	}
	places := 2*Precision - digits - d.Exponent()
	return d.RoundBank(places)
}
