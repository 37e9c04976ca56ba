// Package date provides the date/datetime calculation abstraction of the
// expression runtime: a capability interface, a default implementation over
// the host clock, and an adapter that composes a host-supplied calculator
// with the default one.
package date

import (
	"fmt"

	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Calculator abstraction.
 *
 * Two value kinds flow through rule expressions: Date (a calendar day with
 * no time-of-day) and DateTime (an absolute instant whose calendar fields
 * are resolved against a caller-supplied zone id). Operands are typed any
 * because a host application may plug in its own high-precision calculator
 * with its own representations; the Adapter probes IsDate/IsDateTime per
 * operand and dispatches to whichever calculator recognizes it.
 *
 * Field semantics (the intricate part):
 *   - "with" sets one field. Setting YEAR or MONTH clamps the day-of-month
 *     to the end of the resulting month; setting DAY_OF_MONTH never clamps
 *     (out-of-range is a hard error).
 *   - "add" carries overflow into higher-order fields; YEAR/MONTH addition
 *     clamps on the original day-of-month.
 *   - "difference" is negative iff the first operand is chronologically
 *     later. MONTH difference credits a partial month only when the later
 *     date's day-of-month >= the earlier date's.
 */

// Field identifies one calendar or clock field.
// YEAR, MONTH and DAY_OF_MONTH form the closed date-field set; the clock
// fields extend it to the closed datetime-field set. No other field exists.
type Field int

// Calendar and clock fields, in significance order.
const (
	Year Field = iota
	Month
	DayOfMonth
	Hour
	Minute
	Second
)

// String implements fmt.Stringer with the canonical field names.
func (f Field) String() string {
	switch f {
	case Year:
		return "YEAR"
	case Month:
		return "MONTH"
	case DayOfMonth:
		return "DAY_OF_MONTH"
	case Hour:
		return "HOUR"
	case Minute:
		return "MINUTE"
	case Second:
		return "SECOND"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// IsDateField reports membership in the closed date-field set.
func (f Field) IsDateField() bool {
	return f == Year || f == Month || f == DayOfMonth
}

// IsDateTimeField reports membership in the closed datetime-field set.
func (f Field) IsDateTimeField() bool {
	return f >= Year && f <= Second
}

// Calculator is the capability interface every date operation of the
// function library is written against. Operands are any so custom
// representations can flow through; each implementation recognizes its own
// via IsDate/IsDateTime and rejects everything else.
type Calculator interface {
	// IsDate reports whether v is a date representation of this calculator.
	IsDate(v any) bool
	// IsDateTime reports whether v is a datetime representation of this calculator.
	IsDateTime(v any) bool

	// CreateDate parses a strict YYYY-MM-DD literal.
	CreateDate(iso string) (any, error)
	// CreateDateFields builds a date from validated calendar fields.
	CreateDateFields(year, month, day int) (any, error)
	// CreateDateTime parses an ISO datetime literal. A literal with no
	// offset requires zoneID (local wall clock in that zone); a literal
	// with a 'Z' suffix forbids zoneID (UTC instant).
	CreateDateTime(iso, zoneID string) (any, error)
	// CreateDateTimeFields builds a datetime from explicit fields
	// interpreted as wall-clock time in zoneID (mandatory).
	CreateDateTimeFields(year, month, day, hour, minute, second int, zoneID string) (any, error)

	// Today returns the current date in zoneID, time-of-day truncated.
	Today(zoneID string) (any, error)
	// Now returns the current instant as a datetime.
	Now() any

	// GetDateField extracts a date field (1-based year/month/day).
	GetDateField(v any, f Field) (int, error)
	// GetDateTimeField extracts a datetime field resolved in zoneID
	// (1-based calendar fields, 0-based clock fields).
	GetDateTimeField(v any, f Field, zoneID string) (int, error)

	// WithDateField sets one date field (see package comment for clamping).
	WithDateField(v any, f Field, value int) (any, error)
	// WithDateTimeField sets one datetime field resolved in zoneID.
	WithDateTimeField(v any, f Field, value int, zoneID string) (any, error)

	// AddDateField adds a signed amount to a date field with carry.
	AddDateField(v any, f Field, amount int) (any, error)
	// AddDateTimeField adds a signed amount to a datetime field in zoneID.
	AddDateTimeField(v any, f Field, amount int, zoneID string) (any, error)

	// DifferenceBetweenDates computes the signed elapsed YEAR/MONTH/
	// DAY_OF_MONTH count from v1 to v2 (negative iff v1 is later).
	DifferenceBetweenDates(v1, v2 any, f Field) (int, error)

	// ToDateTime converts a date to midnight local time in zoneID.
	ToDateTime(v any, zoneID string) (any, error)
	// ToDate truncates a datetime's time-of-day in zoneID.
	ToDate(v any, zoneID string) (any, error)
}

// Calendar field domains. Year 9999 is the upper bound of the supported
// field range; the strict 4-digit literal format cannot express more.
const (
	MinYear = 1
	MaxYear = 9999
)

// daysInMonth returns the day count of a month, leap-year aware.
func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// isLeapYear implements the Gregorian leap rule.
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// validateFieldValue checks a field value against its legal domain before
// any mutation is attempted. DAY_OF_MONTH is only range-checked here; the
// month-specific bound is enforced by the operation that knows the month.
func validateFieldValue(f Field, value int) error {
	var min, max int
	switch f {
	case Year:
		min, max = MinYear, MaxYear
	case Month:
		min, max = 1, 12
	case DayOfMonth:
		min, max = 1, 31
	case Hour:
		min, max = 0, 23
	case Minute, Second:
		min, max = 0, 59
	default:
		return fmt.Errorf("unknown field %v: %w", f, types.ErrFieldOutOfRange)
	}
	if value < min || value > max {
		return fmt.Errorf("%v value %d outside [%d, %d]: %w", f, value, min, max, types.ErrFieldOutOfRange)
	}
	return nil
}

// notCompatible builds the contractual error for an operand no calculator
// recognizes.
func notCompatible(v any) error {
	return fmt.Errorf("value of type %T is %w", v, types.ErrNotDateCompatible)
}
