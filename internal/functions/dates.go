package functions

import (
	"fmt"
	"strings"

	"github.com/gavelhq/gavel/internal/date"
	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Date and datetime functions.
 *
 * All calendar work delegates to the session calculator; the library owns
 * only argument discipline and the session zone. Functions accepting
 * either kind probe IsDate/IsDateTime and dispatch, so custom calculator
 * representations flow through untouched.
 *
 * The expression compiler resolves overloads by arity at parse time
 * (Date(literal) vs Date(y, m, d)); here that surfaces as an argument
 * count switch, never runtime shape guessing beyond it.
 */

// sessionZone resolves the zone id handed to calculators that require one.
func sessionZone(s *Scope) string {
	if s.ZoneID == "" {
		return date.SystemZone
	}
	return s.ZoneID
}

// dateOperand fetches a mandatory operand recognized as a date or datetime.
func dateOperand(s *Scope, function string, args []any, position int) (any, error) {
	v := arg(args, position-1)
	if types.IsMissing(v) {
		return nil, types.MandatoryError(function, position)
	}
	if !s.Calculator.IsDate(v) && !s.Calculator.IsDateTime(v) {
		return nil, types.NewFunctionError(function, "Value of type %s is not compatible with date calculations.", typeName(v))
	}
	return v, nil
}

// getField extracts a calendar/clock field from either kind.
func getField(s *Scope, function string, v any, f date.Field) (any, error) {
	var n int
	var err error
	switch {
	case s.Calculator.IsDate(v):
		n, err = s.Calculator.GetDateField(v, f)
	default:
		n, err = s.Calculator.GetDateTimeField(v, f, s.ZoneID)
	}
	if err != nil {
		return nil, types.WrapFunctionError(function, err)
	}
	return float64(n), nil
}

// withField sets a calendar field on either kind.
func withField(s *Scope, function string, args []any, f date.Field) (any, error) {
	v, err := dateOperand(s, function, args, 1)
	if err != nil {
		return nil, err
	}
	fv := arg(args, 1)
	if types.IsMissing(fv) {
		return nil, types.MandatoryError(function, 2)
	}
	value, err := asInt(function, fv)
	if err != nil {
		return nil, err
	}
	var out any
	if s.Calculator.IsDate(v) {
		out, err = s.Calculator.WithDateField(v, f, value)
	} else {
		out, err = s.Calculator.WithDateTimeField(v, f, value, s.ZoneID)
	}
	if err != nil {
		return nil, types.WrapFunctionError(function, err)
	}
	return out, nil
}

// plusField adds a signed amount to a field on either kind. Clock fields
// require a datetime operand.
func plusField(s *Scope, function string, args []any, f date.Field) (any, error) {
	v, err := dateOperand(s, function, args, 1)
	if err != nil {
		return nil, err
	}
	av := arg(args, 1)
	if types.IsMissing(av) {
		return nil, types.MandatoryError(function, 2)
	}
	amount, err := asInt(function, av)
	if err != nil {
		return nil, err
	}
	var out any
	if s.Calculator.IsDate(v) {
		if !f.IsDateField() {
			return nil, types.NewFunctionError(function, "Field %v requires a datetime, got a date.", f)
		}
		out, err = s.Calculator.AddDateField(v, f, amount)
	} else {
		out, err = s.Calculator.AddDateTimeField(v, f, amount, s.ZoneID)
	}
	if err != nil {
		return nil, types.WrapFunctionError(function, err)
	}
	return out, nil
}

// between computes the signed field difference of two mandatory operands.
func between(s *Scope, function string, args []any, f date.Field) (any, error) {
	d1, err := dateOperand(s, function, args, 1)
	if err != nil {
		return nil, err
	}
	d2, err := dateOperand(s, function, args, 2)
	if err != nil {
		return nil, err
	}
	n, err := s.Calculator.DifferenceBetweenDates(d1, d2, f)
	if err != nil {
		return nil, types.WrapFunctionError(function, err)
	}
	return float64(n), nil
}

// fnDate implements Date(literal) and Date(year, month, day).
func fnDate(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return nil, types.MandatoryError("Date", 1)
	}
	if iso, ok := v.(string); ok {
		out, err := s.Calculator.CreateDate(iso)
		if err != nil {
			return nil, types.WrapFunctionError("Date", err)
		}
		return out, nil
	}
	year, err := asInt("Date", v)
	if err != nil {
		return nil, err
	}
	mv := arg(args, 1)
	if types.IsMissing(mv) {
		return nil, types.MandatoryError("Date", 2)
	}
	month, err := asInt("Date", mv)
	if err != nil {
		return nil, err
	}
	dv := arg(args, 2)
	if types.IsMissing(dv) {
		return nil, types.MandatoryError("Date", 3)
	}
	day, err := asInt("Date", dv)
	if err != nil {
		return nil, err
	}
	out, err := s.Calculator.CreateDateFields(year, month, day)
	if err != nil {
		return nil, types.WrapFunctionError("Date", err)
	}
	return out, nil
}

// fnDateTime implements DateTime(literal) and DateTime(y, m, d, h, mi, s).
// A 'Z'-suffixed literal is an absolute UTC instant and takes no zone; any
// other literal is wall-clock time in the session zone.
func fnDateTime(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return nil, types.MandatoryError("DateTime", 1)
	}
	if iso, ok := v.(string); ok {
		zone := ""
		if !strings.HasSuffix(iso, "Z") {
			zone = sessionZone(s)
		}
		out, err := s.Calculator.CreateDateTime(iso, zone)
		if err != nil {
			return nil, types.WrapFunctionError("DateTime", err)
		}
		return out, nil
	}
	fields := make([]int, 6)
	for i := 0; i < 6; i++ {
		fv := arg(args, i)
		if types.IsMissing(fv) {
			return nil, types.MandatoryError("DateTime", i+1)
		}
		n, err := asInt("DateTime", fv)
		if err != nil {
			return nil, err
		}
		fields[i] = n
	}
	out, err := s.Calculator.CreateDateTimeFields(fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], sessionZone(s))
	if err != nil {
		return nil, types.WrapFunctionError("DateTime", err)
	}
	return out, nil
}

// fnToday implements Today: the current date in the session zone.
func fnToday(s *Scope, args []any) (any, error) {
	out, err := s.Calculator.Today(s.ZoneID)
	if err != nil {
		return nil, types.WrapFunctionError("Today", err)
	}
	return out, nil
}

// fnNow implements Now: the current instant.
func fnNow(s *Scope, args []any) (any, error) {
	return s.Calculator.Now(), nil
}

// fieldGetter builds the Get* implementations.
func fieldGetter(function string, f date.Field) Implementation {
	return func(s *Scope, args []any) (any, error) {
		v, err := dateOperand(s, function, args, 1)
		if err != nil {
			return nil, err
		}
		return getField(s, function, v, f)
	}
}

// fieldSetter builds the With* implementations.
func fieldSetter(function string, f date.Field) Implementation {
	return func(s *Scope, args []any) (any, error) {
		return withField(s, function, args, f)
	}
}

// fieldAdder builds the Plus* implementations.
func fieldAdder(function string, f date.Field) Implementation {
	return func(s *Scope, args []any) (any, error) {
		return plusField(s, function, args, f)
	}
}

// fieldDifference builds the NumberOf*Between implementations.
func fieldDifference(function string, f date.Field) Implementation {
	return func(s *Scope, args []any) (any, error) {
		return between(s, function, args, f)
	}
}

// fnIsDateBetween implements IsDateBetween(value, start, end): inclusive
// instant containment.
func fnIsDateBetween(s *Scope, args []any) (any, error) {
	v, err := dateOperand(s, "IsDateBetween", args, 1)
	if err != nil {
		return nil, err
	}
	start, err := dateOperand(s, "IsDateBetween", args, 2)
	if err != nil {
		return nil, err
	}
	end, err := dateOperand(s, "IsDateBetween", args, 3)
	if err != nil {
		return nil, err
	}
	lo, err := compareOrder(s, "IsDateBetween", v, start)
	if err != nil {
		return nil, err
	}
	hi, err := compareOrder(s, "IsDateBetween", v, end)
	if err != nil {
		return nil, err
	}
	return lo >= 0 && hi <= 0, nil
}

// fnAsDate implements AsDate: datetime truncated to its calendar day in
// the session zone.
func fnAsDate(s *Scope, args []any) (any, error) {
	v, err := dateOperand(s, "AsDate", args, 1)
	if err != nil {
		return nil, err
	}
	out, err := s.Calculator.ToDate(v, s.ZoneID)
	if err != nil {
		return nil, types.WrapFunctionError("AsDate", err)
	}
	return out, nil
}

// fnAsDateTime implements AsDateTime: date promoted to midnight in the
// session zone.
func fnAsDateTime(s *Scope, args []any) (any, error) {
	v, err := dateOperand(s, "AsDateTime", args, 1)
	if err != nil {
		return nil, err
	}
	out, err := s.Calculator.ToDateTime(v, s.ZoneID)
	if err != nil {
		return nil, types.WrapFunctionError("AsDateTime", err)
	}
	return out, nil
}

// formatTokens are matched longest-first at each position; any unmatched
// byte passes through verbatim as a separator.
var formatTokens = []string{"YYYY", "YY", "MM", "DD"}

// fnFormat implements Format(date, pattern="YYYY-MM-DD"): token-based
// calendar formatting.
func fnFormat(s *Scope, args []any) (any, error) {
	v, err := dateOperand(s, "Format", args, 1)
	if err != nil {
		return nil, err
	}
	pattern := "YYYY-MM-DD"
	if pv := arg(args, 1); !types.IsMissing(pv) {
		pattern, err = asString("Format", pv)
		if err != nil {
			return nil, err
		}
	}

	fields := map[string]int{}
	for token, f := range map[string]date.Field{"YYYY": date.Year, "MM": date.Month, "DD": date.DayOfMonth} {
		n, err := getField(s, "Format", v, f)
		if err != nil {
			return nil, err
		}
		fields[token] = int(n.(float64))
	}

	var sb strings.Builder
	for i := 0; i < len(pattern); {
		matched := false
		for _, token := range formatTokens {
			if strings.HasPrefix(pattern[i:], token) {
				switch token {
				case "YYYY":
					fmt.Fprintf(&sb, "%04d", fields["YYYY"])
				case "YY":
					fmt.Fprintf(&sb, "%02d", fields["YYYY"]%100)
				case "MM":
					fmt.Fprintf(&sb, "%02d", fields["MM"])
				case "DD":
					fmt.Fprintf(&sb, "%02d", fields["DD"])
				}
				i += len(token)
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteByte(pattern[i])
			i++
		}
	}
	return sb.String(), nil
}
