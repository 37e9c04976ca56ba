package functions

import (
	"strings"

	"github.com/gavelhq/gavel/internal/number"
	"github.com/gavelhq/gavel/internal/types"
)

/*
 * String functions.
 *
 * Strict on the primary operand (a present non-string errors), lenient on
 * the documented exceptions: the search parameter of the containment
 * functions accepts a number and stringifies it through the decimal
 * normalizer. Padding is byte-oriented like the historical contract; rule
 * data is ASCII identifiers and codes.
 */

// fnSubstring implements Substring(value, begin, end?). Omitted end takes
// the suffix from begin. Bounds must satisfy 0 <= begin <= end <= length;
// any violation reports both indices.
func fnSubstring(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return nil, types.MandatoryError("Substring", 1)
	}
	str, err := asString("Substring", v)
	if err != nil {
		return nil, err
	}
	bv := arg(args, 1)
	if types.IsMissing(bv) {
		return nil, types.MandatoryError("Substring", 2)
	}
	begin, err := asInt("Substring", bv)
	if err != nil {
		return nil, err
	}
	end := len(str)
	if ev := arg(args, 2); !types.IsMissing(ev) {
		end, err = asInt("Substring", ev)
		if err != nil {
			return nil, err
		}
	}
	if begin < 0 || begin > end || end > len(str) {
		return nil, types.NewFunctionError("Substring",
			"Invalid bounds: begin %d and end %d must satisfy 0 <= begin <= end <= %d.", begin, end, len(str))
	}
	return str[begin:end], nil
}

// pad implements the shared PadLeft/PadRight contract: a missing base is
// the empty string, the filler defaults to a single space and must be
// exactly one character, and a base already at least the target length
// passes through unchanged.
func pad(function string, args []any, left bool) (any, error) {
	base := ""
	if v := arg(args, 0); !types.IsMissing(v) {
		var err error
		base, err = asString(function, v)
		if err != nil {
			return nil, err
		}
	}
	filler := " "
	if v := arg(args, 1); !types.IsMissing(v) {
		var err error
		filler, err = asString(function, v)
		if err != nil {
			return nil, err
		}
	}
	if len(filler) != 1 {
		return nil, types.NewFunctionError(function, "Filler must be exactly one character, got '%s'.", filler)
	}
	length := 0
	if v := arg(args, 2); !types.IsMissing(v) {
		var err error
		length, err = asInt(function, v)
		if err != nil {
			return nil, err
		}
	}
	if len(base) >= length {
		return base, nil
	}
	padding := strings.Repeat(filler, length-len(base))
	if left {
		return padding + base, nil
	}
	return base + padding, nil
}

// fnPadLeft implements PadLeft.
func fnPadLeft(s *Scope, args []any) (any, error) {
	return pad("PadLeft", args, true)
}

// fnPadRight implements PadRight.
func fnPadRight(s *Scope, args []any) (any, error) {
	return pad("PadRight", args, false)
}

// containment implements the shared StartsWith/EndsWith/Includes contract:
// both parameters mandatory, string subject, string-or-number search term.
func containment(function string, args []any) (subject, search string, err error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return "", "", types.MandatoryError(function, 1)
	}
	subject, err = asString(function, v)
	if err != nil {
		return "", "", err
	}
	sv := arg(args, 1)
	if types.IsMissing(sv) {
		return "", "", types.MandatoryError(function, 2)
	}
	search, ok := stringifyLenient(sv)
	if !ok {
		return "", "", types.NewFunctionError(function, "Expected string but got %s.", typeName(sv))
	}
	return subject, search, nil
}

// fnStartsWith implements StartsWith.
func fnStartsWith(s *Scope, args []any) (any, error) {
	subject, search, err := containment("StartsWith", args)
	if err != nil {
		return nil, err
	}
	return strings.HasPrefix(subject, search), nil
}

// fnEndsWith implements EndsWith.
func fnEndsWith(s *Scope, args []any) (any, error) {
	subject, search, err := containment("EndsWith", args)
	if err != nil {
		return nil, err
	}
	return strings.HasSuffix(subject, search), nil
}

// fnIncludes implements Includes over either a string (substring test) or
// an array (membership under _eq unification).
func fnIncludes(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return nil, types.MandatoryError("Includes", 1)
	}
	if arr, ok := v.([]any); ok {
		needle := arg(args, 1)
		if types.IsMissing(needle) {
			return nil, types.MandatoryError("Includes", 2)
		}
		return containsValue(s, arr, needle), nil
	}
	subject, search, err := containment("Includes", args)
	if err != nil {
		return nil, err
	}
	return strings.Contains(subject, search), nil
}

// fnUpper implements Upper; missing input yields the empty string.
func fnUpper(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return "", nil
	}
	str, err := asString("Upper", v)
	if err != nil {
		return nil, err
	}
	return strings.ToUpper(str), nil
}

// fnLower implements Lower; missing input yields the empty string.
func fnLower(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return "", nil
	}
	str, err := asString("Lower", v)
	if err != nil {
		return nil, err
	}
	return strings.ToLower(str), nil
}

// fnTrim implements Trim; missing input yields the empty string.
func fnTrim(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return "", nil
	}
	str, err := asString("Trim", v)
	if err != nil {
		return nil, err
	}
	return strings.TrimSpace(str), nil
}

// fnIsBlank implements IsBlank: true for missing input or a string that is
// empty after trimming.
func fnIsBlank(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return true, nil
	}
	str, err := asString("IsBlank", v)
	if err != nil {
		return nil, err
	}
	return strings.TrimSpace(str) == "", nil
}

// fnConcat implements Concat: variadic string concatenation. Missing
// operands contribute nothing; numbers stringify through the decimal
// normalizer.
func fnConcat(s *Scope, args []any) (any, error) {
	var sb strings.Builder
	for i, v := range args {
		if types.IsMissing(v) {
			continue
		}
		str, ok := stringifyLenient(v)
		if !ok {
			return nil, types.NewFunctionError("Concat", "Expected string but got %s at position %d.", typeName(v), i+1)
		}
		sb.WriteString(str)
	}
	return sb.String(), nil
}

// fnNumberToString implements NumberToString: the decimal-normalized
// rendering of a number or money amount. Strings pass through, booleans
// render their literals, missing yields the empty string.
func fnNumberToString(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return "", nil
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		if x {
			return "true", nil
		}
		return "false", nil
	}
	if n, ok := moneyValue(v); ok {
		return number.ToString(n), nil
	}
	n, err := asNumber("NumberToString", v)
	if err != nil {
		return nil, err
	}
	return number.ToString(n), nil
}
