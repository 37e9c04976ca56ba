package functions

import (
	"github.com/gavelhq/gavel/internal/types"
)

// fnFromMoney implements FromMoney: the amount of a Money operand.
// Plain numbers, null and undefined pass through unchanged; anything else
// errors with the concrete type name.
func fnFromMoney(s *Scope, args []any) (any, error) {
	v := arg(args, 0)
	if types.IsMissing(v) {
		return v, nil
	}
	if n, ok := moneyValue(v); ok {
		return n, nil
	}
	switch v.(type) {
	case float64, int, int64:
		return v, nil
	default:
		return nil, types.NewFunctionError("FromMoney", "Expected money or number but got %s.", typeName(v))
	}
}
