// Package money provides the tagged monetary value recognized by the
// numeric functions of the expression runtime.
package money

// Money is an {amount, currency} pair. Arithmetic functions treat it
// transparently as a numeric operand by extracting Amount; the currency
// code rides along for the host application and is never interpreted here.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// IsMoney reports whether v carries the Money shape. Both the value and
// pointer forms are recognized so host applications can hand either into
// the data graph.
func IsMoney(v any) bool {
	switch v.(type) {
	case Money, *Money:
		return true
	default:
		return false
	}
}

// Amount extracts the numeric amount of a Money operand.
// Callers must check IsMoney first; a non-Money operand returns 0.
func Amount(v any) float64 {
	switch m := v.(type) {
	case Money:
		return m.Amount
	case *Money:
		if m == nil {
			return 0
		}
		return m.Amount
	default:
		return 0
	}
}

// FromMap recognizes the decoded-JSON shape {"amount": n, "currency": s}.
// JSON data graphs arrive as map[string]any; this lets the coercion layer
// treat such maps as Money without a custom decoder.
func FromMap(v any) (Money, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 2 {
		return Money{}, false
	}
	amount, ok := m["amount"].(float64)
	if !ok {
		return Money{}, false
	}
	currency, ok := m["currency"].(string)
	if !ok {
		return Money{}, false
	}
	return Money{Amount: amount, Currency: currency}, true
}
