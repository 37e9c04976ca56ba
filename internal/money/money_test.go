package money

import (
	"encoding/json"
	"testing"
)

func TestIsMoney(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected bool
	}{
		{name: "value form", in: Money{Amount: 10, Currency: "EUR"}, expected: true},
		{name: "pointer form", in: &Money{Amount: 10, Currency: "EUR"}, expected: true},
		{name: "plain number", in: 10.0, expected: false},
		{name: "nil", in: nil, expected: false},
		{name: "money-shaped map is not money", in: map[string]any{"amount": 10.0, "currency": "EUR"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMoney(tt.in); got != tt.expected {
				t.Errorf("IsMoney(%v) = %v, expected %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestAmount(t *testing.T) {
	if got := Amount(Money{Amount: 12.5, Currency: "USD"}); got != 12.5 {
		t.Errorf("Amount() = %v, expected 12.5", got)
	}
	if got := Amount(&Money{Amount: -3, Currency: "USD"}); got != -3 {
		t.Errorf("Amount() = %v, expected -3", got)
	}
	if got := Amount((*Money)(nil)); got != 0 {
		t.Errorf("Amount(nil pointer) = %v, expected 0", got)
	}
}

func TestFromMap(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected Money
		ok       bool
	}{
		{
			name:     "canonical shape",
			in:       map[string]any{"amount": 99.95, "currency": "EUR"},
			expected: Money{Amount: 99.95, Currency: "EUR"},
			ok:       true,
		},
		{name: "extra key rejected", in: map[string]any{"amount": 1.0, "currency": "EUR", "note": "x"}, ok: false},
		{name: "missing currency", in: map[string]any{"amount": 1.0, "other": "EUR"}, ok: false},
		{name: "amount not a number", in: map[string]any{"amount": "1", "currency": "EUR"}, ok: false},
		{name: "currency not a string", in: map[string]any{"amount": 1.0, "currency": 978.0}, ok: false},
		{name: "not a map", in: "EUR 1.00", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromMap(tt.in)
			if ok != tt.ok {
				t.Fatalf("FromMap() ok = %v, expected %v", ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("FromMap() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var decoded any
	if err := json.Unmarshal([]byte(`{"amount": 42.42, "currency": "GBP"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	m, ok := FromMap(decoded)
	if !ok {
		t.Fatal("FromMap() should recognize decoded JSON")
	}
	if m.Amount != 42.42 || m.Currency != "GBP" {
		t.Errorf("FromMap() = %+v", m)
	}
}
