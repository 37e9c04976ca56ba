package types

import (
	"errors"
	"testing"
	"time"
)

func TestIsMissing(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected bool
	}{
		{name: "nil", in: nil, expected: true},
		{name: "undefined sentinel", in: Undefined, expected: true},
		{name: "zero number", in: 0.0, expected: false},
		{name: "empty string", in: "", expected: false},
		{name: "false", in: false, expected: false},
		{name: "empty array", in: []any{}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMissing(tt.in); got != tt.expected {
				t.Errorf("IsMissing(%v) = %v, expected %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestFunctionErrorFormat(t *testing.T) {
	err := NewFunctionError("Sum", "Expected number but got %s.", "String")
	want := "Failed to execute function 'Sum'. Expected number but got String."
	if err.Error() != want {
		t.Errorf("Error() = %q, expected %q", err.Error(), want)
	}
}

func TestWrapFunctionError(t *testing.T) {
	err := WrapFunctionError("NumberSequence", ErrInfiniteSequence)
	if !errors.Is(err, ErrInfiniteSequence) {
		t.Error("wrapped sentinel should survive errors.Is")
	}
	want := "Failed to execute function 'NumberSequence'. would generate infinite sequence"
	if err.Error() != want {
		t.Errorf("Error() = %q, expected %q", err.Error(), want)
	}
}

func TestMandatoryError(t *testing.T) {
	tests := []struct {
		position int
		expected string
	}{
		{position: 1, expected: "Failed to execute function 'Date'. First parameter is mandatory."},
		{position: 2, expected: "Failed to execute function 'Date'. Second parameter is mandatory."},
		{position: 6, expected: "Failed to execute function 'Date'. Sixth parameter is mandatory."},
		{position: 7, expected: "Failed to execute function 'Date'. 7. parameter is mandatory."},
	}

	for _, tt := range tests {
		if got := MandatoryError("Date", tt.position).Error(); got != tt.expected {
			t.Errorf("MandatoryError(%d) = %q, expected %q", tt.position, got, tt.expected)
		}
	}
}

func TestSessionID(t *testing.T) {
	id := NewSessionID()

	parsed, err := ParseSessionID(string(id))
	if err != nil {
		t.Fatalf("ParseSessionID failed on a generated id: %v", err)
	}
	if parsed != id {
		t.Errorf("ParseSessionID = %s, expected %s", parsed, id)
	}

	if _, err := ParseSessionID("not-a-uuid"); err == nil {
		t.Error("expected error for malformed id")
	}

	ts := SessionIDTime(id)
	if ts.IsZero() {
		t.Fatal("generated id should embed a timestamp")
	}
	if d := time.Since(ts); d < -time.Minute || d > time.Minute {
		t.Errorf("embedded timestamp %v is not near now", ts)
	}

	if !SessionIDTime(SessionID("garbage")).IsZero() {
		t.Error("invalid id should yield the zero time")
	}
}
