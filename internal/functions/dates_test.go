package functions

import (
	"testing"

	"github.com/gavelhq/gavel/internal/date"
)

func TestDateOverloads(t *testing.T) {
	s := newTestScope()

	t.Run("literal form", func(t *testing.T) {
		got := mustCall(t, fnDate, s, "2021-02-14")
		if got.(date.Date).String() != "2021-02-14" {
			t.Errorf("Date = %v", got)
		}
	})

	t.Run("field form", func(t *testing.T) {
		got := mustCall(t, fnDate, s, 2021.0, 2.0, 14.0)
		if got.(date.Date).String() != "2021-02-14" {
			t.Errorf("Date = %v", got)
		}
	})

	t.Run("invalid literal", func(t *testing.T) {
		_, err := fnDate(s, []any{"2021-02-30"})
		if err == nil {
			t.Fatal("expected error for nonexistent day")
		}
	})

	t.Run("field form needs all three fields", func(t *testing.T) {
		_, err := fnDate(s, []any{2021.0, 2.0})
		wantMessage(t, err, "Failed to execute function 'Date'. Third parameter is mandatory.")
	})

	t.Run("missing first parameter", func(t *testing.T) {
		_, err := fnDate(s, []any{nil})
		wantMessage(t, err, "Failed to execute function 'Date'. First parameter is mandatory.")
	})
}

func TestDateTimeOverloads(t *testing.T) {
	t.Run("UTC instant literal ignores the session zone", func(t *testing.T) {
		s := defaultScope(&Scope{ZoneID: "Europe/Berlin"})
		got := mustCall(t, fnDateTime, s, "2021-02-14T09:30:00Z")
		if got.(date.DateTime).String() != "2021-02-14T09:30:00Z" {
			t.Errorf("DateTime = %v", got)
		}
	})

	t.Run("wall-clock literal uses the session zone", func(t *testing.T) {
		s := defaultScope(&Scope{ZoneID: "Europe/Berlin"})
		got := mustCall(t, fnDateTime, s, "2021-07-01T12:00:00")
		if got.(date.DateTime).String() != "2021-07-01T10:00:00Z" {
			t.Errorf("DateTime = %v", got)
		}
	})

	t.Run("field form uses the session zone", func(t *testing.T) {
		s := defaultScope(&Scope{ZoneID: "Europe/Berlin"})
		got := mustCall(t, fnDateTime, s, 2021.0, 7.0, 1.0, 12.0, 0.0, 0.0)
		if got.(date.DateTime).String() != "2021-07-01T10:00:00Z" {
			t.Errorf("DateTime = %v", got)
		}
	})

	t.Run("field form needs all six fields", func(t *testing.T) {
		s := newTestScope()
		_, err := fnDateTime(s, []any{2021.0, 7.0, 1.0, 12.0})
		wantMessage(t, err, "Failed to execute function 'DateTime'. Fifth parameter is mandatory.")
	})
}

func TestFieldGetters(t *testing.T) {
	s := defaultScope(&Scope{ZoneID: "Europe/Berlin"})
	d := mustCall(t, fnDate, s, "2021-02-14")
	// 23:30 UTC on June 30 is July 1, 01:30 in Berlin.
	dt := mustCall(t, fnDateTime, s, "2021-06-30T23:30:00Z")

	tests := []struct {
		name     string
		fn       Implementation
		operand  any
		expected float64
	}{
		{name: "year of a date", fn: fieldGetter("GetYear", date.Year), operand: d, expected: 2021},
		{name: "month of a date", fn: fieldGetter("GetMonth", date.Month), operand: d, expected: 2},
		{name: "day of a date", fn: fieldGetter("GetDay", date.DayOfMonth), operand: d, expected: 14},
		{name: "month of an instant in the session zone", fn: fieldGetter("GetMonth", date.Month), operand: dt, expected: 7},
		{name: "day of an instant in the session zone", fn: fieldGetter("GetDay", date.DayOfMonth), operand: dt, expected: 1},
		{name: "hour of an instant in the session zone", fn: fieldGetter("GetHour", date.Hour), operand: dt, expected: 1},
		{name: "minute of an instant", fn: fieldGetter("GetMinute", date.Minute), operand: dt, expected: 30},
		{name: "second of an instant", fn: fieldGetter("GetSecond", date.Second), operand: dt, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(s, []any{tt.operand})
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}

	t.Run("clock field of a date errors", func(t *testing.T) {
		_, err := fieldGetter("GetHour", date.Hour)(s, []any{d})
		if err == nil {
			t.Fatal("expected error for clock field of a date")
		}
	})

	t.Run("non-date operand", func(t *testing.T) {
		_, err := fieldGetter("GetYear", date.Year)(s, []any{"2021-02-14"})
		wantMessage(t, err, "Failed to execute function 'GetYear'. Value of type String is not compatible with date calculations.")
	})
}

func TestFieldSettersAndAdders(t *testing.T) {
	s := newTestScope()
	d := mustCall(t, fnDate, s, "2021-01-30")

	t.Run("with month clamps the day", func(t *testing.T) {
		got, err := fieldSetter("WithMonth", date.Month)(s, []any{d, 2.0})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if got.(date.Date).String() != "2021-02-28" {
			t.Errorf("WithMonth = %v", got)
		}
	})

	t.Run("with day never clamps", func(t *testing.T) {
		_, err := fieldSetter("WithDay", date.DayOfMonth)(s, []any{mustCall(t, fnDate, s, "2021-02-14"), 30.0})
		if err == nil {
			t.Fatal("expected error for nonexistent day")
		}
	})

	t.Run("plus months clamps on the original day", func(t *testing.T) {
		got, err := fieldAdder("PlusMonths", date.Month)(s, []any{mustCall(t, fnDate, s, "2021-01-31"), 1.0})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if got.(date.Date).String() != "2021-02-28" {
			t.Errorf("PlusMonths = %v", got)
		}
	})

	t.Run("plus days on a date", func(t *testing.T) {
		got, err := fieldAdder("PlusDays", date.DayOfMonth)(s, []any{mustCall(t, fnDate, s, "2021-01-01"), 365.0})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if got.(date.Date).String() != "2022-01-01" {
			t.Errorf("PlusDays = %v", got)
		}
	})

	t.Run("plus hours requires a datetime", func(t *testing.T) {
		_, err := fieldAdder("PlusHours", date.Hour)(s, []any{d, 2.0})
		wantMessage(t, err, "Failed to execute function 'PlusHours'. Field HOUR requires a datetime, got a date.")
	})

	t.Run("plus hours shifts an instant", func(t *testing.T) {
		dt := mustCall(t, fnDateTime, s, "2021-02-14T23:30:00Z")
		got, err := fieldAdder("PlusHours", date.Hour)(s, []any{dt, 2.0})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if got.(date.DateTime).String() != "2021-02-15T01:30:00Z" {
			t.Errorf("PlusHours = %v", got)
		}
	})

	t.Run("missing amount is mandatory", func(t *testing.T) {
		_, err := fieldAdder("PlusDays", date.DayOfMonth)(s, []any{d})
		wantMessage(t, err, "Failed to execute function 'PlusDays'. Second parameter is mandatory.")
	})
}

func TestFieldDifferences(t *testing.T) {
	s := newTestScope()

	months := fieldDifference("NumberOfMonthsBetween", date.Month)
	years := fieldDifference("NumberOfYearsBetween", date.Year)
	days := fieldDifference("NumberOfDaysBetween", date.DayOfMonth)

	d := func(iso string) any { return mustCall(t, fnDate, s, iso) }

	tests := []struct {
		name     string
		fn       Implementation
		d1, d2   any
		expected float64
	}{
		{name: "partial month not credited", fn: months, d1: d("2021-01-31"), d2: d("2021-02-28"), expected: 0},
		{name: "whole month credited", fn: months, d1: d("2021-01-28"), d2: d("2021-02-28"), expected: 1},
		{name: "negative when first is later", fn: months, d1: d("2021-03-15"), d2: d("2021-01-15"), expected: -2},
		{name: "year below the anniversary", fn: years, d1: d("2020-06-15"), d2: d("2021-06-14"), expected: 0},
		{name: "year on the anniversary", fn: years, d1: d("2020-06-15"), d2: d("2021-06-15"), expected: 1},
		{name: "days", fn: days, d1: d("2021-01-01"), d2: d("2021-12-31"), expected: 364},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(s, []any{tt.d1, tt.d2})
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}

	t.Run("both operands mandatory", func(t *testing.T) {
		_, err := days(s, []any{d("2021-01-01"), nil})
		wantMessage(t, err, "Failed to execute function 'NumberOfDaysBetween'. Second parameter is mandatory.")
	})
}

func TestIsDateBetween(t *testing.T) {
	s := newTestScope()
	d := func(iso string) any { return mustCall(t, fnDate, s, iso) }

	tests := []struct {
		name             string
		v, start, end    any
		expected         bool
	}{
		{name: "inside", v: d("2021-06-15"), start: d("2021-01-01"), end: d("2021-12-31"), expected: true},
		{name: "on the start bound", v: d("2021-01-01"), start: d("2021-01-01"), end: d("2021-12-31"), expected: true},
		{name: "on the end bound", v: d("2021-12-31"), start: d("2021-01-01"), end: d("2021-12-31"), expected: true},
		{name: "before", v: d("2020-12-31"), start: d("2021-01-01"), end: d("2021-12-31"), expected: false},
		{name: "after", v: d("2022-01-01"), start: d("2021-01-01"), end: d("2021-12-31"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustCall(t, fnIsDateBetween, s, tt.v, tt.start, tt.end); got != tt.expected {
				t.Errorf("IsDateBetween = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	s := newTestScope()
	d := mustCall(t, fnDate, s, "2021-02-05")

	tests := []struct {
		name     string
		args     []any
		expected string
	}{
		{name: "default pattern", args: []any{d}, expected: "2021-02-05"},
		{name: "reordered tokens", args: []any{d, "DD/MM/YYYY"}, expected: "05/02/2021"},
		{name: "two-digit year", args: []any{d, "YY-MM"}, expected: "21-02"},
		{name: "verbatim separators", args: []any{d, "MM DD, YYYY"}, expected: "02 05, 2021"},
		{name: "tokenless pattern passes through", args: []any{d, "x"}, expected: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fnFormat(s, tt.args)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("Format() = %q, expected %q", got, tt.expected)
			}
		})
	}

	t.Run("missing operand is mandatory", func(t *testing.T) {
		_, err := fnFormat(s, []any{nil})
		wantMessage(t, err, "Failed to execute function 'Format'. First parameter is mandatory.")
	})
}

func TestTodayAndNow(t *testing.T) {
	s := newTestScope()

	today := mustCall(t, fnToday, s)
	if !s.Calculator.IsDate(today) {
		t.Errorf("Today returned %T, expected a date", today)
	}

	now := mustCall(t, fnNow, s)
	if !s.Calculator.IsDateTime(now) {
		t.Errorf("Now returned %T, expected a datetime", now)
	}
}
