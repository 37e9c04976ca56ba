package payload

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/gavelhq/gavel/internal/money"
	"github.com/gavelhq/gavel/internal/types"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected []PathSegment
		wantErr  error
	}{
		{
			name:     "dotted keys",
			expr:     "$.order.total",
			expected: []PathSegment{{Key: "order"}, {Key: "total"}},
		},
		{
			name:     "array index",
			expr:     "$.lines[2].price",
			expected: []PathSegment{{Key: "lines"}, {Index: 2, IsIndex: true}, {Key: "price"}},
		},
		{
			name:     "chained indices",
			expr:     "$.grid[1][0]",
			expected: []PathSegment{{Key: "grid"}, {Index: 1, IsIndex: true}, {Index: 0, IsIndex: true}},
		},
		{name: "missing root marker", expr: "order.total", wantErr: types.ErrInvalidPath},
		{name: "empty segment", expr: "$.order..total", wantErr: types.ErrInvalidPath},
		{name: "unterminated index", expr: "$.lines[2", wantErr: types.ErrInvalidPath},
		{name: "non-numeric index", expr: "$.lines[x]", wantErr: types.ErrInvalidPath},
		{name: "negative index", expr: "$.lines[-1]", wantErr: types.ErrInvalidPath},
		{name: "too deep", expr: "$." + strings.Repeat("a.", 16) + "a", wantErr: types.ErrPathTooDeep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.expr)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParsePath(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("ParsePath(%q) = %v, expected %v", tt.expr, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("segment %d = %+v, expected %+v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestResolve(t *testing.T) {
	data := json.RawMessage(`{
		"order": {
			"total": {"amount": 99.95, "currency": "EUR"},
			"status": null,
			"lines": [
				{"sku": "A-1", "qty": 2},
				{"sku": "B-2", "qty": 1}
			]
		}
	}`)

	resolve := func(t *testing.T, expr string) any {
		t.Helper()
		path, err := ParsePath(expr)
		if err != nil {
			t.Fatalf("ParsePath(%q) error = %v", expr, err)
		}
		v, err := Resolve(path, data)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", expr, err)
		}
		return v
	}

	t.Run("nested scalar", func(t *testing.T) {
		if got := resolve(t, "$.order.lines[1].sku"); got != "B-2" {
			t.Errorf("got %v, expected B-2", got)
		}
	})

	t.Run("number decodes as float", func(t *testing.T) {
		if got := resolve(t, "$.order.lines[0].qty"); got != 2.0 {
			t.Errorf("got %v, expected 2", got)
		}
	})

	t.Run("money-shaped object is promoted", func(t *testing.T) {
		got := resolve(t, "$.order.total")
		m, ok := got.(money.Money)
		if !ok {
			t.Fatalf("got %T, expected Money", got)
		}
		if m.Amount != 99.95 || m.Currency != "EUR" {
			t.Errorf("got %+v", m)
		}
	})

	t.Run("explicit null stays null", func(t *testing.T) {
		if got := resolve(t, "$.order.status"); got != nil {
			t.Errorf("got %v, expected nil", got)
		}
	})

	t.Run("absent field is undefined", func(t *testing.T) {
		if got := resolve(t, "$.order.missing"); got != types.Undefined {
			t.Errorf("got %v, expected undefined", got)
		}
	})

	t.Run("index out of bounds is undefined", func(t *testing.T) {
		if got := resolve(t, "$.order.lines[9].sku"); got != types.Undefined {
			t.Errorf("got %v, expected undefined", got)
		}
	})

	t.Run("key into array is undefined", func(t *testing.T) {
		if got := resolve(t, "$.order.lines.sku"); got != types.Undefined {
			t.Errorf("got %v, expected undefined", got)
		}
	})

	t.Run("path through a scalar is undefined", func(t *testing.T) {
		if got := resolve(t, "$.order.lines[0].sku.deeper"); got != types.Undefined {
			t.Errorf("got %v, expected undefined", got)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path, err := ParsePath("$.a")
		if err != nil {
			t.Fatalf("ParsePath error = %v", err)
		}
		if _, err := Resolve(path, json.RawMessage(`{broken`)); err == nil {
			t.Error("expected a decode error")
		}
	})
}

// Property-based test: resolution never crashes
func TestResolve_PropertyNeverCrashes(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	data := json.RawMessage(`{"key": [{"key": "value"}, null, 3]}`)

	properties.Property("arbitrary paths resolve without panicking", prop.ForAll(
		func(depth, index int, useIndex bool) bool {
			path := make([]PathSegment, depth)
			for i := range path {
				if useIndex && i%2 == 1 {
					path[i] = PathSegment{Index: index, IsIndex: true}
				} else {
					path[i] = PathSegment{Key: "key"}
				}
			}

			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Resolve() panicked: %v", r)
				}
			}()

			_, _ = Resolve(path, data)
			return true
		},
		gen.IntRange(0, 16),
		gen.IntRange(-2, 5),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
