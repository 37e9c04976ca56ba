package functions

import (
	"errors"
	"testing"

	"github.com/gavelhq/gavel/internal/types"
)

// testModel is a minimal object graph for the instance functions: objects
// are maps carrying their type under "__type", Employee extends Person.
func testModel() TypeCollaborators {
	ancestors := map[string][]string{
		"Employee": {"Person"},
		"Person":   nil,
	}
	return TypeCollaborators{
		ResolveTypeName: func(obj any) (string, bool) {
			m, ok := obj.(map[string]any)
			if !ok {
				return "", false
			}
			name, ok := m["__type"].(string)
			return name, ok
		},
		AncestorTypes: func(typeName string) []string {
			return ancestors[typeName]
		},
		Validate: func(obj any) []error {
			if m, ok := obj.(map[string]any); ok && m["invalid"] == true {
				return []error{errors.New("object failed validation")}
			}
			return nil
		},
	}
}

func declarations(t *testing.T) map[string]Implementation {
	t.Helper()
	out := make(map[string]Implementation)
	for _, d := range InstanceDeclarations(testModel()) {
		out[d.Name] = d.Implementation
	}
	return out
}

func TestGetType(t *testing.T) {
	s := newTestScope()
	getType := declarations(t)["GetType"]

	tests := []struct {
		name     string
		in       any
		expected any
	}{
		{name: "typed object", in: map[string]any{"__type": "Employee"}, expected: "Employee"},
		{name: "nil object", in: nil, expected: types.Undefined},
		{name: "untyped object", in: map[string]any{}, expected: types.Undefined},
		{name: "non-object", in: 42.0, expected: types.Undefined},
		{name: "failing validation has no type", in: map[string]any{"__type": "Employee", "invalid": true}, expected: types.Undefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getType(s, []any{tt.in})
			if err != nil {
				t.Fatalf("GetType error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("GetType(%v) = %v, expected %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestTypePredicates(t *testing.T) {
	s := newTestScope()
	decls := declarations(t)
	employee := map[string]any{"__type": "Employee"}

	tests := []struct {
		name     string
		fn       string
		obj      any
		typeName string
		expected bool
	}{
		{name: "_t exact match", fn: "_t", obj: employee, typeName: "Employee", expected: true},
		{name: "_t does not climb the hierarchy", fn: "_t", obj: employee, typeName: "Person", expected: false},
		{name: "_t nil object", fn: "_t", obj: nil, typeName: "Employee", expected: false},
		{name: "_i exact match", fn: "_i", obj: employee, typeName: "Employee", expected: true},
		{name: "_i ancestor match", fn: "_i", obj: employee, typeName: "Person", expected: true},
		{name: "_i unrelated type", fn: "_i", obj: employee, typeName: "Order", expected: false},
		{name: "_i nil object", fn: "_i", obj: nil, typeName: "Person", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decls[tt.fn](s, []any{tt.obj, tt.typeName})
			if err != nil {
				t.Fatalf("%s error = %v", tt.fn, err)
			}
			if got != tt.expected {
				t.Errorf("%s(%v, %q) = %v, expected %v", tt.fn, tt.obj, tt.typeName, got, tt.expected)
			}
		})
	}

	t.Run("type name must be a string", func(t *testing.T) {
		_, err := decls["_t"](s, []any{employee, 42.0})
		wantMessage(t, err, "Failed to execute function '_t'. Expected string but got Number.")
	})
}

func TestInstanceDeclarationsRegister(t *testing.T) {
	b := NewBuilder()
	if err := b.AddAll(InstanceDeclarations(testModel())); err != nil {
		t.Fatalf("AddAll error = %v", err)
	}
	r := b.Build()

	bound := r.Bind(Session{})
	got, err := bound["GetType"](map[string]any{"__type": "Person"})
	if err != nil {
		t.Fatalf("GetType error = %v", err)
	}
	if got != "Person" {
		t.Errorf("GetType = %v, expected Person", got)
	}
}
