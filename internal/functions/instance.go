package functions

import (
	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Instance functions.
 *
 * Type introspection over the data graph belongs to the host's data model;
 * this factory only composes three functions out of injected collaborators.
 * A nil object or one failing validation has no type: GetType answers
 * Undefined and the predicates answer false, never an error.
 */

// TypeCollaborators are the injected data-model predicates the instance
// functions are built from.
type TypeCollaborators struct {
	// ResolveTypeName resolves the concrete type of an object, reporting
	// false when the object carries none.
	ResolveTypeName func(obj any) (string, bool)

	// AncestorTypes lists the ancestor type names of a type, nearest first.
	AncestorTypes func(typeName string) []string

	// Validate gates type resolution: a non-empty result means the object
	// is not a well-formed instance and has no type. Nil means no
	// validation.
	Validate func(obj any) []error
}

// resolvedType applies validation and resolution in order.
func (c TypeCollaborators) resolvedType(obj any) (string, bool) {
	if obj == nil {
		return "", false
	}
	if c.Validate != nil && len(c.Validate(obj)) > 0 {
		return "", false
	}
	if c.ResolveTypeName == nil {
		return "", false
	}
	return c.ResolveTypeName(obj)
}

// InstanceDeclarations builds the GetType, _t and _i declarations from the
// collaborators. Register them before Build alongside the built-ins.
func InstanceDeclarations(c TypeCollaborators) []Declaration {
	getType := func(s *Scope, args []any) (any, error) {
		name, ok := c.resolvedType(arg(args, 0))
		if !ok {
			return types.Undefined, nil
		}
		return name, nil
	}

	typeOf := func(s *Scope, args []any) (any, error) {
		want, err := asString("_t", arg(args, 1))
		if err != nil {
			return nil, err
		}
		name, ok := c.resolvedType(arg(args, 0))
		return ok && name == want, nil
	}

	instanceOf := func(s *Scope, args []any) (any, error) {
		want, err := asString("_i", arg(args, 1))
		if err != nil {
			return nil, err
		}
		name, ok := c.resolvedType(arg(args, 0))
		if !ok {
			return false, nil
		}
		if name == want {
			return true, nil
		}
		if c.AncestorTypes == nil {
			return false, nil
		}
		for _, ancestor := range c.AncestorTypes(name) {
			if ancestor == want {
				return true, nil
			}
		}
		return false, nil
	}

	return []Declaration{
		{Name: "GetType", Implementation: getType},
		{Name: "_t", Implementation: typeOf},
		{Name: "_i", Implementation: instanceOf},
	}
}
