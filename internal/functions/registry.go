package functions

import (
	"fmt"
	"strings"

	"github.com/gavelhq/gavel/internal/date"
	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Function registry.
 *
 * Build-then-freeze: a Builder accumulates declarations during application
 * configuration, validating each registration eagerly (fail fast, not at
 * call time), and Build produces an immutable Registry. The frozen table
 * needs no concurrent-mutation guard because nothing can mutate it.
 *
 * Bind produces the per-session callable table: every function closed over
 * one immutable Scope, so the orchestrator invokes by name without
 * threading the scope itself.
 */

// Builder accumulates function declarations ahead of the freeze.
type Builder struct {
	decls  map[string]Implementation
	frozen bool
}

// NewBuilder returns a builder seeded with the built-in function library.
func NewBuilder() *Builder {
	b := &Builder{decls: make(map[string]Implementation, len(builtinDeclarations))}
	for _, d := range builtinDeclarations {
		b.decls[d.Name] = d.Implementation
	}
	return b
}

// Add registers a user-supplied function. Name and implementation are
// validated here so a malformed declaration can never reach an evaluation
// session: non-empty name, no '.', length bound, no collision with any
// built-in or earlier registration.
func (b *Builder) Add(d Declaration) error {
	if b.frozen {
		return types.ErrRegistryFrozen
	}
	if d.Name == "" {
		return fmt.Errorf("function name is empty: %w", types.ErrInvalidFunctionName)
	}
	if strings.Contains(d.Name, ".") {
		return fmt.Errorf("function name '%s' contains '.': %w", d.Name, types.ErrInvalidFunctionName)
	}
	if len(d.Name) > types.MaxFunctionNameLength {
		return fmt.Errorf("function name '%s' exceeds %d characters: %w", d.Name, types.MaxFunctionNameLength, types.ErrInvalidFunctionName)
	}
	if d.Implementation == nil {
		return fmt.Errorf("function '%s': %w", d.Name, types.ErrNilImplementation)
	}
	if _, exists := b.decls[d.Name]; exists {
		return fmt.Errorf("function '%s': %w", d.Name, types.ErrDuplicateFunction)
	}
	b.decls[d.Name] = d.Implementation
	return nil
}

// AddAll registers a batch of declarations, stopping at the first error.
func (b *Builder) AddAll(decls []Declaration) error {
	for _, d := range decls {
		if err := b.Add(d); err != nil {
			return err
		}
	}
	return nil
}

// Build freezes the builder into an immutable Registry. Further Add calls
// fail with ErrRegistryFrozen.
func (b *Builder) Build() *Registry {
	b.frozen = true
	fns := make(map[string]Implementation, len(b.decls))
	for name, impl := range b.decls {
		fns[name] = impl
	}
	return &Registry{fns: fns}
}

// Registry is the frozen name-to-implementation table. Safe for concurrent
// use; nothing mutates it after Build.
type Registry struct {
	fns map[string]Implementation
}

// Names returns the registered function names; order is unspecified.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.fns))
	for name := range r.fns {
		out = append(out, name)
	}
	return out
}

// Lookup returns the raw implementation of a registered function.
func (r *Registry) Lookup(name string) (Implementation, bool) {
	impl, ok := r.fns[name]
	return impl, ok
}

// Session configures one evaluation session for Bind.
type Session struct {
	// ZoneID is the session zone; empty selects the host zone.
	ZoneID string

	// Calculator optionally plugs in a host calculator. It is composed
	// with the default calculator through the adapter; nil selects the
	// default alone.
	Calculator date.Calculator

	// Normalize optionally replaces the decimal64 normalizer.
	Normalize func(float64) float64

	// MaxSequence caps NumberSequence generation; 0 applies the default.
	MaxSequence int
}

// BoundFunction is a library function closed over its session scope.
type BoundFunction func(args ...any) (any, error)

// Bind produces the flat per-session callable table. The scope is built
// once, stamped with a fresh session id, and shared read-only by every
// bound function.
func (r *Registry) Bind(session Session) map[string]BoundFunction {
	scope := &Scope{
		ZoneID:      session.ZoneID,
		Normalize:   session.Normalize,
		MaxSequence: session.MaxSequence,
	}
	if session.Calculator != nil {
		scope.Calculator = date.NewAdapter(session.Calculator, nil)
	}
	scope = defaultScope(scope)

	bound := make(map[string]BoundFunction, len(r.fns))
	for name, impl := range r.fns {
		impl := impl
		bound[name] = func(args ...any) (any, error) {
			return impl(scope, args)
		}
	}
	return bound
}
