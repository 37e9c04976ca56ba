// Package payload resolves field paths against JSON rule payloads.
package payload

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gavelhq/gavel/internal/money"
	"github.com/gavelhq/gavel/internal/types"
)

/*
 * Field path resolution for JSON payloads.
 *
 * Resolves dotted paths with optional array indices ($.order.lines[0].price)
 * through nested objects and arrays. Enforces MaxPathDepth (16) at
 * resolution time.
 *
 * A path that does not resolve yields Undefined rather than an error so the
 * missing-data semantics of the function library apply: an absent field and
 * an explicit null stay distinguishable to every downstream function.
 *
 * Objects carrying exactly an "amount" number and a "currency" string are
 * promoted to Money during traversal, so monetary payload fields arrive at
 * the library already typed.
 */

// PathSegment is one step of a parsed payload path.
type PathSegment struct {
	Key     string // object key (when IsIndex is false)
	Index   int    // array index (when IsIndex is true)
	IsIndex bool
}

// ParsePath parses a path expression of the form $.a.b[0].c into segments.
// The leading "$." root marker is mandatory.
func ParsePath(expr string) ([]PathSegment, error) {
	if !strings.HasPrefix(expr, "$.") {
		return nil, fmt.Errorf("path '%s' must start with '$.': %w", expr, types.ErrInvalidPath)
	}

	var segments []PathSegment
	for _, part := range strings.Split(expr[2:], ".") {
		if part == "" {
			return nil, fmt.Errorf("path '%s' has an empty segment: %w", expr, types.ErrInvalidPath)
		}
		key := part
		var indices []int
		for {
			open := strings.IndexByte(key, '[')
			if open < 0 {
				break
			}
			end := strings.IndexByte(key[open:], ']')
			if end < 0 {
				return nil, fmt.Errorf("path '%s' has an unterminated index: %w", expr, types.ErrInvalidPath)
			}
			idx, err := strconv.Atoi(key[open+1 : open+end])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("path '%s' has a non-numeric index: %w", expr, types.ErrInvalidPath)
			}
			indices = append(indices, idx)
			key = key[:open] + key[open+end+1:]
		}
		if key == "" && len(indices) == 0 {
			return nil, fmt.Errorf("path '%s' has an empty segment: %w", expr, types.ErrInvalidPath)
		}
		if key != "" {
			segments = append(segments, PathSegment{Key: key})
		}
		for _, idx := range indices {
			segments = append(segments, PathSegment{Index: idx, IsIndex: true})
		}
	}

	if len(segments) > types.MaxPathDepth {
		return nil, fmt.Errorf("path '%s': %w", expr, types.ErrPathTooDeep)
	}
	return segments, nil
}

// Resolve traverses data following path segments. A path that does not
// resolve returns types.Undefined; a resolved JSON null returns Go nil.
func Resolve(path []PathSegment, data json.RawMessage) (any, error) {
	if len(path) > types.MaxPathDepth {
		return nil, types.ErrPathTooDeep
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	return resolveRecursive(path, convert(parsed)), nil
}

// resolveRecursive walks nested JSON structures following path segments.
func resolveRecursive(path []PathSegment, current any) any {
	if len(path) == 0 {
		return current
	}

	seg := path[0]
	remaining := path[1:]

	switch v := current.(type) {
	case map[string]any:
		if seg.IsIndex {
			return types.Undefined
		}
		val, ok := v[seg.Key]
		if !ok {
			return types.Undefined
		}
		return resolveRecursive(remaining, val)

	case []any:
		if !seg.IsIndex {
			return types.Undefined
		}
		if seg.Index < 0 || seg.Index >= len(v) {
			return types.Undefined
		}
		return resolveRecursive(remaining, v[seg.Index])

	default:
		// Scalar or null but path continues.
		return types.Undefined
	}
}

// convert rewrites decoded JSON bottom-up, promoting money-shaped objects.
func convert(v any) any {
	switch val := v.(type) {
	case map[string]any:
		if m, ok := money.FromMap(val); ok {
			return m
		}
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = convert(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = convert(elem)
		}
		return out
	default:
		return v
	}
}
