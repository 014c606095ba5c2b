package urnpath

import (
	"strings"

	"scimtester/internal/schema"
)

// Get returns the value at path within the live instance r. The second
// return is false when the path does not resolve, any traversed sub-object
// is unset, or traversal would have to index into a populated multi-valued
// collection.
func Get(m *schema.Model, r schema.Resource, path string) (any, bool) {
	node, rest, exact := splitQualifier(m, path)
	if exact {
		return lookupField(map[string]any(r), rest)
	}
	if node == nil {
		return nil, false
	}

	cur := map[string]any(r)
	if ext, ok := node.(*schema.Schema); ok && ext.ID != m.Base.ID {
		sub, ok := lookupField(cur, ext.ID)
		if !ok {
			return nil, false
		}
		cur, ok = sub.(map[string]any)
		if !ok {
			return nil, false
		}
	}

	segments := strings.Split(rest, ".")
	for _, segment := range segments[:len(segments)-1] {
		v, ok := lookupField(cur, segment)
		if !ok {
			return nil, false
		}
		cur, ok = v.(map[string]any)
		if !ok {
			// Unset, scalar, or a populated multi-valued collection.
			return nil, false
		}
	}
	return lookupField(cur, segments[len(segments)-1])
}

// Set writes value at path within r, creating intermediate complex
// sub-objects on demand. When the target attribute is multi-valued and the
// value is not already a collection, the value is wrapped in a one-element
// collection. Unknown fields and navigation into populated multi-valued
// collections make the call a silent no-op.
func Set(m *schema.Model, r schema.Resource, path string, value any) {
	node, rest, exact := splitQualifier(m, path)
	if exact {
		r.DeclareSchema(rest)
		r[rest] = value
		return
	}
	if node == nil {
		return
	}

	cur := map[string]any(r)
	if ext, ok := node.(*schema.Schema); ok && ext.ID != m.Base.ID {
		sub, found := lookupField(cur, ext.ID)
		if !found || sub == nil {
			next := map[string]any{}
			r.DeclareSchema(ext.ID)
			cur[ext.ID] = next
			cur = next
		} else if subMap, ok := sub.(map[string]any); ok {
			cur = subMap
		} else {
			return
		}
	}

	segments := strings.Split(rest, ".")
	for _, segment := range segments[:len(segments)-1] {
		attr := node.Field(segment)
		if attr == nil || attr.Type != schema.TypeComplex || attr.MultiValued {
			return
		}
		existing, found := lookupField(cur, attr.Name)
		switch sub := existing.(type) {
		case map[string]any:
			cur = sub
		case []any:
			// Filters are not supported, cannot address one element.
			return
		default:
			if found && existing != nil {
				return
			}
			next := map[string]any{}
			cur[attr.Name] = next
			cur = next
		}
		node = attr
	}

	attr := node.Field(segments[len(segments)-1])
	if attr == nil {
		return
	}
	if attr.MultiValued && value != nil {
		if _, isSlice := value.([]any); !isSlice {
			value = []any{value}
		}
	}
	cur[attr.Name] = value
}

// lookupField finds a key in a wire object, exact match first, then
// case-insensitive per RFC 7643 §2.1.
func lookupField(obj map[string]any, name string) (any, bool) {
	if v, ok := obj[name]; ok {
		return v, true
	}
	for k, v := range obj {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}
