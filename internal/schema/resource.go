package schema

import "strings"

// Resource is a live, wire-shaped SCIM resource instance. Keys are attribute
// names as they appear on the wire; extension attributes nest under the
// extension URN. The zero value of a freshly made Resource is an empty
// object.
type Resource map[string]any

// NewResource returns an empty instance of model with its schemas attribute
// pre-populated with the base URN.
func NewResource(m *Model) Resource {
	return Resource{"schemas": []any{m.Base.ID}}
}

// ID returns the server-assigned identifier, or "" when unset.
func (r Resource) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Meta returns the resource metadata block, or nil when unset.
func (r Resource) Meta() map[string]any {
	meta, _ := r["meta"].(map[string]any)
	return meta
}

// Location returns meta.location, or "" when unset.
func (r Resource) Location() string {
	loc, _ := r.Meta()["location"].(string)
	return loc
}

// ResourceType returns meta.resourceType, or "" when unset.
func (r Resource) ResourceType() string {
	rt, _ := r.Meta()["resourceType"].(string)
	return rt
}

// Schemas returns the declared schema URNs of the instance.
func (r Resource) Schemas() []string {
	raw, _ := r["schemas"].([]any)
	urns := make([]string, 0, len(raw))
	for _, u := range raw {
		if s, ok := u.(string); ok {
			urns = append(urns, s)
		}
	}
	return urns
}

// DeclareSchema appends urn to the schemas attribute if not yet present.
func (r Resource) DeclareSchema(urn string) {
	for _, existing := range r.Schemas() {
		if existing == urn {
			return
		}
	}
	raw, _ := r["schemas"].([]any)
	r["schemas"] = append(raw, urn)
}

// Clone returns a deep copy of the instance.
func (r Resource) Clone() Resource {
	if r == nil {
		return nil
	}
	return Resource(cloneMap(r))
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneMap(v)
	case Resource:
		return cloneMap(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// TailSegment returns the last path segment of a URL, typically the resource
// id at the end of a meta.location value.
func TailSegment(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
