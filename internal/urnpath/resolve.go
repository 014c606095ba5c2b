package urnpath

import (
	"strings"

	"scimtester/internal/schema"
)

// Join qualifies a relative dotted attribute path with a schema URN, e.g.
// Join("urn:…:2.0:User", "manager.value"). An empty URN leaves the path
// unqualified.
func Join(urn, rel string) string {
	if urn == "" {
		return rel
	}
	if rel == "" {
		return urn
	}
	return urn + ":" + rel
}

// Resolve maps path to its owning node and attribute descriptor within m.
// A path equal to an extension URN resolves to a synthetic complex attribute
// spanning that extension, owned by the base schema. Resolve returns
// ok=false when any hop fails: unknown field, multi-valued or non-complex
// intermediate, or unrecognized extension URN.
func Resolve(m *schema.Model, path string) (schema.Node, *schema.Attribute, bool) {
	node, rest, exact := splitQualifier(m, path)
	if exact {
		return m.Base, m.ExtensionField(rest), true
	}
	if node == nil {
		return nil, nil, false
	}
	return resolveSegments(node, rest)
}

// ResolveKind is a convenience over Resolve returning the attribute kind.
func ResolveKind(m *schema.Model, path string) (schema.Kind, bool) {
	_, attr, ok := Resolve(m, path)
	if !ok {
		return 0, false
	}
	return schema.KindOf(m, attr), true
}

// splitQualifier strips a matching base- or extension-schema URN prefix from
// path. It returns the node traversal starts from and the remaining relative
// path. When the path matches an extension URN exactly, exact is true and
// rest holds that URN. An unrecognized URN qualifier yields a nil node.
func splitQualifier(m *schema.Model, path string) (node schema.Node, rest string, exact bool) {
	if !strings.Contains(path, ":") {
		return m.Base, path, false
	}

	if sub, ok := stripURNPrefix(path, m.Base.ID); ok {
		if sub == "" {
			return nil, "", false
		}
		return m.Base, sub, false
	}

	for _, ext := range m.Extensions {
		if path == ext.Schema.ID {
			return m.Base, path, true
		}
		if sub, ok := stripURNPrefix(path, ext.Schema.ID); ok && sub != "" {
			return ext.Schema, sub, false
		}
	}
	return nil, "", false
}

// stripURNPrefix removes urn plus its ":" separator from the front of path.
func stripURNPrefix(path, urn string) (string, bool) {
	if !strings.HasPrefix(path, urn) {
		return "", false
	}
	rest := path[len(urn):]
	rest = strings.TrimPrefix(rest, ":")
	if strings.Contains(rest, ":") {
		// Ambiguous leftover qualifier, not a plain sub-path.
		return "", false
	}
	return rest, true
}

// resolveSegments walks dot segments from node, one complex single-valued
// hop per intermediate segment.
func resolveSegments(node schema.Node, rest string) (schema.Node, *schema.Attribute, bool) {
	segments := strings.Split(rest, ".")
	for _, segment := range segments[:len(segments)-1] {
		attr := node.Field(segment)
		if attr == nil || attr.Type != schema.TypeComplex || attr.MultiValued {
			return nil, nil, false
		}
		node = attr
	}
	attr := node.Field(segments[len(segments)-1])
	if attr == nil {
		return nil, nil, false
	}
	return node, attr, true
}
