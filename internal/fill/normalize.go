package fill

import (
	"strings"

	"scimtester/internal/schema"
)

// normalizeObject runs the post-synthesis passes over one wire object:
// primary-flag uniqueness and "$ref"/"value" consistency, recursively.
func (s *Synthesizer) normalizeObject(node schema.Node, obj map[string]any) {
	for _, attr := range node.Fields() {
		if attr.Type != schema.TypeComplex {
			continue
		}
		switch value := obj[attr.Name].(type) {
		case map[string]any:
			reconcileReference(attr, value)
			s.normalizeObject(attr, value)
		case []any:
			s.normalizeCollection(attr, value)
		}
	}
}

// normalizeCollection enforces that exactly one element of a non-empty
// collection carries primary=true when the element type exposes a "primary"
// flag, then normalizes each element.
func (s *Synthesizer) normalizeCollection(attr *schema.Attribute, collection []any) {
	hasPrimary := attr.Field("primary") != nil

	chosen := 0
	if hasPrimary && len(collection) > 1 {
		chosen = s.rng.Intn(len(collection))
	}
	for i, element := range collection {
		elem, ok := element.(map[string]any)
		if !ok {
			continue
		}
		if hasPrimary {
			elem["primary"] = i == chosen
		}
		reconcileReference(attr, elem)
		s.normalizeObject(attr, elem)
	}
}

// reconcileReference keeps a complex value's companions in sync with its
// reference URL: when both "$ref" and "value" sub-attributes exist and the
// URL is set, the identifier becomes the URL's trailing segment, and a
// canonical "type" sub-attribute is aligned with the referenced collection
// ("/Users/{id}" means type "User").
func reconcileReference(attr *schema.Attribute, elem map[string]any) {
	if attr.Field("$ref") == nil || attr.Field("value") == nil {
		return
	}
	ref, ok := elem["$ref"].(string)
	if !ok || ref == "" {
		return
	}
	elem["value"] = schema.TailSegment(ref)

	typeAttr := attr.Field("type")
	if typeAttr == nil || len(typeAttr.CanonicalValues) == 0 {
		return
	}
	collection := schema.TailSegment(strings.TrimSuffix(ref, "/"+schema.TailSegment(ref)))
	for _, canonical := range typeAttr.CanonicalValues {
		if strings.EqualFold(canonical+"s", collection) {
			elem["type"] = canonical
			return
		}
	}
}

// CompareValues reports whether an expected and an actual attribute value
// match, comparing wire objects structurally and treating an unset side as
// a mismatch.
func CompareValues(expected, actual any) bool {
	if expected == nil || actual == nil {
		return false
	}
	return equalValues(expected, actual)
}

func equalValues(a, b any) bool {
	switch a := a.(type) {
	case map[string]any:
		b, ok := b.(map[string]any)
		if !ok || len(a) != len(b) {
			return false
		}
		for k, av := range a {
			bv, ok := b[k]
			if !ok {
				for bk, v := range b {
					if strings.EqualFold(bk, k) {
						bv, ok = v, true
						break
					}
				}
			}
			if !ok || !equalValues(av, bv) {
				return false
			}
		}
		return true
	case []any:
		b, ok := b.([]any)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !equalValues(a[i], b[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
