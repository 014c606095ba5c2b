package urnpath

import "scimtester/internal/schema"

// Filter narrows the attributes yielded by Iterate. Zero value means no
// filtering and no sub-attribute descent.
type Filter struct {
	// Required keeps only attributes whose required annotation matches.
	Required *bool
	// Mutability keeps only attributes whose mutability is in the set.
	Mutability []schema.Mutability
	// IncludeSubAttributes descends depth-first into complex attributes.
	IncludeSubAttributes bool
}

// RequiredOnly is a Filter keeping only required attributes.
func RequiredOnly() Filter {
	required := true
	return Filter{Required: &required}
}

// Writable is a Filter keeping every attribute that may be written at
// creation time, i.e. everything but read-only attributes.
func Writable() Filter {
	return Filter{Mutability: []schema.Mutability{
		schema.MutabilityReadWrite,
		schema.MutabilityImmutable,
		schema.MutabilityWriteOnly,
	}}
}

// Entry is one enumerated attribute: its full path and the node owning it.
type Entry struct {
	Path  string
	Owner schema.Node
	Attr  *schema.Attribute
}

// Identity and bookkeeping attributes are never enumerated.
var excludedFields = map[string]struct{}{
	"id":      {},
	"meta":    {},
	"schemas": {},
}

// Iterate enumerates every eligible attribute of the model: base-schema
// attributes in declaration order, depth-first into complex sub-attributes
// when requested, followed by each extension's attributes in the same
// manner, with extension paths qualified by the extension URN. The result
// is finite and a fresh call re-enumerates from scratch.
func Iterate(m *schema.Model, f Filter) []Entry {
	var entries []Entry
	entries = appendNode(entries, m.Base, "", f)
	for _, ext := range m.Extensions {
		entries = appendNode(entries, ext.Schema, ext.Schema.ID, f)
	}
	return entries
}

func appendNode(entries []Entry, node schema.Node, prefix string, f Filter) []Entry {
	for _, attr := range node.Fields() {
		if _, excluded := excludedFields[attr.Name]; excluded {
			continue
		}
		if !matches(attr, f) {
			continue
		}
		path := Join(prefix, attr.Name)
		entries = append(entries, Entry{Path: path, Owner: node, Attr: attr})

		if f.IncludeSubAttributes && attr.Type == schema.TypeComplex {
			for _, sub := range attr.SubAttributes {
				if !matches(sub, f) {
					continue
				}
				entries = append(entries, Entry{Path: path + "." + sub.Name, Owner: attr, Attr: sub})
			}
		}
	}
	return entries
}

func matches(attr *schema.Attribute, f Filter) bool {
	if f.Required != nil && attr.Required != *f.Required {
		return false
	}
	if len(f.Mutability) > 0 {
		mut := attr.Mutability
		if mut == "" {
			mut = schema.MutabilityReadWrite
		}
		found := false
		for _, m := range f.Mutability {
			if m == mut {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
