package schema

// Kind classifies an attribute for value synthesis. Each kind owns its own
// generator in the fill package, replacing a long type-switch with a closed
// dispatch.
type Kind int

const (
	// KindPrimitive covers string, decimal, integer, dateTime and boolean
	// attributes without canonical values.
	KindPrimitive Kind = iota
	// KindEnumerated covers attributes constrained to a canonical value set.
	KindEnumerated
	// KindReference covers reference-typed attributes.
	KindReference
	// KindComplex covers complex attributes owning sub-attributes.
	KindComplex
	// KindExtension covers the synthetic attribute spanning a schema
	// extension.
	KindExtension
	// KindBinary covers base64-encoded binary attributes.
	KindBinary
)

// String makes Kind satisfy fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindEnumerated:
		return "enumerated"
	case KindReference:
		return "reference"
	case KindComplex:
		return "complex"
	case KindExtension:
		return "extension"
	case KindBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// KindOf classifies attr relative to model. An attribute whose name is one of
// the model's extension URNs is an extension, even though it is typed complex.
func KindOf(m *Model, attr *Attribute) Kind {
	if m != nil && m.Extension(attr.Name) != nil {
		return KindExtension
	}
	switch attr.Type {
	case TypeComplex:
		return KindComplex
	case TypeReference:
		return KindReference
	case TypeBinary:
		return KindBinary
	default:
		if len(attr.CanonicalValues) > 0 {
			return KindEnumerated
		}
		return KindPrimitive
	}
}

// ExternalOnly reports whether a reference attribute only targets external
// URLs or URIs, i.e. never another managed resource.
func ExternalOnly(attr *Attribute) bool {
	if len(attr.ReferenceTypes) == 0 {
		return true
	}
	for _, rt := range attr.ReferenceTypes {
		if rt != RefExternal && rt != RefURI {
			return false
		}
	}
	return true
}
