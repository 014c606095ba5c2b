package schema

import "strings"

// Type is the declared data type of a schema attribute (RFC 7643 §2.3).
type Type string

const (
	TypeString    Type = "string"
	TypeBoolean   Type = "boolean"
	TypeDecimal   Type = "decimal"
	TypeInteger   Type = "integer"
	TypeDateTime  Type = "dateTime"
	TypeBinary    Type = "binary"
	TypeReference Type = "reference"
	TypeComplex   Type = "complex"
)

// Mutability is the per-attribute write policy (RFC 7643 §2.2).
type Mutability string

const (
	MutabilityReadOnly  Mutability = "readOnly"
	MutabilityReadWrite Mutability = "readWrite"
	MutabilityImmutable Mutability = "immutable"
	MutabilityWriteOnly Mutability = "writeOnly"
)

// Reference target kinds that do not denote another managed resource.
const (
	RefExternal = "external"
	RefURI      = "uri"
)

// Attribute describes a single schema attribute, possibly complex.
//
// Examples carries declared example values. They are not part of the SCIM
// wire schema but may be attached programmatically (or parsed from a
// non-standard "examples" key) to steer value synthesis.
type Attribute struct {
	Name            string       `json:"name"`
	Type            Type         `json:"type"`
	SubAttributes   []*Attribute `json:"subAttributes,omitempty"`
	MultiValued     bool         `json:"multiValued"`
	Description     string       `json:"description,omitempty"`
	Required        bool         `json:"required"`
	CanonicalValues []string     `json:"canonicalValues,omitempty"`
	CaseExact       bool         `json:"caseExact,omitempty"`
	Mutability      Mutability   `json:"mutability,omitempty"`
	Returned        string       `json:"returned,omitempty"`
	Uniqueness      string       `json:"uniqueness,omitempty"`
	ReferenceTypes  []string     `json:"referenceTypes,omitempty"`
	Examples        []any        `json:"examples,omitempty"`
}

// Schema is an ordered attribute list registered under a single URN.
type Schema struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Attributes  []*Attribute `json:"attributes"`
}

// Extension attaches an optional schema to a resource kind.
type Extension struct {
	Schema   *Schema
	Required bool
}

// Model is a fully assembled resource kind: its base schema plus every
// registered extension. It is the root against which attribute paths are
// resolved.
type Model struct {
	// Name is the resource kind, e.g. "User" or "Group".
	Name string
	// Endpoint is the relative collection endpoint, e.g. "/Users".
	Endpoint string
	// Base is the resource kind's own schema.
	Base *Schema
	// Extensions are the schema extensions, in registration order.
	Extensions []Extension
}

// Node is anything that owns an ordered sequence of attributes: a schema, or
// a complex attribute owning sub-attributes. Path resolution and attribute
// enumeration operate on this interface only.
type Node interface {
	// NodeName identifies the owning model, e.g. a schema URN or an
	// attribute name such as "emails".
	NodeName() string
	// Fields returns the node's attributes in declaration order.
	Fields() []*Attribute
	// Field returns the attribute with the given name, matched
	// case-insensitively per RFC 7643 §2.1, or nil.
	Field(name string) *Attribute
}

// NodeName implements Node.
func (s *Schema) NodeName() string { return s.ID }

// Fields implements Node.
func (s *Schema) Fields() []*Attribute { return s.Attributes }

// Field implements Node.
func (s *Schema) Field(name string) *Attribute { return findField(s.Attributes, name) }

// NodeName implements Node.
func (a *Attribute) NodeName() string { return a.Name }

// Fields implements Node. It is empty unless the attribute is complex.
func (a *Attribute) Fields() []*Attribute { return a.SubAttributes }

// Field implements Node.
func (a *Attribute) Field(name string) *Attribute { return findField(a.SubAttributes, name) }

func findField(attrs []*Attribute, name string) *Attribute {
	for _, attr := range attrs {
		if strings.EqualFold(attr.Name, name) {
			return attr
		}
	}
	return nil
}

// Extension returns the extension schema registered under the given URN, or
// nil when the URN is unknown.
func (m *Model) Extension(urn string) *Schema {
	for _, ext := range m.Extensions {
		if ext.Schema.ID == urn {
			return ext.Schema
		}
	}
	return nil
}

// ExtensionField returns a synthetic complex attribute spanning the whole
// extension registered under urn. It lets an extension URN resolve like any
// other complex attribute of the base model.
func (m *Model) ExtensionField(urn string) *Attribute {
	ext := m.Extension(urn)
	if ext == nil {
		return nil
	}
	return &Attribute{
		Name:          ext.ID,
		Type:          TypeComplex,
		SubAttributes: ext.Attributes,
		Mutability:    MutabilityReadWrite,
	}
}

// SchemaURNs returns the base URN followed by every extension URN.
func (m *Model) SchemaURNs() []string {
	urns := make([]string, 0, 1+len(m.Extensions))
	urns = append(urns, m.Base.ID)
	for _, ext := range m.Extensions {
		urns = append(urns, ext.Schema.ID)
	}
	return urns
}
