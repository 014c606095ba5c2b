// Package schematest provides canned SCIM models for tests: a User model
// with complex, multi-valued, binary and extension attributes, and a Group
// model with reference-typed members.
package schematest

import "scimtester/internal/schema"

// Schema and extension URNs used by the fixtures.
const (
	UserURN       = "urn:ietf:params:scim:schemas:core:2.0:User"
	GroupURN      = "urn:ietf:params:scim:schemas:core:2.0:Group"
	EnterpriseURN = "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User"
)

// UserModel builds a User resource model with the enterprise extension
// attached.
func UserModel() *schema.Model {
	return &schema.Model{
		Name:     "User",
		Endpoint: "/Users",
		Base:     UserSchema(),
		Extensions: []schema.Extension{
			{Schema: EnterpriseSchema()},
		},
	}
}

// GroupModel builds a Group resource model.
func GroupModel() *schema.Model {
	return &schema.Model{
		Name:     "Group",
		Endpoint: "/Groups",
		Base:     GroupSchema(),
	}
}

// UserSchema builds the core User schema subset the tests exercise.
func UserSchema() *schema.Schema {
	return &schema.Schema{
		ID:   UserURN,
		Name: "User",
		Attributes: []*schema.Attribute{
			{
				Name:       "userName",
				Type:       schema.TypeString,
				Required:   true,
				Mutability: schema.MutabilityReadWrite,
				Uniqueness: "server",
			},
			{
				Name:       "name",
				Type:       schema.TypeComplex,
				Mutability: schema.MutabilityReadWrite,
				SubAttributes: []*schema.Attribute{
					{Name: "formatted", Type: schema.TypeString, Mutability: schema.MutabilityReadWrite},
					{Name: "familyName", Type: schema.TypeString, Mutability: schema.MutabilityReadWrite},
					{Name: "givenName", Type: schema.TypeString, Mutability: schema.MutabilityReadWrite},
				},
			},
			{
				Name:       "displayName",
				Type:       schema.TypeString,
				Mutability: schema.MutabilityReadWrite,
			},
			{
				Name:       "title",
				Type:       schema.TypeString,
				Mutability: schema.MutabilityReadWrite,
				Examples:   []any{"Tour Guide"},
			},
			{
				Name:       "active",
				Type:       schema.TypeBoolean,
				Mutability: schema.MutabilityReadWrite,
			},
			{
				Name:           "profileUrl",
				Type:           schema.TypeReference,
				ReferenceTypes: []string{schema.RefExternal},
				Mutability:     schema.MutabilityReadWrite,
			},
			{
				Name:        "emails",
				Type:        schema.TypeComplex,
				MultiValued: true,
				Mutability:  schema.MutabilityReadWrite,
				SubAttributes: []*schema.Attribute{
					{Name: "value", Type: schema.TypeString, Mutability: schema.MutabilityReadWrite},
					{Name: "display", Type: schema.TypeString, Mutability: schema.MutabilityReadWrite},
					{Name: "type", Type: schema.TypeString, CanonicalValues: []string{"work", "home", "other"}, Mutability: schema.MutabilityReadWrite},
					{Name: "primary", Type: schema.TypeBoolean, Mutability: schema.MutabilityReadWrite},
				},
			},
			{
				Name:        "phoneNumbers",
				Type:        schema.TypeComplex,
				MultiValued: true,
				Mutability:  schema.MutabilityReadWrite,
				SubAttributes: []*schema.Attribute{
					{Name: "value", Type: schema.TypeString, Mutability: schema.MutabilityReadWrite},
					{Name: "type", Type: schema.TypeString, CanonicalValues: []string{"work", "mobile"}, Mutability: schema.MutabilityReadWrite},
					{Name: "primary", Type: schema.TypeBoolean, Mutability: schema.MutabilityReadWrite},
				},
			},
			{
				Name:        "x509Certificates",
				Type:        schema.TypeComplex,
				MultiValued: true,
				Mutability:  schema.MutabilityReadWrite,
				SubAttributes: []*schema.Attribute{
					{Name: "value", Type: schema.TypeBinary, Mutability: schema.MutabilityReadWrite},
				},
			},
			{
				Name:        "groups",
				Type:        schema.TypeComplex,
				MultiValued: true,
				Mutability:  schema.MutabilityReadOnly,
				SubAttributes: []*schema.Attribute{
					{Name: "value", Type: schema.TypeString, Mutability: schema.MutabilityReadOnly},
					{Name: "$ref", Type: schema.TypeReference, ReferenceTypes: []string{"Group"}, Mutability: schema.MutabilityReadOnly},
					{Name: "display", Type: schema.TypeString, Mutability: schema.MutabilityReadOnly},
				},
			},
			{
				Name:       "password",
				Type:       schema.TypeString,
				Mutability: schema.MutabilityWriteOnly,
			},
		},
	}
}

// EnterpriseSchema builds the enterprise User extension schema subset.
func EnterpriseSchema() *schema.Schema {
	return &schema.Schema{
		ID:   EnterpriseURN,
		Name: "EnterpriseUser",
		Attributes: []*schema.Attribute{
			{
				Name:       "employeeNumber",
				Type:       schema.TypeString,
				Mutability: schema.MutabilityReadWrite,
			},
			{
				Name:       "organization",
				Type:       schema.TypeString,
				Mutability: schema.MutabilityReadWrite,
			},
			{
				Name:       "manager",
				Type:       schema.TypeComplex,
				Mutability: schema.MutabilityReadWrite,
				SubAttributes: []*schema.Attribute{
					{Name: "value", Type: schema.TypeString, Mutability: schema.MutabilityReadWrite},
					{Name: "$ref", Type: schema.TypeReference, ReferenceTypes: []string{"User"}, Mutability: schema.MutabilityReadWrite},
					{Name: "displayName", Type: schema.TypeString, Mutability: schema.MutabilityReadOnly},
				},
			},
		},
	}
}

// GroupSchema builds the core Group schema subset.
func GroupSchema() *schema.Schema {
	return &schema.Schema{
		ID:   GroupURN,
		Name: "Group",
		Attributes: []*schema.Attribute{
			{
				Name:       "displayName",
				Type:       schema.TypeString,
				Required:   true,
				Mutability: schema.MutabilityReadWrite,
			},
			{
				Name:        "members",
				Type:        schema.TypeComplex,
				MultiValued: true,
				Mutability:  schema.MutabilityReadWrite,
				SubAttributes: []*schema.Attribute{
					{Name: "value", Type: schema.TypeString, Mutability: schema.MutabilityImmutable},
					{Name: "$ref", Type: schema.TypeReference, ReferenceTypes: []string{"User", "Group"}, Mutability: schema.MutabilityImmutable},
					{Name: "type", Type: schema.TypeString, CanonicalValues: []string{"User", "Group"}, Mutability: schema.MutabilityImmutable},
					{Name: "display", Type: schema.TypeString, Mutability: schema.MutabilityReadWrite},
				},
			},
		},
	}
}
