package urnpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scimtester/internal/schema"
	"scimtester/internal/schema/schematest"
)

func paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestIterateOrderAndQualification(t *testing.T) {
	model := schematest.UserModel()

	entries := Iterate(model, Filter{})
	got := paths(entries)

	assert.Equal(t, []string{
		"userName",
		"name",
		"displayName",
		"title",
		"active",
		"profileUrl",
		"emails",
		"phoneNumbers",
		"x509Certificates",
		"groups",
		"password",
		schematest.EnterpriseURN + ":employeeNumber",
		schematest.EnterpriseURN + ":organization",
		schematest.EnterpriseURN + ":manager",
	}, got)
}

func TestIterateExcludesBookkeepingAttributes(t *testing.T) {
	model := &schema.Model{
		Name:     "Thing",
		Endpoint: "/Things",
		Base: &schema.Schema{
			ID: "urn:example:params:scim:schemas:core:2.0:Thing",
			Attributes: []*schema.Attribute{
				{Name: "id", Type: schema.TypeString},
				{Name: "meta", Type: schema.TypeComplex},
				{Name: "schemas", Type: schema.TypeString, MultiValued: true},
				{Name: "label", Type: schema.TypeString},
			},
		},
	}

	got := paths(Iterate(model, Filter{}))
	assert.Equal(t, []string{"label"}, got)
}

func TestIterateExcludesBookkeepingInExtensions(t *testing.T) {
	extURN := "urn:example:params:scim:schemas:extension:2.0:Audit"
	model := &schema.Model{
		Name:     "Thing",
		Endpoint: "/Things",
		Base: &schema.Schema{
			ID: "urn:example:params:scim:schemas:core:2.0:Thing",
			Attributes: []*schema.Attribute{
				{Name: "label", Type: schema.TypeString},
			},
		},
		Extensions: []schema.Extension{
			{Schema: &schema.Schema{
				ID: extURN,
				Attributes: []*schema.Attribute{
					{Name: "id", Type: schema.TypeString},
					{Name: "meta", Type: schema.TypeComplex},
					{Name: "schemas", Type: schema.TypeString, MultiValued: true},
					{Name: "auditedBy", Type: schema.TypeString},
				},
			}},
		},
	}

	got := paths(Iterate(model, Filter{}))
	assert.Equal(t, []string{"label", extURN + ":auditedBy"}, got)
}

func TestIterateRequiredOnlyIsSubset(t *testing.T) {
	model := schematest.UserModel()

	all := paths(Iterate(model, Filter{}))
	required := Iterate(model, RequiredOnly())

	require.NotEmpty(t, required)
	for _, e := range required {
		assert.True(t, e.Attr.Required)
		assert.Contains(t, all, e.Path)
	}
	assert.Equal(t, []string{"userName"}, paths(required))
}

func TestIterateWritableExcludesReadOnly(t *testing.T) {
	model := schematest.UserModel()

	got := paths(Iterate(model, Writable()))
	assert.NotContains(t, got, "groups")
	assert.Contains(t, got, "password")
	assert.Contains(t, got, "userName")
}

func TestIterateSubAttributes(t *testing.T) {
	model := schematest.UserModel()

	got := paths(Iterate(model, Filter{IncludeSubAttributes: true}))
	assert.Contains(t, got, "name.givenName")
	assert.Contains(t, got, "emails.value")
	assert.Contains(t, got, schematest.EnterpriseURN+":manager.value")

	// sub-attributes follow their parent immediately
	var nameIdx, givenIdx int
	for i, p := range got {
		switch p {
		case "name":
			nameIdx = i
		case "name.givenName":
			givenIdx = i
		}
	}
	assert.Equal(t, nameIdx+3, givenIdx)
}

func TestIterateIsRestartable(t *testing.T) {
	model := schematest.UserModel()

	first := Iterate(model, Writable())
	second := Iterate(model, Writable())
	assert.Equal(t, paths(first), paths(second))
}

func TestIterateNoDuplicates(t *testing.T) {
	model := schematest.UserModel()

	seen := make(map[string]bool)
	for _, e := range Iterate(model, Filter{IncludeSubAttributes: true}) {
		assert.False(t, seen[e.Path], "duplicate path %s", e.Path)
		seen[e.Path] = true
	}
}
