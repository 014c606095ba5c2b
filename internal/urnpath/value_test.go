package urnpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scimtester/internal/schema"
	"scimtester/internal/schema/schematest"
)

func TestGetSetRoundTrip(t *testing.T) {
	model := schematest.UserModel()

	tests := []struct {
		name  string
		path  string
		value any
	}{
		{name: "top level", path: "userName", value: "bjensen"},
		{name: "nested", path: "name.givenName", value: "Barbara"},
		{name: "base urn qualified", path: schematest.UserURN + ":displayName", value: "Babs"},
		{name: "extension attribute", path: schematest.EnterpriseURN + ":employeeNumber", value: "701984"},
		{name: "extension nested", path: schematest.EnterpriseURN + ":manager.value", value: "26118915"},
		{name: "boolean", path: "active", value: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := schema.NewResource(model)
			Set(model, obj, tt.path, tt.value)
			got, ok := Get(model, obj, tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestSetCreatesIntermediates(t *testing.T) {
	model := schematest.UserModel()
	obj := schema.NewResource(model)

	Set(model, obj, "name.familyName", "Jensen")

	name, ok := obj["name"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Jensen", name["familyName"])
}

func TestSetDeclaresExtensionSchema(t *testing.T) {
	model := schematest.UserModel()
	obj := schema.NewResource(model)

	Set(model, obj, schematest.EnterpriseURN+":organization", "Universal Studios")

	assert.Contains(t, obj.Schemas(), schematest.EnterpriseURN)
	ext, ok := obj[schematest.EnterpriseURN].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Universal Studios", ext["organization"])
}

func TestSetWrapsMultiValued(t *testing.T) {
	model := schematest.UserModel()
	obj := schema.NewResource(model)

	Set(model, obj, "emails", map[string]any{"value": "babs@example.com"})

	emails, ok := obj["emails"].([]any)
	require.True(t, ok)
	require.Len(t, emails, 1)
}

func TestSetUnknownFieldIsNoOp(t *testing.T) {
	model := schematest.UserModel()
	obj := schema.NewResource(model)

	Set(model, obj, "nickName", "Babs")
	Set(model, obj, "name.honorificPrefix.extra", "x")

	_, hasNick := obj["nickName"]
	assert.False(t, hasNick)
	_, hasName := obj["name"]
	assert.False(t, hasName)
}

func TestSetIntoPopulatedCollectionIsNoOp(t *testing.T) {
	model := schematest.GroupModel()
	obj := schema.NewResource(model)
	obj["members"] = []any{map[string]any{"value": "1"}}

	Set(model, obj, "members.display", "Babs")

	members := obj["members"].([]any)
	require.Len(t, members, 1)
	_, hasDisplay := members[0].(map[string]any)["display"]
	assert.False(t, hasDisplay)
}

func TestSetIntoUnsetCollectionIsNoOp(t *testing.T) {
	model := schematest.GroupModel()
	obj := schema.NewResource(model)

	Set(model, obj, "members.display", "Babs")

	_, hasMembers := obj["members"]
	assert.False(t, hasMembers)
}

func TestGetAbsentCases(t *testing.T) {
	model := schematest.UserModel()
	obj := schema.NewResource(model)
	obj["emails"] = []any{map[string]any{"value": "babs@example.com"}}

	tests := []struct {
		name string
		path string
	}{
		{name: "unset intermediate", path: "name.givenName"},
		{name: "unknown field", path: "nickName"},
		{name: "populated collection navigation", path: "emails.value"},
		{name: "unset extension", path: schematest.EnterpriseURN + ":manager.value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Get(model, obj, tt.path)
			assert.False(t, ok)
		})
	}
}

func TestGetExtensionURNExactly(t *testing.T) {
	model := schematest.UserModel()
	obj := schema.NewResource(model)
	Set(model, obj, schematest.EnterpriseURN+":employeeNumber", "701984")

	value, ok := Get(model, obj, schematest.EnterpriseURN)
	require.True(t, ok)
	ext, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "701984", ext["employeeNumber"])
}
