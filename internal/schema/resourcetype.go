package schema

import "fmt"

// ResourceTypeDef is the wire shape of a /ResourceTypes entry (RFC 7643 §6).
type ResourceTypeDef struct {
	ID               string               `json:"id,omitempty"`
	Name             string               `json:"name"`
	Endpoint         string               `json:"endpoint"`
	Description      string               `json:"description,omitempty"`
	Schema           string               `json:"schema"`
	SchemaExtensions []SchemaExtensionDef `json:"schemaExtensions,omitempty"`
}

// SchemaExtensionDef declares one schema extension of a resource type.
type SchemaExtensionDef struct {
	Schema   string `json:"schema"`
	Required bool   `json:"required"`
}

// BuildModels assembles one Model per resource type by joining the
// /ResourceTypes entries against the discovered /Schemas. A resource type
// whose base schema is missing is an error; a missing extension schema is
// skipped, since servers commonly advertise extensions they do not describe.
func BuildModels(types []ResourceTypeDef, schemas []*Schema) ([]*Model, error) {
	byURN := make(map[string]*Schema, len(schemas))
	for _, s := range schemas {
		byURN[s.ID] = s
	}

	models := make([]*Model, 0, len(types))
	for _, rt := range types {
		base, ok := byURN[rt.Schema]
		if !ok {
			return nil, fmt.Errorf("resource type %q: no schema matching %q", rt.Name, rt.Schema)
		}
		model := &Model{
			Name:     rt.Name,
			Endpoint: rt.Endpoint,
			Base:     base,
		}
		for _, ext := range rt.SchemaExtensions {
			extSchema, ok := byURN[ext.Schema]
			if !ok {
				continue
			}
			model.Extensions = append(model.Extensions, Extension{
				Schema:   extSchema,
				Required: ext.Required,
			})
		}
		models = append(models, model)
	}
	return models, nil
}
