// Package clienttest provides an in-memory fake of the client.Client
// interface for tests. Created resources get a uuid id and a location under
// the model's endpoint; operations record call counts and can be forced to
// fail.
package clienttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"scimtester/internal/client"
	"scimtester/internal/schema"
)

// Fake is an in-memory client.Client.
type Fake struct {
	mu sync.Mutex

	// Models are the resource models the fake advertises.
	Models []*schema.Model
	// SPC is returned by ServiceProviderConfig. Patch defaults to
	// supported.
	SPC client.ServiceProviderConfig

	// FailCreate makes every Create return this error.
	FailCreate error
	// FailDelete makes every Delete return this error.
	FailDelete error
	// CreateHook, when set, may rewrite the stored resource before it is
	// returned.
	CreateHook func(m *schema.Model, created schema.Resource)

	// RequestStatus is the status code Request reports; 0 means 405.
	RequestStatus int

	// CreateCalls, DeleteCalls and ModifyCalls count operations.
	CreateCalls int
	DeleteCalls int
	ModifyCalls int

	// Requests records every raw method request as "METHOD path".
	Requests []string

	// Deleted records every id passed to Delete, in call order.
	Deleted []string

	store map[string]schema.Resource
	order []string
}

// NewFake builds a fake advertising the given models.
func NewFake(models ...*schema.Model) *Fake {
	return &Fake{
		Models: models,
		SPC:    client.ServiceProviderConfig{Patch: client.Supported{Supported: true}},
		store:  make(map[string]schema.Resource),
	}
}

// Stored returns the resource with the given id, if it exists.
func (f *Fake) Stored(id string) (schema.Resource, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.store[id]
	return r, ok
}

// ResourceModels implements client.Client.
func (f *Fake) ResourceModels(ctx context.Context) ([]*schema.Model, error) {
	return f.Models, nil
}

// ResourceModel implements client.Client.
func (f *Fake) ResourceModel(ctx context.Context, name string) (*schema.Model, error) {
	for _, m := range f.Models {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("no resource model named %q", name)
}

// ServiceProviderConfig implements client.Client.
func (f *Fake) ServiceProviderConfig(ctx context.Context) (*client.ServiceProviderConfig, error) {
	spc := f.SPC
	return &spc, nil
}

// Schemas implements client.Client.
func (f *Fake) Schemas(ctx context.Context) ([]*schema.Schema, error) {
	var schemas []*schema.Schema
	seen := make(map[string]bool)
	for _, m := range f.Models {
		for _, urn := range m.SchemaURNs() {
			if seen[urn] {
				continue
			}
			seen[urn] = true
			if urn == m.Base.ID {
				schemas = append(schemas, m.Base)
			} else {
				schemas = append(schemas, m.Extension(urn))
			}
		}
	}
	return schemas, nil
}

// Schema implements client.Client.
func (f *Fake) Schema(ctx context.Context, id string) (*schema.Schema, error) {
	schemas, _ := f.Schemas(ctx)
	for _, s := range schemas {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, &client.Error{Status: 404, Detail: fmt.Sprintf("schema %s not found", id)}
}

// ResourceTypes implements client.Client.
func (f *Fake) ResourceTypes(ctx context.Context) ([]schema.ResourceTypeDef, error) {
	types := make([]schema.ResourceTypeDef, 0, len(f.Models))
	for _, m := range f.Models {
		rt := schema.ResourceTypeDef{
			ID:       m.Name,
			Name:     m.Name,
			Endpoint: m.Endpoint,
			Schema:   m.Base.ID,
		}
		for _, ext := range m.Extensions {
			rt.SchemaExtensions = append(rt.SchemaExtensions, schema.SchemaExtensionDef{
				Schema:   ext.Schema.ID,
				Required: ext.Required,
			})
		}
		types = append(types, rt)
	}
	return types, nil
}

// Create implements client.Client.
func (f *Fake) Create(ctx context.Context, m *schema.Model, obj schema.Resource) (schema.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateCalls++
	if f.FailCreate != nil {
		return nil, f.FailCreate
	}

	created := obj.Clone()
	id := uuid.NewString()
	created["id"] = id
	created["meta"] = map[string]any{
		"resourceType": m.Name,
		"location":     fmt.Sprintf("https://scim.test%s/%s", m.Endpoint, id),
	}
	if f.CreateHook != nil {
		f.CreateHook(m, created)
	}
	f.store[id] = created
	f.order = append(f.order, id)
	return created.Clone(), nil
}

// Query implements client.Client.
func (f *Fake) Query(ctx context.Context, m *schema.Model, id string) (schema.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.store[id]
	if !ok {
		return nil, &client.Error{Status: 404, Detail: fmt.Sprintf("%s %s not found", m.Name, id)}
	}
	return r.Clone(), nil
}

// QueryAll implements client.Client.
func (f *Fake) QueryAll(ctx context.Context, m *schema.Model) (*client.ListResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := &client.ListResponse{Schemas: []string{client.ListResponseURN}}
	for _, id := range f.order {
		if r, ok := f.store[id]; ok && r.ResourceType() == m.Name {
			list.Resources = append(list.Resources, r.Clone())
		}
	}
	list.TotalResults = len(list.Resources)
	return list, nil
}

// QueryURL implements client.Client.
func (f *Fake) QueryURL(ctx context.Context, path string) (schema.Resource, error) {
	return nil, &client.Error{Status: 404, Detail: fmt.Sprintf("%s not found", path)}
}

// Request implements client.Client. The fake plays a conformant server and
// answers 405 unless RequestStatus says otherwise.
func (f *Fake) Request(ctx context.Context, method, path string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, method+" "+path)
	if f.RequestStatus != 0 {
		return f.RequestStatus, nil
	}
	return 405, nil
}

// Replace implements client.Client.
func (f *Fake) Replace(ctx context.Context, m *schema.Model, obj schema.Resource) (schema.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := obj.ID()
	if _, ok := f.store[id]; !ok {
		return nil, &client.Error{Status: 404, Detail: fmt.Sprintf("%s %s not found", m.Name, id)}
	}
	f.store[id] = obj.Clone()
	return obj.Clone(), nil
}

// Modify implements client.Client. Patch semantics are naive: add and
// replace set the value at the operation path, remove unsets a top-level
// attribute.
func (f *Fake) Modify(ctx context.Context, m *schema.Model, id string, patch client.PatchOp) (schema.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ModifyCalls++
	r, ok := f.store[id]
	if !ok {
		return nil, &client.Error{Status: 404, Detail: fmt.Sprintf("%s %s not found", m.Name, id)}
	}
	for _, op := range patch.Operations {
		switch op.Op {
		case "add", "replace":
			setPatchValue(m, r, op.Path, op.Value)
		case "remove":
			if sub, ok := trimExtensionPrefix(m, op.Path); ok {
				if extObj, ok := r[sub.urn].(map[string]any); ok {
					delete(extObj, sub.rest)
				}
			} else {
				delete(r, op.Path)
			}
		}
	}
	return r.Clone(), nil
}

// Delete implements client.Client.
func (f *Fake) Delete(ctx context.Context, m *schema.Model, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.DeleteCalls++
	f.Deleted = append(f.Deleted, id)
	if f.FailDelete != nil {
		return f.FailDelete
	}
	if _, ok := f.store[id]; !ok {
		return &client.Error{Status: 404, Detail: fmt.Sprintf("%s %s not found", m.Name, id)}
	}
	delete(f.store, id)
	return nil
}

func setPatchValue(m *schema.Model, r schema.Resource, path string, value any) {
	if path == "" {
		return
	}
	if ext := m.Extension(path); ext != nil {
		r[path] = value
		return
	}
	if sub, ok := trimExtensionPrefix(m, path); ok {
		extObj, _ := r[sub.urn].(map[string]any)
		if extObj == nil {
			extObj = map[string]any{}
			r[sub.urn] = extObj
		}
		extObj[sub.rest] = value
		return
	}
	r[path] = value
}

type extPath struct {
	urn  string
	rest string
}

func trimExtensionPrefix(m *schema.Model, path string) (extPath, bool) {
	for _, ext := range m.Extensions {
		prefix := ext.Schema.ID + ":"
		if len(path) > len(prefix) && path[:len(prefix)] == prefix {
			return extPath{urn: ext.Schema.ID, rest: path[len(prefix):]}, true
		}
	}
	return extPath{}, false
}
