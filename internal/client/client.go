package client

import (
	"context"

	"scimtester/internal/schema"
)

// Message schema URNs consumed and produced by the client.
const (
	ListResponseURN = "urn:ietf:params:scim:api:messages:2.0:ListResponse"
	PatchOpURN      = "urn:ietf:params:scim:api:messages:2.0:PatchOp"
)

// Supported is the {"supported": bool} feature block of the service provider
// configuration.
type Supported struct {
	Supported bool `json:"supported"`
}

// ServiceProviderConfig is the subset of /ServiceProviderConfig (RFC 7643
// §5) the checks consume.
type ServiceProviderConfig struct {
	DocumentationURI string    `json:"documentationUri,omitempty"`
	Patch            Supported `json:"patch"`
	Bulk             Supported `json:"bulk"`
	Filter           Supported `json:"filter"`
	ChangePassword   Supported `json:"changePassword"`
	Sort             Supported `json:"sort"`
	ETag             Supported `json:"etag"`
}

// ListResponse is a SCIM query response envelope (RFC 7644 §3.4.2).
type ListResponse struct {
	Schemas      []string          `json:"schemas"`
	TotalResults int               `json:"totalResults"`
	ItemsPerPage int               `json:"itemsPerPage,omitempty"`
	StartIndex   int               `json:"startIndex,omitempty"`
	Resources    []schema.Resource `json:"Resources,omitempty"`
}

// PatchOperation is a single PATCH operation (RFC 7644 §3.5.2).
type PatchOperation struct {
	Op    string `json:"op"`
	Path  string `json:"path,omitempty"`
	Value any    `json:"value,omitempty"`
}

// PatchOp is a PATCH request body.
type PatchOp struct {
	Schemas    []string         `json:"schemas"`
	Operations []PatchOperation `json:"Operations"`
}

// NewPatchOp wraps the given operations in a request body with the PatchOp
// message URN.
func NewPatchOp(ops ...PatchOperation) PatchOp {
	return PatchOp{Schemas: []string{PatchOpURN}, Operations: ops}
}

// Client is the SCIM protocol surface consumed by the conformance checks.
// Every operation blocks until the round trip completes; cancellation and
// timeouts travel through ctx.
type Client interface {
	// ResourceModels returns the models discovered on the server.
	ResourceModels(ctx context.Context) ([]*schema.Model, error)
	// ResourceModel returns the discovered model with the given kind name.
	ResourceModel(ctx context.Context, name string) (*schema.Model, error)

	// ServiceProviderConfig fetches /ServiceProviderConfig.
	ServiceProviderConfig(ctx context.Context) (*ServiceProviderConfig, error)
	// Schemas fetches /Schemas.
	Schemas(ctx context.Context) ([]*schema.Schema, error)
	// Schema fetches /Schemas/{id}.
	Schema(ctx context.Context, id string) (*schema.Schema, error)
	// ResourceTypes fetches /ResourceTypes.
	ResourceTypes(ctx context.Context) ([]schema.ResourceTypeDef, error)

	// Create POSTs obj to the model's collection endpoint.
	Create(ctx context.Context, m *schema.Model, obj schema.Resource) (schema.Resource, error)
	// Query GETs one resource by id.
	Query(ctx context.Context, m *schema.Model, id string) (schema.Resource, error)
	// QueryAll GETs the model's whole collection.
	QueryAll(ctx context.Context, m *schema.Model) (*ListResponse, error)
	// QueryURL GETs an arbitrary server-relative URL, decoding either a
	// resource or a structured SCIM error.
	QueryURL(ctx context.Context, path string) (schema.Resource, error)
	// Request performs a bodyless request with an arbitrary method against a
	// server-relative path and returns the response status code. Method
	// checks use it; nothing is decoded.
	Request(ctx context.Context, method, path string) (int, error)
	// Replace PUTs obj at its own location.
	Replace(ctx context.Context, m *schema.Model, obj schema.Resource) (schema.Resource, error)
	// Modify PATCHes the resource with the given id. Servers may answer
	// 204 with no body, in which case the returned resource is nil.
	Modify(ctx context.Context, m *schema.Model, id string, patch PatchOp) (schema.Resource, error)
	// Delete removes the resource with the given id.
	Delete(ctx context.Context, m *schema.Model, id string) error
}
