package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"scimtester/internal/schema"
	"scimtester/pkg/logging"
)

const mediaType = "application/scim+json"

// HTTPClient is the HTTP implementation of Client.
type HTTPClient struct {
	base *url.URL
	hc   *http.Client

	mu     sync.RWMutex
	models []*schema.Model
	spc    *ServiceProviderConfig
	group  singleflight.Group
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithBearerToken authenticates every request with a static bearer token.
func WithBearerToken(token string) Option {
	return func(c *HTTPClient) {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		base := c.hc.Transport
		c.hc.Transport = &oauth2.Transport{Source: source, Base: base}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

// NewHTTPClient builds a client for the SCIM server at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	c := &HTTPClient{base: base, hc: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ResourceModels returns the models advertised by the server, discovering
// and caching them on first use. Concurrent calls share one round trip.
func (c *HTTPClient) ResourceModels(ctx context.Context) ([]*schema.Model, error) {
	c.mu.RLock()
	models := c.models
	c.mu.RUnlock()
	if models != nil {
		return models, nil
	}

	result, err, _ := c.group.Do("models", func() (any, error) {
		schemas, err := c.Schemas(ctx)
		if err != nil {
			return nil, err
		}
		types, err := c.ResourceTypes(ctx)
		if err != nil {
			return nil, err
		}
		models, err := schema.BuildModels(types, schemas)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.models = models
		c.mu.Unlock()
		logging.Debug("Client", "Discovered %d resource models", len(models))
		return models, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*schema.Model), nil
}

// ResourceModel returns the discovered model named name.
func (c *HTTPClient) ResourceModel(ctx context.Context, name string) (*schema.Model, error) {
	models, err := c.ResourceModels(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range models {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("no resource model named %q", name)
}

// ServiceProviderConfig fetches and caches /ServiceProviderConfig.
func (c *HTTPClient) ServiceProviderConfig(ctx context.Context) (*ServiceProviderConfig, error) {
	c.mu.RLock()
	spc := c.spc
	c.mu.RUnlock()
	if spc != nil {
		return spc, nil
	}

	result, err, _ := c.group.Do("spc", func() (any, error) {
		var spc ServiceProviderConfig
		if err := c.get(ctx, "/ServiceProviderConfig", &spc); err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.spc = &spc
		c.mu.Unlock()
		return &spc, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*ServiceProviderConfig), nil
}

// Schemas fetches /Schemas.
func (c *HTTPClient) Schemas(ctx context.Context) ([]*schema.Schema, error) {
	raw, err := c.list(ctx, "/Schemas")
	if err != nil {
		return nil, err
	}
	schemas := make([]*schema.Schema, 0, len(raw))
	for _, entry := range raw {
		var s schema.Schema
		if err := json.Unmarshal(entry, &s); err != nil {
			return nil, fmt.Errorf("decoding schema: %w", err)
		}
		schemas = append(schemas, &s)
	}
	return schemas, nil
}

// Schema fetches /Schemas/{id}.
func (c *HTTPClient) Schema(ctx context.Context, id string) (*schema.Schema, error) {
	var s schema.Schema
	if err := c.get(ctx, "/Schemas/"+url.PathEscape(id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ResourceTypes fetches /ResourceTypes.
func (c *HTTPClient) ResourceTypes(ctx context.Context) ([]schema.ResourceTypeDef, error) {
	raw, err := c.list(ctx, "/ResourceTypes")
	if err != nil {
		return nil, err
	}
	types := make([]schema.ResourceTypeDef, 0, len(raw))
	for _, entry := range raw {
		var rt schema.ResourceTypeDef
		if err := json.Unmarshal(entry, &rt); err != nil {
			return nil, fmt.Errorf("decoding resource type: %w", err)
		}
		types = append(types, rt)
	}
	return types, nil
}

// Create POSTs obj to the model's collection endpoint.
func (c *HTTPClient) Create(ctx context.Context, m *schema.Model, obj schema.Resource) (schema.Resource, error) {
	var created schema.Resource
	if err := c.do(ctx, http.MethodPost, m.Endpoint, obj, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// Query GETs one resource by id.
func (c *HTTPClient) Query(ctx context.Context, m *schema.Model, id string) (schema.Resource, error) {
	var obj schema.Resource
	if err := c.get(ctx, m.Endpoint+"/"+url.PathEscape(id), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// QueryAll GETs the model's whole collection.
func (c *HTTPClient) QueryAll(ctx context.Context, m *schema.Model) (*ListResponse, error) {
	var list ListResponse
	if err := c.get(ctx, m.Endpoint, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// QueryURL GETs an arbitrary server-relative URL.
func (c *HTTPClient) QueryURL(ctx context.Context, path string) (schema.Resource, error) {
	var obj schema.Resource
	if err := c.get(ctx, path, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// Request performs a bodyless request with the given method and returns the
// response status code untouched.
func (c *HTTPClient) Request(ctx context.Context, method, path string) (int, error) {
	target, err := c.base.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return 0, fmt.Errorf("invalid request path %q: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", mediaType)

	logging.Debug("Client", "%s %s", method, target.Path)
	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// Replace PUTs obj at its own location.
func (c *HTTPClient) Replace(ctx context.Context, m *schema.Model, obj schema.Resource) (schema.Resource, error) {
	id := obj.ID()
	if id == "" {
		return nil, fmt.Errorf("cannot replace a %s without an id", m.Name)
	}
	var replaced schema.Resource
	if err := c.do(ctx, http.MethodPut, m.Endpoint+"/"+url.PathEscape(id), obj, &replaced); err != nil {
		return nil, err
	}
	return replaced, nil
}

// Modify PATCHes the resource with the given id. A 204 answer yields a nil
// resource and no error.
func (c *HTTPClient) Modify(ctx context.Context, m *schema.Model, id string, patch PatchOp) (schema.Resource, error) {
	var modified schema.Resource
	if err := c.do(ctx, http.MethodPatch, m.Endpoint+"/"+url.PathEscape(id), patch, &modified); err != nil {
		return nil, err
	}
	if len(modified) == 0 {
		return nil, nil
	}
	return modified, nil
}

// Delete removes the resource with the given id.
func (c *HTTPClient) Delete(ctx context.Context, m *schema.Model, id string) error {
	return c.do(ctx, http.MethodDelete, m.Endpoint+"/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// list fetches a discovery endpoint, accepting either a ListResponse
// envelope or a bare JSON array.
func (c *HTTPClient) list(ctx context.Context, path string) ([]json.RawMessage, error) {
	var body json.RawMessage
	if err := c.get(ctx, path, &body); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return entries, nil
	}
	var envelope struct {
		Resources []json.RawMessage `json:"Resources"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return envelope.Resources, nil
}

// do performs one round trip. Responses with status >= 400 decode into
// *Error when the payload is a SCIM error, otherwise into a plain error.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	target, err := c.base.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return fmt.Errorf("invalid request path %q: %w", path, err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", mediaType)
	if body != nil {
		req.Header.Set("Content-Type", mediaType)
	}

	logging.Debug("Client", "%s %s", method, target.Path)
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: reading response: %w", method, path, err)
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, payload)
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	return nil
}

// decodeError turns an HTTP error response into a *Error when the payload is
// a recognizable SCIM Error object: it declares the Error message URN, or at
// least decodes with a status value. Anything else, including an empty body,
// becomes a *NonSCIMError so checks can tell the two apart.
func decodeError(status int, payload []byte) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return &NonSCIMError{Status: status}
	}

	var decoded Error
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return &NonSCIMError{Status: status}
	}

	var envelope struct {
		Schemas []string `json:"schemas"`
	}
	_ = json.Unmarshal(trimmed, &envelope)
	declared := false
	for _, urn := range envelope.Schemas {
		if urn == ErrorURN {
			declared = true
			break
		}
	}
	if !declared && decoded.Status == 0 {
		return &NonSCIMError{Status: status}
	}

	if decoded.Status == 0 {
		decoded.Status = status
	}
	return &decoded
}
