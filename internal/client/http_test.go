package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scimtester/internal/schema"
	"scimtester/internal/schema/schematest"
)

// newSCIMServer runs a minimal SCIM server: discovery endpoints plus a
// single-user /Users collection.
func newSCIMServer(t *testing.T, bareDiscoveryArrays bool) *httptest.Server {
	t.Helper()

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", mediaType)
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}
	writeList := func(w http.ResponseWriter, entries []any) {
		if bareDiscoveryArrays {
			writeJSON(w, http.StatusOK, entries)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"schemas":      []string{ListResponseURN},
			"totalResults": len(entries),
			"Resources":    entries,
		})
	}

	userSchema := schematest.UserSchema()
	enterpriseSchema := schematest.EnterpriseSchema()
	resourceType := schema.ResourceTypeDef{
		ID:       "User",
		Name:     "User",
		Endpoint: "/Users",
		Schema:   schematest.UserURN,
		SchemaExtensions: []schema.SchemaExtensionDef{
			{Schema: schematest.EnterpriseURN},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/ServiceProviderConfig", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ServiceProviderConfig{Patch: Supported{Supported: true}})
	})
	mux.HandleFunc("GET /v2/Schemas", func(w http.ResponseWriter, r *http.Request) {
		writeList(w, []any{userSchema, enterpriseSchema})
	})
	mux.HandleFunc("GET /v2/Schemas/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case schematest.UserURN:
			writeJSON(w, http.StatusOK, userSchema)
		default:
			writeJSON(w, http.StatusNotFound, map[string]any{
				"schemas": []string{ErrorURN},
				"status":  "404",
				"detail":  "Schema not found",
			})
		}
	})
	mux.HandleFunc("GET /v2/ResourceTypes", func(w http.ResponseWriter, r *http.Request) {
		writeList(w, []any{resourceType})
	})
	mux.HandleFunc("POST /v2/Users", func(w http.ResponseWriter, r *http.Request) {
		var obj map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&obj))
		assert.Equal(t, mediaType, r.Header.Get("Content-Type"))
		obj["id"] = "2819c223"
		writeJSON(w, http.StatusCreated, obj)
	})
	mux.HandleFunc("GET /v2/Users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "2819c223" {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"schemas": []string{ErrorURN},
				"status":  "404",
				"detail":  "User not found",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": "2819c223", "userName": "bjensen"})
	})
	mux.HandleFunc("PATCH /v2/Users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var patch PatchOp
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, []string{PatchOpURN}, patch.Schemas)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("DELETE /v2/Users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not json", http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server, opts ...Option) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(server.URL+"/v2", opts...)
	require.NoError(t, err)
	return c
}

func TestHTTPClientDiscovery(t *testing.T) {
	for _, bare := range []bool{false, true} {
		name := "envelope"
		if bare {
			name = "bare array"
		}
		t.Run(name, func(t *testing.T) {
			server := newSCIMServer(t, bare)
			c := newTestClient(t, server)

			models, err := c.ResourceModels(context.Background())
			require.NoError(t, err)
			require.Len(t, models, 1)
			assert.Equal(t, "User", models[0].Name)
			assert.Equal(t, "/Users", models[0].Endpoint)
			require.Len(t, models[0].Extensions, 1)
			assert.Equal(t, schematest.EnterpriseURN, models[0].Extensions[0].Schema.ID)

			m, err := c.ResourceModel(context.Background(), "user")
			require.NoError(t, err)
			assert.Equal(t, models[0], m)

			_, err = c.ResourceModel(context.Background(), "Robot")
			assert.Error(t, err)
		})
	}
}

func TestHTTPClientServiceProviderConfig(t *testing.T) {
	server := newSCIMServer(t, false)
	c := newTestClient(t, server)

	spc, err := c.ServiceProviderConfig(context.Background())
	require.NoError(t, err)
	assert.True(t, spc.Patch.Supported)

	// cached: the second call returns the same instance
	again, err := c.ServiceProviderConfig(context.Background())
	require.NoError(t, err)
	assert.Same(t, spc, again)
}

func TestHTTPClientSchemaByID(t *testing.T) {
	server := newSCIMServer(t, false)
	c := newTestClient(t, server)

	s, err := c.Schema(context.Background(), schematest.UserURN)
	require.NoError(t, err)
	assert.Equal(t, "User", s.Name)
	assert.NotNil(t, s.Field("userName"))

	_, err = c.Schema(context.Background(), "urn:unknown")
	scimErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, 404, scimErr.Status)
	assert.Equal(t, "Schema not found", scimErr.Detail)
}

func TestHTTPClientCreateAndQuery(t *testing.T) {
	server := newSCIMServer(t, false)
	c := newTestClient(t, server)
	ctx := context.Background()

	m, err := c.ResourceModel(ctx, "User")
	require.NoError(t, err)

	created, err := c.Create(ctx, m, schema.Resource{"userName": "bjensen"})
	require.NoError(t, err)
	assert.Equal(t, "2819c223", created.ID())

	queried, err := c.Query(ctx, m, created.ID())
	require.NoError(t, err)
	assert.Equal(t, "bjensen", queried["userName"])

	_, err = c.Query(ctx, m, "missing")
	assert.True(t, IsNotFound(err))
}

func TestHTTPClientModifyNoContent(t *testing.T) {
	server := newSCIMServer(t, false)
	c := newTestClient(t, server)
	ctx := context.Background()

	m, err := c.ResourceModel(ctx, "User")
	require.NoError(t, err)

	modified, err := c.Modify(ctx, m, "2819c223", NewPatchOp(PatchOperation{
		Op: "replace", Path: "displayName", Value: "Babs",
	}))
	require.NoError(t, err)
	assert.Nil(t, modified)
}

func TestHTTPClientDelete(t *testing.T) {
	server := newSCIMServer(t, false)
	c := newTestClient(t, server)
	ctx := context.Background()

	m, err := c.ResourceModel(ctx, "User")
	require.NoError(t, err)
	assert.NoError(t, c.Delete(ctx, m, "2819c223"))
}

func TestHTTPClientNonSCIMErrorBody(t *testing.T) {
	server := newSCIMServer(t, false)
	c := newTestClient(t, server)

	// the catch-all handler answers with a text/plain 404 page
	_, err := c.QueryURL(context.Background(), "/nowhere")
	require.Error(t, err)
	_, ok := AsError(err)
	assert.False(t, ok)
	nonSCIM, ok := AsNonSCIM(err)
	require.True(t, ok)
	assert.Equal(t, 404, nonSCIM.Status)
}

func TestHTTPClientErrorWithoutDeclaredSchema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", mediaType)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status": "404", "detail": "gone"}`))
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL)
	require.NoError(t, err)

	// no schemas array, but a decodable status still counts as a SCIM error
	_, err = c.QueryURL(context.Background(), "/whatever")
	scimErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, 404, scimErr.Status)
	assert.Equal(t, "gone", scimErr.Detail)
}

func TestHTTPClientRequest(t *testing.T) {
	var gotMethods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethods = append(gotMethods, r.Method)
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", mediaType)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		status, err := c.Request(ctx, method, "/Schemas")
		require.NoError(t, err)
		assert.Equal(t, http.StatusMethodNotAllowed, status, method)
	}

	status, err := c.Request(ctx, http.MethodGet, "/Schemas")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"POST", "PUT", "PATCH", "DELETE", "GET"}, gotMethods)
}

func TestHTTPClientPreservesBasePath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", mediaType)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL + "/scim/v2")
	require.NoError(t, err)
	_, err = c.ServiceProviderConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/scim/v2/ServiceProviderConfig", gotPath)
}

func TestHTTPClientBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", mediaType)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL, WithBearerToken("sesame"))
	require.NoError(t, err)
	_, err = c.ServiceProviderConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer sesame", gotAuth)
}
