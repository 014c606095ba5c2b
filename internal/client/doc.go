// Package client implements the SCIM 2.0 protocol client used by the
// conformance checks.
//
// The Client interface exposes the five protocol operations (create, query,
// replace, modify, delete) per discovered resource model, plus the discovery
// endpoints (/ServiceProviderConfig, /Schemas, /ResourceTypes), a raw URL
// query and a raw-method request used by error-handling and method checks.
//
// HTTPClient is the wire implementation: JSON over HTTP with the
// application/scim+json media type, optional bearer-token authentication,
// and discovery results cached behind a singleflight group so repeated
// lookups trigger at most one round trip.
//
// Structured SCIM error payloads (RFC 7644 §3.12) decode into *Error, which
// callers unwrap with errors.As. Error responses whose body is not a SCIM
// Error object decode into *NonSCIMError instead, so checks can flag servers
// that answer plain HTTP errors.
package client
