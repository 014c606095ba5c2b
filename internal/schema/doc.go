// Package schema defines the SCIM 2.0 schema model consumed by the path
// resolver, the value synthesizer and the conformance checks.
//
// # Architecture
//
// The package mirrors the wire shape of the /Schemas and /ResourceTypes
// discovery endpoints (RFC 7643 §7):
//
//   - Attribute describes one schema attribute: its type, multiplicity,
//     mutability, required-ness, canonical values and reference targets.
//   - Schema is an ordered list of attributes under a single URN.
//   - Model ties a resource kind together: its base Schema plus zero or more
//     extension Schemas, each addressable only through its own URN.
//   - Resource is a live, wire-shaped instance (a JSON object). Extension
//     attributes live under the extension URN as a nested object, exactly as
//     they do on the wire.
//
// Both *Schema and *Attribute implement the Node interface so that path
// resolution and attribute enumeration are pure functions over an explicit
// field-descriptor sequence rather than ad hoc reflection.
//
// The Kind enumeration classifies attributes for value synthesis: primitive,
// enumerated, reference, complex, extension and binary attributes each get
// their own generator in the fill package.
package schema
