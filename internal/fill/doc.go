// Package fill synthesizes schema-conformant random values for SCIM
// resources.
//
// The Synthesizer walks a resource model and produces one valid value per
// eligible attribute, dispatching on the attribute's schema.Kind: primitives
// get typed random values, enumerated attributes pick a canonical value,
// complex attributes and extensions recurse into a full sub-object, binary
// attributes get base64-encoded random bytes, and reference attributes
// targeting another managed resource kind ask the injected ObjectCreator to
// create a dependency first and use its location as the value.
//
// Two post-passes run after an object is filled: every multi-valued
// collection whose element type exposes a "primary" flag ends up with
// exactly one primary element, and every complex value carrying a "$ref"
// gets its companion "value" field aligned with the trailing segment of the
// referenced location and its canonical "type" field aligned with the
// referenced collection.
//
// Synthesis never fails for a structurally valid schema. An attribute
// excluded by the active filter yields an explicit "no value" result that
// callers treat as "leave unset".
package fill
