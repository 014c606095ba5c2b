// Package urnpath resolves URN-style attribute paths against SCIM resource
// models and live resource instances.
//
// A path has two forms:
//
//   - unqualified: dot-separated segments navigating from the resource root
//     through complex attributes, e.g. "name.givenName";
//   - extension-qualified: an extension URN, optionally followed by ":" and a
//     sub-path, e.g.
//     "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User:manager.value".
//
// Resolve maps a path to its owning model node and attribute descriptor.
// Get and Set perform the same traversal over a live instance. Iterate
// enumerates every eligible attribute path of a model, base schema first,
// then each extension.
//
// Navigation into a populated multi-valued collection is not supported by
// the SCIM attribute notation (filters would be required); Get reports the
// value as absent and Set is a silent no-op in that case. Resolution never
// returns an error: an unresolvable path is a normal negative result.
package urnpath
