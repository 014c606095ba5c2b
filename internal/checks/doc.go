// Package checks contains the individual SCIM conformance checks: discovery
// endpoint checks, per-resource-type CRUD batteries, PATCH operation checks
// and miscellaneous error-handling checks.
//
// Each check is a check.Checker value; CheckServer assembles the full list
// for a discovered server and runs them through a check.Context, which
// handles tag filtering and resource teardown. Checks decide a graded
// status per observed behavior but own no output; reporting belongs to the
// caller.
package checks
