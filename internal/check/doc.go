// Package check provides the execution framework shared by every
// conformance check: the check context, result grading, tag-based
// filtering, and the resource lifecycle manager that guarantees created
// test objects are torn down.
//
// A Checker is a named, tagged function producing graded Results. The
// Context runs checkers, skipping them when the configured tag filters say
// so, converting protocol errors into Error results, and always cleaning up
// the resources a checker created, in reverse creation order. Cleanup is
// best-effort: a failing teardown never masks the result of the check that
// triggered it, but swallowed failures are reported on the TeardownResult
// for observability.
//
// Tags are hierarchical: filtering on "crud" matches a checker tagged
// "crud:create". The TagRegistry is an explicit object populated from the
// checker list at startup; there is no process-global tag state.
package check
