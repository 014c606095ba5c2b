package check

import (
	"context"

	"scimtester/internal/client"
	"scimtester/pkg/logging"
)

// Checker is one named conformance check. Run returns one result per
// asserted behavior.
type Checker struct {
	// Name identifies the check, e.g. "object-creation".
	Name string
	// Description says what the check does and why the RFC advises it.
	Description string
	// Tags categorize the check for selective execution.
	Tags []string
	// Run executes the check.
	Run func(ctx context.Context, cc *Context) []Result
}

// Context carries everything one check invocation needs: the protocol
// client, the run configuration and a dedicated resource manager.
type Context struct {
	Client    client.Client
	Config    Config
	Resources *ResourceManager
}

// NewContext builds a check context around the given client.
func NewContext(c client.Client, cfg Config) *Context {
	return &Context{
		Client:    c,
		Config:    cfg,
		Resources: NewResourceManager(c),
	}
}

// Run executes one checker: tag filters may skip it, protocol errors become
// Error results, and the resources it created are always torn down before
// returning. Teardown failures are logged, never raised, so they cannot
// mask the check's own outcome.
func (cc *Context) Run(ctx context.Context, checker Checker) []Result {
	if len(cc.Config.IncludeTags) > 0 && !MatchesTags(checker.Tags, cc.Config.IncludeTags) {
		return []Result{cc.skipped(checker, "Skipped due to tag filtering")}
	}
	if len(cc.Config.ExcludeTags) > 0 && MatchesTags(checker.Tags, cc.Config.ExcludeTags) {
		return []Result{cc.skipped(checker, "Skipped due to tag exclusion")}
	}

	results := checker.Run(ctx, cc)

	teardown := cc.Resources.Cleanup(ctx)
	for _, failure := range teardown.Failures {
		logging.Warn("Checks", "Teardown of %s %s after %q failed: %v",
			failure.ResourceType, failure.ID, checker.Name, failure.Err)
	}

	for i := range results {
		results[i].Title = checker.Name
		if results[i].Description == "" {
			results[i].Description = checker.Description
		}
		results[i].Tags = checker.Tags
	}
	return results
}

func (cc *Context) skipped(checker Checker, reason string) Result {
	return Result{
		Status:      StatusSkipped,
		Title:       checker.Name,
		Description: checker.Description,
		Tags:        checker.Tags,
		Reason:      reason,
	}
}

// ErrorResult converts an error raised by a protocol operation into a
// graded result.
func ErrorResult(err error, resourceType string) Result {
	result := Result{Status: StatusError, Reason: err.Error(), ResourceType: resourceType}
	if scimErr, ok := client.AsError(err); ok {
		result.Data = scimErr
	}
	return result
}

// RegisterCheckers records the tags of every checker in the registry.
func RegisterCheckers(registry *TagRegistry, checkers ...Checker) {
	for _, c := range checkers {
		registry.Register(c.Tags...)
	}
}
