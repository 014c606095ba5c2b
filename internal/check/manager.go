package check

import (
	"context"
	"fmt"

	"scimtester/internal/client"
	"scimtester/internal/fill"
	"scimtester/internal/schema"
	"scimtester/internal/urnpath"
	"scimtester/pkg/logging"
)

// ConsistencyError reports that a create operation returned something that
// is not a recognizable resource instance. It is fatal to the current check.
type ConsistencyError struct {
	ResourceType string
	Got          any
}

// Error implements the error interface.
func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("creating a %s did not return a recognizable resource: %v", e.ResourceType, e.Got)
}

// TeardownFailure records one swallowed cleanup error.
type TeardownFailure struct {
	ResourceType string
	ID           string
	Err          error
}

// TeardownResult reports what Cleanup did. Failures are informational:
// cleanup is best-effort and never interrupts the check that triggered it.
type TeardownResult struct {
	Attempted int
	Failures  []TeardownFailure
}

type registered struct {
	model    *schema.Model
	resource schema.Resource
}

// ResourceManager creates test resources and guarantees their reverse-order
// teardown. One manager instance belongs to exactly one check invocation;
// it is never shared.
type ResourceManager struct {
	client    client.Client
	synth     *fill.Synthesizer
	resources []registered
}

// NewResourceManager wires a manager to the protocol client. The manager is
// also the synthesizer's ObjectCreator, so reference attributes encountered
// during synthesis create and register their dependency objects here.
func NewResourceManager(c client.Client) *ResourceManager {
	rm := &ResourceManager{client: c}
	rm.synth = fill.New(rm, c)
	return rm
}

// NewSeededResourceManager is NewResourceManager with a fixed random seed.
func NewSeededResourceManager(c client.Client, seed int64) *ResourceManager {
	rm := &ResourceManager{client: c}
	rm.synth = fill.NewSeeded(seed, rm, c)
	return rm
}

// Synthesizer exposes the manager's value synthesizer for standalone
// single-attribute synthesis.
func (rm *ResourceManager) Synthesizer() *fill.Synthesizer { return rm.synth }

// CreateAndRegister builds an instance of model, fills its required
// attributes (or every writable attribute when fillAll), submits it through
// the protocol client and registers the created resource for cleanup.
func (rm *ResourceManager) CreateAndRegister(ctx context.Context, m *schema.Model, fillAll bool) (schema.Resource, error) {
	obj := schema.NewResource(m)

	filter := urnpath.RequiredOnly()
	if fillAll {
		filter = urnpath.Writable()
	}
	if err := rm.synth.Fill(ctx, m, obj, filter); err != nil {
		return nil, err
	}

	created, err := rm.client.Create(ctx, m, obj)
	if err != nil {
		return nil, err
	}
	if created == nil || created.ID() == "" {
		return nil, &ConsistencyError{ResourceType: m.Name, Got: created}
	}

	rm.resources = append(rm.resources, registered{model: m, resource: created})
	logging.Debug("Resources", "Registered %s %s for cleanup", m.Name, created.ID())
	return created, nil
}

// CreateMinimal implements fill.ObjectCreator.
func (rm *ResourceManager) CreateMinimal(ctx context.Context, m *schema.Model) (schema.Resource, error) {
	return rm.CreateAndRegister(ctx, m, false)
}

// Register adds an externally created resource to the cleanup backlog.
func (rm *ResourceManager) Register(m *schema.Model, r schema.Resource) {
	rm.resources = append(rm.resources, registered{model: m, resource: r})
}

// Cleanup deletes every registered resource in reverse creation order.
// Failures, including "already gone", are swallowed and reported on the
// result; the backlog is consumed, so a second call performs no deletions.
func (rm *ResourceManager) Cleanup(ctx context.Context) TeardownResult {
	var result TeardownResult
	for i := len(rm.resources) - 1; i >= 0; i-- {
		entry := rm.resources[i]
		id := entry.resource.ID()
		if id == "" {
			continue
		}
		result.Attempted++
		if err := rm.client.Delete(ctx, entry.model, id); err != nil {
			result.Failures = append(result.Failures, TeardownFailure{
				ResourceType: entry.model.Name,
				ID:           id,
				Err:          err,
			})
			logging.Debug("Resources", "Cleanup of %s %s failed: %v", entry.model.Name, id, err)
		}
	}
	rm.resources = nil
	return result
}
