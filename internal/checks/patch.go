package checks

import (
	"context"
	"fmt"

	"scimtester/internal/check"
	"scimtester/internal/client"
	"scimtester/internal/fill"
	"scimtester/internal/schema"
	"scimtester/internal/urnpath"
)

// patchableAttributes enumerates the optional writable attribute paths of a
// model, the set PATCH checks exercise. Sub-attribute paths are excluded:
// addressing them element-wise would require filter support.
func patchableAttributes(m *schema.Model) []urnpath.Entry {
	optional := false
	return urnpath.Iterate(m, urnpath.Filter{
		Required: &optional,
		Mutability: []schema.Mutability{
			schema.MutabilityReadWrite,
			schema.MutabilityWriteOnly,
		},
	})
}

func patchSkipResults(ctx context.Context, cc *check.Context, m *schema.Model) []check.Result {
	spc, err := cc.Client.ServiceProviderConfig(ctx)
	if err != nil {
		return []check.Result{check.ErrorResult(err, m.Name)}
	}
	if !spc.Patch.Supported {
		return []check.Result{{
			Status:       check.StatusSkipped,
			Reason:       "PATCH operations not supported by server",
			ResourceType: m.Name,
		}}
	}
	if len(patchableAttributes(m)) == 0 {
		return []check.Result{{
			Status:       check.StatusSkipped,
			Reason:       fmt.Sprintf("No patchable attributes found for %s", m.Name),
			ResourceType: m.Name,
		}}
	}
	return nil
}

// PatchAddChecker exercises the PATCH add operation (RFC 7644 §3.5.2.1) on
// every optional writable attribute of the resource kind.
func PatchAddChecker(m *schema.Model) check.Checker {
	return check.Checker{
		Name:        "patch-add-attribute",
		Description: "PATCH with an add operation must add new attribute values to an existing resource.",
		Tags:        []string{"patch", "patch:add"},
		Run: func(ctx context.Context, cc *check.Context) []check.Result {
			if skip := patchSkipResults(ctx, cc, m); skip != nil {
				return skip
			}
			base, err := cc.Resources.CreateAndRegister(ctx, m, false)
			if err != nil {
				return []check.Result{check.ErrorResult(err, m.Name)}
			}
			return patchEachAttribute(ctx, cc, m, base, "add")
		},
	}
}

// PatchReplaceChecker exercises the PATCH replace operation (RFC 7644
// §3.5.2.3) on every optional writable attribute of a fully populated
// resource.
func PatchReplaceChecker(m *schema.Model) check.Checker {
	return check.Checker{
		Name:        "patch-replace-attribute",
		Description: "PATCH with a replace operation must overwrite existing attribute values.",
		Tags:        []string{"patch", "patch:replace"},
		Run: func(ctx context.Context, cc *check.Context) []check.Result {
			if skip := patchSkipResults(ctx, cc, m); skip != nil {
				return skip
			}
			base, err := cc.Resources.CreateAndRegister(ctx, m, true)
			if err != nil {
				return []check.Result{check.ErrorResult(err, m.Name)}
			}
			return patchEachAttribute(ctx, cc, m, base, "replace")
		},
	}
}

// patchEachAttribute synthesizes one value per patchable attribute and
// sends it in its own PATCH request, verifying the value round-trips unless
// the attribute is write-only.
func patchEachAttribute(ctx context.Context, cc *check.Context, m *schema.Model, base schema.Resource, op string) []check.Result {
	var results []check.Result
	patched := 0

	for _, entry := range patchableAttributes(m) {
		value, ok, err := cc.Resources.Synthesizer().ValueAt(ctx, m, entry.Path)
		if err != nil {
			results = append(results, check.ErrorResult(err, m.Name))
			continue
		}
		if !ok {
			continue
		}

		patch := client.NewPatchOp(client.PatchOperation{Op: op, Path: entry.Path, Value: value})
		modified, err := cc.Client.Modify(ctx, m, base.ID(), patch)
		if err != nil {
			results = append(results, check.Result{
				Status:       check.StatusError,
				Reason:       fmt.Sprintf("Failed to %s attribute %q: %v", op, entry.Path, err),
				ResourceType: m.Name,
				Data:         value,
			})
			continue
		}
		patched++

		if modified == nil || entry.Attr.Mutability == schema.MutabilityWriteOnly {
			continue
		}
		actual, _ := urnpath.Get(m, modified, entry.Path)
		if !fill.CompareValues(value, actual) {
			results = append(results, check.Result{
				Status:       check.StatusDeviation,
				Reason:       fmt.Sprintf("Attribute %q does not hold the patched value after %s", entry.Path, op),
				ResourceType: m.Name,
				Data:         map[string]any{"expected": value, "actual": actual},
			})
		}
	}

	summary := check.Result{
		Status:       check.StatusSuccess,
		Reason:       fmt.Sprintf("PATCH %s accepted on %d attributes of %s", op, patched, m.Name),
		ResourceType: m.Name,
	}
	return append([]check.Result{summary}, results...)
}

// PatchRemoveChecker exercises the PATCH remove operation (RFC 7644
// §3.5.2.2): every optional writable attribute of a fully populated
// resource is removed and must no longer hold a value.
func PatchRemoveChecker(m *schema.Model) check.Checker {
	return check.Checker{
		Name:        "patch-remove-attribute",
		Description: "PATCH with a remove operation must unset optional attribute values.",
		Tags:        []string{"patch", "patch:remove"},
		Run: func(ctx context.Context, cc *check.Context) []check.Result {
			if skip := patchSkipResults(ctx, cc, m); skip != nil {
				return skip
			}
			base, err := cc.Resources.CreateAndRegister(ctx, m, true)
			if err != nil {
				return []check.Result{check.ErrorResult(err, m.Name)}
			}

			var results []check.Result
			removed := 0
			for _, entry := range patchableAttributes(m) {
				patch := client.NewPatchOp(client.PatchOperation{Op: "remove", Path: entry.Path})
				modified, err := cc.Client.Modify(ctx, m, base.ID(), patch)
				if err != nil {
					results = append(results, check.Result{
						Status:       check.StatusError,
						Reason:       fmt.Sprintf("Failed to remove attribute %q: %v", entry.Path, err),
						ResourceType: m.Name,
					})
					continue
				}
				removed++

				if modified == nil {
					continue
				}
				if actual, present := urnpath.Get(m, modified, entry.Path); present && actual != nil {
					results = append(results, check.Result{
						Status:       check.StatusDeviation,
						Reason:       fmt.Sprintf("Attribute %q still holds a value after remove", entry.Path),
						ResourceType: m.Name,
						Data:         actual,
					})
				}
			}

			summary := check.Result{
				Status:       check.StatusSuccess,
				Reason:       fmt.Sprintf("PATCH remove accepted on %d attributes of %s", removed, m.Name),
				ResourceType: m.Name,
			}
			return append([]check.Result{summary}, results...)
		},
	}
}

// PatchCheckers returns the PATCH battery for one resource kind.
func PatchCheckers(m *schema.Model) []check.Checker {
	return []check.Checker{
		PatchAddChecker(m),
		PatchReplaceChecker(m),
		PatchRemoveChecker(m),
	}
}
