package checks

import (
	"context"
	"fmt"

	"scimtester/internal/check"
	"scimtester/internal/schema"
	"scimtester/internal/urnpath"
)

// ObjectCreationChecker creates a fully populated instance of the resource
// kind and expects the server to return the created resource.
func ObjectCreationChecker(m *schema.Model) check.Checker {
	return check.Checker{
		Name:        "object-creation",
		Description: "POST of a schema-valid object on the collection endpoint must create the resource.",
		Tags:        []string{"crud", "crud:create"},
		Run: func(ctx context.Context, cc *check.Context) []check.Result {
			created, err := cc.Resources.CreateAndRegister(ctx, m, true)
			if err != nil {
				return []check.Result{check.ErrorResult(err, m.Name)}
			}
			return []check.Result{{
				Status:       check.StatusSuccess,
				Reason:       fmt.Sprintf("Successful creation of a %s object with id %s", m.Name, created.ID()),
				ResourceType: m.Name,
				Data:         created,
			}}
		},
	}
}

// ObjectQueryChecker creates an instance and queries it back by id.
func ObjectQueryChecker(m *schema.Model) check.Checker {
	return check.Checker{
		Name:        "object-query",
		Description: "GET on a resource location must return the resource.",
		Tags:        []string{"crud", "crud:read"},
		Run: func(ctx context.Context, cc *check.Context) []check.Result {
			created, err := cc.Resources.CreateAndRegister(ctx, m, false)
			if err != nil {
				return []check.Result{check.ErrorResult(err, m.Name)}
			}
			queried, err := cc.Client.Query(ctx, m, created.ID())
			if err != nil {
				return []check.Result{check.ErrorResult(err, m.Name)}
			}
			if queried.ID() != created.ID() {
				return []check.Result{{
					Status:       check.StatusError,
					Reason:       fmt.Sprintf("Queried %s has id %q, expected %q", m.Name, queried.ID(), created.ID()),
					ResourceType: m.Name,
					Data:         queried,
				}}
			}
			return []check.Result{{
				Status:       check.StatusSuccess,
				Reason:       fmt.Sprintf("Successful query of a %s object with id %s", m.Name, created.ID()),
				ResourceType: m.Name,
			}}
		},
	}
}

// ObjectQueryWithoutIDChecker creates an instance and expects it to appear
// in the collection listing.
func ObjectQueryWithoutIDChecker(m *schema.Model) check.Checker {
	return check.Checker{
		Name:        "object-query-without-id",
		Description: "GET on the collection endpoint must list existing resources.",
		Tags:        []string{"crud", "crud:read"},
		Run: func(ctx context.Context, cc *check.Context) []check.Result {
			created, err := cc.Resources.CreateAndRegister(ctx, m, false)
			if err != nil {
				return []check.Result{check.ErrorResult(err, m.Name)}
			}
			list, err := cc.Client.QueryAll(ctx, m)
			if err != nil {
				return []check.Result{check.ErrorResult(err, m.Name)}
			}
			for _, resource := range list.Resources {
				if resource.ID() == created.ID() {
					return []check.Result{{
						Status:       check.StatusSuccess,
						Reason:       fmt.Sprintf("Found the %s object with id %s in the collection", m.Name, created.ID()),
						ResourceType: m.Name,
					}}
				}
			}
			return []check.Result{{
				Status:       check.StatusError,
				Reason:       fmt.Sprintf("Could not find the %s object with id %s in the collection", m.Name, created.ID()),
				ResourceType: m.Name,
				Data:         list,
			}}
		},
	}
}

// ObjectReplacementChecker creates an instance, re-synthesizes its writable
// attributes and replaces it with PUT.
func ObjectReplacementChecker(m *schema.Model) check.Checker {
	return check.Checker{
		Name:        "object-replacement",
		Description: "PUT on a resource location must replace the resource.",
		Tags:        []string{"crud", "crud:update"},
		Run: func(ctx context.Context, cc *check.Context) []check.Result {
			created, err := cc.Resources.CreateAndRegister(ctx, m, false)
			if err != nil {
				return []check.Result{check.ErrorResult(err, m.Name)}
			}

			replacement := created.Clone()
			filter := urnpath.Filter{Mutability: []schema.Mutability{
				schema.MutabilityReadWrite,
				schema.MutabilityWriteOnly,
			}}
			if err := cc.Resources.Synthesizer().Fill(ctx, m, replacement, filter); err != nil {
				return []check.Result{check.ErrorResult(err, m.Name)}
			}

			replaced, err := cc.Client.Replace(ctx, m, replacement)
			if err != nil {
				return []check.Result{check.ErrorResult(err, m.Name)}
			}
			return []check.Result{{
				Status:       check.StatusSuccess,
				Reason:       fmt.Sprintf("Successful replacement of a %s object with id %s", m.Name, replaced.ID()),
				ResourceType: m.Name,
				Data:         replaced,
			}}
		},
	}
}

// ObjectDeletionChecker creates an instance, deletes it, and expects a
// subsequent query to fail with 404.
func ObjectDeletionChecker(m *schema.Model) check.Checker {
	return check.Checker{
		Name:        "object-deletion",
		Description: "DELETE on a resource location must remove the resource.",
		Tags:        []string{"crud", "crud:delete"},
		Run: func(ctx context.Context, cc *check.Context) []check.Result {
			created, err := cc.Resources.CreateAndRegister(ctx, m, false)
			if err != nil {
				return []check.Result{check.ErrorResult(err, m.Name)}
			}
			if err := cc.Client.Delete(ctx, m, created.ID()); err != nil {
				return []check.Result{check.ErrorResult(err, m.Name)}
			}

			results := []check.Result{{
				Status:       check.StatusSuccess,
				Reason:       fmt.Sprintf("Successful deletion of a %s object with id %s", m.Name, created.ID()),
				ResourceType: m.Name,
			}}

			if _, err := cc.Client.Query(ctx, m, created.ID()); err == nil {
				results = append(results, check.Result{
					Status:       check.StatusError,
					Reason:       fmt.Sprintf("%s object with id %s is still queryable after deletion", m.Name, created.ID()),
					ResourceType: m.Name,
				})
			}
			return results
		},
	}
}

// CRUDCheckers returns the full CRUD battery for one resource kind.
func CRUDCheckers(m *schema.Model) []check.Checker {
	return []check.Checker{
		ObjectCreationChecker(m),
		ObjectQueryChecker(m),
		ObjectQueryWithoutIDChecker(m),
		ObjectReplacementChecker(m),
		ObjectDeletionChecker(m),
	}
}
