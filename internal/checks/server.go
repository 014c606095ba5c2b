package checks

import (
	"context"

	"scimtester/internal/check"
	"scimtester/internal/client"
	"scimtester/internal/schema"
	"scimtester/pkg/logging"
)

// All assembles the complete checker list for the given resource models:
// discovery and misc checks first, then the CRUD and PATCH batteries for
// every resource kind the configuration wants.
func All(models []*schema.Model, cfg check.Config) []check.Checker {
	checkers := []check.Checker{
		ServiceProviderConfigChecker(),
		SchemasChecker(),
		ResourceTypesChecker(),
		RandomURLChecker(),
	}
	for _, m := range models {
		if !cfg.WantsResourceType(m.Name) {
			continue
		}
		checkers = append(checkers, CRUDCheckers(m)...)
		checkers = append(checkers, PatchCheckers(m)...)
	}
	return checkers
}

// CheckServer performs the full conformance run against a server: discovery
// first, then every check, each with guaranteed resource teardown.
func CheckServer(ctx context.Context, c client.Client, cfg check.Config) ([]check.Result, error) {
	models, err := c.ResourceModels(ctx)
	if err != nil {
		return nil, err
	}
	logging.Info("Checks", "Checking %d resource types", len(models))

	cc := check.NewContext(c, cfg)
	var results []check.Result
	for _, checker := range All(models, cfg) {
		results = append(results, cc.Run(ctx, checker)...)
	}
	return results, nil
}

// KnownTags returns every tag declared by the checker set, for discovery by
// the CLI. The registry is built from a placeholder model; tags are static
// per checker, not per resource kind.
func KnownTags() []string {
	placeholder := &schema.Model{
		Name:     "User",
		Endpoint: "/Users",
		Base:     &schema.Schema{ID: "urn:ietf:params:scim:schemas:core:2.0:User", Name: "User"},
	}
	registry := check.NewTagRegistry()
	check.RegisterCheckers(registry, All([]*schema.Model{placeholder}, check.Config{})...)
	return registry.All()
}
