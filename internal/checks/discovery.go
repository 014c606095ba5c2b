package checks

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"scimtester/internal/check"
	"scimtester/internal/client"
)

// unsupportedMethodResults sends POST, PUT, PATCH and DELETE to a GET-only
// discovery endpoint; each must answer 405 Method Not Allowed.
func unsupportedMethodResults(ctx context.Context, cc *check.Context, endpoint string) []check.Result {
	methods := []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
	results := make([]check.Result, 0, len(methods))
	for _, method := range methods {
		status, err := cc.Client.Request(ctx, method, endpoint)
		switch {
		case err != nil:
			results = append(results, check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s %s failed: %v", method, endpoint, err),
			})
		case status == 405:
			results = append(results, check.Result{
				Status: check.StatusSuccess,
				Reason: fmt.Sprintf("%s %s correctly returned 405 Method Not Allowed", method, endpoint),
			})
		default:
			results = append(results, check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("%s %s returned %d instead of 405", method, endpoint, status),
			})
		}
	}
	return results
}

// ServiceProviderConfigChecker queries the /ServiceProviderConfig endpoint.
// RFC 7644 §4 makes it a mandatory, GET-only endpoint.
func ServiceProviderConfigChecker() check.Checker {
	return check.Checker{
		Name:        "service-provider-config-endpoint",
		Description: "The /ServiceProviderConfig endpoint is mandatory, GET-only, and must describe the server's optional features.",
		Tags:        []string{"discovery", "service-provider-config"},
		Run: func(ctx context.Context, cc *check.Context) []check.Result {
			spc, err := cc.Client.ServiceProviderConfig(ctx)
			if err != nil {
				return []check.Result{check.ErrorResult(err, "")}
			}
			results := []check.Result{{
				Status: check.StatusSuccess,
				Reason: "Successfully accessed the /ServiceProviderConfig endpoint",
				Data:   spc,
			}}
			return append(results, unsupportedMethodResults(ctx, cc, "/ServiceProviderConfig")...)
		},
	}
}

// SchemasChecker queries /Schemas, then each advertised schema by id, then a
// random invalid schema id which must yield a 404 error object.
func SchemasChecker() check.Checker {
	return check.Checker{
		Name:        "schemas-endpoint",
		Description: "The /Schemas endpoint is mandatory; every advertised schema must be individually addressable and unknown ids must return 404.",
		Tags:        []string{"discovery", "schemas"},
		Run: func(ctx context.Context, cc *check.Context) []check.Result {
			schemas, err := cc.Client.Schemas(ctx)
			if err != nil {
				return []check.Result{check.ErrorResult(err, "")}
			}

			names := make([]string, 0, len(schemas))
			for _, s := range schemas {
				names = append(names, s.Name)
			}
			results := []check.Result{{
				Status: check.StatusSuccess,
				Reason: fmt.Sprintf("Schemas available are: %s", strings.Join(names, ", ")),
			}}

			for _, s := range schemas {
				byID, err := cc.Client.Schema(ctx, s.ID)
				if err != nil {
					results = append(results, check.ErrorResult(err, ""))
					continue
				}
				results = append(results, check.Result{
					Status: check.StatusSuccess,
					Reason: fmt.Sprintf("Successfully accessed the /Schemas/%s endpoint", byID.ID),
				})
			}

			results = append(results, invalidSchemaResult(ctx, cc))
			return append(results, unsupportedMethodResults(ctx, cc, "/Schemas")...)
		},
	}
}

func invalidSchemaResult(ctx context.Context, cc *check.Context) check.Result {
	invalidID := uuid.NewString()
	_, err := cc.Client.Schema(ctx, invalidID)
	if err == nil {
		return check.Result{
			Status: check.StatusError,
			Reason: fmt.Sprintf("/Schemas/%s invalid id did not return an Error object", invalidID),
		}
	}
	scimErr, ok := client.AsError(err)
	if !ok {
		if nonSCIM, plain := client.AsNonSCIM(err); plain {
			return check.Result{
				Status: check.StatusError,
				Reason: fmt.Sprintf("/Schemas/%s returned HTTP %d without an Error object", invalidID, nonSCIM.Status),
			}
		}
		return check.ErrorResult(err, "")
	}
	if scimErr.Status != 404 {
		return check.Result{
			Status: check.StatusError,
			Reason: fmt.Sprintf("/Schemas/%s returned an Error object, but the status code is %d", invalidID, scimErr.Status),
			Data:   scimErr,
		}
	}
	return check.Result{
		Status: check.StatusSuccess,
		Reason: fmt.Sprintf("/Schemas/%s correctly returned a 404 error", invalidID),
		Data:   scimErr,
	}
}

// ResourceTypesChecker queries /ResourceTypes and cross-checks that each
// advertised resource type points at a schema the server also advertises.
func ResourceTypesChecker() check.Checker {
	return check.Checker{
		Name:        "resource-types-endpoint",
		Description: "The /ResourceTypes endpoint is mandatory and every advertised type must reference an advertised schema.",
		Tags:        []string{"discovery", "resource-types"},
		Run: func(ctx context.Context, cc *check.Context) []check.Result {
			types, err := cc.Client.ResourceTypes(ctx)
			if err != nil {
				return []check.Result{check.ErrorResult(err, "")}
			}
			schemas, err := cc.Client.Schemas(ctx)
			if err != nil {
				return []check.Result{check.ErrorResult(err, "")}
			}

			known := make(map[string]bool, len(schemas))
			for _, s := range schemas {
				known[s.ID] = true
			}

			names := make([]string, 0, len(types))
			results := []check.Result{}
			for _, rt := range types {
				names = append(names, rt.Name)
				if !known[rt.Schema] {
					results = append(results, check.Result{
						Status:       check.StatusError,
						Reason:       fmt.Sprintf("ResourceType %q references schema %q which /Schemas does not advertise", rt.Name, rt.Schema),
						ResourceType: rt.Name,
					})
				}
			}

			summary := check.Result{
				Status: check.StatusSuccess,
				Reason: fmt.Sprintf("Resource types available are: %s", strings.Join(names, ", ")),
			}
			results = append([]check.Result{summary}, results...)
			return append(results, unsupportedMethodResults(ctx, cc, "/ResourceTypes")...)
		},
	}
}
