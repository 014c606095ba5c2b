package checks

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"scimtester/internal/check"
	"scimtester/internal/client"
)

// RandomURLChecker requests a URL that almost certainly does not exist and
// expects a structured SCIM error with a 404 status (RFC 7644 §3.12).
func RandomURLChecker() check.Checker {
	return check.Checker{
		Name:        "random-url",
		Description: "Requests to unknown URLs must return a SCIM Error object with a 404 status.",
		Tags:        []string{"misc"},
		Run: func(ctx context.Context, cc *check.Context) []check.Result {
			invalidURL := "/" + uuid.NewString()
			resource, err := cc.Client.QueryURL(ctx, invalidURL)
			if err == nil {
				return []check.Result{{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s did not return an Error object", invalidURL),
					Data:   resource,
				}}
			}
			scimErr, ok := client.AsError(err)
			if !ok {
				if nonSCIM, plain := client.AsNonSCIM(err); plain {
					return []check.Result{{
						Status: check.StatusError,
						Reason: fmt.Sprintf("%s returned HTTP %d without an Error object", invalidURL, nonSCIM.Status),
					}}
				}
				return []check.Result{check.ErrorResult(err, "")}
			}
			if scimErr.Status != 404 {
				return []check.Result{{
					Status: check.StatusError,
					Reason: fmt.Sprintf("%s did return an Error object, but the status code is %d", invalidURL, scimErr.Status),
					Data:   scimErr,
				}}
			}
			return []check.Result{{
				Status: check.StatusSuccess,
				Reason: fmt.Sprintf("%s correctly returned a 404 error", invalidURL),
				Data:   scimErr,
			}}
		},
	}
}
