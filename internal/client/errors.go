package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrorURN is the schema URN of SCIM error payloads.
const ErrorURN = "urn:ietf:params:scim:api:messages:2.0:Error"

// Error is a structured SCIM protocol error (RFC 7644 §3.12). It is returned
// unchanged to callers; this package never retries.
type Error struct {
	// Status is the HTTP status code. The wire encodes it as a string,
	// some servers send a number; both decode.
	Status int
	// ScimType is the optional SCIM detail error keyword.
	ScimType string
	// Detail is the human readable error description.
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("scim error %d (%s)", e.Status, e.Detail)
	}
	return fmt.Sprintf("scim error %d", e.Status)
}

// UnmarshalJSON tolerates both string and numeric status values.
func (e *Error) UnmarshalJSON(data []byte) error {
	var wire struct {
		Status   json.RawMessage `json:"status"`
		ScimType string          `json:"scimType"`
		Detail   string          `json:"detail"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	e.ScimType = wire.ScimType
	e.Detail = wire.Detail
	if len(wire.Status) > 0 {
		raw := string(wire.Status)
		if unquoted, err := strconv.Unquote(raw); err == nil {
			raw = unquoted
		}
		status, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid scim error status %s: %w", wire.Status, err)
		}
		e.Status = status
	}
	return nil
}

// NonSCIMError reports an HTTP error response whose payload is not a SCIM
// Error object, e.g. a plain HTML 404 page or an empty body. Checks that
// require structured errors grade it as a conformance failure.
type NonSCIMError struct {
	// Status is the HTTP status code of the response.
	Status int
}

// Error implements the error interface.
func (e *NonSCIMError) Error() string {
	return fmt.Sprintf("http error %d without a scim error payload", e.Status)
}

// AsNonSCIM unwraps a *NonSCIMError from err, if any.
func AsNonSCIM(err error) (*NonSCIMError, bool) {
	var nonSCIM *NonSCIMError
	if errors.As(err, &nonSCIM) {
		return nonSCIM, true
	}
	return nil, false
}

// AsError unwraps a *Error from err, if any.
func AsError(err error) (*Error, bool) {
	var scimErr *Error
	if errors.As(err, &scimErr) {
		return scimErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a SCIM 404 error.
func IsNotFound(err error) bool {
	scimErr, ok := AsError(err)
	return ok && scimErr.Status == 404
}
