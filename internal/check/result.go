package check

import (
	"encoding/json"
	"sort"
	"strings"
)

// Status grades a server behavior observed by one check.
type Status int

const (
	// StatusSuccess means the behavior strictly conforms to RFC
	// requirements (MUST/MUST NOT).
	StatusSuccess Status = iota
	// StatusCompliant means the behavior follows RFC recommendations
	// (SHOULD/SHOULD NOT) correctly.
	StatusCompliant
	// StatusAcceptable means the behavior is RFC-compliant but relies on
	// optional features (MAY) or a reasonable robustness reading.
	StatusAcceptable
	// StatusDeviation means the behavior deviates from RFC recommendations
	// but stays within specification bounds.
	StatusDeviation
	// StatusError means the behavior violates mandatory RFC requirements.
	StatusError
	// StatusCritical means the behavior creates security risks or
	// fundamental protocol violations.
	StatusCritical
	// StatusSkipped means the check was not executed, due to filtering or
	// missing prerequisites.
	StatusSkipped
)

// String makes Status satisfy fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusCompliant:
		return "COMPLIANT"
	case StatusAcceptable:
		return "ACCEPTABLE"
	case StatusDeviation:
		return "DEVIATION"
	case StatusError:
		return "ERROR"
	case StatusCritical:
		return "CRITICAL"
	case StatusSkipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the status as its name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// MarshalYAML encodes the status as its name.
func (s Status) MarshalYAML() (any, error) {
	return s.String(), nil
}

// Failed reports whether the status counts as a conformance failure.
func (s Status) Failed() bool {
	return s == StatusError || s == StatusCritical
}

// Result stores the outcome of one check.
type Result struct {
	Status Status `json:"status" yaml:"status"`
	// Title is the name of the check that produced the result.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// Description says what the check does and which RFC behavior it
	// exercises.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Reason says why the check failed, or how it succeeded.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	// Data carries related payloads useful for debugging.
	Data any `json:"data,omitempty" yaml:"data,omitempty"`
	// Tags are the checker's tags, for filtering and reporting.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	// ResourceType names the resource kind the check targeted, if any.
	ResourceType string `json:"resourceType,omitempty" yaml:"resourceType,omitempty"`
}

// Config controls which checks run and what they expect.
type Config struct {
	// IncludeTags runs only checkers carrying at least one of these tags.
	IncludeTags []string `yaml:"includeTags,omitempty"`
	// ExcludeTags skips checkers carrying any of these tags.
	ExcludeTags []string `yaml:"excludeTags,omitempty"`
	// ResourceTypes restricts resource checks to these kind names.
	ResourceTypes []string `yaml:"resourceTypes,omitempty"`
	// ExpectedStatusCodes overrides the status codes checks expect.
	ExpectedStatusCodes []int `yaml:"expectedStatusCodes,omitempty"`
}

// WantsResourceType reports whether resource checks should run against the
// given kind.
func (c Config) WantsResourceType(name string) bool {
	if len(c.ResourceTypes) == 0 {
		return true
	}
	for _, rt := range c.ResourceTypes {
		if strings.EqualFold(rt, name) {
			return true
		}
	}
	return false
}

// TagRegistry collects every tag declared by the registered checkers. It is
// constructed once at startup and passed around explicitly.
type TagRegistry struct {
	tags map[string]struct{}
}

// NewTagRegistry returns an empty registry.
func NewTagRegistry() *TagRegistry {
	return &TagRegistry{tags: make(map[string]struct{})}
}

// Register records the given tags.
func (r *TagRegistry) Register(tags ...string) {
	for _, tag := range tags {
		if tag == "" || tag == "*" {
			continue
		}
		r.tags[tag] = struct{}{}
	}
}

// All returns every registered tag, sorted.
func (r *TagRegistry) All() []string {
	all := make([]string, 0, len(r.tags))
	for tag := range r.tags {
		all = append(all, tag)
	}
	sort.Strings(all)
	return all
}

// MatchesTags applies hierarchical tag matching: a filter tag matches a
// checker tag when they are equal, or when the filter tag is one of the
// colon-separated components of the checker tag ("crud" matches
// "crud:create"). A checker tagged "*" matches any filter.
func MatchesTags(checkerTags, filterTags []string) bool {
	for _, tag := range checkerTags {
		if tag == "*" {
			return true
		}
	}
	for _, filterTag := range filterTags {
		for _, checkerTag := range checkerTags {
			if filterTag == checkerTag {
				return true
			}
			for _, component := range strings.Split(checkerTag, ":") {
				if filterTag == component {
					return true
				}
			}
		}
	}
	return false
}
