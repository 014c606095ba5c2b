package check

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "SUCCESS", StatusSuccess.String())
	assert.Equal(t, "DEVIATION", StatusDeviation.String())
	assert.Equal(t, "SKIPPED", StatusSkipped.String())
	assert.Equal(t, "UNKNOWN", Status(42).String())
}

func TestStatusFailed(t *testing.T) {
	assert.True(t, StatusError.Failed())
	assert.True(t, StatusCritical.Failed())
	assert.False(t, StatusSuccess.Failed())
	assert.False(t, StatusDeviation.Failed())
	assert.False(t, StatusSkipped.Failed())
}

func TestResultMarshalsStatusAsName(t *testing.T) {
	data, err := json.Marshal(Result{Status: StatusError, Title: "object-creation"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"ERROR"`)
}

func TestMatchesTags(t *testing.T) {
	tests := []struct {
		name        string
		checkerTags []string
		filterTags  []string
		want        bool
	}{
		{name: "exact match", checkerTags: []string{"discovery"}, filterTags: []string{"discovery"}, want: true},
		{name: "no match", checkerTags: []string{"discovery"}, filterTags: []string{"crud"}, want: false},
		{name: "parent matches child", checkerTags: []string{"crud:create"}, filterTags: []string{"crud"}, want: true},
		{name: "child does not match parent", checkerTags: []string{"crud"}, filterTags: []string{"crud:create"}, want: false},
		{name: "wildcard checker", checkerTags: []string{"*"}, filterTags: []string{"anything"}, want: true},
		{name: "empty filter", checkerTags: []string{"crud"}, filterTags: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesTags(tt.checkerTags, tt.filterTags))
		})
	}
}

func TestTagRegistry(t *testing.T) {
	registry := NewTagRegistry()
	registry.Register("crud:create", "discovery", "", "*", "crud:create")

	assert.Equal(t, []string{"crud:create", "discovery"}, registry.All())
}

func TestConfigWantsResourceType(t *testing.T) {
	cfg := Config{}
	assert.True(t, cfg.WantsResourceType("User"))

	cfg.ResourceTypes = []string{"group"}
	assert.True(t, cfg.WantsResourceType("Group"))
	assert.False(t, cfg.WantsResourceType("User"))
}
