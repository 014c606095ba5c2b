package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"scimtester/internal/check"
)

func sampleResults() []check.Result {
	return []check.Result{
		{Status: check.StatusSuccess, Title: "object-creation", ResourceType: "User", Reason: "created"},
		{Status: check.StatusError, Title: "random-url", Reason: "no error object"},
		{Status: check.StatusSkipped, Title: "patch-add-attribute", ResourceType: "Group", Reason: "unsupported"},
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleResults())
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.ByStatus["SUCCESS"])
	assert.Equal(t, 1, summary.ByStatus["ERROR"])
	assert.Equal(t, 1, summary.ByStatus["SKIPPED"])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleResults(), false))

	var doc struct {
		Results []struct {
			Status string `json:"status"`
			Title  string `json:"title"`
		} `json:"results"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Results, 3)
	assert.Equal(t, "SUCCESS", doc.Results[0].Status)
	assert.Equal(t, "object-creation", doc.Results[0].Title)
	assert.Equal(t, 1, doc.Summary.Failed)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleResults(), false))

	var doc struct {
		Results []struct {
			Status string `yaml:"status"`
		} `yaml:"results"`
		Summary Summary `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Results, 3)
	assert.Equal(t, "ERROR", doc.Results[1].Status)
	assert.Equal(t, 3, doc.Summary.Total)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, sampleResults(), false))

	out := buf.String()
	assert.Contains(t, out, "object-creation")
	assert.Contains(t, out, "random-url")
	assert.Contains(t, out, "3 checks, 1 failed")
	assert.NotContains(t, out, "DESCRIPTION")
}

func TestWriteTableVerbose(t *testing.T) {
	results := []check.Result{{
		Status:      check.StatusSuccess,
		Title:       "object-creation",
		Description: "POST must create the resource",
	}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "", results, true))
	assert.Contains(t, buf.String(), "POST must create the resource")
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("xml"), nil, false)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "xml"))
}
