// Package report renders conformance results for human and machine
// consumption: a rounded table for terminals, JSON and YAML for pipelines.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"scimtester/internal/check"
)

// Format selects an output rendering.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Summary aggregates a result list by status.
type Summary struct {
	Total    int            `json:"total" yaml:"total"`
	ByStatus map[string]int `json:"byStatus" yaml:"byStatus"`
	Failed   int            `json:"failed" yaml:"failed"`
}

// Summarize counts results per status.
func Summarize(results []check.Result) Summary {
	summary := Summary{Total: len(results), ByStatus: make(map[string]int)}
	for _, r := range results {
		summary.ByStatus[r.Status.String()]++
		if r.Status.Failed() {
			summary.Failed++
		}
	}
	return summary
}

// Write renders results to w in the requested format. In table mode,
// verbose adds the check description column.
func Write(w io.Writer, format Format, results []check.Result, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatYAML:
		return writeYAML(w, results)
	case FormatTable, "":
		writeTable(w, results, verbose)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

type document struct {
	Results []check.Result `json:"results" yaml:"results"`
	Summary Summary        `json:"summary" yaml:"summary"`
}

func writeJSON(w io.Writer, results []check.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(document{Results: results, Summary: Summarize(results)})
}

func writeYAML(w io.Writer, results []check.Result) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(document{Results: results, Summary: Summarize(results)})
}

func writeTable(w io.Writer, results []check.Result, verbose bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	if verbose {
		t.AppendHeader(table.Row{"Status", "Check", "Resource", "Reason", "Description"})
	} else {
		t.AppendHeader(table.Row{"Status", "Check", "Resource", "Reason"})
	}

	for _, r := range results {
		status := statusCell(r.Status)
		if verbose {
			t.AppendRow(table.Row{status, r.Title, r.ResourceType, r.Reason, r.Description})
		} else {
			t.AppendRow(table.Row{status, r.Title, r.ResourceType, r.Reason})
		}
	}

	summary := Summarize(results)
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d checks, %d failed", summary.Total, summary.Failed)})
	t.Render()
}

func statusCell(s check.Status) string {
	switch {
	case s.Failed():
		return text.FgRed.Sprint(s)
	case s == check.StatusSkipped:
		return text.FgYellow.Sprint(s)
	default:
		return text.FgGreen.Sprint(s)
	}
}
