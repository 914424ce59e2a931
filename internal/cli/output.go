package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pfrederiksen/bref-rosters/internal/table"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatCSV  OutputFormat = "csv"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'csv')", s)
}

// OutputResult contains data to be output
type OutputResult struct {
	Report   string         `json:"report"`
	Team     string         `json:"team"`
	MinLevel string         `json:"min_level,omitempty"`
	Count    int            `json:"count"`
	Columns  []string       `json:"columns"`
	Records  []table.Record `json:"records"`
}

// NewOutputResult describes a report result.
func NewOutputResult(report, teamCode, minLevel string, rs table.RecordSet) *OutputResult {
	records := rs.Records
	if records == nil {
		records = []table.Record{}
	}
	return &OutputResult{
		Report:   report,
		Team:     teamCode,
		MinLevel: minLevel,
		Count:    rs.Len(),
		Columns:  rs.Columns,
		Records:  records,
	}
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatCSV:
		return writeCSV(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeCSV(w io.Writer, result *OutputResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(result.Columns); err != nil {
		return err
	}
	for _, row := range rows(result) {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeText(w io.Writer, result *OutputResult) error {
	if result.Count == 0 {
		fmt.Fprintln(w, "No players found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(result.Columns, "\t"))
	for _, row := range rows(result) {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if result.Team == "" {
		fmt.Fprintf(w, "\nTotal: %d\n", result.Count)
		return nil
	}
	label := result.Team
	if result.MinLevel != "" {
		label = fmt.Sprintf("%s, %s and above", result.Team, result.MinLevel)
	}
	fmt.Fprintf(w, "\nTotal: %d players (%s)\n", result.Count, label)
	return nil
}

func rows(result *OutputResult) [][]string {
	rs := table.RecordSet{Columns: result.Columns, Records: result.Records}
	return rs.Rows()
}
