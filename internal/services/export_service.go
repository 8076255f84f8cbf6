package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/ajharbinger/forensic-omniscient/internal/errors"
)

// ExportFormat specifies the format for exporting reports
type ExportFormat string

const (
	FormatJSON     ExportFormat = "json"
	FormatCSV      ExportFormat = "csv"
	FormatMarkdown ExportFormat = "markdown"
)

// ParseExportFormat accepts json, csv, markdown and md, case-insensitively.
// An empty string selects JSON.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", apperrors.InvalidInput("unsupported export format", nil).
			WithOperation("ParseExportFormat").
			WithDetails(fmt.Sprintf("format %q, expected json, csv or markdown", s))
	}
}

type exportService struct{}

// NewExportService creates the report exporter
func NewExportService() ExportService {
	return exportService{}
}

// Render encodes report and returns it with its content type.
func (exportService) Render(report *AnalysisReport, format ExportFormat) ([]byte, string, error) {
	if report == nil {
		return nil, "", apperrors.InvalidInput("report is required", nil).WithOperation("Render")
	}

	var (
		data        []byte
		contentType string
		err         error
	)
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(report, "", "  ")
		contentType = "application/json"
	case FormatCSV:
		data, err = exportToCSV(report)
		contentType = "text/csv"
	case FormatMarkdown:
		data = exportToMarkdown(report)
		contentType = "text/markdown; charset=utf-8"
	default:
		return nil, "", apperrors.InvalidInput("unsupported export format", nil).
			WithOperation("Render").
			WithDetails(string(format))
	}
	if err != nil {
		return nil, "", apperrors.InternalError("failed to render report", err).WithOperation("Render")
	}
	return data, contentType, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// exportToCSV writes one metric per row: headline scores, their components,
// radar axes, then the verdict.
func exportToCSV(r *AnalysisReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	rows := [][]string{{"section", "metric", "value", "status", "threshold"}}
	for _, s := range r.Scores() {
		rows = append(rows, []string{"score", s.Label, formatFloat(s.Value), string(s.Status), s.Threshold})
	}

	c := r.Solvency.Components
	for _, m := range []struct {
		name  string
		value float64
	}{
		{"working_capital", c.WorkingCapital},
		{"ebit", c.EBIT},
		{"liquidity", c.Liquidity},
		{"retained_earnings", c.RetainedEarnings},
		{"efficiency", c.Efficiency},
		{"leverage", c.Leverage},
		{"turnover", c.Turnover},
	} {
		rows = append(rows, []string{"solvency", m.name, formatFloat(m.value), "", ""})
	}

	ic := r.Integrity.Components
	rows = append(rows,
		[]string{"integrity", "dsri", formatFloat(ic.DSRI), elevated(ic.DSRIElevated), "> 1.1"},
		[]string{"integrity", "sgi", formatFloat(ic.SGI), elevated(ic.SGIElevated), "> 1.2"},
	)

	for _, p := range r.Radar {
		rows = append(rows, []string{"radar", p.Axis, formatFloat(p.Value), "", ""})
	}

	rows = append(rows, []string{"verdict", string(r.Verdict.Level), "", r.Verdict.Title, r.Verdict.Message})

	if err := writer.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func elevated(flag bool) string {
	if flag {
		return "elevated"
	}
	return "normal"
}

func exportToMarkdown(r *AnalysisReport) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Forensic Report %s\n\n", r.ReportID)
	fmt.Fprintf(&b, "Generated %s\n\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "## Verdict: %s\n\n%s\n\n", r.Verdict.Title, r.Verdict.Message)

	b.WriteString("## Scores\n\n")
	b.WriteString("| Metric | Value | Status | Threshold |\n")
	b.WriteString("|---|---:|---|---|\n")
	for _, s := range r.Scores() {
		fmt.Fprintf(&b, "| %s | %.2f | %s | %s |\n", s.Label, s.Value, s.Status, s.Threshold)
	}

	c := r.Solvency.Components
	b.WriteString("\n## Solvency components\n\n")
	b.WriteString("| Ratio | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Working capital / assets | %.4f |\n", c.Liquidity)
	fmt.Fprintf(&b, "| Retained earnings / assets | %.4f |\n", c.RetainedEarnings)
	fmt.Fprintf(&b, "| EBIT / assets | %.4f |\n", c.Efficiency)
	fmt.Fprintf(&b, "| Equity / liabilities | %.4f |\n", c.Leverage)
	fmt.Fprintf(&b, "| Sales / assets | %.4f |\n", c.Turnover)

	ic := r.Integrity.Components
	b.WriteString("\n## Integrity indices\n\n")
	b.WriteString("| Index | Value | Flag |\n|---|---:|---|\n")
	fmt.Fprintf(&b, "| DSRI | %.4f | %s |\n", ic.DSRI, elevated(ic.DSRIElevated))
	fmt.Fprintf(&b, "| SGI | %.4f | %s |\n", ic.SGI, elevated(ic.SGIElevated))

	b.WriteString("\n## Radar\n\n")
	for _, p := range r.Radar {
		fmt.Fprintf(&b, "- %s: %.0f/100\n", p.Axis, p.Value)
	}
	return []byte(b.String())
}
