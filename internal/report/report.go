package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"archcompare/internal/models"
)

// OutputFormatType defines the format types for the comparison report.
type OutputFormatType string

const (
	// OutputFormatTypeJSON represents JSON output format
	OutputFormatTypeJSON OutputFormatType = "JSON"
	// OutputFormatTypeTABLE represents table output format
	OutputFormatTypeTABLE OutputFormatType = "TABLE"
)

// maxValueWidth caps values printed in table cells.
const maxValueWidth = 48

// ComparisonReport is the printed view of an artifact: the summary plus only
// the records and architectures that differ.
type ComparisonReport struct {
	Summary       models.Summary            `json:"summary"`
	Differences   []models.ComparisonRecord `json:"differences"`
	Architectures []models.ArchitectureRow  `json:"architectures"`
}

// PrintReport writes the comparison report for an artifact using the specified output format.
// Supported formats: "json" (machine-readable) and "table" (human-friendly).
func PrintReport(w io.Writer, artifact *models.Artifact, outputFormat OutputFormatType) error {
	if artifact == nil {
		return fmt.Errorf("no artifact to report")
	}
	report := newComparisonReport(artifact)

	switch outputFormat {
	case OutputFormatTypeJSON:
		return printJSONReport(w, report)
	case OutputFormatTypeTABLE:
		return printTableReport(w, report)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func newComparisonReport(artifact *models.Artifact) ComparisonReport {
	report := ComparisonReport{
		Summary:       artifact.Summary,
		Differences:   []models.ComparisonRecord{},
		Architectures: []models.ArchitectureRow{},
	}
	for _, r := range artifact.Records {
		if r.IsDifference() {
			report.Differences = append(report.Differences, r)
		}
	}
	for _, row := range artifact.Architectures {
		if !row.Identical() {
			report.Architectures = append(report.Architectures, row)
		}
	}
	return report
}

// printJSONReport prints the report in JSON format
func printJSONReport(w io.Writer, report ComparisonReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling report to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printTableReport prints the report in a human-friendly table format
func printTableReport(w io.Writer, report ComparisonReport) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	s := report.Summary

	fmt.Fprintf(writer, "\nRECORDS:\t%d\n", s.TotalRecords)
	fmt.Fprintf(writer, "SAME:\t%d\t(%.1f%%)\n", s.Same, s.SamePercent)
	fmt.Fprintf(writer, "CHANGED:\t%d\n", s.Changed)
	fmt.Fprintf(writer, "BASELINE ONLY:\t%d\n", s.BaselineOnly)
	fmt.Fprintf(writer, "ENHANCED ONLY:\t%d\n", s.EnhancedOnly)
	fmt.Fprintf(writer, "GROUPS:\t%d\n\n", s.Groups)

	if len(report.Differences) > 0 {
		fmt.Fprintln(writer, "PATH\tBASELINE\tENHANCED\tSTATUS")
		fmt.Fprintln(writer, "----\t--------\t--------\t------")
		for _, r := range report.Differences {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
				r.Path,
				formatValueForTable(r.InBaseline, r.BaselineValue),
				formatValueForTable(r.InEnhanced, r.EnhancedValue),
				strings.ToUpper(string(r.Status)))
		}
		fmt.Fprintln(writer, "")
	}

	if s.TotalArchitectures > 0 {
		fmt.Fprintf(writer, "ARCHITECTURES:\t%d\t(%d identical)\n\n", s.TotalArchitectures, s.IdenticalArchitectures)
		if len(report.Architectures) > 0 {
			fmt.Fprintln(writer, "ARCHITECTURE\tSERVICES\tCOMPONENTS\tATTRIBUTES\tCONFIGURATIONS\tPATTERN")
			fmt.Fprintln(writer, "------------\t--------\t----------\t----------\t--------------\t-------")
			for _, row := range report.Architectures {
				fmt.Fprintf(writer, "%s\t%d\t%d\t%d\t%d\t%s\n",
					row.ArchitectureID,
					row.ServicesSame,
					row.ComponentsSame,
					row.AttributesSame,
					row.ConfigurationsSame,
					row.Pattern())
			}
			fmt.Fprintln(writer, "")
		}
	}

	// Print summary
	fmt.Fprintf(writer, "Summary: %d differences found across %d records\n", s.Differences, s.TotalRecords)

	return writer.Flush()
}

// formatValueForTable formats values for better display in the table
func formatValueForTable(present int, v any) string {
	if present == 0 {
		return "-"
	}
	if v == nil {
		return "<nil>"
	}

	// Handle empty strings
	if s, ok := v.(string); ok && s == "" {
		return "<empty>"
	}

	var out string
	switch v.(type) {
	case map[string]any, []any:
		data, err := json.Marshal(v)
		if err != nil {
			out = fmt.Sprintf("%v", v)
		} else {
			out = string(data)
		}
	default:
		out = fmt.Sprintf("%v", v)
	}

	if runes := []rune(out); len(runes) > maxValueWidth {
		out = string(runes[:maxValueWidth-3]) + "..."
	}
	return out
}

// DefaultPrinter is the default implementation of the report printer
type DefaultPrinter struct {
	Out io.Writer
}

// PrintReport implements the printer interface
func (p DefaultPrinter) PrintReport(artifact *models.Artifact, format OutputFormatType) error {
	w := p.Out
	if w == nil {
		w = os.Stdout
	}
	return PrintReport(w, artifact, format)
}
