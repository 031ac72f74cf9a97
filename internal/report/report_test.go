package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archcompare/internal/artifact"
	"archcompare/internal/models"
	"archcompare/internal/report"
)

func testArtifact() *models.Artifact {
	records := []models.ComparisonRecord{
		{Path: "db.cache", Group: "db", InEnhanced: 1, Status: models.StatusEnhancedOnly, EnhancedValue: "redis"},
		{Path: "db.engine", Group: "db", InBaseline: 1, InEnhanced: 1, Status: models.StatusSame, BaselineValue: "postgres", EnhancedValue: "postgres"},
		{Path: "db.size", Group: "db", InBaseline: 1, InEnhanced: 1, Status: models.StatusChanged, BaselineValue: "", EnhancedValue: []any{"l", "xl"}},
	}
	rows := []models.ArchitectureRow{
		{ArchitectureID: "arch-1", ServicesSame: 1, ComponentsSame: 1, AttributesSame: 1, ConfigurationsSame: 1},
		{ArchitectureID: "arch-2", ServicesSame: 1, ComponentsSame: 0, AttributesSame: 1, ConfigurationsSame: 0},
	}
	return artifact.Build(models.Inputs{}, records, rows)
}

func TestPrintReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := report.PrintReport(&buf, testArtifact(), report.OutputFormatTypeJSON)
	assert.NoError(t, err, "unexpected error")

	var got report.ComparisonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got), "JSON output should be valid JSON")

	assert.Equal(t, 3, got.Summary.TotalRecords)
	require.Len(t, got.Differences, 2, "only differing records are reported")
	assert.Equal(t, "db.cache", got.Differences[0].Path)
	require.Len(t, got.Architectures, 1, "identical architectures are omitted")
	assert.Equal(t, "arch-2", got.Architectures[0].ArchitectureID)
}

func TestPrintReport_Table(t *testing.T) {
	var buf bytes.Buffer
	err := report.PrintReport(&buf, testArtifact(), report.OutputFormatTypeTABLE)
	assert.NoError(t, err, "unexpected error")

	output := buf.String()
	assert.Contains(t, output, "PATH", "Table output should contain header")
	assert.Contains(t, output, "db.cache", "Table output should list differing paths")
	assert.NotContains(t, output, "db.engine", "Table output should skip matching paths")
	assert.Contains(t, output, "ENHANCED_ONLY")
	assert.Contains(t, output, "<empty>")
	assert.Contains(t, output, `["l","xl"]`)
	assert.Contains(t, output, "1-0-1-0")
	assert.Contains(t, output, "Summary: 2 differences found across 3 records")
}

func TestPrintReport_TableNoDifferences(t *testing.T) {
	var buf bytes.Buffer
	a := artifact.Build(models.Inputs{}, nil, nil)

	require.NoError(t, report.PrintReport(&buf, a, report.OutputFormatTypeTABLE))

	output := buf.String()
	assert.False(t, strings.Contains(output, "PATH"), "no record table without differences")
	assert.Contains(t, output, "Summary: 0 differences found across 0 records")
}

func TestPrintReport_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := report.PrintReport(&buf, testArtifact(), "XML")

	assert.Error(t, err, "expected error for unsupported format")
	assert.Empty(t, buf.String())
}

func TestPrintReport_NilArtifact(t *testing.T) {
	err := report.PrintReport(&bytes.Buffer{}, nil, report.OutputFormatTypeJSON)
	assert.Error(t, err)
}

func TestDefaultPrinter(t *testing.T) {
	var buf bytes.Buffer
	printer := report.DefaultPrinter{Out: &buf}

	require.NoError(t, printer.PrintReport(testArtifact(), report.OutputFormatTypeJSON))
	assert.Contains(t, buf.String(), `"differences"`)
}
