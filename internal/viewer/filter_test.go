package viewer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"archcompare/internal/models"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", defaultRowLimit},
		{"10", 10},
		{"100", 100},
		{"All", 0},
		{"0", 0},
		{"-5", defaultRowLimit},
		{"many", defaultRowLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLimit(tt.in), "ParseLimit(%q)", tt.in)
	}
}

func TestParseArchitectureFilter(t *testing.T) {
	assert.Equal(t, FilterAll, ParseArchitectureFilter(""))
	assert.Equal(t, FilterIdentical, ParseArchitectureFilter("Identical"))
	assert.Equal(t, FilterConfigurations, ParseArchitectureFilter(" configurations "))
	assert.Equal(t, FilterAll, ParseArchitectureFilter("bogus"))
}

func TestParseBool(t *testing.T) {
	assert.True(t, ParseBool("1"))
	assert.True(t, ParseBool("on"))
	assert.True(t, ParseBool("TRUE"))
	assert.False(t, ParseBool(""))
	assert.False(t, ParseBool("0"))
}

func TestFilterRecords(t *testing.T) {
	records := []models.ComparisonRecord{
		{Path: "db.cache", Group: "db", Status: models.StatusEnhancedOnly, EnhancedValue: "redis"},
		{Path: "db.engine", Group: "db", Status: models.StatusSame, BaselineValue: "postgres", EnhancedValue: "postgres", EnhancedReasoning: "Chosen for ACID"},
		{Path: "net.ports", Group: "net", Status: models.StatusChanged, BaselineValue: []any{80.0}, EnhancedValue: []any{80.0, 443.0}},
	}

	tests := []struct {
		name  string
		query RecordQuery
		want  []string
	}{
		{"no filter", RecordQuery{}, []string{"db.cache", "db.engine", "net.ports"}},
		{"difference only", RecordQuery{DiffOnly: true}, []string{"db.cache", "net.ports"}},
		{"search path", RecordQuery{Search: "ENGINE"}, []string{"db.engine"}},
		{"search value", RecordQuery{Search: "redis"}, []string{"db.cache"}},
		{"search list value", RecordQuery{Search: "443"}, []string{"net.ports"}},
		{"search reasoning", RecordQuery{Search: "acid"}, []string{"db.engine"}},
		{"search status", RecordQuery{Search: "changed"}, []string{"net.ports"}},
		{"group", RecordQuery{Group: "db", DiffOnly: true}, []string{"db.cache"}},
		{"no match", RecordQuery{Search: "kafka"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, r := range FilterRecords(records, tt.query) {
				got = append(got, r.Path)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterArchitectures(t *testing.T) {
	rows := []models.ArchitectureRow{
		{ArchitectureID: "Arch-A", ServicesSame: 1, ComponentsSame: 1, AttributesSame: 1, ConfigurationsSame: 1},
		{ArchitectureID: "arch-b", ServicesSame: 0, ComponentsSame: 1, AttributesSame: 1, ConfigurationsSame: 1},
		{ArchitectureID: "other", ServicesSame: 1, ComponentsSame: 0, AttributesSame: 0, ConfigurationsSame: 0},
	}

	ids := func(rows []models.ArchitectureRow) []string {
		out := []string{}
		for _, r := range rows {
			out = append(out, r.ArchitectureID)
		}
		return out
	}

	assert.Equal(t, []string{"Arch-A", "arch-b", "other"}, ids(FilterArchitectures(rows, FilterAll, "")))
	assert.Equal(t, []string{"Arch-A"}, ids(FilterArchitectures(rows, FilterIdentical, "")))
	assert.Equal(t, []string{"arch-b", "other"}, ids(FilterArchitectures(rows, FilterDifferent, "")))
	assert.Equal(t, []string{"arch-b"}, ids(FilterArchitectures(rows, FilterServices, "")))
	assert.Equal(t, []string{"other"}, ids(FilterArchitectures(rows, FilterComponents, "")))
	assert.Equal(t, []string{"other"}, ids(FilterArchitectures(rows, FilterAttributes, "")))
	assert.Equal(t, []string{"other"}, ids(FilterArchitectures(rows, FilterConfigurations, "")))
	assert.Equal(t, []string{"Arch-A", "arch-b"}, ids(FilterArchitectures(rows, FilterAll, "ARCH")))
}

func TestLimit(t *testing.T) {
	s := []int{1, 2, 3}

	assert.Equal(t, []int{1, 2}, Limit(s, 2))
	assert.Equal(t, s, Limit(s, 0))
	assert.Equal(t, s, Limit(s, 10))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "x", FormatValue("x"))
	assert.Equal(t, "2.5", FormatValue(2.5))
	assert.Equal(t, "9007199254740993", FormatValue(json.Number("9007199254740993")))
	assert.Equal(t, "false", FormatValue(false))
	assert.Equal(t, `["a",1]`, FormatValue([]any{"a", 1.0}))
	assert.Equal(t, `{}`, FormatValue(map[string]any{}))
}
