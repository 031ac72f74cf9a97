package viewer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"archcompare/internal/models"
)

// ArchitectureFilter selects rows of the architecture table.
type ArchitectureFilter string

const (
	FilterAll            ArchitectureFilter = "all"
	FilterIdentical      ArchitectureFilter = "identical"
	FilterDifferent      ArchitectureFilter = "different"
	FilterServices       ArchitectureFilter = "services"
	FilterComponents     ArchitectureFilter = "components"
	FilterAttributes     ArchitectureFilter = "attributes"
	FilterConfigurations ArchitectureFilter = "configurations"
)

// ArchitectureFilters lists the filters in display order.
var ArchitectureFilters = []ArchitectureFilter{
	FilterAll,
	FilterIdentical,
	FilterDifferent,
	FilterServices,
	FilterComponents,
	FilterAttributes,
	FilterConfigurations,
}

// RowLimits are the selectable table sizes; 0 shows every row.
var RowLimits = []int{10, 25, 50, 100, 0}

const defaultRowLimit = 25

// RecordQuery narrows the detailed record table.
type RecordQuery struct {
	Search   string
	DiffOnly bool
	Group    string
}

// TableQuery is the full set of detailed table parameters.
type TableQuery struct {
	Records RecordQuery
	Filter  ArchitectureFilter
	Limit   int
}

// ParseArchitectureFilter maps a query value to a filter, defaulting to all.
func ParseArchitectureFilter(s string) ArchitectureFilter {
	f := ArchitectureFilter(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ArchitectureFilters {
		if f == known {
			return f
		}
	}
	return FilterAll
}

// ParseLimit maps a query value to a row limit. "all" or "0" disables the
// limit; anything unparsable falls back to the default.
func ParseLimit(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return defaultRowLimit
	}
	if s == "all" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return defaultRowLimit
	}
	return n
}

// ParseBool accepts the usual checkbox encodings.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// FilterRecords returns the records matching q, preserving order.
func FilterRecords(records []models.ComparisonRecord, q RecordQuery) []models.ComparisonRecord {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.ComparisonRecord, 0, len(records))
	for _, r := range records {
		if q.DiffOnly && !r.IsDifference() {
			continue
		}
		if q.Group != "" && r.Group != q.Group {
			continue
		}
		if search != "" && !recordMatches(r, search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func recordMatches(r models.ComparisonRecord, search string) bool {
	fields := []string{
		r.Path,
		string(r.Status),
		FormatValue(r.BaselineValue),
		FormatValue(r.EnhancedValue),
		r.BaselineReasoning,
		r.EnhancedReasoning,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// FilterArchitectures applies the difference filter and a case-insensitive
// architecture id search.
func FilterArchitectures(rows []models.ArchitectureRow, filter ArchitectureFilter, search string) []models.ArchitectureRow {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]models.ArchitectureRow, 0, len(rows))
	for _, row := range rows {
		if !matchesFilter(row, filter) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(row.ArchitectureID), search) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func matchesFilter(row models.ArchitectureRow, filter ArchitectureFilter) bool {
	switch filter {
	case FilterIdentical:
		return row.Identical()
	case FilterDifferent:
		return !row.Identical()
	case FilterServices:
		return row.ServicesSame == 0
	case FilterComponents:
		return row.ComponentsSame == 0
	case FilterAttributes:
		return row.AttributesSame == 0
	case FilterConfigurations:
		return row.ConfigurationsSame == 0
	default:
		return true
	}
}

// Limit truncates s to n elements; n <= 0 returns s unchanged.
func Limit[T any](s []T, n int) []T {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

// FormatValue renders a record value for display. Absent values are empty.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
