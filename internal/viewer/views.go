package viewer

import (
	"fmt"
	"html/template"
	"sort"

	"github.com/sergi/go-diff/diffmatchpatch"

	"archcompare/internal/models"
)

// maxTopGroups bounds the group ranking shown on the overview.
const maxTopGroups = 5

// GroupSummary counts the records of one top-level group.
type GroupSummary struct {
	Group       string `json:"group"`
	Records     int    `json:"records"`
	Differences int    `json:"differences"`
}

// OverviewPage is the data behind the overview tab.
type OverviewPage struct {
	Summary   models.Summary `json:"summary"`
	Inputs    models.Inputs  `json:"inputs"`
	Insights  []string       `json:"insights"`
	TopGroups []GroupSummary `json:"top_groups"`
}

// TablePage is the data behind the detailed table tab.
type TablePage struct {
	Query              TableQuery
	Records            []models.ComparisonRecord
	MatchingRecords    int
	TotalRecords       int
	Architectures      []models.ArchitectureRow
	MatchingArchs      int
	TotalArchitectures int
	Filters            []ArchitectureFilter
	Limits             []int
}

// RecordDetail is one record expanded for the deep dive.
type RecordDetail struct {
	models.ComparisonRecord
	BaselineText  string        `json:"baseline_text"`
	EnhancedText  string        `json:"enhanced_text"`
	ReasoningDiff template.HTML `json:"-"`
}

// LevelDetail is the status of one comparison level of an architecture.
type LevelDetail struct {
	Level       models.Level `json:"level"`
	Same        bool         `json:"same"`
	Differences string       `json:"differences"`
}

// ArchitectureDetail is one architecture row expanded for the deep dive.
type ArchitectureDetail struct {
	Row    models.ArchitectureRow `json:"row"`
	Levels []LevelDetail          `json:"levels"`
}

// DeepDivePage is the data behind the deep dive tab.
type DeepDivePage struct {
	Groups        []GroupSummary
	Group         string
	Records       []RecordDetail
	Architectures []string
	Arch          string
	Architecture  *ArchitectureDetail
}

// BuildOverview derives the overview tab from an artifact.
func BuildOverview(a *models.Artifact) OverviewPage {
	groups := SummarizeGroups(a.Records)
	top := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		if g.Differences > 0 {
			top = append(top, g)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Differences > top[j].Differences
	})

	return OverviewPage{
		Summary:   a.Summary,
		Inputs:    a.Inputs,
		Insights:  insights(a.Summary, top),
		TopGroups: Limit(top, maxTopGroups),
	}
}

func insights(s models.Summary, top []GroupSummary) []string {
	var out []string
	if s.TotalRecords > 0 {
		out = append(out, fmt.Sprintf("%d of %d paths differ (%.1f%%)", s.Differences, s.TotalRecords, s.DiffPercent))
	}
	if len(top) > 0 {
		out = append(out, fmt.Sprintf("%s has the most differences (%d)", top[0].Group, top[0].Differences))
	}
	if s.TotalArchitectures > 0 {
		out = append(out, fmt.Sprintf("%d/%d architectures are completely identical", s.IdenticalArchitectures, s.TotalArchitectures))
		if different := s.TotalArchitectures - s.IdenticalArchitectures; different > 0 {
			out = append(out, fmt.Sprintf("%d architectures have differences", different))
		}
		out = append(out, fmt.Sprintf("%s level has the most differences", s.MostDifferentLevel))
		out = append(out, fmt.Sprintf("Most common pattern: %s (S-C-A-Cfg)", s.MostCommonPattern))
	}
	return out
}

// BuildTable applies the table query to an artifact.
func BuildTable(a *models.Artifact, q TableQuery) TablePage {
	records := FilterRecords(a.Records, q.Records)
	archs := FilterArchitectures(a.Architectures, q.Filter, q.Records.Search)

	return TablePage{
		Query:              q,
		Records:            Limit(records, q.Limit),
		MatchingRecords:    len(records),
		TotalRecords:       len(a.Records),
		Architectures:      Limit(archs, q.Limit),
		MatchingArchs:      len(archs),
		TotalArchitectures: len(a.Architectures),
		Filters:            ArchitectureFilters,
		Limits:             RowLimits,
	}
}

// BuildDeepDive expands one group and one architecture. Empty selections
// default to the first group and the first architecture.
func BuildDeepDive(a *models.Artifact, group, arch string) DeepDivePage {
	page := DeepDivePage{Groups: SummarizeGroups(a.Records)}
	if group == "" && len(page.Groups) > 0 {
		group = page.Groups[0].Group
	}
	page.Group = group
	page.Records = GroupDetails(a.Records, group)

	for _, row := range a.Architectures {
		page.Architectures = append(page.Architectures, row.ArchitectureID)
	}
	if arch == "" && len(page.Architectures) > 0 {
		arch = page.Architectures[0]
	}
	page.Arch = arch
	page.Architecture = FindArchitecture(a.Architectures, arch)

	return page
}

// SummarizeGroups counts records per group, ordered by group name.
func SummarizeGroups(records []models.ComparisonRecord) []GroupSummary {
	index := make(map[string]int)
	var groups []GroupSummary
	for _, r := range records {
		i, ok := index[r.Group]
		if !ok {
			i = len(groups)
			index[r.Group] = i
			groups = append(groups, GroupSummary{Group: r.Group})
		}
		groups[i].Records++
		if r.IsDifference() {
			groups[i].Differences++
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Group < groups[j].Group })
	return groups
}

// GroupDetails expands every record of a group.
func GroupDetails(records []models.ComparisonRecord, group string) []RecordDetail {
	var out []RecordDetail
	for _, r := range records {
		if r.Group != group {
			continue
		}
		out = append(out, RecordDetail{
			ComparisonRecord: r,
			BaselineText:     FormatValue(r.BaselineValue),
			EnhancedText:     FormatValue(r.EnhancedValue),
			ReasoningDiff:    ReasoningDiff(r.BaselineReasoning, r.EnhancedReasoning),
		})
	}
	return out
}

// FindArchitecture returns the expanded row for id, or nil.
func FindArchitecture(rows []models.ArchitectureRow, id string) *ArchitectureDetail {
	for _, row := range rows {
		if row.ArchitectureID != id {
			continue
		}
		detail := &ArchitectureDetail{Row: row}
		for _, level := range models.Levels {
			detail.Levels = append(detail.Levels, LevelDetail{
				Level:       level,
				Same:        row.Same(level) == 1,
				Differences: row.Differences(level),
			})
		}
		return detail
	}
	return nil
}

// ReasoningDiff renders a character-level diff of two reasoning texts as
// HTML with insertions and deletions marked. Identical texts yield nothing.
func ReasoningDiff(baseline, enhanced string) template.HTML {
	if baseline == enhanced {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(baseline, enhanced, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	// DiffPrettyHtml escapes the diffed text itself.
	return template.HTML(dmp.DiffPrettyHtml(diffs))
}
