package compare

import (
	"math"
	"sort"

	"archcompare/internal/models"
)

// Summarize computes the aggregate counts shown by the overview and printed
// after a comparator run. Empty inputs produce a zeroed summary.
func Summarize(records []models.ComparisonRecord, rows []models.ArchitectureRow) models.Summary {
	s := models.Summary{TotalRecords: len(records)}

	groups := make(map[string]struct{})
	for _, r := range records {
		groups[r.Group] = struct{}{}
		switch r.Status {
		case models.StatusSame:
			s.Same++
		case models.StatusChanged:
			s.Changed++
		case models.StatusBaselineOnly:
			s.BaselineOnly++
		case models.StatusEnhancedOnly:
			s.EnhancedOnly++
		}
	}
	s.Groups = len(groups)
	s.Differences = s.Changed + s.BaselineOnly + s.EnhancedOnly
	s.SamePercent = Percent(s.Same, s.TotalRecords)
	s.DiffPercent = Percent(s.Differences, s.TotalRecords)

	s.TotalArchitectures = len(rows)
	s.Levels = make([]models.LevelSummary, 0, len(models.Levels))
	for _, level := range models.Levels {
		same := 0
		for _, row := range rows {
			same += row.Same(level)
		}
		s.Levels = append(s.Levels, models.LevelSummary{
			Level:       level,
			Same:        same,
			Different:   len(rows) - same,
			SamePercent: Percent(same, len(rows)),
		})
	}
	for _, row := range rows {
		if row.Identical() {
			s.IdenticalArchitectures++
		}
	}

	if len(rows) > 0 {
		s.MostDifferentLevel = mostDifferentLevel(s.Levels)
		s.MostCommonPattern = mostCommonPattern(rows)
	}

	return s
}

// Percent returns part/total as a percentage rounded to one decimal, or 0
// when total is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(total)) / 10
}

// mostDifferentLevel picks the level with the fewest matching architectures;
// ties go to the earlier level.
func mostDifferentLevel(levels []models.LevelSummary) models.Level {
	best := levels[0]
	for _, l := range levels[1:] {
		if l.Same < best.Same {
			best = l
		}
	}
	return best.Level
}

// mostCommonPattern returns the most frequent S-C-A-Cfg pattern; ties go to
// the lexically smallest pattern.
func mostCommonPattern(rows []models.ArchitectureRow) string {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.Pattern()]++
	}
	patterns := keysOf(counts)
	sort.SliceStable(patterns, func(i, j int) bool {
		return counts[patterns[i]] > counts[patterns[j]]
	})
	return patterns[0]
}
