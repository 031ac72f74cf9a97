package compare

import (
	"encoding/json"
	"reflect"
	"sort"

	"archcompare/internal/models"
)

// CompareDocuments diffs the baseline and enhanced architecture descriptions.
// It returns one record per leaf path found in either document, ordered
// lexically by path. Reasoning documents are optional and may be nil.
// Type mismatches between the two trees are recorded as changes, never as errors.
func CompareDocuments(baseline, enhanced, baselineReasoning, enhancedReasoning *models.Document) ([]models.ComparisonRecord, error) {
	if baseline == nil {
		return nil, NewError(ErrInvalidInput, "baseline document is nil", "", nil)
	}
	if enhanced == nil {
		return nil, NewError(ErrInvalidInput, "enhanced document is nil", "", nil)
	}

	baseLeaves := indexLeaves(Flatten(baseline.Root))
	enhLeaves := indexLeaves(Flatten(enhanced.Root))

	paths := make([]string, 0, len(baseLeaves)+len(enhLeaves))
	for p := range baseLeaves {
		paths = append(paths, p)
	}
	for p := range enhLeaves {
		if _, ok := baseLeaves[p]; !ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	baseReasons := newReasoningIndex(baselineReasoning)
	enhReasons := newReasoningIndex(enhancedReasoning)

	records := make([]models.ComparisonRecord, 0, len(paths))
	for _, p := range paths {
		b, inBase := baseLeaves[p]
		e, inEnh := enhLeaves[p]

		segments := b.Segments
		if !inBase {
			segments = e.Segments
		}

		rec := models.ComparisonRecord{
			Path:  p,
			Group: GroupOf(segments),
		}
		switch {
		case inBase && inEnh:
			rec.InBaseline, rec.InEnhanced = 1, 1
			rec.BaselineValue, rec.EnhancedValue = b.Value, e.Value
			rec.Status = models.StatusChanged
			if valuesEqual(b.Value, e.Value) {
				rec.Status = models.StatusSame
			}
		case inBase:
			rec.InBaseline = 1
			rec.BaselineValue = b.Value
			rec.Status = models.StatusBaselineOnly
		default:
			rec.InEnhanced = 1
			rec.EnhancedValue = e.Value
			rec.Status = models.StatusEnhancedOnly
		}

		rec.BaselineReasoning = baseReasons.lookup(segments)
		rec.EnhancedReasoning = enhReasons.lookup(segments)
		records = append(records, rec)
	}

	return records, nil
}

// CountDifferences counts records that are not exact matches.
func CountDifferences(records []models.ComparisonRecord) int {
	count := 0
	for _, r := range records {
		if r.IsDifference() {
			count++
		}
	}
	return count
}

func indexLeaves(leaves []Leaf) map[string]Leaf {
	index := make(map[string]Leaf, len(leaves))
	for _, l := range leaves {
		p := l.Path()
		if _, exists := index[p]; !exists {
			index[p] = l
		}
	}
	return index
}

func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

func jsonString(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "<unprintable>"
	}
	return string(data)
}
