package compare

import (
	"sort"
	"strings"

	"archcompare/internal/models"
)

// reasoningIndex resolves free-text reasoning for architecture paths from a
// reasoning document keyed the same way as the architecture description.
type reasoningIndex struct {
	exact map[string]string
	below map[string][]string
}

func newReasoningIndex(doc *models.Document) reasoningIndex {
	idx := reasoningIndex{
		exact: make(map[string]string),
		below: make(map[string][]string),
	}
	if doc == nil {
		return idx
	}

	for _, leaf := range Flatten(doc.Root) {
		text := reasoningText(leaf.Value)
		if text == "" {
			continue
		}
		idx.exact[leaf.Path()] = text
		for n := 1; n < len(leaf.Segments); n++ {
			parent := JoinPath(leaf.Segments[:n])
			rel := JoinPath(leaf.Segments[n:])
			idx.below[parent] = append(idx.below[parent], rel+": "+text)
		}
	}
	for k := range idx.below {
		sort.Strings(idx.below[k])
	}
	return idx
}

// lookup returns the exact text at the path, else the texts nested under it,
// else the text of the nearest ancestor.
func (idx reasoningIndex) lookup(segments []string) string {
	p := JoinPath(segments)
	if text, ok := idx.exact[p]; ok {
		return text
	}
	if nested := idx.below[p]; len(nested) > 0 {
		return strings.Join(nested, "; ")
	}
	for n := len(segments) - 1; n >= 1; n-- {
		if text, ok := idx.exact[JoinPath(segments[:n])]; ok {
			return text
		}
	}
	return ""
}

// reasoningText extracts text from a reasoning leaf: strings as-is, and the
// string elements of scalar lists joined together.
func reasoningText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, el := range t {
			if s, ok := el.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}
