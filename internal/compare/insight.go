package compare

import (
	"reflect"
	"strings"
	"unicode/utf8"
)

const (
	maxInsightRunes    = 150
	minSentenceRunes   = 30
	fallbackServices   = 2
	noReasoningInsight = "No specific reasoning insights available"
)

// decisionPhrases mark sentences that explain why a choice was made.
var decisionPhrases = []string{
	"because",
	"due to",
	"in order to",
	"to ensure",
	"chosen to",
	"selected to",
	"prioritized",
	"optimized for",
	"designed for",
	"configured for",
	"focused on",
	"enables",
	"allows",
	"provides",
	"ensures",
	"guarantees",
	"supports",
}

// reasoningDescription summarizes why the services of two architectures
// differ, using the reasoning objects of both datasets.
func (c architectureComparator) reasoningDescription(baseline, enhanced map[string]*service) string {
	var descriptions []string

	for _, name := range sortedUnion(keysOf(baseline), keysOf(enhanced)) {
		_, inBase := baseline[name]
		_, inEnh := enhanced[name]
		baseReason := c.baselineReasoning[name]
		enhReason := c.enhancedReasoning[name]

		switch {
		case inBase && inEnh:
			var insights []string
			if baseReason.AttributeSelectionRationale != enhReason.AttributeSelectionRationale {
				if insight := ExtractKeyInsight(enhReason.AttributeSelectionRationale); insight != "" {
					insights = append(insights, "Attribute selection: "+insight)
				}
			}
			if baseReason.CriticalAttributesReasoning != enhReason.CriticalAttributesReasoning {
				if insight := ExtractKeyInsight(enhReason.CriticalAttributesReasoning); insight != "" {
					insights = append(insights, "Critical attributes: "+insight)
				}
			}
			if !reflect.DeepEqual(baseReason.AlternativesConsidered, enhReason.AlternativesConsidered) && len(enhReason.AlternativesConsidered) > 0 {
				if insight := ExtractKeyInsight(formatValue(enhReason.AlternativesConsidered[0])); insight != "" {
					insights = append(insights, "Design choice: "+insight)
				}
			}
			if len(insights) > 0 {
				descriptions = append(descriptions, name+": "+strings.Join(insights, "; "))
			}

		case inEnh:
			if insight := ExtractKeyInsight(enhReason.ServiceUnderstanding); insight != "" {
				descriptions = append(descriptions, name+" (Enhanced only): "+insight)
			}
			if insight := ExtractKeyInsight(enhReason.AttributeSelectionRationale); insight != "" {
				descriptions = append(descriptions, name+" selection reasoning: "+insight)
			}

		default:
			if insight := ExtractKeyInsight(baseReason.ServiceUnderstanding); insight != "" {
				descriptions = append(descriptions, name+" (Baseline only): "+insight)
			}
		}
	}

	if len(descriptions) == 0 {
		descriptions = c.commonServiceInsights(baseline, enhanced)
	}
	if len(descriptions) == 0 {
		return noReasoningInsight
	}
	return strings.Join(descriptions, "; ")
}

// commonServiceInsights explains the configuration of the first services shared
// by both architectures when no difference-specific reasoning exists.
func (c architectureComparator) commonServiceInsights(baseline, enhanced map[string]*service) []string {
	var common []string
	for _, name := range keysOf(baseline) {
		if _, ok := enhanced[name]; ok {
			common = append(common, name)
		}
	}
	if len(common) > fallbackServices {
		common = common[:fallbackServices]
	}

	var descriptions []string
	for _, name := range common {
		reason, ok := c.enhancedReasoning[name]
		if !ok {
			reason = c.baselineReasoning[name]
		}
		text := reason.AttributeSelectionRationale
		if text == "" {
			text = reason.CriticalAttributesReasoning
		}
		if insight := ExtractKeyInsight(text); insight != "" {
			descriptions = append(descriptions, name+": "+insight)
		}
	}
	return descriptions
}

// ExtractKeyInsight picks the most decision-relevant sentence of a reasoning
// text: the first sentence with a decision phrase, else the first sentence
// longer than 30 characters, else the start of the text. Results are capped
// at 150 characters.
func ExtractKeyInsight(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	sentences := strings.Split(text, ". ")
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" || !hasDecisionPhrase(sentence) {
			continue
		}
		if !strings.HasSuffix(sentence, ".") {
			sentence += "."
		}
		return truncateRunes(sentence, maxInsightRunes)
	}

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if utf8.RuneCountInString(sentence) > minSentenceRunes {
			return truncateRunes(sentence, maxInsightRunes)
		}
	}

	return truncateRunes(text, maxInsightRunes)
}

func hasDecisionPhrase(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, phrase := range decisionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
