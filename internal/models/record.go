package models

// RecordStatus classifies a single comparison record.
type RecordStatus string

const (
	StatusSame         RecordStatus = "same"
	StatusChanged      RecordStatus = "changed"
	StatusBaselineOnly RecordStatus = "baseline_only"
	StatusEnhancedOnly RecordStatus = "enhanced_only"
)

// ComparisonRecord captures one leaf path of the union of both architecture trees.
type ComparisonRecord struct {
	Path              string       `json:"path"`
	Group             string       `json:"group"`
	InBaseline        int          `json:"in_baseline"`
	InEnhanced        int          `json:"in_enhanced"`
	Status            RecordStatus `json:"status"`
	BaselineValue     any          `json:"baseline_value,omitempty"`
	EnhancedValue     any          `json:"enhanced_value,omitempty"`
	BaselineReasoning string       `json:"baseline_reasoning,omitempty"`
	EnhancedReasoning string       `json:"enhanced_reasoning,omitempty"`
}

// IsDifference reports whether the record is anything other than an exact match.
func (r ComparisonRecord) IsDifference() bool {
	return r.Status != StatusSame
}

// Reasoning returns the enhanced reasoning, falling back to the baseline one.
func (r ComparisonRecord) Reasoning() string {
	if r.EnhancedReasoning != "" {
		return r.EnhancedReasoning
	}
	return r.BaselineReasoning
}
