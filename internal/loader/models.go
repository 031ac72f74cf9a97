package loader

import "archcompare/internal/models"

// Paths names the four comparator inputs.
type Paths struct {
	Baseline          string `yaml:"baseline"`
	Enhanced          string `yaml:"enhanced"`
	BaselineReasoning string `yaml:"baseline_reasoning"`
	EnhancedReasoning string `yaml:"enhanced_reasoning"`
}

// Documents holds the decoded comparator inputs.
type Documents struct {
	Baseline          *models.Document
	Enhanced          *models.Document
	BaselineReasoning *models.Document
	EnhancedReasoning *models.Document
}
