package models

// ArtifactVersion is the schema version written into every comparison artifact.
const ArtifactVersion = "1"

// Inputs records which files produced an artifact.
type Inputs struct {
	Baseline          string `json:"baseline"`
	Enhanced          string `json:"enhanced"`
	BaselineReasoning string `json:"baseline_reasoning"`
	EnhancedReasoning string `json:"enhanced_reasoning"`
}

// LevelSummary aggregates one architecture comparison level.
type LevelSummary struct {
	Level       Level   `json:"level"`
	Same        int     `json:"same"`
	Different   int     `json:"different"`
	SamePercent float64 `json:"same_percent"`
}

// Summary holds the aggregate counts shown by the overview.
type Summary struct {
	TotalRecords int     `json:"total_records"`
	Same         int     `json:"same"`
	Changed      int     `json:"changed"`
	BaselineOnly int     `json:"baseline_only"`
	EnhancedOnly int     `json:"enhanced_only"`
	Differences  int     `json:"differences"`
	SamePercent  float64 `json:"same_percent"`
	DiffPercent  float64 `json:"difference_percent"`
	Groups       int     `json:"groups"`

	TotalArchitectures     int            `json:"total_architectures"`
	IdenticalArchitectures int            `json:"identical_architectures"`
	Levels                 []LevelSummary `json:"levels"`
	MostDifferentLevel     Level          `json:"most_different_level,omitempty"`
	MostCommonPattern      string         `json:"most_common_pattern,omitempty"`
}

// Artifact is the persisted output of a comparator run.
type Artifact struct {
	Version       string             `json:"version"`
	Inputs        Inputs             `json:"inputs"`
	Summary       Summary            `json:"summary"`
	Records       []ComparisonRecord `json:"records"`
	Architectures []ArchitectureRow  `json:"architectures"`
}

// HasDifferences reports whether any record or architecture row differs.
func (a *Artifact) HasDifferences() bool {
	for _, r := range a.Records {
		if r.IsDifference() {
			return true
		}
	}
	for _, row := range a.Architectures {
		if !row.Identical() {
			return true
		}
	}
	return false
}
