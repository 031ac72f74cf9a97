package models

// Level names one of the four comparison levels of an architecture row.
type Level string

const (
	LevelServices       Level = "Services"
	LevelComponents     Level = "Components"
	LevelAttributes     Level = "Attributes"
	LevelConfigurations Level = "Configurations"
)

// Levels lists the comparison levels in display order.
var Levels = []Level{LevelServices, LevelComponents, LevelAttributes, LevelConfigurations}

// ArchitectureRow is the per-architecture tabular comparison. The *Same fields
// are 1 when the level is identical between baseline and enhanced, 0 otherwise.
type ArchitectureRow struct {
	ArchitectureID            string `json:"architecture_id"`
	ServicesSame              int    `json:"services_same"`
	ComponentsSame            int    `json:"components_same"`
	AttributesSame            int    `json:"attributes_same"`
	ConfigurationsSame        int    `json:"configurations_same"`
	ServicesDifferences       string `json:"services_differences"`
	ComponentsDifferences     string `json:"components_differences"`
	AttributesDifferences     string `json:"attributes_differences"`
	ConfigurationsDifferences string `json:"configurations_differences"`
	ReasoningDescription      string `json:"reasoning_description"`
}

// Same returns the binary indicator for the given level.
func (r ArchitectureRow) Same(level Level) int {
	switch level {
	case LevelServices:
		return r.ServicesSame
	case LevelComponents:
		return r.ComponentsSame
	case LevelAttributes:
		return r.AttributesSame
	case LevelConfigurations:
		return r.ConfigurationsSame
	}
	return 0
}

// Differences returns the difference description for the given level.
func (r ArchitectureRow) Differences(level Level) string {
	switch level {
	case LevelServices:
		return r.ServicesDifferences
	case LevelComponents:
		return r.ComponentsDifferences
	case LevelAttributes:
		return r.AttributesDifferences
	case LevelConfigurations:
		return r.ConfigurationsDifferences
	}
	return ""
}

// Identical reports whether all four levels match.
func (r ArchitectureRow) Identical() bool {
	return r.ServicesSame == 1 && r.ComponentsSame == 1 && r.AttributesSame == 1 && r.ConfigurationsSame == 1
}

// Pattern renders the S-C-A-Cfg indicator pattern, e.g. "1-0-1-1".
func (r ArchitectureRow) Pattern() string {
	b := make([]byte, 0, 7)
	for i, level := range Levels {
		if i > 0 {
			b = append(b, '-')
		}
		b = append(b, byte('0'+r.Same(level)))
	}
	return string(b)
}

// DifferenceCount is the number of levels that differ.
func (r ArchitectureRow) DifferenceCount() int {
	n := 0
	for _, level := range Levels {
		if r.Same(level) == 0 {
			n++
		}
	}
	return n
}
