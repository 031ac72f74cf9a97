package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"archcompare/internal/models"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil)

	assert.Equal(t, 0, s.TotalRecords)
	assert.Equal(t, 0.0, s.SamePercent, "percentages must not divide by zero")
	assert.Equal(t, 0.0, s.DiffPercent)
	assert.Equal(t, 0, s.TotalArchitectures)
	assert.Len(t, s.Levels, len(models.Levels))
	assert.Empty(t, s.MostCommonPattern)
	assert.Empty(t, s.MostDifferentLevel)
}

func TestSummarize(t *testing.T) {
	records := []models.ComparisonRecord{
		{Path: "db.cache", Group: "db", Status: models.StatusEnhancedOnly},
		{Path: "db.engine", Group: "db", Status: models.StatusSame},
		{Path: "network.vpc", Group: "network", Status: models.StatusChanged},
	}
	rows := []models.ArchitectureRow{
		{ArchitectureID: "a", ServicesSame: 1, ComponentsSame: 1, AttributesSame: 1, ConfigurationsSame: 1},
		{ArchitectureID: "b", ServicesSame: 1, ComponentsSame: 1, AttributesSame: 0, ConfigurationsSame: 0},
		{ArchitectureID: "c", ServicesSame: 1, ComponentsSame: 1, AttributesSame: 0, ConfigurationsSame: 0},
	}

	s := Summarize(records, rows)

	assert.Equal(t, 3, s.TotalRecords)
	assert.Equal(t, 1, s.Same)
	assert.Equal(t, 1, s.Changed)
	assert.Equal(t, 0, s.BaselineOnly)
	assert.Equal(t, 1, s.EnhancedOnly)
	assert.Equal(t, 2, s.Differences)
	assert.Equal(t, 33.3, s.SamePercent)
	assert.Equal(t, 66.7, s.DiffPercent)
	assert.Equal(t, 2, s.Groups)

	assert.Equal(t, 3, s.TotalArchitectures)
	assert.Equal(t, 1, s.IdenticalArchitectures)
	assert.Equal(t, models.LevelAttributes, s.MostDifferentLevel, "ties go to the earlier level")
	assert.Equal(t, "1-1-0-0", s.MostCommonPattern)

	assert.Equal(t, models.LevelSummary{Level: models.LevelServices, Same: 3, Different: 0, SamePercent: 100}, s.Levels[0])
	assert.Equal(t, models.LevelSummary{Level: models.LevelConfigurations, Same: 1, Different: 2, SamePercent: 33.3}, s.Levels[3])
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(5, 0))
	assert.Equal(t, 50.0, Percent(1, 2))
	assert.Equal(t, 100.0, Percent(7, 7))
}
