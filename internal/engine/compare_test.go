package engine

import (
	"testing"

	"github.com/piwi3910/foilplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareModes(t *testing.T) {
	results := CompareModes(scenarioRequest(model.ModeMinWaste), model.DefaultSettings())
	require.Len(t, results, 2)

	byWaste, byRolls := results[0], results[1]
	require.NoError(t, byWaste.Err)
	require.NoError(t, byRolls.Err)
	assert.Equal(t, "minWaste", byWaste.Scenario.Name)
	assert.Equal(t, model.ModeMinRolls, byRolls.Result.Request.Mode)

	// Bottom strips plus 2 or 4 wall strips.
	assert.Equal(t, 5, byWaste.TotalStrips)
	assert.Equal(t, 7, byRolls.TotalStrips)
	assert.LessOrEqual(t, byRolls.Consumed, byWaste.Consumed)
	assert.Equal(t, byWaste.Result.TotalRolls165, byWaste.Rolls165)
	assert.InDelta(t, byWaste.Result.WastePercentage, byWaste.WastePercent, 1e-9)
}

func TestCompareScenarios_ReportsErrors(t *testing.T) {
	bad := model.PlanRequest{Pool: model.NewRectangularPool(-1, 5, 1.5), Subtype: model.SubtypeStandard, Mode: model.ModeMinWaste}
	results := CompareScenarios([]ComparisonScenario{
		{Name: "bad", Request: bad, Settings: model.DefaultSettings()},
		{Name: "good", Request: scenarioRequest(model.ModeMinWaste), Settings: model.DefaultSettings()},
	})
	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, model.ErrInvalidDimensions)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, "good", results[1].Scenario.Name)
}

func TestBuildDefaultScenarios(t *testing.T) {
	scenarios := BuildDefaultScenarios(scenarioRequest(model.ModeMinWaste), model.DefaultSettings())
	require.Len(t, scenarios, 4)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, model.ModeMinRolls, scenarios[1].Request.Mode)
	assert.False(t, scenarios[2].Settings.ReuseRemnants)
	assert.True(t, scenarios[3].Request.Subtype.NarrowOnly())

	req := scenarioRequest(model.ModeMinRolls)
	req.Subtype = model.SubtypeStructural
	s := model.DefaultSettings()
	s.ReuseRemnants = false
	scenarios = BuildDefaultScenarios(req, s)
	require.Len(t, scenarios, 2)
	assert.Equal(t, model.ModeMinWaste, scenarios[1].Request.Mode)
}
