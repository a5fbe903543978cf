package export

import (
	"encoding/json"
	"testing"

	"github.com/piwi3910/foilplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectLabelInfos_OnePerStrip(t *testing.T) {
	cfg := buildTestPlan(t, model.ModeMinRolls)

	labels := CollectLabelInfos(cfg)

	require.Len(t, labels, countStrips(cfg))
	seen := map[model.SurfaceKey]map[int]bool{}
	for _, l := range labels {
		if seen[l.Surface] == nil {
			seen[l.Surface] = map[int]bool{}
		}
		assert.False(t, seen[l.Surface][l.Strip], "strip %s #%d labelled twice", l.Surface, l.Strip)
		seen[l.Surface][l.Strip] = true
		assert.Greater(t, l.Length, 0.0)
		assert.NotEmpty(t, l.Roll)
	}
}

func TestCollectLabelInfos_ReusedStripsOnHostRoll(t *testing.T) {
	cfg := buildTestPlan(t, model.ModeMinRolls)

	walls, ok := cfg.Surface(model.SurfaceWalls)
	require.True(t, ok)
	reused := 0
	for _, st := range walls.Strips {
		if st.Reused {
			reused++
		}
	}
	require.Positive(t, reused, "scenario should reuse bottom remnants")

	for _, l := range CollectLabelInfos(cfg) {
		if l.Surface == model.SurfaceWalls && l.Reused {
			assert.Contains(t, l.Roll, "bottom")
			reused--
		}
	}
	assert.Zero(t, reused)
}

func TestCollectLabelInfos_WallLabels(t *testing.T) {
	cfg := buildTestPlan(t, model.ModeMinWaste)

	for _, l := range CollectLabelInfos(cfg) {
		if l.Surface == model.SurfaceWalls {
			assert.NotEmpty(t, l.Walls)
		}
		if l.Surface == model.SurfaceBottom {
			assert.Empty(t, l.Walls)
		}
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	path := tempPath(t, "labels.pdf")

	if err := ExportLabels(path, buildTestPlan(t, model.ModeMinWaste)); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertNonEmptyFile(t, path, 1000)
}

func TestExportLabels_EmptyPlan(t *testing.T) {
	if err := ExportLabels(tempPath(t, "empty.pdf"), model.MixConfiguration{}); err == nil {
		t.Fatal("expected error for a plan without strips")
	}
}

func TestLabelInfo_JSONPayload(t *testing.T) {
	info := LabelInfo{
		Surface:    model.SurfaceWalls,
		Strip:      3,
		Width:      1.65,
		Length:     15.1,
		Walls:      "C-D",
		Roll:       "walls 1.65m #1",
		RollOffset: 9.9,
	}

	data, err := json.Marshal(info)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "walls", decoded["surface"])
	assert.Equal(t, 15.1, decoded["length_m"])
	assert.Equal(t, "C-D", decoded["walls"])
	_, hasReused := decoded["reused"]
	assert.False(t, hasReused, "reused is omitted when false")
}
