package engine

import (
	"testing"

	"github.com/piwi3910/foilplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackStrips_FirstFitPerWidth(t *testing.T) {
	s := model.DefaultSettings()
	strips := []model.Strip{
		{Index: 1, Width: model.RollWide, Length: 10},
		{Index: 2, Width: model.RollNarrow, Length: 10},
		{Index: 3, Width: model.RollNarrow, Length: 10},
		{Index: 4, Width: model.RollNarrow, Length: 10},
		{Index: 5, Width: model.RollWide, Length: 12},
	}
	packed, rolls, err := packStrips(model.SurfaceBottom, strips, s)
	require.NoError(t, err)
	require.Len(t, rolls, 3)

	// Rolls are numbered in opening order across widths.
	assert.Equal(t, model.RollWide, rolls[0].Width)
	assert.Equal(t, model.RollNarrow, rolls[1].Width)
	assert.Equal(t, model.RollNarrow, rolls[2].Width)
	assert.Equal(t, []int{1, 2, 2, 3, 1}, []int{
		packed[0].RollNumber, packed[1].RollNumber, packed[2].RollNumber, packed[3].RollNumber, packed[4].RollNumber,
	})
	assert.InDelta(t, 22.0, rolls[0].Used, 1e-9)
	assert.InDelta(t, 3.0, rolls[0].Waste, 1e-9)

	// Input is not modified.
	assert.Equal(t, 0, strips[0].RollNumber)
}

func TestPackStrips_SkipsReusedStrips(t *testing.T) {
	s := model.DefaultSettings()
	strips := []model.Strip{
		{Index: 1, Width: model.RollNarrow, Length: 5, Reused: true},
		{Index: 2, Width: model.RollNarrow, Length: 5},
	}
	packed, rolls, err := packStrips(model.SurfaceWalls, strips, s)
	require.NoError(t, err)
	require.Len(t, rolls, 1)
	assert.Equal(t, 0, packed[0].RollNumber)
	assert.Equal(t, 1, packed[1].RollNumber)
}

func TestPackStrips_StripLongerThanRoll(t *testing.T) {
	s := model.DefaultSettings()
	_, _, err := packStrips(model.SurfaceBottom, []model.Strip{{Index: 1, Width: model.RollNarrow, Length: 26}}, s)
	assert.ErrorIs(t, err, ErrNoFeasiblePlan)
}

func TestPackStrips_ExactFit(t *testing.T) {
	s := model.DefaultSettings()
	strips := []model.Strip{
		{Index: 1, Width: model.RollNarrow, Length: 15},
		{Index: 2, Width: model.RollNarrow, Length: 10},
	}
	_, rolls, err := packStrips(model.SurfaceBottom, strips, s)
	require.NoError(t, err)
	require.Len(t, rolls, 1)
	assert.InDelta(t, 0.0, rolls[0].Waste, 1e-9)
}
