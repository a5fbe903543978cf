package importer

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/piwi3910/foilplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
)

// saveLines writes a DXF drawing made of the given closed polygons as loose LINEs.
func saveLines(t *testing.T, polygons ...[][2]float64) string {
	t.Helper()
	d := dxf.NewDrawing()
	for _, poly := range polygons {
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			_, err := d.Line(a[0], a[1], 0, b[0], b[1], 0)
			require.NoError(t, err)
		}
	}
	path := filepath.Join(t.TempDir(), "pool.dxf")
	require.NoError(t, d.SaveAs(path))
	return path
}

func TestImportOutlineDXF_LinesInMillimeters(t *testing.T) {
	basin := [][2]float64{{1000, 1000}, {11000, 1000}, {11000, 6000}, {1000, 6000}}
	skimmer := [][2]float64{{2000, 2000}, {2300, 2000}, {2300, 2300}, {2000, 2300}}
	path := saveLines(t, basin, skimmer)

	res := ImportOutlineDXF(path, UnitMillimeters)

	require.Empty(t, res.Errors)
	require.Len(t, res.Outline, 4)
	w, h := res.Outline.Size()
	assert.InDelta(t, 10.0, w, 1e-9)
	assert.InDelta(t, 5.0, h, 1e-9)
	assert.InDelta(t, 50.0, res.Outline.Area(), 1e-6)
	min, _ := res.Outline.BoundingBox()
	assert.Equal(t, model.Point2D{}, min)
	assert.NotEmpty(t, res.Warnings, "smaller shape should be reported")
}

func TestImportOutlineDXF_TooSmallForUnit(t *testing.T) {
	path := saveLines(t, [][2]float64{{0, 0}, {10000, 0}, {10000, 5000}, {0, 5000}})

	// Read as micrometres by mistake: 10mm x 5mm.
	res := ImportOutlineDXF(path, 0.000001)

	assert.NotEmpty(t, res.Errors)
	assert.Nil(t, res.Outline)
}

func TestImportOutlineDXF_Circle(t *testing.T) {
	d := dxf.NewDrawing()
	_, err := d.Circle(0, 0, 0, 3)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "round.dxf")
	require.NoError(t, d.SaveAs(path))

	res := ImportOutlineDXF(path, UnitMeters)

	require.Empty(t, res.Errors)
	w, h := res.Outline.Size()
	assert.InDelta(t, 6.0, w, 1e-6)
	assert.InDelta(t, 6.0, h, 0.01)
	assert.InDelta(t, math.Pi*9, res.Outline.Area(), 0.1)
}

func TestImportOutlineDXF_MissingFile(t *testing.T) {
	res := ImportOutlineDXF(filepath.Join(t.TempDir(), "none.dxf"), UnitMeters)
	assert.NotEmpty(t, res.Errors)
}

func TestCustomPool(t *testing.T) {
	outline := model.Outline{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 4}, {X: 3, Y: 4}, {X: 3, Y: 6}, {X: 0, Y: 6}}
	pool := CustomPool(outline, 1.4)

	assert.Equal(t, model.ShapeCustom, pool.Shape)
	assert.Equal(t, 8.0, pool.Length)
	assert.Equal(t, 6.0, pool.Width)
	assert.NoError(t, pool.Validate())
}

func TestChainSegments(t *testing.T) {
	segs := []segment{
		{start: model.Point2D{X: 0, Y: 0}, end: model.Point2D{X: 4, Y: 0}},
		{start: model.Point2D{X: 4, Y: 3}, end: model.Point2D{X: 4, Y: 0}}, // reversed
		{start: model.Point2D{X: 4, Y: 3}, end: model.Point2D{X: 0, Y: 3}},
		{start: model.Point2D{X: 0, Y: 3}, end: model.Point2D{X: 0, Y: 0}},
		{start: model.Point2D{X: 10, Y: 10}, end: model.Point2D{X: 12, Y: 10}}, // dangling
	}

	closed, open := chainSegments(segs, 1e-6)

	require.Len(t, closed, 1)
	assert.Equal(t, 1, open)
	assert.InDelta(t, 12.0, closed[0].Area(), 1e-9)
}

func TestBulgeArcPoints(t *testing.T) {
	p1, p2 := model.Point2D{X: 0, Y: 0}, model.Point2D{X: 2, Y: 0}

	// A bulge of 1 is a half circle; positive turns counter-clockwise,
	// which passes below the chord when going left to right.
	pts := bulgeArcPoints(p1, p2, 1, 8)
	require.Len(t, pts, 9)
	assert.InDelta(t, 0.0, pts[0].X, 1e-9)
	assert.InDelta(t, 1.0, pts[4].X, 1e-9)
	assert.InDelta(t, -1.0, pts[4].Y, 1e-9)
	assert.Equal(t, p2, pts[8])

	pts = bulgeArcPoints(p1, p2, -1, 8)
	assert.InDelta(t, 1.0, pts[4].Y, 1e-9)
}
