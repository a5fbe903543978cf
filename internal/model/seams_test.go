package model

import (
	"math"
	"testing"
)

func TestCalculateSeams(t *testing.T) {
	sum := CalculateSeams(sampleConfig(), 10)

	if sum.ParallelSeams != 2 {
		t.Errorf("expected 2 parallel seams, got %d", sum.ParallelSeams)
	}
	if sum.VerticalSeams != 1 {
		t.Errorf("expected 1 vertical seam, got %d", sum.VerticalSeams)
	}
	if math.Abs(sum.TotalWithWaste-21.5*1.1) > 1e-9 {
		t.Errorf("expected %.4f with waste, got %.4f", 21.5*1.1, sum.TotalWithWaste)
	}
	if sum.LiquidPVCBottles != 1 {
		t.Errorf("expected 1 bottle, got %d", sum.LiquidPVCBottles)
	}
}

func TestCalculateSeamsCoursesAndPieces(t *testing.T) {
	cfg := MixConfiguration{
		Surfaces: []SurfaceRollConfig{
			{
				Surface: Surface{Key: SurfaceBottom, CoverWidth: 1.6, StripLength: 30},
				Strips: []Strip{
					{Index: 1, Width: RollNarrow, Length: 15.05, Piece: 0},
					{Index: 2, Width: RollNarrow, Length: 15.05, Piece: 1},
				},
			},
			{
				Surface:    Surface{Key: SurfaceWalls, CoverWidth: 2.5, StripLength: 20},
				StripCount: 4,
				Courses:    2,
			},
		},
	}
	sum := CalculateSeams(cfg, 0)
	if sum.PieceJoints != 1 || math.Abs(sum.PieceJointLength-1.65) > 1e-9 {
		t.Errorf("expected one 1.65m piece joint, got %d / %.2f", sum.PieceJoints, sum.PieceJointLength)
	}
	if sum.ParallelSeams != 0 {
		t.Errorf("pieces of one strip are not parallel seams, got %d", sum.ParallelSeams)
	}
	if sum.VerticalSeams != 2 {
		t.Errorf("expected one vertical seam per course, got %d", sum.VerticalSeams)
	}
	if math.Abs(sum.HorizontalLength-20) > 1e-9 {
		t.Errorf("expected one 20m course joint, got %.2f", sum.HorizontalLength)
	}

	per := CalculatePerSurfaceSeams(cfg)
	if len(per) != 2 || per[0].Surface != SurfaceBottom || per[1].Seams != 2 {
		t.Errorf("unexpected per-surface seams %+v", per)
	}
}
