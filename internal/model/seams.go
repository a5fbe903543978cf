package model

import "math"

// LiquidPVCMetersPerBottle is the seam length one bottle of liquid PVC seals.
const LiquidPVCMetersPerBottle = 25.0

// SeamSummary holds the welded seam lengths of a plan.
type SeamSummary struct {
	VerticalSeams    int     `json:"vertical_seams"`    // Seams between neighbouring wall strips
	VerticalLength   float64 `json:"vertical_length"`   // m
	ParallelSeams    int     `json:"parallel_seams"`    // Seams between neighbouring flat strips
	ParallelLength   float64 `json:"parallel_length"`   // m
	HorizontalLength float64 `json:"horizontal_length"` // Joints between wall courses, m
	PieceJoints      int     `json:"piece_joints"`      // Cross joints of flat strips longer than a roll
	PieceJointLength float64 `json:"piece_joint_length"`
	TotalLength      float64 `json:"total_length"`
	WastePercent     float64 `json:"waste_percent"`
	TotalWithWaste   float64 `json:"total_with_waste"`
	LiquidPVCBottles int     `json:"liquid_pvc_bottles"`
}

// SurfaceSeams is the seam breakdown of one surface.
type SurfaceSeams struct {
	Surface SurfaceKey `json:"surface"`
	Seams   int        `json:"seams"`
	Length  float64    `json:"length"`
}

// CalculateSeams computes the seam lengths that must be welded for a plan.
// wastePercent is the additional percentage to add for sealing compound waste.
func CalculateSeams(cfg MixConfiguration, wastePercent float64) SeamSummary {
	var sum SeamSummary
	for _, sc := range cfg.Surfaces {
		if sc.Surface.Key.IsRun() {
			perCourse := sc.StripCount
			if sc.Courses > 0 {
				perCourse = sc.StripCount / sc.Courses
			}
			if perCourse > 1 {
				sum.VerticalSeams += (perCourse - 1) * max(sc.Courses, 1)
				sum.VerticalLength += float64(perCourse-1) * sc.Surface.CoverWidth
			}
			if sc.Courses > 1 {
				sum.HorizontalLength += float64(sc.Courses-1) * sc.Surface.StripLength
			}
			continue
		}
		lengths := flatStripLengths(sc.Strips)
		for i := 1; i < len(lengths); i++ {
			sum.ParallelSeams++
			sum.ParallelLength += math.Min(lengths[i-1], lengths[i])
		}
		for _, st := range sc.Strips {
			if st.Piece > 0 {
				sum.PieceJoints++
				sum.PieceJointLength += st.Width.Meters()
			}
		}
	}
	sum.TotalLength = sum.VerticalLength + sum.ParallelLength + sum.HorizontalLength + sum.PieceJointLength
	sum.WastePercent = wastePercent
	sum.TotalWithWaste = sum.TotalLength * (1 + wastePercent/100)
	sum.LiquidPVCBottles = int(math.Ceil(sum.TotalWithWaste / LiquidPVCMetersPerBottle))
	return sum
}

// CalculatePerSurfaceSeams returns the seam breakdown per surface.
func CalculatePerSurfaceSeams(cfg MixConfiguration) []SurfaceSeams {
	var out []SurfaceSeams
	for _, sc := range cfg.Surfaces {
		single := MixConfiguration{Surfaces: []SurfaceRollConfig{sc}}
		s := CalculateSeams(single, 0)
		out = append(out, SurfaceSeams{
			Surface: sc.Surface.Key,
			Seams:   s.VerticalSeams + s.ParallelSeams + s.PieceJoints,
			Length:  s.TotalLength,
		})
	}
	return out
}

// flatStripLengths returns the full length of each flat strip, summing its
// pieces, in lay order.
func flatStripLengths(strips []Strip) []float64 {
	var lengths []float64
	for _, st := range strips {
		if st.Piece == 0 || len(lengths) == 0 {
			lengths = append(lengths, st.Length)
			continue
		}
		lengths[len(lengths)-1] += st.Length
	}
	return lengths
}
