package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut is the uncut tail of a roll long enough to go back into stock.
type Offcut struct {
	ID         string     `json:"id"`
	Surface    SurfaceKey `json:"surface"`     // Surface that opened the roll
	RollNumber int        `json:"roll_number"` // Roll number within that surface
	Width      RollWidth  `json:"width"`
	Length     float64    `json:"length"`
	Value      float64    `json:"value"` // Share of the roll price, 0 if not priced
}

// Area returns the area of the offcut in square meters.
func (o Offcut) Area() float64 {
	return o.Length * o.Width.Meters()
}

// Label returns a short identifier such as "bottom 2.05m #1".
func (o Offcut) Label() string {
	return string(o.Surface) + " " + RollAllocation{Number: o.RollNumber, Width: o.Width}.Label()
}

// MinOffcutLength is the shortest roll tail (in meters) worth keeping.
// Shorter tails are waste.
const MinOffcutLength = 1.0

// DetectOffcuts returns the tail of the roll as an offcut, or nil when it is
// too short to keep.
func DetectOffcuts(surface SurfaceKey, roll RollAllocation) []Offcut {
	if roll.Waste < MinOffcutLength {
		return nil
	}
	return []Offcut{{
		ID:         uuid.New().String()[:8],
		Surface:    surface,
		RollNumber: roll.Number,
		Width:      roll.Width,
		Length:     roll.Waste,
	}}
}

// DetectAllOffcuts finds offcuts across every roll of a plan, largest first.
// When a product is given each offcut is valued at its share of the roll price.
func DetectAllOffcuts(cfg MixConfiguration, product *FoilProduct) []Offcut {
	var all []Offcut
	for _, sc := range cfg.Surfaces {
		for _, r := range sc.Rolls {
			all = append(all, DetectOffcuts(sc.Surface.Key, r)...)
		}
	}
	if product != nil && cfg.Settings.RollLength > 0 {
		for i := range all {
			all[i].Value = all[i].Length / cfg.Settings.RollLength * product.PricePerRoll(all[i].Width)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Area() > all[j].Area()
	})
	return all
}

// TotalOffcutArea returns the total area of all offcuts in square meters.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
