package model

import "github.com/google/uuid"

// FoilProduct is a liner product that can be ordered by the roll.
type FoilProduct struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Subtype     FoilSubtype `json:"subtype" yaml:"subtype"`
	Color       string      `json:"color" yaml:"color"`
	PriceNarrow float64     `json:"price_narrow" yaml:"price_narrow"` // Price per 1.65m roll
	PriceWide   float64     `json:"price_wide" yaml:"price_wide"`     // Price per 2.05m roll, 0 if not sold
}

// NewFoilProduct creates a new FoilProduct with a generated ID.
func NewFoilProduct(name string, subtype FoilSubtype, color string, priceNarrow, priceWide float64) FoilProduct {
	if subtype.NarrowOnly() {
		priceWide = 0
	}
	return FoilProduct{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Subtype:     subtype,
		Color:       color,
		PriceNarrow: priceNarrow,
		PriceWide:   priceWide,
	}
}

// PricePerRoll returns the price of one roll of the given width.
func (p FoilProduct) PricePerRoll(w RollWidth) float64 {
	if w == RollWide {
		return p.PriceWide
	}
	return p.PriceNarrow
}

// PoolPreset represents a reusable pool size.
type PoolPreset struct {
	ID   string         `json:"id" yaml:"id"`
	Name string         `json:"name" yaml:"name"`
	Pool PoolDimensions `json:"pool" yaml:"pool"`
}

// NewPoolPreset creates a new PoolPreset with a generated ID.
func NewPoolPreset(name string, pool PoolDimensions) PoolPreset {
	return PoolPreset{
		ID:   uuid.New().String()[:8],
		Name: name,
		Pool: pool,
	}
}

// Inventory holds the user's foil catalog and pool presets.
type Inventory struct {
	Products []FoilProduct `json:"products" yaml:"products"`
	Presets  []PoolPreset  `json:"presets" yaml:"presets"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Products: []FoilProduct{
			NewFoilProduct("Reinforced 1.5mm Blue", SubtypeStandard, "blue", 690, 850),
			NewFoilProduct("Reinforced 1.5mm White", SubtypeStandard, "white", 690, 850),
			NewFoilProduct("Reinforced 1.5mm Sand", SubtypeStandard, "sand", 720, 890),
			NewFoilProduct("Printed Mosaic", SubtypePrinted, "mosaic", 980, 0),
			NewFoilProduct("Anti-slip Blue", SubtypeStructural, "blue", 1050, 0),
			NewFoilProduct("Anti-slip Sand", SubtypeStructural, "sand", 1080, 0),
		},
		Presets: []PoolPreset{
			NewPoolPreset("Garden 6x3x1.5", NewRectangularPool(6, 3, 1.5)),
			NewPoolPreset("Family 8x4x1.5", NewRectangularPool(8, 4, 1.5)),
			NewPoolPreset("Standard 10x5x1.5", NewRectangularPool(10, 5, 1.5)),
			NewPoolPreset("Lap 12x4x1.4", NewRectangularPool(12, 4, 1.4)),
			NewPoolPreset("Deep 8x4x2.0", NewRectangularPool(8, 4, 2.0)),
		},
	}
}

// FindProductByID returns a pointer to the product with the given ID, or nil.
func (inv *Inventory) FindProductByID(id string) *FoilProduct {
	for i := range inv.Products {
		if inv.Products[i].ID == id {
			return &inv.Products[i]
		}
	}
	return nil
}

// FindProductByName returns a pointer to the first product with the given name, or nil.
func (inv *Inventory) FindProductByName(name string) *FoilProduct {
	for i := range inv.Products {
		if inv.Products[i].Name == name {
			return &inv.Products[i]
		}
	}
	return nil
}

// FindPresetByName returns a pointer to the first pool preset with the given name, or nil.
func (inv *Inventory) FindPresetByName(name string) *PoolPreset {
	for i := range inv.Presets {
		if inv.Presets[i].Name == name {
			return &inv.Presets[i]
		}
	}
	return nil
}

// ProductNames returns the product names in catalog order.
func (inv *Inventory) ProductNames() []string {
	names := make([]string, len(inv.Products))
	for i, p := range inv.Products {
		names[i] = p.Name
	}
	return names
}

// ProductsForSubtype returns the products of the given subtype.
func (inv *Inventory) ProductsForSubtype(subtype FoilSubtype) []FoilProduct {
	var out []FoilProduct
	for _, p := range inv.Products {
		if p.Subtype == subtype {
			out = append(out, p)
		}
	}
	return out
}
