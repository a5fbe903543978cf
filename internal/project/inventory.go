package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/foilplan/internal/model"
)

// DefaultInventoryPath returns the default file path for the foil catalog.
// This is located at ~/.foilplan/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to path as JSON or YAML.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	return writeFile(path, inv)
}

// LoadInventory reads the inventory from path.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := decode(path, data, &inv); err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory from the default path.
// If the file does not exist, it creates one with default entries.
func LoadOrCreateInventory() (model.Inventory, string, error) {
	path := DefaultInventoryPath()
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ImportInventory reads an inventory file and merges it into existing.
// Products and presets whose ID is already present are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := decode(path, data, &imported); err != nil {
		return existing, err
	}
	return MergeInventory(existing, imported), nil
}

// MergeInventory appends the entries of imported that existing lacks, by ID.
func MergeInventory(existing, imported model.Inventory) model.Inventory {
	productIDs := make(map[string]bool, len(existing.Products))
	for _, p := range existing.Products {
		productIDs[p.ID] = true
	}
	presetIDs := make(map[string]bool, len(existing.Presets))
	for _, p := range existing.Presets {
		presetIDs[p.ID] = true
	}

	for _, p := range imported.Products {
		if !productIDs[p.ID] {
			existing.Products = append(existing.Products, p)
			productIDs[p.ID] = true
		}
	}
	for _, p := range imported.Presets {
		if !presetIDs[p.ID] {
			existing.Presets = append(existing.Presets, p)
			presetIDs[p.ID] = true
		}
	}
	return existing
}
