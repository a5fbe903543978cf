package project

import (
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/foilplan/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string              `json:"version" yaml:"version"`
	CreatedAt string              `json:"created_at" yaml:"created_at"`
	Config    model.AppConfig     `json:"config" yaml:"config"`
	Inventory model.Inventory     `json:"inventory" yaml:"inventory"`
	Templates model.TemplateStore `json:"templates" yaml:"templates"`
}

// ExportAllData writes config, catalog and templates to a single file.
func ExportAllData(exportPath string, config model.AppConfig, inv model.Inventory, templates model.TemplateStore) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Inventory: inv,
		Templates: templates,
	}
	if err := writeFile(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup file and returns the contained data.
// The caller is responsible for applying the imported config.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := decode(importPath, data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentJobs == nil {
		backup.Config.RecentJobs = []string{}
	}
	if backup.Templates.Templates == nil {
		backup.Templates.Templates = []model.JobTemplate{}
	}
	return backup, nil
}
