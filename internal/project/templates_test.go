package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/foilplan/internal/model"
)

func sampleJob() model.Job {
	req := model.PlanRequest{
		Pool:    model.NewRectangularPool(10, 5, 1.5),
		Subtype: model.SubtypeStandard,
		Mode:    model.ModeMinWaste,
	}
	return model.NewJob("Villa Rossi", "Rossi", req, model.DefaultSettings())
}

func TestSaveAndLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	store := model.NewTemplateStore()
	store.Add(model.NewJobTemplate("Standard 10x5", "Most common size", sampleJob()))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates failed: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	tmpl := loaded.Templates[0]
	if tmpl.Name != "Standard 10x5" {
		t.Errorf("expected name 'Standard 10x5', got %q", tmpl.Name)
	}
	if tmpl.Request.Pool.Width != 5 {
		t.Errorf("expected pool width 5, got %f", tmpl.Request.Pool.Width)
	}
	if tmpl.Settings != model.DefaultSettings() {
		t.Errorf("settings did not survive round trip: %+v", tmpl.Settings)
	}
}

func TestLoadTemplates_NotFound(t *testing.T) {
	store, err := LoadTemplates(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if store.Templates == nil || len(store.Templates) != 0 {
		t.Errorf("expected empty non-nil store, got %+v", store.Templates)
	}
}

func TestSaveAndLoadTemplates_YAMLMultiple(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")

	store := model.NewTemplateStore()
	store.Add(model.NewJobTemplate("A", "", sampleJob()))
	store.Add(model.NewJobTemplate("B", "", sampleJob()))
	store.Add(model.NewJobTemplate("C", "", sampleJob()))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates failed: %v", err)
	}
	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates failed: %v", err)
	}
	names := loaded.Names()
	if len(names) != 3 || names[0] != "A" || names[2] != "C" {
		t.Errorf("unexpected template names %v", names)
	}
}
