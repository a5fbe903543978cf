package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/foilplan/internal/model"
)

// DefaultTemplatePath returns the default file path for the templates store.
// This is located at ~/.foilplan/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store to path as JSON or YAML.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeFile(path, store)
}

// LoadTemplates reads a template store from path.
// If the file does not exist, returns an empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewTemplateStore(), nil
		}
		return model.TemplateStore{}, err
	}
	var store model.TemplateStore
	if err := decode(path, data, &store); err != nil {
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.JobTemplate{}
	}
	return store, nil
}
