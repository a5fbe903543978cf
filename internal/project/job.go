package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/foilplan/internal/model"
)

// SaveJob writes a job to path. JSON files keep the computed plan; YAML
// files hold only the job input, which is meant for hand editing.
func SaveJob(path string, job model.Job) error {
	if err := writeFile(path, job); err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// LoadJob reads a job from path and validates its request.
func LoadJob(path string) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, fmt.Errorf("failed to read job file: %w", err)
	}
	job := model.Job{Settings: model.DefaultSettings()}
	if err := decode(path, data, &job); err != nil {
		return model.Job{}, fmt.Errorf("failed to parse job file %s: %w", filepath.Base(path), err)
	}
	if job.Name == "" {
		job.Name = filepath.Base(path)
	}
	if err := job.Request.Validate(); err != nil {
		return model.Job{}, fmt.Errorf("invalid job %s: %w", job.Name, err)
	}
	return job, nil
}
