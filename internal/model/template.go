package model

import (
	"time"

	"github.com/google/uuid"
)

// JobTemplate represents a reusable job configuration that captures the
// pool, foil and settings but not a computed plan.
type JobTemplate struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	CreatedAt   string          `json:"created_at" yaml:"created_at"`
	UpdatedAt   string          `json:"updated_at" yaml:"updated_at"`
	Request     PlanRequest     `json:"request" yaml:"request"`
	ProductID   string          `json:"product_id,omitempty" yaml:"product_id,omitempty"`
	Settings    PlannerSettings `json:"settings" yaml:"settings"`
}

// NewJobTemplate creates a new template from the given job data.
// It copies the request and settings but intentionally excludes the plan.
func NewJobTemplate(name, description string, job Job) JobTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return JobTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Request:     copyRequest(job.Request),
		ProductID:   job.ProductID,
		Settings:    job.Settings,
	}
}

// ToJob creates a new Job from this template with a fresh ID.
func (t JobTemplate) ToJob(jobName, customer string) Job {
	job := NewJob(jobName, customer, copyRequest(t.Request), t.Settings)
	job.ProductID = t.ProductID
	return job
}

// TemplateStore holds a collection of job templates.
type TemplateStore struct {
	Templates []JobTemplate `json:"templates" yaml:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []JobTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t JobTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *JobTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *JobTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// copyRequest returns a request whose outlines do not alias the original.
func copyRequest(r PlanRequest) PlanRequest {
	cp := r
	if r.Pool.Outline != nil {
		cp.Pool.Outline = append(Outline(nil), r.Pool.Outline...)
	}
	if r.Pool.Stairs.Outline != nil {
		cp.Pool.Stairs.Outline = append(Outline(nil), r.Pool.Stairs.Outline...)
	}
	return cp
}
