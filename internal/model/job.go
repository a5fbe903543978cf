package model

import (
	"time"

	"github.com/google/uuid"
)

// Job is one pool being quoted: the planning input, the chosen foil and the
// last computed plan.
type Job struct {
	ID        string            `json:"id" yaml:"id"`
	Name      string            `json:"name" yaml:"name"`
	Customer  string            `json:"customer,omitempty" yaml:"customer,omitempty"`
	CreatedAt string            `json:"created_at" yaml:"created_at"`
	UpdatedAt string            `json:"updated_at" yaml:"updated_at"`
	Request   PlanRequest       `json:"request" yaml:"request"`
	ProductID string            `json:"product_id,omitempty" yaml:"product_id,omitempty"`
	Settings  PlannerSettings   `json:"settings" yaml:"settings"`
	Plan      *MixConfiguration `json:"plan,omitempty" yaml:"-"`
}

// NewJob creates a new Job with a generated ID.
func NewJob(name, customer string, req PlanRequest, settings PlannerSettings) Job {
	now := time.Now().UTC().Format(time.RFC3339)
	return Job{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Customer:  customer,
		CreatedAt: now,
		UpdatedAt: now,
		Request:   req,
		Settings:  settings,
	}
}

// SetPlan stores a computed plan and bumps the update time.
func (j *Job) SetPlan(cfg MixConfiguration) {
	j.Plan = &cfg
	j.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// PlanIsCurrent reports whether the stored plan was computed from the job's
// current request and settings.
func (j Job) PlanIsCurrent() bool {
	if j.Plan == nil {
		return false
	}
	return requestsEqual(j.Plan.Request, j.Request) && j.Plan.Settings == j.Settings
}

func requestsEqual(a, b PlanRequest) bool {
	if a.Subtype != b.Subtype || a.Mode != b.Mode {
		return false
	}
	pa, pb := a.Pool, b.Pool
	if pa.Shape != pb.Shape || pa.Length != pb.Length || pa.Width != pb.Width ||
		pa.Depth != pb.Depth || pa.DeepEndDepth != pb.DeepEndDepth ||
		pa.WadingPool != pb.WadingPool {
		return false
	}
	sa, sb := pa.Stairs, pb.Stairs
	if sa.Enabled != sb.Enabled || sa.StepCount != sb.StepCount || sa.StepDepth != sb.StepDepth || sa.Width != sb.Width {
		return false
	}
	return outlinesEqual(pa.Outline, pb.Outline) && outlinesEqual(sa.Outline, sb.Outline)
}

func outlinesEqual(a, b Outline) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
