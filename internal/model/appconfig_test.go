package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultRollLength != defaults.RollLength {
		t.Errorf("RollLength mismatch: config=%f settings=%f", cfg.DefaultRollLength, defaults.RollLength)
	}
	if cfg.DefaultVerticalOverlap != defaults.VerticalOverlap {
		t.Errorf("VerticalOverlap mismatch: config=%f settings=%f", cfg.DefaultVerticalOverlap, defaults.VerticalOverlap)
	}
	if cfg.DefaultStripOverlap != defaults.StripOverlap {
		t.Errorf("StripOverlap mismatch: config=%f settings=%f", cfg.DefaultStripOverlap, defaults.StripOverlap)
	}
	if cfg.ReuseRemnants != defaults.ReuseRemnants {
		t.Errorf("ReuseRemnants mismatch: config=%v settings=%v", cfg.ReuseRemnants, defaults.ReuseRemnants)
	}
	if cfg.DefaultMode != ModeMinWaste {
		t.Errorf("expected default mode=minWaste, got %s", cfg.DefaultMode)
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultRollLength = 30
	cfg.DefaultVerticalOverlap = 0.08
	cfg.ReuseRemnants = false

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.RollLength != 30 {
		t.Errorf("expected RollLength=30, got %f", s.RollLength)
	}
	if s.VerticalOverlap != 0.08 {
		t.Errorf("expected VerticalOverlap=0.08, got %f", s.VerticalOverlap)
	}
	if s.ReuseRemnants {
		t.Error("expected ReuseRemnants=false")
	}
}

func TestAddRecentJob(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentJob("a.json")
	cfg.AddRecentJob("b.yaml")
	cfg.AddRecentJob("a.json")

	if len(cfg.RecentJobs) != 2 {
		t.Fatalf("expected 2 recent jobs, got %d", len(cfg.RecentJobs))
	}
	if cfg.RecentJobs[0] != "a.json" || cfg.RecentJobs[1] != "b.yaml" {
		t.Errorf("unexpected order: %v", cfg.RecentJobs)
	}

	for i := 0; i < MaxRecentJobs+5; i++ {
		cfg.AddRecentJob(string(rune('c'+i)) + ".json")
	}
	if len(cfg.RecentJobs) != MaxRecentJobs {
		t.Errorf("expected list capped at %d, got %d", MaxRecentJobs, len(cfg.RecentJobs))
	}
}
