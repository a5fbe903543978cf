package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new jobs
	DefaultMode            OptimizationMode `json:"default_mode" yaml:"default_mode"`
	DefaultSubtype         FoilSubtype      `json:"default_subtype" yaml:"default_subtype"`
	DefaultProductID       string           `json:"default_product_id" yaml:"default_product_id"`
	DefaultRollLength      float64          `json:"default_roll_length" yaml:"default_roll_length"`
	DefaultVerticalOverlap float64          `json:"default_vertical_overlap" yaml:"default_vertical_overlap"`
	DefaultStripOverlap    float64          `json:"default_strip_overlap" yaml:"default_strip_overlap"`
	ReuseRemnants          bool             `json:"reuse_remnants" yaml:"reuse_remnants"`

	// Application preferences
	Currency   string   `json:"currency" yaml:"currency"`
	LogLevel   string   `json:"log_level" yaml:"log_level"`   // "debug", "info", "warn", "error"
	LogFormat  string   `json:"log_format" yaml:"log_format"` // "text", "json"
	RecentJobs []string `json:"recent_jobs" yaml:"recent_jobs"`
}

// MaxRecentJobs bounds the recent job list.
const MaxRecentJobs = 10

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultMode:            ModeMinWaste,
		DefaultSubtype:         SubtypeStandard,
		DefaultRollLength:      defaults.RollLength,
		DefaultVerticalOverlap: defaults.VerticalOverlap,
		DefaultStripOverlap:    defaults.StripOverlap,
		ReuseRemnants:          defaults.ReuseRemnants,
		Currency:               "EUR",
		LogLevel:               "info",
		LogFormat:              "text",
		RecentJobs:             []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a PlannerSettings struct.
// This is used when creating a new job so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *PlannerSettings) {
	if c.DefaultRollLength > 0 {
		s.RollLength = c.DefaultRollLength
	}
	s.VerticalOverlap = c.DefaultVerticalOverlap
	s.StripOverlap = c.DefaultStripOverlap
	s.ReuseRemnants = c.ReuseRemnants
}

// AddRecentJob moves path to the front of the recent job list.
func (c *AppConfig) AddRecentJob(path string) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > MaxRecentJobs {
		recent = recent[:MaxRecentJobs]
	}
	c.RecentJobs = recent
}
