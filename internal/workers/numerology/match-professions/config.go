package matchprofessions

import (
	"fmt"
	"time"

	"numerology-workers/internal/common/config"
)

type Config struct {
	Enabled       bool          `mapstructure:"enabled"`
	MaxJobsActive int           `mapstructure:"max_jobs_active"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Index         string        `mapstructure:"professions_index"`
	MaxCandidates int           `mapstructure:"max_candidates"`
	DefaultLimit  int           `mapstructure:"default_limit"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       15 * time.Second,
		Index:         "professions",
		MaxCandidates: 200,
		DefaultLimit:  10,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.Index == "" {
		return fmt.Errorf("professions_index is required")
	}
	if c.MaxCandidates <= 0 {
		return fmt.Errorf("max_candidates must be positive")
	}
	if c.DefaultLimit <= 0 || c.DefaultLimit > maxLimit {
		return fmt.Errorf("default_limit must be between 1 and %d", maxLimit)
	}
	return nil
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}

	if workerCfg, exists := appConfig.Workers[TaskType]; exists {
		cfg.Enabled = workerCfg.Enabled
		if workerCfg.MaxJobsActive > 0 {
			cfg.MaxJobsActive = workerCfg.MaxJobsActive
		}
		if workerCfg.Timeout > 0 {
			cfg.Timeout = config.GetDuration(workerCfg.Timeout)
		}
	}

	n := appConfig.Numerology
	if n.ProfessionsIndex != "" {
		cfg.Index = n.ProfessionsIndex
	}
	if n.MaxCandidates > 0 {
		cfg.MaxCandidates = n.MaxCandidates
	}
	if n.DefaultLimit > 0 {
		cfg.DefaultLimit = n.DefaultLimit
	}
	return cfg
}
