package app

import (
	"errors"
	"fmt"

	"github.com/vk/bundlecfg/internal/report"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string   // .hcl, .yaml or .yml build file
	Matches    []string // files to look up against the resolved rules

	Format    string
	Color     string
	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.Format == "" {
		cfg.Format = string(report.FormatText)
	}
	if _, err := report.ParseFormat(cfg.Format); err != nil {
		return nil, err
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	if _, err := parseColor(cfg.Color); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseColor(s string) (report.ColorMode, error) {
	switch s {
	case "auto":
		return report.ColorAuto, nil
	case "always":
		return report.ColorAlways, nil
	case "never":
		return report.ColorNever, nil
	default:
		return 0, fmt.Errorf("invalid color mode %q: must be 'auto', 'always' or 'never'", s)
	}
}
