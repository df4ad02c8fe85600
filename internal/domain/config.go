package domain

import (
	"fmt"
	"path/filepath"
)

// Config holds the landing zone configuration loaded from .landingzone.yaml.
type Config struct {
	IncomingDir  string        `yaml:"incoming_dir"       json:"incoming_dir"`
	WorkspaceDir string        `yaml:"workspace_dir"      json:"workspace_dir"`
	ReadyDir     string        `yaml:"ready_dir"          json:"ready_dir"`
	RejectedDir  string        `yaml:"rejected_dir"       json:"rejected_dir"`
	LogDir       string        `yaml:"log_dir"            json:"log_dir"`
	AutoFix      *bool         `yaml:"auto_fix,omitempty" json:"auto_fix,omitempty"`
	Logging      LoggingConfig `yaml:"logging"            json:"logging"`
	Events       EventsConfig  `yaml:"events"             json:"events"`
	Metrics      MetricsConfig `yaml:"metrics"            json:"metrics"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"  json:"level"`
	Format string `yaml:"format" json:"format"`
}

// EventsConfig configures the newline-delimited event stream.
type EventsConfig struct {
	Path         string `yaml:"path"          json:"path"`
	SourceSystem string `yaml:"source_system" json:"source_system"`
	Contact      string `yaml:"contact"       json:"contact"`
}

// MetricsConfig configures the optional Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile" json:"textfile,omitempty"`
}

const (
	DefaultSourceSystem = "HDR LZ Validator"
	DefaultContact      = "datafeeds-support@example.com"
	DefaultEventsFile   = "grafana_feed_events.jsonl"
	DefaultAppLogFile   = "app.log"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "json"}
)

// DefaultConfig returns the classic landing zone layout:
// everything relative to the working directory, auto-fix on.
func DefaultConfig() Config {
	autoFix := true
	return Config{
		IncomingDir:  "./incoming",
		WorkspaceDir: "./workspace",
		ReadyDir:     "./ready_for_mft",
		RejectedDir:  "./rejected",
		LogDir:       "./logs",
		AutoFix:      &autoFix,
		Logging:      LoggingConfig{Level: "info", Format: "console"},
		Events: EventsConfig{
			Path:         filepath.Join("./logs", DefaultEventsFile),
			SourceSystem: DefaultSourceSystem,
			Contact:      DefaultContact,
		},
	}
}

// AutoFixEnabled reports whether remediation runs on failing submissions.
// Unset means enabled.
func (c Config) AutoFixEnabled() bool {
	return c.AutoFix == nil || *c.AutoFix
}

// AppLogPath is where the application log is written besides stderr.
func (c Config) AppLogPath() string {
	return filepath.Join(c.LogDir, DefaultAppLogFile)
}

// WithDefaults fills every unset field from DefaultConfig. Explicit values
// always win.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	result := c

	setIfEmpty(&result.IncomingDir, d.IncomingDir)
	setIfEmpty(&result.WorkspaceDir, d.WorkspaceDir)
	setIfEmpty(&result.ReadyDir, d.ReadyDir)
	setIfEmpty(&result.RejectedDir, d.RejectedDir)
	setIfEmpty(&result.LogDir, d.LogDir)
	if result.AutoFix == nil {
		result.AutoFix = d.AutoFix
	}
	setIfEmpty(&result.Logging.Level, d.Logging.Level)
	setIfEmpty(&result.Logging.Format, d.Logging.Format)

	// The events file follows log_dir unless placed explicitly.
	setIfEmpty(&result.Events.Path, filepath.Join(result.LogDir, DefaultEventsFile))
	setIfEmpty(&result.Events.SourceSystem, d.Events.SourceSystem)
	setIfEmpty(&result.Events.Contact, d.Events.Contact)

	return result
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.Logging.Level != "" && !contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("unknown logging.level %q (valid: debug, info, warn, error)", c.Logging.Level)
	}
	if c.Logging.Format != "" && !contains(validLogFormats, c.Logging.Format) {
		return fmt.Errorf("unknown logging.format %q (valid: console, json)", c.Logging.Format)
	}

	if c.ReadyDir != "" && c.RejectedDir != "" && filepath.Clean(c.ReadyDir) == filepath.Clean(c.RejectedDir) {
		return fmt.Errorf("ready_dir and rejected_dir must differ (both %q)", c.ReadyDir)
	}
	if c.IncomingDir != "" && c.WorkspaceDir != "" && filepath.Clean(c.IncomingDir) == filepath.Clean(c.WorkspaceDir) {
		return fmt.Errorf("incoming_dir and workspace_dir must differ (both %q)", c.IncomingDir)
	}

	return nil
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
