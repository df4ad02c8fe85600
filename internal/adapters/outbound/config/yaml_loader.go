package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// FileName is the configuration file looked up in the config directory.
const FileName = ".landingzone.yaml"

const envFileName = ".env"

// YAMLLoader implements domain.ConfigLoader by reading .landingzone.yaml and
// applying LZ_* environment overrides.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .landingzone.yaml from dir. A missing file is not an error:
// defaults and environment overrides still apply. A .env file in dir is
// loaded first without replacing variables already set.
func (l *YAMLLoader) Load(dir string) (domain.Config, error) {
	if err := loadEnvFile(dir); err != nil {
		return domain.Config{}, err
	}

	var cfg domain.Config
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", FileName, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return domain.Config{}, err
	}

	if err := applyEnv(&cfg); err != nil {
		return domain.Config{}, err
	}

	// Validate before merging so typos in user input are caught.
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return cfg.WithDefaults(), nil
}

func loadEnvFile(dir string) error {
	path := filepath.Join(dir, envFileName)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

var stringOverrides = []struct {
	key string
	dst func(*domain.Config) *string
}{
	{"LZ_INCOMING_DIR", func(c *domain.Config) *string { return &c.IncomingDir }},
	{"LZ_WORKSPACE_DIR", func(c *domain.Config) *string { return &c.WorkspaceDir }},
	{"LZ_READY_DIR", func(c *domain.Config) *string { return &c.ReadyDir }},
	{"LZ_REJECTED_DIR", func(c *domain.Config) *string { return &c.RejectedDir }},
	{"LZ_LOG_DIR", func(c *domain.Config) *string { return &c.LogDir }},
	{"LZ_LOG_LEVEL", func(c *domain.Config) *string { return &c.Logging.Level }},
	{"LZ_LOG_FORMAT", func(c *domain.Config) *string { return &c.Logging.Format }},
	{"LZ_EVENTS_PATH", func(c *domain.Config) *string { return &c.Events.Path }},
	{"LZ_SOURCE_SYSTEM", func(c *domain.Config) *string { return &c.Events.SourceSystem }},
	{"LZ_CONTACT", func(c *domain.Config) *string { return &c.Events.Contact }},
	{"LZ_METRICS_TEXTFILE", func(c *domain.Config) *string { return &c.Metrics.Textfile }},
}

// applyEnv overlays non-empty LZ_* variables on cfg.
func applyEnv(cfg *domain.Config) error {
	for _, o := range stringOverrides {
		if val := os.Getenv(o.key); val != "" {
			*o.dst(cfg) = val
		}
	}

	if val := os.Getenv("LZ_AUTO_FIX"); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid LZ_AUTO_FIX %q: %w", val, err)
		}
		cfg.AutoFix = &b
	}
	return nil
}

// Template returns the commented configuration written by init.
func Template() string {
	d := domain.DefaultConfig()
	return fmt.Sprintf(`# Landing zone configuration
# Every key is optional; LZ_* environment variables override this file.

incoming_dir: %s
workspace_dir: %s
ready_dir: %s
rejected_dir: %s
log_dir: %s

# Remediate failing submissions once and re-validate.
auto_fix: %t

logging:
  level: %s    # debug, info, warn, error
  format: %s # console, json

events:
  source_system: %q
  contact: %q
  # path: ./logs/%s

# metrics:
#   textfile: /var/lib/node_exporter/textfile/landingzone.prom
`,
		d.IncomingDir, d.WorkspaceDir, d.ReadyDir, d.RejectedDir, d.LogDir,
		d.AutoFixEnabled(),
		d.Logging.Level, d.Logging.Format,
		d.Events.SourceSystem, d.Events.Contact, domain.DefaultEventsFile,
	)
}
