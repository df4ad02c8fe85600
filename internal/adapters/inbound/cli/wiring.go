package cli

import (
	"fmt"
	"path/filepath"

	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/archive"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/config"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/datafile"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/events"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/logger"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/manifest"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/metrics"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/resultlog"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/scanner"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/schemafile"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/transfer"
	"github.com/tomciopaluch2000pl/landing-zone/internal/application"
	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// app holds the services of one command invocation.
type app struct {
	cfg       domain.Config
	logger    domain.Logger
	events    *events.JSONLSink
	metrics   *metrics.Recorder
	remediate *application.RemediateService
	validate  *application.ValidateService

	closeLog func()
}

// newApp loads the configuration from configDir and wires the services.
// autoFix overrides the configured auto_fix when non-nil. Callers must
// call close.
func newApp(configDir string, autoFix *bool) (*app, error) {
	absDir, err := filepath.Abs(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	cfg, err := config.New().Load(absDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg = resolvePaths(cfg, absDir)
	if autoFix != nil {
		cfg.AutoFix = autoFix
	}

	log, closeLog, err := logger.New(cfg.Logging, cfg.AppLogPath())
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	a := &app{
		cfg:      cfg,
		logger:   log,
		events:   events.New(cfg.Events),
		metrics:  metrics.New(),
		closeLog: closeLog,
	}

	sc := scanner.New()
	a.remediate = application.NewRemediateService(sc, a.events, a.metrics, log)
	a.validate = application.NewValidateService(
		sc,
		manifest.New(),
		schemafile.New(),
		datafile.New(),
		a.remediate,
		a.events,
		resultlog.New(),
		a.metrics,
		log,
		cfg.AutoFixEnabled(),
	)
	return a, nil
}

func (a *app) pipeline() *application.PipelineService {
	return application.NewPipelineService(
		archive.New(a.cfg.WorkspaceDir),
		a.validate,
		transfer.NewSimulator(a.events, a.logger),
		a.logger,
		a.cfg,
	)
}

// close flushes the metrics textfile, when configured, and the logger.
func (a *app) close() {
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		a.logger.WithError(err).Warn("writing metrics textfile", map[string]interface{}{
			"path": a.cfg.Metrics.Textfile,
		})
	}
	a.closeLog()
}

// resolvePaths makes relative directories in cfg relative to base.
func resolvePaths(cfg domain.Config, base string) domain.Config {
	for _, p := range []*string{
		&cfg.IncomingDir, &cfg.WorkspaceDir, &cfg.ReadyDir, &cfg.RejectedDir,
		&cfg.LogDir, &cfg.Events.Path, &cfg.Metrics.Textfile,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	return cfg
}
