package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// archiveExt is the suffix of submission archives in the incoming directory.
const archiveExt = ".tar"

// SubmissionValidator validates one unpacked submission directory.
type SubmissionValidator interface {
	Validate(ctx context.Context, dir string) (*domain.ValidationReport, error)
}

// PipelineService processes every archive in the incoming directory:
// extract, validate, route to ready or rejected, then transfer on success.
// Archives are handled one at a time in name order.
type PipelineService struct {
	extractor domain.Extractor
	validator SubmissionValidator
	transfer  domain.Transferrer
	logger    domain.Logger

	incomingDir string
	readyDir    string
	rejectedDir string
}

func NewPipelineService(
	extractor domain.Extractor,
	validator SubmissionValidator,
	transfer domain.Transferrer,
	logger domain.Logger,
	cfg domain.Config,
) *PipelineService {
	return &PipelineService{
		extractor: extractor, validator: validator, transfer: transfer, logger: logger,
		incomingDir: cfg.IncomingDir, readyDir: cfg.ReadyDir, rejectedDir: cfg.RejectedDir,
	}
}

// Run processes the incoming directory once. Per-archive failures are
// recorded in the summary and never stop the run; only a missing incoming
// directory, unusable output directories or ctx cancellation return an error.
func (s *PipelineService) Run(ctx context.Context) (*domain.RunSummary, error) {
	summary := &domain.RunSummary{RunID: uuid.NewString(), Started: time.Now().UTC()}
	log := s.logger.With(map[string]interface{}{"run_id": summary.RunID})

	for _, dir := range []string{s.readyDir, s.rejectedDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	archives, err := s.listArchives()
	if err != nil {
		return nil, err
	}
	if len(archives) == 0 {
		log.Info("no .tar files found in incoming directory", map[string]interface{}{"dir": s.incomingDir})
		return summary, nil
	}

	for _, path := range archives {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Outcomes = append(summary.Outcomes, s.process(ctx, path, log))
	}

	log.Info("run complete", map[string]interface{}{
		"passed":         summary.Count(domain.StatusPassed),
		"failed":         summary.Count(domain.StatusFailed),
		"unpack_failed":  summary.Count(domain.StatusUnpackFailed),
		"archives_total": len(summary.Outcomes),
	})
	return summary, nil
}

func (s *PipelineService) listArchives() ([]string, error) {
	entries, err := os.ReadDir(s.incomingDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("incoming directory %q does not exist", s.incomingDir)
		}
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), archiveExt) {
			continue
		}
		out = append(out, filepath.Join(s.incomingDir, e.Name()))
	}
	return out, nil
}

func (s *PipelineService) process(ctx context.Context, archivePath string, runLog domain.Logger) domain.SubmissionOutcome {
	outcome := domain.SubmissionOutcome{Archive: filepath.Base(archivePath)}
	log := runLog.With(map[string]interface{}{"archive": outcome.Archive})
	log.Info("processing archive", nil)

	dir, err := s.extractor.Extract(archivePath)
	if err != nil {
		log.WithError(err).Error("unpacking failed", nil)
		outcome.Status = domain.StatusUnpackFailed
		outcome.Error = err.Error()
		return outcome
	}
	outcome.Submission = filepath.Base(dir)

	report, err := s.validator.Validate(ctx, dir)
	if err != nil {
		log.WithError(err).Error("validation could not run", nil)
		outcome.Status = domain.StatusFailed
		outcome.Error = err.Error()
	} else {
		outcome.Status = report.Status
		outcome.IssueCount = len(report.Issues)
	}

	target := s.rejectedDir
	if outcome.Status == domain.StatusPassed {
		target = s.readyDir
	}
	dest, err := move(dir, target)
	if err != nil {
		log.WithError(err).Error("routing submission failed", map[string]interface{}{"target": target})
		if outcome.Error == "" {
			outcome.Error = err.Error()
		}
		return outcome
	}
	outcome.Destination = dest

	if outcome.Status == domain.StatusPassed {
		if err := s.transfer.Send(ctx, dest); err != nil {
			log.WithError(err).Error("transfer failed", nil)
			outcome.Error = err.Error()
		} else {
			outcome.Transferred = true
		}
	}
	return outcome
}

// move relocates dir into targetDir, replacing a previous delivery of the
// same submission.
func move(dir, targetDir string) (string, error) {
	dest := filepath.Join(targetDir, filepath.Base(dir))
	if err := os.RemoveAll(dest); err != nil {
		return "", err
	}
	if err := os.Rename(dir, dest); err != nil {
		return "", err
	}
	return dest, nil
}
