package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
	"github.com/tomciopaluch2000pl/landing-zone/internal/domain/rules"
)

// RemediateService applies the two fixed auto-fixes to a submission:
// resetting a non-empty control file and synthesising missing data file
// headers. It never consults the schema.
type RemediateService struct {
	scanner  domain.SubmissionScanner
	events   domain.EventSink
	recorder domain.Recorder
	logger   domain.Logger
}

func NewRemediateService(
	scanner domain.SubmissionScanner,
	events domain.EventSink,
	recorder domain.Recorder,
	logger domain.Logger,
) *RemediateService {
	return &RemediateService{scanner: scanner, events: events, recorder: recorder, logger: logger}
}

// Fix runs remediation on the submission in dir, or only plans it when
// dryRun is set.
func (s *RemediateService) Fix(ctx context.Context, dir string, dryRun bool) (*domain.FixPlan, error) {
	sub := domain.NewSubmission(dir)
	if _, err := s.scanner.Scan(sub); err != nil {
		return nil, fmt.Errorf("scanning submission: %w", err)
	}

	plan := &domain.FixPlan{Submission: sub, DryRun: dryRun}
	if dryRun {
		plan.Applied = s.Plan(sub)
	} else {
		plan.Applied = s.Remediate(ctx, sub)
	}
	return plan, nil
}

// Plan reports the fixes Remediate would apply without touching any file.
func (s *RemediateService) Plan(sub domain.Submission) []domain.AppliedFix {
	return s.identifyFixes(sub, s.logger.With(map[string]interface{}{"submission": sub.BaseName}))
}

// Remediate applies every identified fix in order: control reset first, then
// header synthesis per data file. A failing action is logged and skipped.
// It returns the fixes that were actually applied.
func (s *RemediateService) Remediate(ctx context.Context, sub domain.Submission) []domain.AppliedFix {
	log := s.logger.With(map[string]interface{}{"submission": sub.BaseName})

	var applied []domain.AppliedFix
	for _, fix := range s.identifyFixes(sub, log) {
		if ctx.Err() != nil {
			break
		}

		var err error
		switch fix.Type {
		case domain.FixControlReset:
			err = os.Truncate(fix.Path, 0)
		case domain.FixHeaderSynthesis:
			err = prependHeader(fix.Path)
		}
		if err != nil {
			log.WithError(err).Warn("auto-fix failed", map[string]interface{}{
				"action": fix.Type,
				"path":   fix.Path,
			})
			continue
		}

		log.Info("auto-fix applied", map[string]interface{}{
			"action": fix.Type,
			"detail": fix.Description,
		})
		s.recorder.RecordRemediation(fix.Type)
		if err := s.events.Emit(domain.Event{
			Name:       domain.EventAutofixApplied,
			Submission: sub.BaseName,
			Type:       fix.Type,
			Detail:     fix.Description,
		}); err != nil {
			log.WithError(err).Warn("emitting event failed", nil)
		}
		applied = append(applied, fix)
	}
	return applied
}

func (s *RemediateService) identifyFixes(sub domain.Submission, log domain.Logger) []domain.AppliedFix {
	inv, err := s.scanner.Scan(sub)
	if err != nil {
		log.WithError(err).Warn("cannot scan submission for auto-fix", nil)
		return nil
	}

	var fixes []domain.AppliedFix

	if inv.ControlExists && inv.ControlSize != 0 {
		fixes = append(fixes, domain.AppliedFix{
			Type:        domain.FixControlReset,
			Path:        sub.ControlPath(),
			Description: "Reset control file to 0 bytes",
		})
	}

	for _, path := range inv.DataFiles {
		first, ok, err := firstLine(path)
		if err != nil {
			log.WithError(err).Warn("cannot read data file for auto-fix", map[string]interface{}{"path": path})
			continue
		}
		if !ok || hasLetter(first) {
			continue
		}
		fixes = append(fixes, domain.AppliedFix{
			Type:        domain.FixHeaderSynthesis,
			Path:        path,
			Description: fmt.Sprintf("Header added to %s", filepath.Base(path)),
		})
	}

	return fixes
}

// SynthesizeHeader returns COL1;...;COLn for a row with n fields.
func SynthesizeHeader(row string) string {
	n := len(strings.Split(row, domain.FieldDelimiter))
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("COL%d", i+1)
	}
	return strings.Join(cols, domain.FieldDelimiter)
}

// hasLetter is the missing-header heuristic: a first line without any
// letter is taken to be data. A header made only of digits is therefore
// mistaken for data and gets a synthetic header on top.
func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func firstLine(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}
	lines := rules.SplitLines(string(data))
	if len(lines) == 0 {
		return "", false, nil
	}
	return lines[0], true, nil
}

func prependHeader(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lines := rules.SplitLines(string(data))
	if len(lines) == 0 || hasLetter(lines[0]) {
		return fmt.Errorf("%s no longer needs a header", filepath.Base(path))
	}
	header := SynthesizeHeader(strings.TrimRight(lines[0], "\r")) + "\n"
	return os.WriteFile(path, append([]byte(header), data...), info.Mode().Perm())
}
