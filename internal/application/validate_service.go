package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// maxPasses bounds the check/remediate loop: one pass, at most one
// remediation, and one re-check.
const maxPasses = 2

// failedAction is the recommended action attached to failure events.
const failedAction = "Check feed_analysis.log in rejected folder for full list of errors."

// ValidateService runs the structural, manifest and schema checks over a
// submission, remediating once when allowed.
type ValidateService struct {
	scanner    domain.SubmissionScanner
	manifests  domain.ManifestReader
	schemas    domain.SchemaLoader
	data       domain.DataFileValidator
	remediator domain.Remediator
	events     domain.EventSink
	results    domain.ResultLog
	recorder   domain.Recorder
	logger     domain.Logger
	autoFix    bool
}

// NewValidateService creates a new ValidateService with all required dependencies.
func NewValidateService(
	scanner domain.SubmissionScanner,
	manifests domain.ManifestReader,
	schemas domain.SchemaLoader,
	data domain.DataFileValidator,
	remediator domain.Remediator,
	events domain.EventSink,
	results domain.ResultLog,
	recorder domain.Recorder,
	logger domain.Logger,
	autoFix bool,
) *ValidateService {
	return &ValidateService{
		scanner: scanner, manifests: manifests, schemas: schemas, data: data,
		remediator: remediator, events: events, results: results,
		recorder: recorder, logger: logger, autoFix: autoFix,
	}
}

// Validate checks the submission in dir and returns the final verdict. The
// result log is written and a verdict event emitted whatever the outcome.
// An error is returned only when dir cannot be inspected at all or ctx is
// done.
func (s *ValidateService) Validate(ctx context.Context, dir string) (*domain.ValidationReport, error) {
	start := time.Now()
	sub := domain.NewSubmission(dir)
	log := s.logger.With(map[string]interface{}{"submission": sub.BaseName})

	report := &domain.ValidationReport{Submission: sub}
	remediationTried := false

	for report.Passes < maxPasses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		report.Passes++
		issues, manifest, err := s.check(sub, log)
		if err != nil {
			return nil, fmt.Errorf("checking submission %s: %w", sub.BaseName, err)
		}
		report.Issues = issues
		report.Manifest = manifest

		if len(issues) == 0 || !s.autoFix || remediationTried {
			break
		}

		remediationTried = true
		fixes := s.remediator.Remediate(ctx, sub)
		if len(fixes) == 0 {
			break
		}
		report.Remediated = true
		report.Fixes = fixes
		log.Info("auto-fix applied, retrying validation", map[string]interface{}{"fixes": len(fixes)})
	}

	report.Status = domain.StatusPassed
	if len(report.Issues) > 0 {
		report.Status = domain.StatusFailed
	}
	report.Duration = time.Since(start)

	s.finish(report, log)
	return report, nil
}

// ValidateDataFile checks a single data file against a schema document.
func (s *ValidateService) ValidateDataFile(dataPath, schemaPath string) ([]string, error) {
	columns, err := s.schemas.Load(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	return s.data.ValidateFile(dataPath, columns)
}

// check runs one validation pass and returns its issues in check order.
func (s *ValidateService) check(sub domain.Submission, log domain.Logger) ([]domain.Issue, *domain.Manifest, error) {
	inv, err := s.scanner.Scan(sub)
	if err != nil {
		return nil, nil, err
	}

	var issues []domain.Issue
	add := func(category, format string, args ...interface{}) {
		issues = append(issues, domain.Issue{Category: category, Message: fmt.Sprintf(format, args...)})
	}

	present := map[string]bool{
		domain.ManifestSuffix: inv.ManifestExists,
		domain.ControlSuffix:  inv.ControlExists,
	}
	for _, suffix := range domain.RequiredSuffixes {
		if !present[suffix] {
			add(domain.CategoryStructure, "Missing required file with extension '%s' matching base name.", suffix)
		}
	}
	if len(inv.DataFiles) == 0 {
		add(domain.CategoryStructure, "No data files (.U*.data) found.")
	}

	if inv.ControlExists && inv.ControlSize != 0 {
		add(domain.CategoryControl, "Control file '%s' must be exactly 0 bytes.", filepath.Base(sub.ControlPath()))
	}

	if inv.ManifestExists {
		if err := s.manifests.CheckWellFormed(sub.ManifestPath()); err != nil {
			log.Debug("manifest parse failed", map[string]interface{}{"error": err.Error()})
			add(domain.CategoryManifest, "Audit XML '%s' is not well-formed.", filepath.Base(sub.ManifestPath()))
		}
	}

	var manifest *domain.Manifest
	if inv.ManifestExists && len(issues) == 0 {
		var crossIssues []domain.Issue
		manifest, crossIssues = s.crossCheck(sub)
		issues = append(issues, crossIssues...)
		if manifest != nil && manifest.BaseName != "" && manifest.BaseName != sub.BaseName {
			log.Warn("manifest base name differs from submission directory", map[string]interface{}{
				"manifest_base_name": manifest.BaseName,
			})
		}
	}

	if inv.SchemaExists {
		issues = append(issues, s.checkSchema(sub, inv.DataFiles)...)
	} else {
		add(domain.CategorySchema, "schema.txt not found in submission.")
	}

	return issues, manifest, nil
}

// crossCheck compares the manifest's declared files against the directory.
// Any failure to read the manifest or a listed file ends the cross-check
// with a single issue.
func (s *ValidateService) crossCheck(sub domain.Submission) (*domain.Manifest, []domain.Issue) {
	parseFailure := func(err error) domain.Issue {
		return domain.Issue{
			Category: domain.CategoryManifest,
			Message:  fmt.Sprintf("Error parsing audit.xml contents: %v", cause(err)),
		}
	}

	manifest, err := s.manifests.Read(sub.ManifestPath())
	if err != nil {
		return nil, []domain.Issue{parseFailure(err)}
	}

	var issues []domain.Issue
	for _, entry := range manifest.Entries {
		lines, err := s.data.CountLines(filepath.Join(sub.Dir, entry.FileName))
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			issues = append(issues, domain.Issue{
				Category: domain.CategoryManifest,
				Message:  fmt.Sprintf("File listed in audit.xml not found: %s", entry.FileName),
			})
			continue
		}
		if err != nil {
			return manifest, append(issues, parseFailure(err))
		}

		// The header line is not a record.
		found := lines - 1
		if found != entry.ExpectedRecordCount {
			issues = append(issues, domain.Issue{
				Category: domain.CategoryManifest,
				Message: fmt.Sprintf("Record count mismatch in %s: expected %d, found %d",
					entry.FileName, entry.ExpectedRecordCount, found),
			})
		}
	}
	return manifest, issues
}

// checkSchema validates every data file against schema.txt. A data file
// that cannot be read is reported and the remaining files are still checked.
func (s *ValidateService) checkSchema(sub domain.Submission, dataFiles []string) []domain.Issue {
	schemaFailure := func(err error) domain.Issue {
		return domain.Issue{
			Category: domain.CategorySchema,
			Message:  fmt.Sprintf("Error validating schema: %v", cause(err)),
		}
	}

	columns, err := s.schemas.Load(sub.SchemaPath())
	if err != nil {
		return []domain.Issue{schemaFailure(err)}
	}

	var issues []domain.Issue
	for _, path := range dataFiles {
		found, err := s.data.ValidateFile(path, columns)
		if err != nil {
			issues = append(issues, schemaFailure(err))
			continue
		}
		for _, msg := range found {
			issues = append(issues, domain.Issue{Category: domain.CategorySchema, Message: msg})
		}
	}
	return issues
}

// finish persists and reports the verdict. Failures here are logged only.
func (s *ValidateService) finish(report *domain.ValidationReport, log domain.Logger) {
	if err := s.results.Write(report); err != nil {
		log.WithError(err).Error("writing result log failed", nil)
	}

	fields := map[string]interface{}{
		"passes":     report.Passes,
		"remediated": report.Remediated,
	}
	if report.Manifest != nil {
		fields["sequence_number"] = report.Manifest.SequenceNumber
		fields["version"] = report.Manifest.Version
	}

	var event domain.Event
	if report.Passed() {
		log.Info("validation passed", fields)
		event = domain.Event{
			Name:       domain.EventValidationPassed,
			Submission: report.Submission.BaseName,
			Type:       domain.EventTypeStructureCheck,
			Detail:     "All checks passed",
		}
	} else {
		for _, issue := range report.Issues {
			log.Warn(issue.Message, map[string]interface{}{"category": issue.Category})
		}
		fields["issues"] = len(report.Issues)
		log.Warn("validation failed", fields)

		action := failedAction
		event = domain.Event{
			Name:              domain.EventValidationFailed,
			Submission:        report.Submission.BaseName,
			Type:              domain.EventTypeSchemaValidation,
			Detail:            failureDetail(report.Messages()),
			Critical:          true,
			RecommendedAction: &action,
		}
	}

	if err := s.events.Emit(event); err != nil {
		log.WithError(err).Warn("emitting event failed", nil)
	}
	s.recorder.ObserveValidation(report, report.Duration)
}

func failureDetail(messages []string) string {
	head := messages
	if len(head) > 3 {
		head = head[:3]
	}
	return fmt.Sprintf("%d issues found: %s", len(messages), strings.Join(head, "; "))
}

// cause strips the domain error wrapper so issue text names the parse
// problem rather than the document path.
func cause(err error) error {
	var malformed *domain.MalformedDocumentError
	if errors.As(err, &malformed) && malformed.Err != nil {
		return malformed.Err
	}
	return err
}
