package domain

import (
	"context"
	"time"
)

// SubmissionScanner takes an inventory of a submission directory.
type SubmissionScanner interface {
	Scan(sub Submission) (*Inventory, error)
}

// Inventory holds what a scan found in a submission directory.
type Inventory struct {
	Submission     Submission `json:"submission"`
	ManifestExists bool       `json:"manifest_exists"`
	ControlExists  bool       `json:"control_exists"`
	ControlSize    int64      `json:"control_size"`
	SchemaExists   bool       `json:"schema_exists"`
	DataFiles      []string   `json:"data_files"`
}

// ManifestReader parses audit manifests.
type ManifestReader interface {
	CheckWellFormed(path string) error
	Read(path string) (*Manifest, error)
}

// SchemaLoader parses column-definition schemas.
type SchemaLoader interface {
	Load(path string) ([]SchemaColumn, error)
}

// DataFileValidator checks a data file against a schema and returns one
// message per finding. A non-nil error means the file could not be read.
type DataFileValidator interface {
	ValidateFile(path string, schema []SchemaColumn) ([]string, error)
	CountLines(path string) (int, error)
}

// Remediator applies best-effort fixes to a submission.
type Remediator interface {
	Remediate(ctx context.Context, sub Submission) []AppliedFix
}

// EventSink receives structured monitoring events.
type EventSink interface {
	Emit(e Event) error
}

// ResultLog persists the per-submission validation result.
type ResultLog interface {
	Write(report *ValidationReport) error
}

// Extractor unpacks a submission archive and returns the extraction
// directory.
type Extractor interface {
	Extract(archivePath string) (string, error)
}

// Transferrer delivers a validated submission downstream.
type Transferrer interface {
	Send(ctx context.Context, dir string) error
}

// Recorder collects run metrics.
type Recorder interface {
	ObserveValidation(report *ValidationReport, elapsed time.Duration)
	RecordRemediation(fixType string)
}

// ConfigLoader loads the landing zone configuration.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// Logger is the structured logging port used by services.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
	WithError(err error) Logger
}
