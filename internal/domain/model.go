package domain

import "time"

// Submission is one unpacked feed delivery. Its base name is the name of the
// directory it was unpacked into.
type Submission struct {
	BaseName string `json:"base_name"`
	Dir      string `json:"dir"`
}

// ManifestEntry is one file declared in a submission's audit manifest.
type ManifestEntry struct {
	FileName            string `json:"file_name"`
	ExpectedRecordCount int    `json:"expected_record_count"`
}

// Manifest holds the metadata and declared files of an audit manifest.
type Manifest struct {
	BaseName       string          `json:"base_name"`
	SequenceNumber string          `json:"sequence_number"`
	Version        string          `json:"version"`
	Entries        []ManifestEntry `json:"entries"`
}

// SchemaColumn is one column definition from schema.txt. Column order is
// significant and must match the data file's column order. TypeName keeps
// the declared spelling so that unknown types can still be reported.
type SchemaColumn struct {
	Name     string     `json:"name"`
	TypeName string     `json:"type"`
	Type     ColumnType `json:"-"`
	Nullable bool       `json:"nullable"`
}

// NewSchemaColumn builds a column from its declared type name.
func NewSchemaColumn(name, typeName string, nullable bool) SchemaColumn {
	return SchemaColumn{
		Name:     name,
		TypeName: typeName,
		Type:     ParseColumnType(typeName),
		Nullable: nullable,
	}
}

// Issue categories group findings by the check that produced them. They are
// informational; any issue at all fails the submission.
const (
	CategoryStructure = "structure"
	CategoryControl   = "control"
	CategoryManifest  = "manifest"
	CategorySchema    = "schema"
)

// Issue is a single validation finding.
type Issue struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

func (i Issue) String() string { return i.Message }

const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// ValidationReport is the outcome of validating one submission, including
// the optional remediation pass.
type ValidationReport struct {
	Submission Submission    `json:"submission"`
	Status     string        `json:"status"`
	Issues     []Issue       `json:"issues"`
	Passes     int           `json:"passes"`
	Remediated bool          `json:"remediated"`
	Fixes      []AppliedFix  `json:"fixes,omitempty"`
	Manifest   *Manifest     `json:"manifest,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
}

// Passed reports whether the final pass produced no issues.
func (r *ValidationReport) Passed() bool { return r.Status == StatusPassed }

// Messages returns the issue messages in report order.
func (r *ValidationReport) Messages() []string {
	out := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		out[i] = issue.Message
	}
	return out
}

// SubmissionOutcome records what the batch runner did with one archive.
type SubmissionOutcome struct {
	Archive     string `json:"archive"`
	Submission  string `json:"submission,omitempty"`
	Status      string `json:"status"`
	Destination string `json:"destination,omitempty"`
	IssueCount  int    `json:"issue_count"`
	Transferred bool   `json:"transferred"`
	Error       string `json:"error,omitempty"`
}

// StatusUnpackFailed marks an archive that could not be extracted.
const StatusUnpackFailed = "unpack_failed"

// RunSummary aggregates the outcomes of one batch run over the incoming
// directory.
type RunSummary struct {
	RunID    string              `json:"run_id"`
	Started  time.Time           `json:"started"`
	Outcomes []SubmissionOutcome `json:"outcomes"`
}

// Count returns how many outcomes have the given status.
func (s RunSummary) Count(status string) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
