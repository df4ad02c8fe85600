package domain

// Remediation action types.
const (
	FixControlReset    = "control_file_fix"
	FixHeaderSynthesis = "header_fix"
)

// AppliedFix describes one remediation action, applied or planned.
type AppliedFix struct {
	Type        string `json:"type"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// FixPlan is the result of a standalone remediation run.
type FixPlan struct {
	Submission Submission   `json:"submission"`
	DryRun     bool         `json:"dry_run"`
	Applied    []AppliedFix `json:"applied"`
}
