package domain

import "time"

// Event is one structured record for the monitoring event stream.
type Event struct {
	ID                string    `json:"id"`
	Name              string    `json:"event"`
	Submission        string    `json:"submission"`
	Type              string    `json:"type"`
	Detail            string    `json:"detail"`
	Timestamp         time.Time `json:"timestamp"`
	Critical          bool      `json:"critical"`
	RecommendedAction *string   `json:"recommended_action"`
	SourceSystem      string    `json:"source_system"`
	Contact           string    `json:"contact"`
}

// Event names and types emitted by the validator.
const (
	EventValidationPassed = "validation_passed"
	EventValidationFailed = "validation_failed"
	EventAutofixApplied   = "autofix_applied"
	EventTransferSent     = "mft_sent"

	EventTypeStructureCheck   = "structure_check"
	EventTypeSchemaValidation = "schema_validation"
	EventTypeTransfer         = "mft_transfer"
)
