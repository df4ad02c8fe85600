package domain

import "fmt"

// NotFoundError reports that a required document is absent.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s", e.Path)
}

// MalformedDocumentError reports that a document exists but cannot be parsed.
type MalformedDocumentError struct {
	Path string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document %s: %v", e.Path, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }
