package datafile

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
	"github.com/tomciopaluch2000pl/landing-zone/internal/domain/rules"
)

// Validator implements domain.DataFileValidator on the local filesystem.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateFile reads the data file at path and checks it against schema.
// Findings are prefixed with the file's base name.
func (v *Validator) ValidateFile(path string, schema []domain.SchemaColumn) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	return rules.ValidateLines(filepath.Base(path), lines, schema), nil
}

// CountLines returns the number of physical lines, header included. A final
// line without a newline still counts.
func (v *Validator) CountLines(path string) (int, error) {
	lines, err := readLines(path)
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.NotFoundError{Path: path}
		}
		return nil, err
	}
	return rules.SplitLines(string(data)), nil
}
