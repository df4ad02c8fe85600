package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// FileScanner implements domain.SubmissionScanner on the local filesystem.
// Only the top level of the submission directory is inspected.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

func (s *FileScanner) Scan(sub domain.Submission) (*domain.Inventory, error) {
	info, err := os.Stat(sub.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.NotFoundError{Path: sub.Dir}
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("submission path %s is not a directory", sub.Dir)
	}

	inv := &domain.Inventory{Submission: sub}

	inv.ManifestExists = isFile(sub.ManifestPath())
	inv.SchemaExists = isFile(sub.SchemaPath())

	if fi, err := os.Stat(sub.ControlPath()); err == nil && !fi.IsDir() {
		inv.ControlExists = true
		inv.ControlSize = fi.Size()
	}

	matches, err := filepath.Glob(sub.DataFilePattern())
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if sub.IsDataFileName(filepath.Base(m)) && isFile(m) {
			inv.DataFiles = append(inv.DataFiles, m)
		}
	}
	sort.Strings(inv.DataFiles)

	return inv, nil
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
