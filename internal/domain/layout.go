package domain

import (
	"path/filepath"
	"strings"
)

// File naming convention of a submission relative to its base name B:
// B.audit.xml, B.control, B.U*.data and a shared schema.txt.
const (
	ManifestSuffix = ".audit.xml"
	ControlSuffix  = ".control"
	DataPrefix     = ".U"
	DataSuffix     = ".data"
	SchemaFileName = "schema.txt"
	ResultLogName  = "feed_analysis.log"

	// FieldDelimiter separates columns in data files.
	FieldDelimiter = ";"
)

// RequiredSuffixes lists the per-submission documents that must exist.
var RequiredSuffixes = []string{ManifestSuffix, ControlSuffix}

// NewSubmission derives a submission from its directory.
func NewSubmission(dir string) Submission {
	return Submission{BaseName: filepath.Base(dir), Dir: dir}
}

func (s Submission) ManifestPath() string {
	return filepath.Join(s.Dir, s.BaseName+ManifestSuffix)
}

func (s Submission) ControlPath() string {
	return filepath.Join(s.Dir, s.BaseName+ControlSuffix)
}

func (s Submission) SchemaPath() string {
	return filepath.Join(s.Dir, SchemaFileName)
}

func (s Submission) ResultLogPath() string {
	return filepath.Join(s.Dir, ResultLogName)
}

// DataFilePattern returns the glob matching the submission's data files.
// Glob metacharacters in the directory and base name are escaped.
func (s Submission) DataFilePattern() string {
	return escapeGlob(s.Dir) + string(filepath.Separator) + escapeGlob(s.BaseName) + DataPrefix + "*" + DataSuffix
}

// IsDataFileName reports whether name follows the B.U*.data convention.
func (s Submission) IsDataFileName(name string) bool {
	prefix := s.BaseName + DataPrefix
	return strings.HasPrefix(name, prefix) &&
		strings.HasSuffix(name, DataSuffix) &&
		len(name) >= len(prefix)+len(DataSuffix)
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
