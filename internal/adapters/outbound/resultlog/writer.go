package resultlog

import (
	"os"
	"strings"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// FileWriter implements domain.ResultLog by writing feed_analysis.log into
// the submission directory, replacing any earlier result.
type FileWriter struct{}

func New() *FileWriter {
	return &FileWriter{}
}

func (w *FileWriter) Write(report *domain.ValidationReport) error {
	return os.WriteFile(report.Submission.ResultLogPath(), []byte(Render(report)), 0644)
}

// Render formats a report the way it is persisted.
func Render(report *domain.ValidationReport) string {
	if len(report.Issues) == 0 {
		return "Validation PASSED.\n"
	}
	var b strings.Builder
	b.WriteString("Validation FAILED:\n")
	for _, issue := range report.Issues {
		b.WriteString("- ")
		b.WriteString(issue.Message)
		b.WriteString("\n")
	}
	return b.String()
}
