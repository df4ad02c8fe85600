package rules

import (
	"fmt"
	"strings"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// SplitLines splits content into physical lines. A trailing newline does not
// start an extra empty line, so "a\nb\n" and "a\nb" both give two lines.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ValidateLines checks the lines of the data file named fileName against
// schema and returns every finding in order. The first line is the header.
//
// A header whose column count differs from the schema yields exactly one
// finding and no row checks. Any other finding is accumulated without
// stopping.
func ValidateLines(fileName string, lines []string, schema []domain.SchemaColumn) []string {
	var issues []string

	if len(lines) == 0 {
		return []string{fmt.Sprintf("%s: File is empty.", fileName)}
	}

	headers := strings.Split(strings.TrimSpace(lines[0]), domain.FieldDelimiter)
	if len(headers) != len(schema) {
		return []string{fmt.Sprintf("%s: Header column count does not match schema.", fileName)}
	}

	for i, col := range schema {
		actual := strings.TrimSpace(headers[i])
		if !strings.EqualFold(col.Name, actual) {
			issues = append(issues, fmt.Sprintf("%s: Column %d mismatch: expected '%s', found '%s'.",
				fileName, i+1, col.Name, actual))
		}
	}

	for idx, line := range lines[1:] {
		lineNo := idx + 2 // physical line number; the header is line 1
		values := strings.Split(strings.TrimSpace(line), domain.FieldDelimiter)
		if len(values) != len(schema) {
			issues = append(issues, fmt.Sprintf("%s, line %d: Wrong number of values.", fileName, lineNo))
			continue
		}

		for i, raw := range values {
			col := schema[i]
			value := strings.Trim(raw, `"`)
			switch {
			case value == "" && !col.Nullable:
				issues = append(issues, fmt.Sprintf("%s, line %d: Column %s is not nullable but is empty.",
					fileName, lineNo, col.Name))
			case value != "" && !ValidateType(value, col.Type):
				issues = append(issues, fmt.Sprintf("%s, line %d: Value '%s' in column %s does not match type '%s'.",
					fileName, lineNo, value, col.Name, col.TypeName))
			}
		}
	}

	return issues
}
