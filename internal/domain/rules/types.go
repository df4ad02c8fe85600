// Package rules holds the fixed validation rules applied to data file
// contents: per-value type conformance and header/row checks against a
// schema. Everything here is pure; file access lives in adapters.
package rules

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// datePrefix matches YYYY-MM-DD at the start of a value only. Anything after
// the first ten characters (a time component or otherwise) is accepted.
var datePrefix = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}`)

var typeValidators = map[domain.ColumnType]func(string) bool{
	domain.ColumnTypeString:  validString,
	domain.ColumnTypeLong:    validLong,
	domain.ColumnTypeDecimal: validDecimal,
	domain.ColumnTypeBoolean: validBoolean,
	domain.ColumnTypeDate:    validDate,
}

// ValidateType reports whether value conforms to t. Unknown types never
// conform.
func ValidateType(value string, t domain.ColumnType) bool {
	fn, ok := typeValidators[t]
	if !ok {
		return false
	}
	return fn(value)
}

func validString(string) bool { return true }

func validLong(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}

func validDecimal(v string) bool {
	v = strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
	if hasHexPrefix(v) {
		return false
	}
	_, err := strconv.ParseFloat(v, 64)
	if err == nil {
		return true
	}
	// 1e999 is syntactically a float; only the magnitude is out of range.
	return errors.Is(err, strconv.ErrRange)
}

// hasHexPrefix reports a 0x mantissa, which ParseFloat would accept as a
// hexadecimal float.
func hasHexPrefix(v string) bool {
	v = strings.TrimLeft(v, "+-")
	return len(v) >= 2 && v[0] == '0' && (v[1] == 'x' || v[1] == 'X')
}

func validBoolean(v string) bool {
	switch strings.ToLower(v) {
	case "true", "false", "1", "0":
		return true
	}
	return false
}

func validDate(v string) bool {
	return datePrefix.MatchString(v)
}
