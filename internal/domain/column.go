package domain

// ColumnType is the closed set of value types a schema column can declare.
type ColumnType int

const (
	ColumnTypeUnknown ColumnType = iota
	ColumnTypeString
	ColumnTypeLong
	ColumnTypeDecimal
	ColumnTypeBoolean
	ColumnTypeDate
)

var columnTypeNames = map[ColumnType]string{
	ColumnTypeString:  "string",
	ColumnTypeLong:    "long",
	ColumnTypeDecimal: "decimal",
	ColumnTypeBoolean: "boolean",
	ColumnTypeDate:    "date",
}

// ParseColumnType maps a declared type name to its ColumnType. Names are
// matched exactly; anything unrecognised is ColumnTypeUnknown.
func ParseColumnType(name string) ColumnType {
	for t, n := range columnTypeNames {
		if n == name {
			return t
		}
	}
	return ColumnTypeUnknown
}

func (t ColumnType) String() string {
	if n, ok := columnTypeNames[t]; ok {
		return n
	}
	return "unknown"
}
