package schemafile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// columnsSchema describes the accepted shape of schema.txt.
var columnsSchema = map[string]interface{}{
	"type": "array",
	"items": map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"name", "type"},
		"properties": map[string]interface{}{
			"name":     map[string]interface{}{"type": "string"},
			"type":     map[string]interface{}{"type": "string"},
			"nullable": map[string]interface{}{"type": "boolean"},
		},
	},
}

type rawColumn struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable *bool  `json:"nullable"`
}

// JSONLoader implements domain.SchemaLoader for JSON column definitions.
type JSONLoader struct {
	schema *gojsonschema.Schema
}

// New compiles the shape schema once. It panics only if the embedded schema
// itself is invalid.
func New() *JSONLoader {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(columnsSchema))
	if err != nil {
		panic(fmt.Sprintf("schemafile: invalid columns schema: %v", err))
	}
	return &JSONLoader{schema: s}
}

// Load reads and checks the column definitions at path. Columns without a
// nullable flag are nullable.
func (l *JSONLoader) Load(path string) ([]domain.SchemaColumn, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.NotFoundError{Path: path}
		}
		return nil, err
	}
	return l.Parse(path, data)
}

// Parse checks raw schema content. path is only used in errors.
func (l *JSONLoader) Parse(path string, data []byte) ([]domain.SchemaColumn, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &domain.MalformedDocumentError{Path: path, Err: err}
	}

	result, err := l.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, &domain.MalformedDocumentError{Path: path, Err: err}
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, &domain.MalformedDocumentError{
			Path: path,
			Err:  fmt.Errorf("invalid column definitions: %s", strings.Join(errs, "; ")),
		}
	}

	var raw []rawColumn
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &domain.MalformedDocumentError{Path: path, Err: err}
	}

	columns := make([]domain.SchemaColumn, len(raw))
	for i, c := range raw {
		nullable := c.Nullable == nil || *c.Nullable
		columns[i] = domain.NewSchemaColumn(c.Name, c.Type, nullable)
	}
	return columns, nil
}
