package datafile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/datafile"
	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

func writeData(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

var schema = []domain.SchemaColumn{
	domain.NewSchemaColumn("ID", "long", false),
	domain.NewSchemaColumn("NAME", "string", true),
}

func TestValidateFile_Clean(t *testing.T) {
	path := writeData(t, "FEED.U1.data", "ID;NAME\n1;Alice\n2;Bob\n")

	issues, err := datafile.New().ValidateFile(path, schema)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidateFile_UsesBaseName(t *testing.T) {
	path := writeData(t, "FEED.U1.data", "ID;NAME\nx;Alice\n")

	issues, err := datafile.New().ValidateFile(path, schema)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"FEED.U1.data, line 2: Value 'x' in column ID does not match type 'long'.",
	}, issues)
}

func TestValidateFile_CRLF(t *testing.T) {
	path := writeData(t, "FEED.U1.data", "ID;NAME\r\n1;Alice\r\n")

	issues, err := datafile.New().ValidateFile(path, schema)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidateFile_Missing(t *testing.T) {
	_, err := datafile.New().ValidateFile(filepath.Join(t.TempDir(), "nope.data"), schema)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"ID;NAME\n", 1},
		{"ID;NAME\n1;a\n2;b\n", 3},
		{"ID;NAME\n1;a\n2;b", 3},
		{"ID;NAME\n\n", 2},
	}

	v := datafile.New()
	for _, tt := range tests {
		n, err := v.CountLines(writeData(t, "A.U1.data", tt.content))
		require.NoError(t, err)
		assert.Equal(t, tt.want, n, "content %q", tt.content)
	}
}
