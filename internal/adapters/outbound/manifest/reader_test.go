package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/manifest"
	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "FEED.audit.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRead_MetadataAndEntries(t *testing.T) {
	path := writeManifest(t, `<?xml version="1.0"?>
<Audit>
  <SubmissionBaseName>FEED</SubmissionBaseName>
  <SubmissionSequenceNumber>42</SubmissionSequenceNumber>
  <SubmissionVersion>2</SubmissionVersion>
  <Files>
    <File><FileName>FEED.U1.data</FileName><RecordCount>3</RecordCount></File>
    <File><FileName> FEED.U2.data </FileName><RecordCount> 10 </RecordCount></File>
  </Files>
</Audit>`)

	m, err := manifest.New().Read(path)
	require.NoError(t, err)

	assert.Equal(t, "FEED", m.BaseName)
	assert.Equal(t, "42", m.SequenceNumber)
	assert.Equal(t, "2", m.Version)
	require.Len(t, m.Entries, 2)
	assert.Equal(t, domain.ManifestEntry{FileName: "FEED.U1.data", ExpectedRecordCount: 3}, m.Entries[0])
	assert.Equal(t, domain.ManifestEntry{FileName: "FEED.U2.data", ExpectedRecordCount: 10}, m.Entries[1])
}

func TestRead_FileAtAnyDepth(t *testing.T) {
	path := writeManifest(t, `<Audit>
  <File><FileName>A.U1.data</FileName><RecordCount>1</RecordCount></File>
  <Section><Nested><File><FileName>A.U2.data</FileName><RecordCount>2</RecordCount></File></Nested></Section>
</Audit>`)

	m, err := manifest.New().Read(path)
	require.NoError(t, err)
	require.Len(t, m.Entries, 2)
	assert.Equal(t, "A.U2.data", m.Entries[1].FileName)
	assert.Equal(t, 2, m.Entries[1].ExpectedRecordCount)
}

func TestRead_MissingRecordCountIsZero(t *testing.T) {
	path := writeManifest(t, `<Audit>
  <File><FileName>A.U1.data</FileName></File>
</Audit>`)

	m, err := manifest.New().Read(path)
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, 0, m.Entries[0].ExpectedRecordCount)
}

func TestRead_FirstMetadataValueWins(t *testing.T) {
	path := writeManifest(t, `<Audit>
  <SubmissionBaseName>FIRST</SubmissionBaseName>
  <SubmissionBaseName>SECOND</SubmissionBaseName>
  <SubmissionVersion></SubmissionVersion>
  <SubmissionVersion>3</SubmissionVersion>
</Audit>`)

	m, err := manifest.New().Read(path)
	require.NoError(t, err)
	assert.Equal(t, "FIRST", m.BaseName)
	assert.Equal(t, "", m.Version)
}

func TestRead_RejectsContentOutsideRoot(t *testing.T) {
	path := writeManifest(t, `<Audit><File><FileName>A.U1.data</FileName><RecordCount>1</RecordCount></File></Audit>junk`)

	_, err := manifest.New().Read(path)
	var malformed *domain.MalformedDocumentError
	assert.ErrorAs(t, err, &malformed)
}

func TestRead_NoEntries(t *testing.T) {
	path := writeManifest(t, `<Audit><SubmissionBaseName>X</SubmissionBaseName></Audit>`)

	m, err := manifest.New().Read(path)
	require.NoError(t, err)
	assert.Empty(t, m.Entries)
	assert.Equal(t, "X", m.BaseName)
}

func TestRead_InvalidRecordCount(t *testing.T) {
	for _, count := range []string{"abc", "-1", "1.5", "", "  "} {
		t.Run(count, func(t *testing.T) {
			path := writeManifest(t, `<Audit><File><FileName>A.U1.data</FileName><RecordCount>`+count+`</RecordCount></File></Audit>`)

			_, err := manifest.New().Read(path)
			require.Error(t, err)
			var malformed *domain.MalformedDocumentError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestRead_NotFound(t *testing.T) {
	_, err := manifest.New().Read(filepath.Join(t.TempDir(), "missing.audit.xml"))
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCheckWellFormed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		ok      bool
	}{
		{"valid", `<Audit><File/></Audit>`, true},
		{"with declaration", `<?xml version="1.0"?><Audit/>`, true},
		{"unclosed", `<Audit><File></Audit>`, false},
		{"empty", ``, false},
		{"text only", `not xml at all`, false},
		{"surrounding whitespace", "\n  <Audit/>\n\n", true},
		{"byte order mark", "\ufeff<?xml version=\"1.0\"?>\n<Audit/>", true},
		{"comment after root", `<Audit/><!-- end -->`, true},
		{"two roots", `<Audit></Audit><Audit></Audit>`, false},
		{"leading junk", `junk<Audit></Audit>`, false},
		{"trailing junk", `<Audit></Audit>trailing`, false},
		{"trailing element after text root", "<Audit>x</Audit>\n<Extra/>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manifest.New().CheckWellFormed(writeManifest(t, tt.content))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
