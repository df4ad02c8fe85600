package e2e_test

import (
	"archive/tar"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "landingzone-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "landingzone")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/landingzone")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

// submission copies a fixture submission into a fresh temp dir, since
// validation writes into it.
func submission(t *testing.T, name string) string {
	t.Helper()
	src, err := filepath.Abs(filepath.Join("../../testdata/submissions", name))
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dst, 0755))
	entries, err := os.ReadDir(src)
	require.NoError(t, err)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(src, e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dst, e.Name()), data, 0644))
	}
	return dst
}

// workspace returns a config dir with logs kept inside it.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".landingzone.yaml"), []byte("logging:\n  level: warn\n"), 0644))
	return dir
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.Output()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

func validateJSON(t *testing.T, dir string, extra ...string) (*domain.ValidationReport, int) {
	t.Helper()
	args := append([]string{"validate", dir, "--json", "--config-dir", workspace(t)}, extra...)
	out, code := run(t, args...)

	var report domain.ValidationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	return &report, code
}

// --- Validate Tests ---

func TestE2E_ValidatePasses(t *testing.T) {
	dir := submission(t, "ACCTS_PASS")

	report, code := validateJSON(t, dir)
	assert.Equal(t, 0, code)
	assert.Equal(t, domain.StatusPassed, report.Status)
	assert.Empty(t, report.Issues)
	require.NotNil(t, report.Manifest)
	assert.Equal(t, "000123", report.Manifest.SequenceNumber)

	log, err := os.ReadFile(filepath.Join(dir, domain.ResultLogName))
	require.NoError(t, err)
	assert.Equal(t, "Validation PASSED.\n", string(log))
}

func TestE2E_ValidateMissingSchema(t *testing.T) {
	report, code := validateJSON(t, submission(t, "ACCTS_NOSCHEMA"))
	assert.Equal(t, 1, code)
	assert.Equal(t, domain.StatusFailed, report.Status)
	assert.Equal(t, []string{"schema.txt not found in submission."}, report.Messages())
}

func TestE2E_ValidateResetsControlFile(t *testing.T) {
	dir := submission(t, "ACCTS_CONTROL")

	report, code := validateJSON(t, dir)
	assert.Equal(t, 0, code)
	assert.Equal(t, domain.StatusPassed, report.Status)
	assert.True(t, report.Remediated)

	info, err := os.Stat(filepath.Join(dir, "ACCTS_CONTROL.control"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestE2E_ValidateNoFixKeepsControlFile(t *testing.T) {
	report, code := validateJSON(t, submission(t, "ACCTS_CONTROL"), "--no-fix")
	assert.Equal(t, 1, code)
	assert.Equal(t, []string{"Control file 'ACCTS_CONTROL.control' must be exactly 0 bytes."}, report.Messages())
}

func TestE2E_ValidateRecordCountMismatch(t *testing.T) {
	report, code := validateJSON(t, submission(t, "ACCTS_COUNT"))
	assert.Equal(t, 1, code)
	require.Len(t, report.Issues, 1)
	assert.Contains(t, report.Issues[0].Message, "expected 10, found 8")
}

// --- Run Test ---

func TestE2E_RunRoutesArchives(t *testing.T) {
	cfgDir := workspace(t)
	incoming := filepath.Join(cfgDir, "incoming")
	require.NoError(t, os.MkdirAll(incoming, 0755))
	packTar(t, submission(t, "ACCTS_PASS"), filepath.Join(incoming, "ACCTS_PASS.tar"))
	packTar(t, submission(t, "ACCTS_COUNT"), filepath.Join(incoming, "ACCTS_COUNT.tar"))

	out, code := run(t, "run", "--json", "--config-dir", cfgDir)
	require.Equal(t, 0, code, out)

	var summary domain.RunSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 1, summary.Count(domain.StatusPassed))
	assert.Equal(t, 1, summary.Count(domain.StatusFailed))

	assert.DirExists(t, filepath.Join(cfgDir, "ready_for_mft", "ACCTS_PASS"))
	assert.DirExists(t, filepath.Join(cfgDir, "rejected", "ACCTS_COUNT"))
	assert.FileExists(t, filepath.Join(cfgDir, "logs", domain.DefaultEventsFile))
}

func packTar(t *testing.T, dir, dest string) {
	t.Helper()
	f, err := os.Create(dest)
	require.NoError(t, err)
	defer f.Close()

	tw := tar.NewWriter(f)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: e.Name(), Mode: 0644, Size: int64(len(data)), Typeflag: tar.TypeReg}))
		_, err = tw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
}

// --- Version Test ---

func TestE2E_Version(t *testing.T) {
	out, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "landingzone")
}
