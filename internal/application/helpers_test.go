package application

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/datafile"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/logger"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/manifest"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/metrics"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/resultlog"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/scanner"
	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/schemafile"
	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

const testSchema = `[
  {"name": "ID", "type": "long", "nullable": false},
  {"name": "NAME", "type": "string"},
  {"name": "AMOUNT", "type": "decimal"}
]`

// memorySink records emitted events.
type memorySink struct {
	mu     sync.Mutex
	events []domain.Event
}

func (m *memorySink) Emit(e domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *memorySink) names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.Name
	}
	return out
}

// stuckRemediator claims a fix on every call without changing anything.
type stuckRemediator struct{ calls int }

func (r *stuckRemediator) Remediate(_ context.Context, sub domain.Submission) []domain.AppliedFix {
	r.calls++
	return []domain.AppliedFix{{Type: domain.FixControlReset, Path: sub.ControlPath(), Description: "pretend"}}
}

type fixture struct {
	sink       *memorySink
	recorder   *metrics.Recorder
	remediate  *RemediateService
	validate   *ValidateService
	logger     domain.Logger
	schemaLoad *schemafile.JSONLoader
}

func newFixture(t *testing.T, autoFix bool) *fixture {
	t.Helper()
	f := &fixture{
		sink:       &memorySink{},
		recorder:   metrics.New(),
		logger:     logger.NewTestLogger(t),
		schemaLoad: schemafile.New(),
	}
	sc := scanner.New()
	f.remediate = NewRemediateService(sc, f.sink, f.recorder, f.logger)
	f.validate = NewValidateService(
		sc, manifest.New(), f.schemaLoad, datafile.New(),
		f.remediate, f.sink, resultlog.New(), f.recorder, f.logger, autoFix,
	)
	return f
}

func (f *fixture) withRemediator(r domain.Remediator, autoFix bool) *ValidateService {
	return NewValidateService(
		scanner.New(), manifest.New(), f.schemaLoad, datafile.New(),
		r, f.sink, resultlog.New(), f.recorder, f.logger, autoFix,
	)
}

// writeSubmission creates dir/name with the given files. Keys are file
// names relative to the submission directory.
func writeSubmission(t *testing.T, root, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for fn, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fn), []byte(content), 0644))
	}
	return dir
}

func auditXML(base string, entries ...string) string {
	xml := "<?xml version=\"1.0\"?>\n<Audit>\n  <SubmissionBaseName>" + base + "</SubmissionBaseName>\n" +
		"  <SubmissionSequenceNumber>1</SubmissionSequenceNumber>\n  <SubmissionVersion>1</SubmissionVersion>\n  <Files>\n"
	for i := 0; i+1 < len(entries); i += 2 {
		xml += "    <File><FileName>" + entries[i] + "</FileName><RecordCount>" + entries[i+1] + "</RecordCount></File>\n"
	}
	return xml + "  </Files>\n</Audit>\n"
}

// validSubmission returns the files of a submission that passes every check.
func validSubmission(base string) map[string]string {
	return map[string]string{
		base + ".audit.xml": auditXML(base, base+".U1.data", "2"),
		base + ".control":   "",
		base + ".U1.data":   "ID;NAME;AMOUNT\n1;Alice;10,50\n2;\"Bob\";\n",
		"schema.txt":        testSchema,
	}
}
