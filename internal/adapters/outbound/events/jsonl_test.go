package events_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomciopaluch2000pl/landing-zone/internal/adapters/outbound/events"
	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestJSONLSink_EmitAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "events.jsonl")
	sink := events.New(domain.EventsConfig{Path: path}).WithClock(fixedClock)

	require.NoError(t, sink.Emit(domain.Event{
		Name:       domain.EventValidationPassed,
		Submission: "FEED",
		Type:       domain.EventTypeStructureCheck,
		Detail:     "All checks passed",
	}))
	action := "Check feed_analysis.log in rejected folder for full list of errors."
	require.NoError(t, sink.Emit(domain.Event{
		Name:              domain.EventValidationFailed,
		Submission:        "FEED",
		Type:              domain.EventTypeSchemaValidation,
		Detail:            "1 issues found: x",
		Critical:          true,
		RecommendedAction: &action,
	}))

	got, err := events.Load(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, domain.EventValidationPassed, got[0].Name)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, fixedClock(), got[0].Timestamp)
	assert.Equal(t, domain.DefaultSourceSystem, got[0].SourceSystem)
	assert.Equal(t, domain.DefaultContact, got[0].Contact)
	assert.Nil(t, got[0].RecommendedAction)

	assert.True(t, got[1].Critical)
	require.NotNil(t, got[1].RecommendedAction)
	assert.Equal(t, action, *got[1].RecommendedAction)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestJSONLSink_OneObjectPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	sink := events.New(domain.EventsConfig{Path: path, SourceSystem: "test", Contact: "ops@example.com"})

	for i := 0; i < 3; i++ {
		require.NoError(t, sink.Emit(domain.Event{Name: domain.EventTransferSent, Submission: "S"}))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Contains(t, line, `"event":"mft_sent"`)
		assert.Contains(t, line, `"source_system":"test"`)
		assert.Contains(t, line, `"contact":"ops@example.com"`)
		assert.Contains(t, line, `"recommended_action":null`)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	got, err := events.Load(filepath.Join(t.TempDir(), "none.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
