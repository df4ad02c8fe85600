package events

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// JSONLSink implements domain.EventSink by appending one JSON object per
// line to a file that log shippers tail.
type JSONLSink struct {
	path         string
	sourceSystem string
	contact      string
	now          func() time.Time

	mu sync.Mutex
}

// New creates a sink for the given events configuration. Empty source
// system and contact fall back to the defaults.
func New(cfg domain.EventsConfig) *JSONLSink {
	s := &JSONLSink{
		path:         cfg.Path,
		sourceSystem: cfg.SourceSystem,
		contact:      cfg.Contact,
		now:          time.Now,
	}
	if s.sourceSystem == "" {
		s.sourceSystem = domain.DefaultSourceSystem
	}
	if s.contact == "" {
		s.contact = domain.DefaultContact
	}
	return s
}

// WithClock replaces the timestamp source.
func (s *JSONLSink) WithClock(now func() time.Time) *JSONLSink {
	s.now = now
	return s
}

// Emit stamps the event with an id, a UTC timestamp and the configured
// source and contact when those are unset, then appends it.
func (s *JSONLSink) Emit(e domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now().UTC()
	}
	if e.SourceSystem == "" {
		e.SourceSystem = s.sourceSystem
	}
	if e.Contact == "" {
		e.Contact = s.contact
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding event %s: %w", e.Name, err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads every event in the file. A missing file yields no events.
func Load(path string) ([]domain.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []domain.Event
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var e domain.Event
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		out = append(out, e)
	}
	return out, nil
}
