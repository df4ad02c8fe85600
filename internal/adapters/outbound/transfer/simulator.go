package transfer

import (
	"context"
	"path/filepath"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// Simulator implements domain.Transferrer without contacting any remote
// system. It logs the upload and emits an mft_sent event.
type Simulator struct {
	events domain.EventSink
	logger domain.Logger
}

// NewSimulator creates a Simulator reporting through events and logger.
func NewSimulator(events domain.EventSink, logger domain.Logger) *Simulator {
	return &Simulator{events: events, logger: logger}
}

func (s *Simulator) Send(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name := filepath.Base(dir)
	s.logger.Info("simulating MFT upload", map[string]interface{}{
		"submission": name,
		"dir":        dir,
	})

	return s.events.Emit(domain.Event{
		Name:       domain.EventTransferSent,
		Submission: name,
		Type:       domain.EventTypeTransfer,
		Detail:     "Simulated successful MFT transfer",
	})
}
