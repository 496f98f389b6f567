// Package tui provides the interactive gradebook menu.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/gradebook/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Records is the operations layer behind every menu entry.
	Records driving.RecordService
}

// NewPorts creates a new Ports aggregate.
func NewPorts(records driving.RecordService) *Ports {
	return &Ports{Records: records}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Records == nil {
		return ErrMissingRecordService
	}
	return nil
}
