package mcp

import (
	"github.com/custodia-labs/gradebook/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Records is the operations layer behind every tool and resource.
	Records driving.RecordService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Records == nil {
		return ErrMissingRecordService
	}
	return nil
}
