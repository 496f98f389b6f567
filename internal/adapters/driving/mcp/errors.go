// Package mcp provides an MCP (Model Context Protocol) server adapter for gradebook.
// It lets AI assistants add students and courses, record grades and read GPAs.
package mcp

import "errors"

// ErrMissingRecordService is returned when the record service is not provided.
var ErrMissingRecordService = errors.New("mcp: record service is required")
