// Package memory provides in-memory implementations of driven port interfaces.
// They are used in tests and by the "memory" storage backend.
package memory
