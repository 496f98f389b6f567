// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RecordStore: line-per-record persistence, one store per entity kind
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - RecordWatcher: change notifications from the store. Without it,
//     watching for external edits is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
