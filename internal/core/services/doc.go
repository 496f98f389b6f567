// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// RecordService is the operations layer: it owns the in-memory
// collection of students and courses and rewrites the affected
// store after each change. SettingsService maps the configuration
// store onto domain.AppSettings.
package services
