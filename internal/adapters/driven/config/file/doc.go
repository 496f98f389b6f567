// Package file provides a file-based implementation of driven.ConfigStore.
//
// Settings live in config.toml inside the gradebook home directory
// (~/.gradebook unless overridden). Keys are exposed in dot notation,
// so the table
//
//	[storage]
//	backend = "sqlite"
//
// is read and written as "storage.backend".
package file
