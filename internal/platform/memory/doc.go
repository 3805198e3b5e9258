// Package memory provides process-local implementations of the store
// interfaces. It backs the "memory" database driver and is used in tests.
// Data does not survive a restart.
package memory
