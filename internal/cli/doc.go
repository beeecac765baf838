// Package cli defines the Cobra command tree for the capkit CLI. Each file
// in this package builds one top-level command (add, remove, list, etc.).
// Command implementations delegate to internal/installer for business logic
// and only handle flag parsing, I/O formatting, and exit status.
package cli
