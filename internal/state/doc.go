// Package state persists which capabilities are installed in a target.
//
// Each target keeps one YAML document, installed.yaml, in its state
// directory. Every read-modify-write cycle holds an exclusive lock file and
// replaces the document atomically, so concurrent capkit processes cannot
// lose each other's updates.
package state
