// Package registry holds the set of capabilities capkit can install.
//
// The set is an explicit list in builtin.go, never discovered from the
// filesystem. Construction validates that names and artifact ownership are
// unique, so a conflicting list fails before any capability is used.
package registry
