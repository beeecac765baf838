// Package capability defines the contract shared by every installable unit
// capkit knows about and the reusable implementations of it.
//
// Skills, reminders and reviews are instances of Template, which derives all
// paths from a category and a name. Workflows place files at arbitrary paths
// under a repository root and implement the contract directly.
//
// Lifecycle operations never return Go errors. Every outcome, including
// failures, is a Result that callers can print.
package capability
