// Package bundled holds the capability content shipped with capkit.
//
// The directory tree next to this file is the single source of truth for
// both operating modes: a development checkout reads it straight from disk,
// a packaged binary reads the copy embedded below.
package bundled

import "embed"

// FS is the bundled content, rooted at the category directories
// (skills/, reminders/, reviews/, workflows/).
//
//go:embed all:skills all:reminders all:reviews all:workflows
var FS embed.FS

// Content categories present in FS.
const (
	Skills    = "skills"
	Reminders = "reminders"
	Reviews   = "reviews"
	Workflows = "workflows"
)
