// Package manifest parses and validates the YAML frontmatter carried by a
// capability's entry document (SKILL.md, REMINDER.md, REVIEW.md).
//
// Frontmatter is extracted with goldmark-meta and validated against an
// embedded JSON schema. Validation problems are reported as issues rather
// than errors so callers can aggregate them across a whole bundle.
package manifest
