package manifest

// Document holds the frontmatter fields of an entry document.
type Document struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Version     string   `yaml:"version,omitempty" json:"version,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Kind constants for the templated capability variants that carry an entry
// document.
const (
	KindSkill    = "skill"
	KindReminder = "reminder"
	KindReview   = "review"
)

// ValidKinds contains all kinds with an entry document.
var ValidKinds = []string{
	KindSkill,
	KindReminder,
	KindReview,
}

var entryFiles = map[string]string{
	KindSkill:    "SKILL.md",
	KindReminder: "REMINDER.md",
	KindReview:   "REVIEW.md",
}

// EntryFile returns the entry document file name for kind, or "" when the
// kind has none.
func EntryFile(kind string) string {
	return entryFiles[kind]
}
