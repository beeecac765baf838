package state

// CurrentVersion is the document format version written by this build.
const CurrentVersion = 1

// Entry records one installed capability.
type Entry struct {
	Name    string `yaml:"name" json:"name" jsonschema:"minLength=1"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
}

// File is the on-disk document.
type File struct {
	Version      int     `yaml:"version" json:"version" jsonschema:"enum=1"`
	Capabilities []Entry `yaml:"capabilities" json:"capabilities"`
}

func (f *File) index(name string) int {
	for i, e := range f.Capabilities {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// dedupe keeps the first entry recorded under each name. A hand-edited
// document may list a name twice.
func (f *File) dedupe() {
	seen := make(map[string]bool, len(f.Capabilities))
	kept := f.Capabilities[:0]
	for _, e := range f.Capabilities {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		kept = append(kept, e)
	}
	f.Capabilities = kept
}

// Names returns the recorded capability names in document order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Capabilities))
	for _, e := range f.Capabilities {
		names = append(names, e.Name)
	}
	return names
}
