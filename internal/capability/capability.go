package capability

import "fmt"

// Scope determines which root a capability installs into.
type Scope int

const (
	// ScopeProject capabilities install into a repository and need its root.
	ScopeProject Scope = iota
	// ScopeGlobal capabilities install into the user's global root.
	ScopeGlobal
)

// String returns the lowercase scope name.
func (s Scope) String() string {
	switch s {
	case ScopeProject:
		return "project"
	case ScopeGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// ArtifactType classifies a managed artifact.
type ArtifactType string

const (
	ArtifactSkill    ArtifactType = "skill"
	ArtifactReminder ArtifactType = "reminder"
	ArtifactReview   ArtifactType = "review"
	ArtifactWorkflow ArtifactType = "workflow"
	ArtifactScript   ArtifactType = "script"
	ArtifactDoc      ArtifactType = "doc"
)

// ManagedArtifact is an ownership declaration. A (Name, Type) pair belongs to
// exactly one capability across the registry. Templates use their own name,
// which is also their directory under the category; workflows use the
// install path of each declared file or directory.
type ManagedArtifact struct {
	Name string
	Type ArtifactType
}

func (m ManagedArtifact) String() string {
	return string(m.Type) + "/" + m.Name
}

// ArtifactKind distinguishes single files from directory trees.
type ArtifactKind int

const (
	KindFile ArtifactKind = iota
	KindDir
)

func (k ArtifactKind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Artifact is one installed path. Path is slash-separated and relative to the
// target root; Source is relative to the bundle category root.
type Artifact struct {
	Path     string
	Source   string
	Category string
	Kind     ArtifactKind
}

// Result is the outcome of a lifecycle operation.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Succeeded builds a successful Result.
func Succeeded(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Failed builds a failed Result.
func Failed(format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// Capability is an installable unit.
//
// Implementations are constructed once, hold no per-call state and are safe
// to reuse across targets.
type Capability interface {
	Name() string
	Description() string
	Scope() Scope
	// InstallationCheck describes, for humans, what IsInstalled tests.
	InstallationCheck() string
	Artifacts() []Artifact
	ManagedArtifacts() []ManagedArtifact

	// IsInstalled reports whether the capability's files are present and it
	// is recorded in the target's state. Any disagreement reports false.
	IsInstalled(t *Target) bool
	Install(t *Target) Result
	Uninstall(t *Target) Result
	// Preflight returns a failed Result when something blocks installation,
	// nil otherwise.
	Preflight(t *Target) *Result
}

// Versioned is implemented by capabilities that pin their own version. Others
// are recorded with the running build's version.
type Versioned interface {
	Version() string
}
