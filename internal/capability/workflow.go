package capability

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/capkit/bundled"
	"github.com/agentx-labs/capkit/internal/userdata"
)

// Workflow installs files at arbitrary paths under a repository root. The
// workflows bundle category mirrors the repository layout, so each artifact's
// source path equals its install path.
//
// Workflows may place files into a directory other components share (for
// example docs/agents/). Uninstall removes the declared paths only and never
// the directory around them.
type Workflow struct {
	name        string
	description string
	artifacts   []Artifact
	settings
}

var _ Capability = (*Workflow)(nil)

// File declares a single workflow file.
func File(p string) Artifact {
	return Artifact{Path: p, Source: p, Category: bundled.Workflows, Kind: KindFile}
}

// Dir declares a workflow directory copied as a whole.
func Dir(p string) Artifact {
	return Artifact{Path: p, Source: p, Category: bundled.Workflows, Kind: KindDir}
}

// NewWorkflow returns a project-scoped workflow owning the given artifacts.
func NewWorkflow(name, description string, artifacts []Artifact, opts ...Option) *Workflow {
	return &Workflow{
		name:        name,
		description: description,
		artifacts:   artifacts,
		settings:    applyOptions(opts),
	}
}

func (w *Workflow) Name() string        { return w.name }
func (w *Workflow) Description() string { return w.description }
func (w *Workflow) Scope() Scope        { return ScopeProject }

// Version implements Versioned.
func (w *Workflow) Version() string { return w.version }

// Requires returns the prerequisites checked by Preflight.
func (w *Workflow) Requires() []Prerequisite { return w.requires }

func (w *Workflow) InstallationCheck() string {
	paths := make([]string, 0, len(w.artifacts))
	for _, a := range w.artifacts {
		p := a.Path
		if a.Kind == KindDir {
			p += "/"
		}
		paths = append(paths, p)
	}
	return fmt.Sprintf("%s exist and %s is recorded in %s", strings.Join(paths, ", "), w.name, userdata.StateFile)
}

func (w *Workflow) Artifacts() []Artifact {
	out := make([]Artifact, len(w.artifacts))
	copy(out, w.artifacts)
	return out
}

func (w *Workflow) ManagedArtifacts() []ManagedArtifact {
	out := make([]ManagedArtifact, 0, len(w.artifacts))
	for _, a := range w.artifacts {
		out = append(out, ManagedArtifact{Name: a.Path, Type: classify(a.Path)})
	}
	return out
}

// classify maps a repository path to the kind of artifact living there.
func classify(p string) ArtifactType {
	switch {
	case strings.HasPrefix(p, ".github/scripts/"):
		return ArtifactScript
	case strings.HasPrefix(p, "docs/"):
		return ArtifactDoc
	default:
		return ArtifactWorkflow
	}
}

func (w *Workflow) IsInstalled(t *Target) bool { return isInstalled(w, t) }

func (w *Workflow) Install(t *Target) Result { return install(w, t, string(ArtifactWorkflow)) }

func (w *Workflow) Uninstall(t *Target) Result { return uninstall(w, t) }

func (w *Workflow) Preflight(t *Target) *Result { return checkPrerequisites(w.name, t, w.requires) }
