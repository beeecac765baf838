package capability

import (
	"fmt"
	"path"

	"github.com/agentx-labs/capkit/bundled"
	"github.com/agentx-labs/capkit/internal/userdata"
)

// The review host workflow must be present before any review can be
// installed; reviews are run by it.
const (
	ReviewHost     = "review-runner"
	ReviewHostPath = ".github/workflows/review-runner.yml"
)

// Template is a capability whose bundled content is one directory,
// <category>/<name>/, copied to the same relative path under the target
// root.
type Template struct {
	name         string
	description  string
	category     string
	scope        Scope
	artifactType ArtifactType
	settings
}

var _ Capability = (*Template)(nil)

// NewSkill returns a project-scoped skill installed under skills/<name>/.
func NewSkill(name, description string, opts ...Option) *Template {
	return newTemplate(name, description, bundled.Skills, ScopeProject, ArtifactSkill, opts)
}

// NewReminder returns a globally scoped reminder installed under
// reminders/<name>/ in the global root.
func NewReminder(name, description string, opts ...Option) *Template {
	return newTemplate(name, description, bundled.Reminders, ScopeGlobal, ArtifactReminder, opts)
}

// NewReview returns a project-scoped review installed under reviews/<name>/.
// Unless WithRequires is given, it requires the review host workflow.
func NewReview(name, description string, opts ...Option) *Template {
	t := newTemplate(name, description, bundled.Reviews, ScopeProject, ArtifactReview, opts)
	if len(t.requires) == 0 {
		t.requires = []Prerequisite{{Capability: ReviewHost, Path: ReviewHostPath}}
	}
	return t
}

func newTemplate(name, description, category string, scope Scope, typ ArtifactType, opts []Option) *Template {
	return &Template{
		name:         name,
		description:  description,
		category:     category,
		scope:        scope,
		artifactType: typ,
		settings:     applyOptions(opts),
	}
}

func (c *Template) Name() string        { return c.name }
func (c *Template) Description() string { return c.description }
func (c *Template) Scope() Scope        { return c.scope }

// Category returns the bundle category the template reads from.
func (c *Template) Category() string { return c.category }

// Type returns the managed artifact type of the variant.
func (c *Template) Type() ArtifactType { return c.artifactType }

// Version implements Versioned.
func (c *Template) Version() string { return c.version }

// Requires returns the prerequisites checked by Preflight.
func (c *Template) Requires() []Prerequisite { return c.requires }

func (c *Template) dir() string { return path.Join(c.category, c.name) }

func (c *Template) InstallationCheck() string {
	return fmt.Sprintf("%s/ exists and %s is recorded in %s", c.dir(), c.name, userdata.StateFile)
}

func (c *Template) Artifacts() []Artifact {
	return []Artifact{{Path: c.dir(), Source: c.name, Category: c.category, Kind: KindDir}}
}

func (c *Template) ManagedArtifacts() []ManagedArtifact {
	return []ManagedArtifact{{Name: c.name, Type: c.artifactType}}
}

func (c *Template) IsInstalled(t *Target) bool { return isInstalled(c, t) }

func (c *Template) Install(t *Target) Result { return install(c, t, string(c.artifactType)) }

func (c *Template) Uninstall(t *Target) Result { return uninstall(c, t) }

func (c *Template) Preflight(t *Target) *Result { return checkPrerequisites(c.name, t, c.requires) }
