package installer

import (
	"context"
	"path"

	"github.com/agentx-labs/capkit/internal/capability"
	"github.com/agentx-labs/capkit/internal/logger"
	"github.com/agentx-labs/capkit/internal/manifest"
)

// Status summarizes one capability for listing.
type Status struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Scope       string `json:"scope"`
	// Version is the pinned version, or the one declared in the bundled
	// entry document.
	Version  string   `json:"version,omitempty"`
	Requires []string `json:"requires,omitempty"`
	// Applicable is false for project capabilities when no repository was
	// given; Installed is meaningless then.
	Applicable bool   `json:"applicable"`
	Installed  bool   `json:"installed"`
	Check      string `json:"installation_check"`
	Root       string `json:"root,omitempty"`
}

// requirer is implemented by capabilities gated on prerequisites.
type requirer interface {
	Requires() []capability.Prerequisite
}

// List reports every registered capability. Global capabilities are checked
// against the global root, project ones against repoRoot when given.
func (m *Manager) List(ctx context.Context, repoRoot string) ([]Status, error) {
	caps := m.registry.List()
	out := make([]Status, 0, len(caps))

	for _, c := range caps {
		s := Status{
			Name:        c.Name(),
			Description: c.Description(),
			Scope:       c.Scope().String(),
			Version:     m.bundledVersion(ctx, c),
			Check:       c.InstallationCheck(),
		}
		if r, ok := c.(requirer); ok {
			for _, p := range r.Requires() {
				s.Requires = append(s.Requires, p.Capability)
			}
		}
		if c.Scope() == capability.ScopeProject && repoRoot == "" {
			out = append(out, s)
			continue
		}

		t, err := m.target(ctx, c, repoRoot)
		if err != nil {
			return nil, err
		}
		s.Applicable = true
		s.Root = t.Root
		s.Installed = c.IsInstalled(t)
		out = append(out, s)
	}
	return out, nil
}

// bundledVersion returns the version a capability pins, falling back to the
// frontmatter of a template's entry document. It is empty when neither
// exists.
func (m *Manager) bundledVersion(ctx context.Context, c capability.Capability) string {
	if v, ok := c.(capability.Versioned); ok && v.Version() != "" {
		return v.Version()
	}
	tmpl, ok := c.(*capability.Template)
	if !ok {
		return ""
	}
	entry := manifest.EntryFile(string(tmpl.Type()))
	if entry == "" {
		return ""
	}
	root, err := m.resolver.Root(tmpl.Category())
	if err != nil {
		return ""
	}
	doc, err := manifest.ParseFS(root.FS, path.Join(tmpl.Name(), entry))
	if err != nil {
		logger.G(ctx).WithError(err).WithField("capability", c.Name()).Debug("reading entry document")
		return ""
	}
	return doc.Version
}
