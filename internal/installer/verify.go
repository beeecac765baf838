package installer

import (
	"context"
	"io/fs"

	"github.com/sirupsen/logrus"

	"github.com/agentx-labs/capkit/internal/capability"
	"github.com/agentx-labs/capkit/internal/logger"
	"github.com/agentx-labs/capkit/internal/manifest"
)

// Problem is a packaging defect found by Verify.
type Problem struct {
	Capability string `json:"capability"`
	Path       string `json:"path,omitempty"`
	Message    string `json:"message"`
}

// Verify checks that every registered capability can be installed from the
// active bundle: each declared source exists with the declared kind, and
// entry documents carry valid frontmatter.
func (m *Manager) Verify(ctx context.Context) []Problem {
	var problems []Problem
	log := logger.G(ctx).WithField("bundle", m.resolver.Mode().String())

	for _, c := range m.registry.List() {
		for _, a := range c.Artifacts() {
			root, err := m.resolver.Root(a.Category)
			if err != nil {
				problems = append(problems, Problem{Capability: c.Name(), Path: a.Category, Message: err.Error()})
				continue
			}

			info, err := fs.Stat(root.FS, a.Source)
			if err != nil {
				problems = append(problems, Problem{
					Capability: c.Name(),
					Path:       a.Category + "/" + a.Source,
					Message:    "bundled source missing",
				})
				continue
			}
			if info.IsDir() != (a.Kind == capability.KindDir) {
				problems = append(problems, Problem{
					Capability: c.Name(),
					Path:       a.Category + "/" + a.Source,
					Message:    "bundled source is not a " + a.Kind.String(),
				})
				continue
			}

			problems = append(problems, verifyEntry(c, a, root.FS)...)
		}
		log.WithField("capability", c.Name()).Debug("verified")
	}

	if len(problems) > 0 {
		log.WithFields(logrus.Fields{"problems": len(problems)}).Warn("bundle verification failed")
	}
	return problems
}

// verifyEntry validates the entry document of templated capabilities.
func verifyEntry(c capability.Capability, a capability.Artifact, fsys fs.FS) []Problem {
	tmpl, ok := c.(*capability.Template)
	if !ok {
		return nil
	}
	kind := string(tmpl.Type())
	entry := manifest.EntryFile(kind)
	if entry == "" {
		return nil
	}
	p := a.Category + "/" + a.Source + "/" + entry

	result, err := manifest.ValidateEntry(fsys, a.Source, kind, c.Name())
	if err != nil {
		return []Problem{{Capability: c.Name(), Path: p, Message: err.Error()}}
	}
	var out []Problem
	for _, issue := range result.Issues {
		out = append(out, Problem{Capability: c.Name(), Path: p, Message: issue.String()})
	}
	return out
}
