package registry

import (
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/agentx-labs/capkit/internal/capability"
)

// Registry is an immutable, validated set of capabilities.
type Registry struct {
	caps   []capability.Capability
	byName map[string]capability.Capability
	owners map[capability.ManagedArtifact]string
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry of built-in capabilities. It is built once
// per process.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = New(builtin()...)
	})
	return defaultRegistry, defaultErr
}

// New validates caps and returns a registry over them. Names must be
// non-empty and unique; each managed artifact and each install path may be
// claimed by one capability only.
func New(caps ...capability.Capability) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]capability.Capability, len(caps)),
		owners: make(map[capability.ManagedArtifact]string),
	}

	type claim struct {
		scope capability.Scope
		path  string
		owner string
	}
	var paths []claim

	for _, c := range caps {
		name := c.Name()
		if strings.TrimSpace(name) == "" {
			return nil, errors.New("capability with empty name")
		}
		if _, dup := r.byName[name]; dup {
			return nil, errors.Errorf("duplicate capability name %q", name)
		}
		r.byName[name] = c

		for _, m := range c.ManagedArtifacts() {
			if first, taken := r.owners[m]; taken {
				return nil, &capability.OwnershipConflictError{Artifact: m.String(), First: first, Second: name}
			}
			r.owners[m] = name
		}

		for _, a := range c.Artifacts() {
			p := path.Clean(a.Path)
			for _, other := range paths {
				if other.scope == c.Scope() && overlaps(other.path, p) {
					return nil, &capability.OwnershipConflictError{Artifact: p, First: other.owner, Second: name}
				}
			}
			paths = append(paths, claim{scope: c.Scope(), path: p, owner: name})
		}

		r.caps = append(r.caps, c)
	}

	sort.Slice(r.caps, func(i, j int) bool { return r.caps[i].Name() < r.caps[j].Name() })
	return r, nil
}

// overlaps reports whether one path equals or contains the other.
func overlaps(a, b string) bool {
	return a == b || strings.HasPrefix(a, b+"/") || strings.HasPrefix(b, a+"/")
}

// Get returns the capability called name.
func (r *Registry) Get(name string) (capability.Capability, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, errors.Wrapf(capability.ErrNotFound, "%q", name)
	}
	return c, nil
}

// List returns every capability sorted by name.
func (r *Registry) List() []capability.Capability {
	out := make([]capability.Capability, len(r.caps))
	copy(out, r.caps)
	return out
}

// Names returns every capability name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, len(r.caps))
	for i, c := range r.caps {
		names[i] = c.Name()
	}
	return names
}

// ManagedArtifacts maps every managed artifact to the capability owning it.
func (r *Registry) ManagedArtifacts() map[capability.ManagedArtifact]string {
	out := make(map[capability.ManagedArtifact]string, len(r.owners))
	for k, v := range r.owners {
		out[k] = v
	}
	return out
}
