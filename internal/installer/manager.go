package installer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/agentx-labs/capkit/internal/bundle"
	"github.com/agentx-labs/capkit/internal/capability"
	"github.com/agentx-labs/capkit/internal/logger"
	"github.com/agentx-labs/capkit/internal/registry"
	"github.com/agentx-labs/capkit/internal/state"
	"github.com/agentx-labs/capkit/internal/userdata"
)

// Manager installs and removes capabilities by name.
type Manager struct {
	registry   *registry.Registry
	resolver   bundle.Resolver
	globalRoot string
	version    string
}

// Option configures a Manager.
type Option func(*Manager)

// WithRegistry replaces the built-in registry.
func WithRegistry(r *registry.Registry) Option {
	return func(m *Manager) { m.registry = r }
}

// WithResolver replaces the detected bundle resolver.
func WithResolver(r bundle.Resolver) Option {
	return func(m *Manager) { m.resolver = r }
}

// WithGlobalRoot sets where globally scoped capabilities are installed.
func WithGlobalRoot(dir string) Option {
	return func(m *Manager) { m.globalRoot = dir }
}

// WithVersion sets the build version recorded for installed capabilities.
func WithVersion(v string) Option {
	return func(m *Manager) { m.version = v }
}

// New returns a Manager. Unset options default to the built-in registry,
// the detected bundle and ~/.capkit.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{version: "dev"}
	for _, opt := range opts {
		opt(m)
	}

	if m.registry == nil {
		r, err := registry.Default()
		if err != nil {
			return nil, errors.Wrap(err, "building capability registry")
		}
		m.registry = r
	}
	if m.resolver == nil {
		m.resolver = bundle.Detect()
	}
	if m.globalRoot == "" {
		root, err := userdata.GetGlobalRoot()
		if err != nil {
			return nil, err
		}
		m.globalRoot = root
	}
	return m, nil
}

// Registry returns the registry the manager resolves names against.
func (m *Manager) Registry() *registry.Registry { return m.registry }

// Resolver returns the bundle resolver in use.
func (m *Manager) Resolver() bundle.Resolver { return m.resolver }

// GlobalRoot returns the global install root.
func (m *Manager) GlobalRoot() string { return m.globalRoot }

// target builds the destination for c. Project scope needs an existing
// repository directory.
func (m *Manager) target(ctx context.Context, c capability.Capability, repoRoot string) (*capability.Target, error) {
	var root, stateDir string

	switch c.Scope() {
	case capability.ScopeGlobal:
		root = m.globalRoot
		stateDir = userdata.GlobalStateDir(root)
	default:
		if repoRoot == "" {
			return nil, errors.Wrapf(capability.ErrRepoRootRequired, "%s", c.Name())
		}
		abs, err := filepath.Abs(repoRoot)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving repository root %s", repoRoot)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, errors.Wrapf(err, "repository root %s", abs)
		}
		if !info.IsDir() {
			return nil, errors.Errorf("repository root %s is not a directory", abs)
		}
		root = abs
		stateDir = userdata.ProjectStateDir(root)
	}

	return &capability.Target{
		Root:    root,
		State:   state.New(stateDir),
		Bundle:  m.resolver,
		Version: m.version,
		Log: logger.G(ctx).WithFields(logrus.Fields{
			"scope":  c.Scope().String(),
			"bundle": m.resolver.Mode().String(),
		}),
	}, nil
}

func (m *Manager) lookup(ctx context.Context, name, repoRoot string) (capability.Capability, *capability.Target, error) {
	c, err := m.registry.Get(name)
	if err != nil {
		return nil, nil, err
	}
	t, err := m.target(ctx, c, repoRoot)
	if err != nil {
		return nil, nil, err
	}
	return c, t, nil
}

// Add installs the named capability. Only lookup and scope problems are
// returned as errors; install failures are reported in the Result.
func (m *Manager) Add(ctx context.Context, name, repoRoot string) (capability.Result, error) {
	c, t, err := m.lookup(ctx, name, repoRoot)
	if err != nil {
		return capability.Result{}, err
	}
	res := c.Install(t)
	logger.G(ctx).WithFields(logrus.Fields{
		"capability": name,
		"success":    res.Success,
	}).Info("add finished")
	return res, nil
}

// Remove uninstalls the named capability.
func (m *Manager) Remove(ctx context.Context, name, repoRoot string) (capability.Result, error) {
	c, t, err := m.lookup(ctx, name, repoRoot)
	if err != nil {
		return capability.Result{}, err
	}
	res := c.Uninstall(t)
	logger.G(ctx).WithFields(logrus.Fields{
		"capability": name,
		"success":    res.Success,
	}).Info("remove finished")
	return res, nil
}

// Status compares the named capability's installed files with the bundle.
func (m *Manager) Status(ctx context.Context, name, repoRoot string) (*capability.DriftReport, error) {
	c, t, err := m.lookup(ctx, name, repoRoot)
	if err != nil {
		return nil, err
	}
	report := capability.Drift(c, t)
	return &report, nil
}
