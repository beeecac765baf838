package capability

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/agentx-labs/capkit/internal/bundle"
	"github.com/agentx-labs/capkit/internal/logger"
	"github.com/agentx-labs/capkit/internal/state"
)

// StateStore records which capabilities are installed in a target.
// *state.Store implements it.
type StateStore interface {
	Has(name string) (bool, error)
	Get(name string) (state.Entry, bool, error)
	Add(name, version string) error
	Remove(name string) error
}

// Target is the destination of one lifecycle operation.
type Target struct {
	// Root is the repository root for project scope or the global root for
	// global scope.
	Root   string
	State  StateStore
	Bundle bundle.Resolver
	// Version is the running build's version, recorded for capabilities
	// that do not pin their own.
	Version string
	Log     *logrus.Entry
}

func (t *Target) log() *logrus.Entry {
	if t.Log == nil {
		return logger.L
	}
	return t.Log
}

func (t *Target) path(slashPath string) string {
	return filepath.Join(t.Root, filepath.FromSlash(slashPath))
}

func versionFor(c Capability, t *Target) string {
	if v, ok := c.(Versioned); ok && v.Version() != "" {
		return v.Version()
	}
	return t.Version
}
