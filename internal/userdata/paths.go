package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/capkit/internal/branding"
)

// StateFile is the name of the installed-capabilities document kept in every
// state directory.
const StateFile = "installed.yaml"

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// GetGlobalRoot returns the content root for globally scoped capabilities.
// It checks the CAPKIT_GLOBAL_ROOT environment variable first,
// then falls back to ~/.capkit.
func GetGlobalRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("GLOBAL_ROOT")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// ProjectStateDir returns the directory holding capkit state inside a
// repository, e.g. <repo>/.capkit.
func ProjectStateDir(repoRoot string) string {
	return filepath.Join(repoRoot, branding.StateDir())
}

// GlobalStateDir returns the state directory for a global root. The global
// root is itself capkit's home, so state lives directly inside it.
func GlobalStateDir(globalRoot string) string {
	return globalRoot
}

// StatePath returns the installed-capabilities document inside stateDir.
func StatePath(stateDir string) string {
	return filepath.Join(stateDir, StateFile)
}
