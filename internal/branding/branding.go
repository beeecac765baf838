// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded into the binary; forks change the CLI name,
// dot-directory and environment prefix there without touching code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	StateDir    string `yaml:"state_dir"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "capkit",
			DisplayName: "capkit",
			Description: "Install and track optional capabilities in your projects",
			HomeDir:     ".capkit",
			EnvPrefix:   "CAPKIT",
			GoModule:    "github.com/agentx-labs/capkit",
			StateDir:    ".capkit",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "capkit").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".capkit").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CAPKIT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path.
func GoModule() string { load(); return defaults.GoModule }

// StateDir returns the project-local hidden directory holding capkit state
// (e.g., ".capkit" inside a repository).
func StateDir() string { load(); return defaults.StateDir }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "CAPKIT_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
