package bundle

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"

	"github.com/agentx-labs/capkit/bundled"
	"github.com/agentx-labs/capkit/internal/branding"
)

// devMarker marks a directory as a source checkout rather than an install
// prefix that happens to contain a bundled/ directory.
const devMarker = "go.mod"

type markers struct {
	Home string `env:"HOME"`
}

var (
	detectOnce sync.Once
	detected   Resolver
)

// Detect returns the resolver for the running process. The environment and
// executable location are inspected once and the answer is reused.
func Detect() Resolver {
	detectOnce.Do(func() {
		exe, err := os.Executable()
		if err == nil {
			if resolved, rerr := filepath.EvalSymlinks(exe); rerr == nil {
				exe = resolved
			}
		}
		mode, checkout := detect(env.ToMap(os.Environ()), exe, os.Stat)
		detected = New(mode, checkout)
	})
	return detected
}

// New returns the resolver for mode. checkout is ignored in packaged mode.
func New(mode Mode, checkout string) Resolver {
	if mode == ModeCheckout {
		return NewDirResolver(checkout)
	}
	return NewFSResolver(bundled.FS)
}

// detect decides the mode from the given environment, executable path and
// stat function. It has no side effects.
//
// Checkout mode applies when CAPKIT_HOME names a directory containing
// bundled/, or when the executable sits in (or one level below) a
// directory containing both bundled/ and go.mod. Everything else is
// packaged.
func detect(environ map[string]string, exePath string, stat func(string) (fs.FileInfo, error)) (Mode, string) {
	var m markers
	if err := env.ParseWithOptions(&m, env.Options{
		Prefix:      branding.EnvPrefix() + "_",
		Environment: environ,
	}); err == nil && m.Home != "" {
		if isDir(stat, filepath.Join(m.Home, BundledDir)) {
			return ModeCheckout, m.Home
		}
	}

	if exePath == "" {
		return ModePackaged, ""
	}
	exeDir := filepath.Dir(exePath)
	for _, dir := range []string{exeDir, filepath.Dir(exeDir)} {
		if isDir(stat, filepath.Join(dir, BundledDir)) && exists(stat, filepath.Join(dir, devMarker)) {
			return ModeCheckout, dir
		}
	}
	return ModePackaged, ""
}

func isDir(stat func(string) (fs.FileInfo, error), p string) bool {
	info, err := stat(p)
	return err == nil && info.IsDir()
}

func exists(stat func(string) (fs.FileInfo, error), p string) bool {
	_, err := stat(p)
	return err == nil
}

