//go:build integration

package integration_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/capkit/bundled"
	"github.com/agentx-labs/capkit/internal/bundle"
	"github.com/agentx-labs/capkit/internal/installer"
)

// checkoutRoot is the repository root relative to this package.
const checkoutRoot = "../.."

// testEnv holds paths to isolated test directories.
type testEnv struct {
	GlobalRoot string // CAPKIT_GLOBAL_ROOT, where global capabilities land
	ProjectDir string // A mock repository
}

// setupTestEnv creates isolated temp directories and points CAPKIT_GLOBAL_ROOT
// at one of them so nothing touches the real home directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		GlobalRoot: t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("CAPKIT_GLOBAL_ROOT", env.GlobalRoot)
	t.Setenv("HOME", t.TempDir())
	return env
}

// newManager builds a manager over the shipped capabilities for the given
// bundle mode.
func newManager(t *testing.T, env *testEnv, mode bundle.Mode) *installer.Manager {
	t.Helper()

	var resolver bundle.Resolver
	switch mode {
	case bundle.ModeCheckout:
		abs, err := filepath.Abs(checkoutRoot)
		if err != nil {
			t.Fatalf("resolving checkout root: %v", err)
		}
		resolver = bundle.NewDirResolver(abs)
	default:
		resolver = bundle.NewFSResolver(bundled.FS)
	}

	m, err := installer.New(
		installer.WithResolver(resolver),
		installer.WithGlobalRoot(env.GlobalRoot),
		installer.WithVersion("1.0.0"),
	)
	if err != nil {
		t.Fatalf("installer.New: %v", err)
	}
	return m
}

// installOrder lists every shipped capability with workflow hosts first.
func installOrder(m *installer.Manager) []string {
	order := []string{"ci", "review-runner"}
	for _, name := range m.Registry().Names() {
		if name != "ci" && name != "review-runner" {
			order = append(order, name)
		}
	}
	return order
}

// snapshot maps every file under root to its contents and permission bits.
// State and lock files are skipped.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()

	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasSuffix(rel, "installed.yaml") || strings.HasSuffix(rel, ".lock") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		out[rel] = info.Mode().Perm().String() + " " + string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return out
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
