//go:build integration

package integration_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/agentx-labs/capkit/internal/bundle"
	"github.com/agentx-labs/capkit/internal/state"
	"github.com/agentx-labs/capkit/internal/userdata"
)

// TestPackagedAndCheckoutInstallIdentically installs everything from both
// bundle modes and compares the resulting trees file by file.
func TestPackagedAndCheckoutInstallIdentically(t *testing.T) {
	ctx := context.Background()
	trees := map[bundle.Mode][2]map[string]string{}

	for _, mode := range []bundle.Mode{bundle.ModePackaged, bundle.ModeCheckout} {
		env := setupTestEnv(t)
		m := newManager(t, env, mode)

		for _, name := range installOrder(m) {
			res, err := m.Add(ctx, name, env.ProjectDir)
			if err != nil {
				t.Fatalf("%s: Add(%s): %v", mode, name, err)
			}
			if !res.Success {
				t.Fatalf("%s: Add(%s): %s", mode, name, res.Message)
			}
		}
		trees[mode] = [2]map[string]string{
			snapshot(t, env.ProjectDir),
			snapshot(t, env.GlobalRoot),
		}
	}

	packaged, checkout := trees[bundle.ModePackaged], trees[bundle.ModeCheckout]
	for i, label := range []string{"project", "global"} {
		if len(packaged[i]) == 0 {
			t.Errorf("%s tree is empty", label)
		}
		if len(packaged[i]) != len(checkout[i]) {
			t.Errorf("%s: packaged installed %d files, checkout %d", label, len(packaged[i]), len(checkout[i]))
		}
		for path, want := range packaged[i] {
			if got, ok := checkout[i][path]; !ok {
				t.Errorf("%s: %s missing from checkout install", label, path)
			} else if got != want {
				t.Errorf("%s: %s differs between modes", label, path)
			}
		}
	}
}

// TestFullFlowUserFilesSurviveRemoval checks that removing a capability only
// deletes what it owns from shared directories.
func TestFullFlowUserFilesSurviveRemoval(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	m := newManager(t, env, bundle.ModePackaged)

	own := filepath.Join(env.ProjectDir, ".github", "workflows", "deploy.yml")
	writeFile(t, own, "name: deploy\n")

	for _, name := range []string{"ci", "issue-triage"} {
		if res, err := m.Add(ctx, name, env.ProjectDir); err != nil || !res.Success {
			t.Fatalf("Add(%s): %v %+v", name, err, res)
		}
	}
	assertFileExists(t, filepath.Join(env.ProjectDir, ".github", "workflows", "ci.yml"))
	assertFileExists(t, filepath.Join(env.ProjectDir, ".github", "scripts", "issue-triage", "triage.sh"))

	for _, name := range []string{"issue-triage", "ci"} {
		if res, err := m.Remove(ctx, name, env.ProjectDir); err != nil || !res.Success {
			t.Fatalf("Remove(%s): %v %+v", name, err, res)
		}
	}

	assertFileNotExists(t, filepath.Join(env.ProjectDir, ".github", "workflows", "ci.yml"))
	assertFileNotExists(t, filepath.Join(env.ProjectDir, ".github", "scripts", "issue-triage"))
	assertFileContains(t, own, "name: deploy")
}

// TestFullFlowConcurrentAdds runs several adds into the same repository at
// once and checks that none of the state updates is lost.
func TestFullFlowConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	m := newManager(t, env, bundle.ModePackaged)

	names := []string{"code-search", "changelog-writer", "ci", "review-runner", "agent-docs"}
	var wg sync.WaitGroup
	errs := make(chan error, len(names))
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if _, err := m.Add(ctx, name, env.ProjectDir); err != nil {
				errs <- err
			}
		}(name)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Add: %v", err)
	}

	store := state.New(userdata.ProjectStateDir(env.ProjectDir))
	for _, name := range names {
		ok, err := store.Has(name)
		if err != nil {
			t.Fatalf("Has(%s): %v", name, err)
		}
		if !ok {
			t.Errorf("%s missing from state after concurrent add", name)
		}
	}
}

// TestFullFlowReinstallRepairsDrift edits an installed file and checks that
// a second add restores it.
func TestFullFlowReinstallRepairsDrift(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	m := newManager(t, env, bundle.ModeCheckout)

	if res, err := m.Add(ctx, "code-search", env.ProjectDir); err != nil || !res.Success {
		t.Fatalf("Add: %v %+v", err, res)
	}
	entry := filepath.Join(env.ProjectDir, "skills", "code-search", "SKILL.md")
	writeFile(t, entry, "scribbled over\n")
	writeFile(t, filepath.Join(env.ProjectDir, "skills", "code-search", "notes.txt"), "mine\n")

	report, err := m.Status(ctx, "code-search", env.ProjectDir)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if report.Clean() {
		t.Fatalf("expected drift, got clean report")
	}

	if res, err := m.Add(ctx, "code-search", env.ProjectDir); err != nil || !res.Success {
		t.Fatalf("re-Add: %v %+v", err, res)
	}
	report, err = m.Status(ctx, "code-search", env.ProjectDir)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !report.Clean() {
		t.Errorf("expected clean report after reinstall, got %+v", report)
	}
	assertFileContains(t, entry, "name: code-search")
}
