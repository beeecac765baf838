package installer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentx-labs/capkit/bundled"
	"github.com/agentx-labs/capkit/internal/bundle"
	"github.com/agentx-labs/capkit/internal/capability"
	"github.com/agentx-labs/capkit/internal/registry"
)

func fixtureBundle() fstest.MapFS {
	return fstest.MapFS{
		"skills/sample-skill/SKILL.md":          {Data: []byte("---\nname: sample-skill\ndescription: A sample skill\n---\n")},
		"reminders/sample-reminder/REMINDER.md": {Data: []byte("---\nname: sample-reminder\ndescription: A reminder\n---\n")},
		"reviews/sample-review/REVIEW.md":       {Data: []byte("---\nname: sample-review\ndescription: A review\n---\n")},
		"workflows/.github/workflows/host.yml":  {Data: []byte("name: host\n")},
	}
}

func fixtureRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.New(
		capability.NewSkill("sample-skill", "A sample skill"),
		capability.NewReminder("sample-reminder", "A reminder"),
		capability.NewReview("sample-review", "A review",
			capability.WithRequires(capability.Prerequisite{Capability: "host-workflow", Path: ".github/workflows/host.yml"})),
		capability.NewWorkflow("host-workflow", "Hosts reviews",
			[]capability.Artifact{capability.File(".github/workflows/host.yml")}),
	)
	require.NoError(t, err)
	return r
}

type fixture struct {
	m      *Manager
	repo   string
	global string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	repo := t.TempDir()
	global := t.TempDir()
	m, err := New(
		WithRegistry(fixtureRegistry(t)),
		WithResolver(bundle.NewFSResolver(fixtureBundle())),
		WithGlobalRoot(global),
		WithVersion("1.0.0"),
	)
	require.NoError(t, err)
	return fixture{m: m, repo: repo, global: global}
}

func TestAddAndRemoveProjectCapability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.m.Add(ctx, "sample-skill", f.repo)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	_, err = os.Stat(filepath.Join(f.repo, "skills", "sample-skill", "SKILL.md"))
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(f.repo, ".capkit", "installed.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: sample-skill")
	assert.Contains(t, string(data), "version: 1.0.0")

	res, err = f.m.Remove(ctx, "sample-skill", f.repo)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	_, err = os.Stat(filepath.Join(f.repo, "skills", "sample-skill"))
	assert.True(t, os.IsNotExist(err))

	res, err = f.m.Remove(ctx, "sample-skill", f.repo)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "sample-skill was not installed", res.Message)
}

func TestGlobalCapabilityIgnoresRepoRoot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.m.Add(ctx, "sample-reminder", "")
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	_, err = os.Stat(filepath.Join(f.global, "reminders", "sample-reminder", "REMINDER.md"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(f.global, "installed.yaml"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(f.repo, ".capkit"))
	assert.True(t, os.IsNotExist(err))
}

func TestAddErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.m.Add(ctx, "nope", f.repo)
	assert.True(t, errors.Is(err, capability.ErrNotFound))

	_, err = f.m.Add(ctx, "sample-skill", "")
	assert.True(t, errors.Is(err, capability.ErrRepoRootRequired))

	_, err = f.m.Add(ctx, "sample-skill", filepath.Join(f.repo, "does-not-exist"))
	assert.Error(t, err)

	file := filepath.Join(f.repo, "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = f.m.Add(ctx, "sample-skill", file)
	assert.Error(t, err)

	_, err = f.m.Remove(ctx, "nope", f.repo)
	assert.True(t, errors.Is(err, capability.ErrNotFound))

	_, err = f.m.Status(ctx, "nope", f.repo)
	assert.True(t, errors.Is(err, capability.ErrNotFound))
}

func TestBlockedInstallIsAResultNotAnError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.m.Add(ctx, "sample-review", f.repo)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "host-workflow")

	res, err = f.m.Add(ctx, "host-workflow", f.repo)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	res, err = f.m.Add(ctx, "sample-review", f.repo)
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)
}

func TestRelativeRepoRoot(t *testing.T) {
	f := newFixture(t)
	t.Chdir(f.repo)

	res, err := f.m.Add(context.Background(), "sample-skill", ".")
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	_, err = os.Stat(filepath.Join(f.repo, "skills", "sample-skill"))
	assert.NoError(t, err)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.m.Add(ctx, "sample-reminder", "")
	require.NoError(t, err)
	_, err = f.m.Add(ctx, "sample-skill", f.repo)
	require.NoError(t, err)

	statuses, err := f.m.List(ctx, f.repo)
	require.NoError(t, err)
	byName := map[string]Status{}
	for _, s := range statuses {
		byName[s.Name] = s
	}
	require.Len(t, byName, 4)
	assert.True(t, byName["sample-skill"].Installed)
	assert.True(t, byName["sample-reminder"].Installed)
	assert.Equal(t, "global", byName["sample-reminder"].Scope)
	assert.Equal(t, f.global, byName["sample-reminder"].Root)
	assert.False(t, byName["sample-review"].Installed)
	assert.True(t, byName["sample-review"].Applicable)
	assert.NotEmpty(t, byName["host-workflow"].Check)

	statuses, err = f.m.List(ctx, "")
	require.NoError(t, err)
	for _, s := range statuses {
		if s.Scope == "project" {
			assert.False(t, s.Applicable, s.Name)
			assert.False(t, s.Installed, s.Name)
		} else {
			assert.True(t, s.Applicable, s.Name)
		}
	}
}

func TestStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.m.Add(ctx, "sample-skill", f.repo)
	require.NoError(t, err)

	report, err := f.m.Status(ctx, "sample-skill", f.repo)
	require.NoError(t, err)
	assert.True(t, report.Clean(), "%+v", report)
	assert.Equal(t, "1.0.0", report.RecordedVersion)

	require.NoError(t, os.WriteFile(filepath.Join(f.repo, "skills", "sample-skill", "SKILL.md"), []byte("x"), 0o644))
	report, err = f.m.Status(ctx, "sample-skill", f.repo)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.Equal(t, 1, report.Counts()[capability.FileModified])
}

func TestNewDefaults(t *testing.T) {
	t.Setenv("CAPKIT_GLOBAL_ROOT", t.TempDir())
	m, err := New()
	require.NoError(t, err)
	assert.NotNil(t, m.Registry())
	assert.NotNil(t, m.Resolver())
	assert.Equal(t, os.Getenv("CAPKIT_GLOBAL_ROOT"), m.GlobalRoot())
}

func TestListReportsVersionAndRequirements(t *testing.T) {
	fsys := fixtureBundle()
	fsys["skills/sample-skill/SKILL.md"] = &fstest.MapFile{
		Data: []byte("---\nname: sample-skill\ndescription: A sample skill\nversion: 0.3.0\n---\n"),
	}
	m, err := New(
		WithRegistry(fixtureRegistry(t)),
		WithResolver(bundle.NewFSResolver(fsys)),
		WithGlobalRoot(t.TempDir()),
	)
	require.NoError(t, err)

	statuses, err := m.List(context.Background(), "")
	require.NoError(t, err)
	byName := map[string]Status{}
	for _, s := range statuses {
		byName[s.Name] = s
	}
	assert.Equal(t, "0.3.0", byName["sample-skill"].Version)
	assert.Empty(t, byName["sample-reminder"].Version)
	assert.Equal(t, []string{"host-workflow"}, byName["sample-review"].Requires)
	assert.Empty(t, byName["host-workflow"].Requires)
}

func TestListShippedVersions(t *testing.T) {
	m, err := New(WithGlobalRoot(t.TempDir()), WithResolver(bundle.NewFSResolver(bundled.FS)))
	require.NoError(t, err)

	statuses, err := m.List(context.Background(), "")
	require.NoError(t, err)
	for _, s := range statuses {
		switch s.Name {
		case "code-search":
			assert.Equal(t, "0.3.0", s.Version)
		case "security-review":
			assert.Equal(t, []string{"review-runner"}, s.Requires)
		case "issue-triage":
			assert.Equal(t, []string{"ci"}, s.Requires)
		}
	}
}
