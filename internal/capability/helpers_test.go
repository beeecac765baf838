package capability

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/agentx-labs/capkit/internal/bundle"
	"github.com/agentx-labs/capkit/internal/state"
)

func fixtureBundle() fstest.MapFS {
	return fstest.MapFS{
		"skills/sample-skill/SKILL.md":                    {Data: []byte("---\nname: sample-skill\ndescription: A sample skill\n---\nbody\n")},
		"skills/sample-skill/scripts/run.sh":              {Data: []byte("#!/bin/sh\necho hi\n")},
		"skills/sample-skill/.DS_Store":                   {Data: []byte("junk")},
		"skills/sample-skill/node_modules/dep/index.js":   {Data: []byte("module.exports = {}")},
		"skills/sample-skill/lib/__pycache__/x.cpython.c": {Data: []byte("cache")},
		"reminders/sample-reminder/REMINDER.md":           {Data: []byte("---\nname: sample-reminder\ndescription: r\n---\n")},
		"reviews/sample-review/REVIEW.md":                 {Data: []byte("---\nname: sample-review\ndescription: r\n---\n")},
		"workflows/.github/workflows/host.yml":            {Data: []byte("name: host\n")},
		"workflows/.github/workflows/ci.yml":              {Data: []byte("name: ci\n")},
		"workflows/.github/workflows/triage.yml":          {Data: []byte("name: triage\n")},
		"workflows/.github/scripts/triage/triage.sh":      {Data: []byte("#!/bin/sh\nexit 0\n")},
		"workflows/.github/scripts/triage/labels.txt":     {Data: []byte("bug:bug\n")},
		"workflows/docs/agents/ARCHITECTURE.md":           {Data: []byte("# Architecture\n")},
		"workflows/docs/agents/CONVENTIONS.md":            {Data: []byte("# Conventions\n")},
	}
}

func newTarget(t *testing.T, fsys fs.FS) *Target {
	t.Helper()
	root := t.TempDir()
	return &Target{
		Root:    root,
		State:   state.New(filepath.Join(root, ".capkit")),
		Bundle:  bundle.NewFSResolver(fsys),
		Version: "1.2.0",
	}
}

func sampleSkill() *Template { return NewSkill("sample-skill", "A sample skill") }

func hostWorkflow() *Workflow {
	return NewWorkflow("host-workflow", "Hosts reviews", []Artifact{File(".github/workflows/host.yml")})
}

func sampleReview() *Template {
	return NewReview("sample-review", "A sample review",
		WithRequires(Prerequisite{Capability: "host-workflow", Path: ".github/workflows/host.yml"}))
}

func requireFile(t *testing.T, path, content string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, content, string(data))
}

func requireAbsent(t *testing.T, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	require.True(t, os.IsNotExist(err), "%s should not exist", path)
}

// failingStore wraps a real store and fails selected operations.
type failingStore struct {
	*state.Store
	failAdd    bool
	failRemove bool
}

func (s *failingStore) Add(name, version string) error {
	if s.failAdd {
		return errors.New("disk full")
	}
	return s.Store.Add(name, version)
}

func (s *failingStore) Remove(name string) error {
	if s.failRemove {
		return errors.New("read-only filesystem")
	}
	return s.Store.Remove(name)
}

func stateOf(t *testing.T, tgt *Target) *state.Store {
	t.Helper()
	s, ok := tgt.State.(*state.Store)
	require.True(t, ok, "target state is %T", tgt.State)
	return s
}
