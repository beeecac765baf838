package capability

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

// FileState is the comparison outcome for one installed file.
type FileState string

const (
	FileOK       FileState = "ok"
	FileMissing  FileState = "missing"
	FileModified FileState = "modified"
	// FileExtra marks a file inside an owned directory that the bundle does
	// not ship. It will be deleted on reinstall.
	FileExtra FileState = "extra"
)

// FileDrift describes one file of an artifact.
type FileDrift struct {
	Path  string    `json:"path"`
	State FileState `json:"state"`
}

// DriftReport compares an installed capability against the bundle.
type DriftReport struct {
	Capability      string      `json:"capability"`
	Scope           string      `json:"scope"`
	Root            string      `json:"root"`
	Installed       bool        `json:"installed"`
	Recorded        bool        `json:"recorded"`
	RecordedVersion string      `json:"recorded_version,omitempty"`
	CurrentVersion  string      `json:"current_version,omitempty"`
	VersionDrift    bool        `json:"version_drift"`
	Partial         bool        `json:"partial"`
	Files           []FileDrift `json:"files"`
	Error           string      `json:"error,omitempty"`
}

// Clean reports whether the capability is installed and matches the bundle.
func (r *DriftReport) Clean() bool {
	if !r.Installed || r.Partial || r.VersionDrift || r.Error != "" {
		return false
	}
	for _, f := range r.Files {
		if f.State != FileOK {
			return false
		}
	}
	return true
}

// Counts returns the number of files in each state.
func (r *DriftReport) Counts() map[FileState]int {
	out := make(map[FileState]int)
	for _, f := range r.Files {
		out[f.State]++
	}
	return out
}

// Drift builds a DriftReport for c in t. Installed files are compared to the
// bundled source by SHA-256.
func Drift(c Capability, t *Target) DriftReport {
	report := DriftReport{
		Capability:     c.Name(),
		Scope:          c.Scope().String(),
		Root:           t.Root,
		Installed:      c.IsInstalled(t),
		CurrentVersion: versionFor(c, t),
	}

	entry, recorded, err := t.State.Get(c.Name())
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Recorded = recorded
	report.RecordedVersion = entry.Version

	anyPresent, allPresent := false, true
	for _, a := range c.Artifacts() {
		if present(t.path(a.Path), a.Kind) {
			anyPresent = true
		} else {
			allPresent = false
		}
	}
	report.Partial = (recorded && !allPresent) || (!recorded && anyPresent)

	if recorded {
		report.VersionDrift = olderVersion(entry.Version, report.CurrentVersion)
	}

	roots, err := resolveSources(c, t)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	for _, a := range c.Artifacts() {
		files, err := compareArtifact(roots[a.Category].FS, a, t.path(a.Path))
		if err != nil {
			report.Error = err.Error()
			return report
		}
		report.Files = append(report.Files, files...)
	}
	return report
}

func compareArtifact(fsys fs.FS, a Artifact, dst string) ([]FileDrift, error) {
	if a.Kind == KindFile {
		want, err := hashFS(fsys, a.Source)
		if err != nil {
			return nil, err
		}
		return []FileDrift{{Path: a.Path, State: compareFile(dst, want)}}, nil
	}

	var out []FileDrift
	seen := make(map[string]bool)
	err := walkSource(fsys, a.Source, func(rel string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		want, err := hashFS(fsys, path.Join(a.Source, rel))
		if err != nil {
			return err
		}
		seen[rel] = true
		out = append(out, FileDrift{
			Path:  path.Join(a.Path, rel),
			State: compareFile(filepath.Join(dst, filepath.FromSlash(rel)), want),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		extra, err := extraFiles(os.DirFS(dst), a.Path, seen)
		if err != nil {
			return nil, errors.Wrapf(err, "scanning %s", dst)
		}
		out = append(out, extra...)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// extraFiles lists files under installed that the bundle does not ship.
func extraFiles(installed fs.FS, base string, seen map[string]bool) ([]FileDrift, error) {
	var out []FileDrift
	err := walkSource(installed, ".", func(rel string, d fs.DirEntry) error {
		if !d.IsDir() && !seen[rel] {
			out = append(out, FileDrift{Path: path.Join(base, rel), State: FileExtra})
		}
		return nil
	})
	return out, err
}

func compareFile(p, want string) FileState {
	data, err := os.ReadFile(p)
	if err != nil {
		return FileMissing
	}
	if hashBytes(data) != want {
		return FileModified
	}
	return FileOK
}

func hashFS(fsys fs.FS, p string) (string, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return "", err
	}
	return hashBytes(data), nil
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// olderVersion reports whether recorded is an older semver than current.
// Non-semver values such as "dev" never count as drift.
func olderVersion(recorded, current string) bool {
	rv, err := semver.NewVersion(strings.TrimPrefix(recorded, "v"))
	if err != nil {
		return false
	}
	cv, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false
	}
	return rv.LessThan(cv)
}
