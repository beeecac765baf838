package capability

import (
	"io/fs"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/agentx-labs/capkit/internal/bundle"
)

func fields(c Capability, t *Target) *logrus.Entry {
	return t.log().WithFields(logrus.Fields{
		"capability": c.Name(),
		"target":     t.Root,
	})
}

// resolveSources locates the bundled source of every artifact before
// anything is written, so a packaging defect leaves the target untouched.
func resolveSources(c Capability, t *Target) (map[string]bundle.Root, error) {
	roots := make(map[string]bundle.Root)
	for _, a := range c.Artifacts() {
		root, ok := roots[a.Category]
		if !ok {
			var err error
			root, err = t.Bundle.Root(a.Category)
			if err != nil {
				return nil, &ConfigurationError{Capability: c.Name(), Source: a.Category + "/" + a.Source, Err: err}
			}
			roots[a.Category] = root
		}

		info, err := fs.Stat(root.FS, a.Source)
		if err != nil {
			return nil, &ConfigurationError{Capability: c.Name(), Source: root.Location + "/" + a.Source, Err: err}
		}
		if info.IsDir() != (a.Kind == KindDir) {
			return nil, &ConfigurationError{
				Capability: c.Name(),
				Source:     root.Location + "/" + a.Source,
				Err:        errors.Errorf("expected a %s", a.Kind),
			}
		}
	}
	return roots, nil
}

// install runs the shared install sequence: preflight, source resolution,
// copy, then state. kind names the capability variant in messages.
func install(c Capability, t *Target, kind string) Result {
	log := fields(c, t)

	if blocked := c.Preflight(t); blocked != nil {
		log.WithField("reason", blocked.Message).Debug("preflight blocked install")
		return *blocked
	}

	roots, err := resolveSources(c, t)
	if err != nil {
		log.WithError(err).Warn("bundled source missing")
		return Failed("cannot install %s: %v", c.Name(), err)
	}

	if err := checkUnmanaged(c, t, roots); err != nil {
		log.WithError(err).Debug("install would overwrite user files")
		return Failed("cannot install %s: %v", c.Name(), err)
	}

	var paths []string
	files := 0
	for _, a := range c.Artifacts() {
		root := roots[a.Category]
		dst := t.path(a.Path)
		if a.Kind == KindDir {
			n, err := copyTree(root.FS, a.Source, dst)
			files += n
			if err != nil {
				return Failed("installing %s: %v", c.Name(), err)
			}
		} else {
			if err := copyFile(root.FS, a.Source, dst); err != nil {
				return Failed("installing %s: copying %s: %v", c.Name(), a.Path, err)
			}
			files++
		}
		paths = append(paths, a.Path)
		log.WithFields(logrus.Fields{"path": a.Path, "source": root.Location}).Debug("artifact copied")
	}

	version := versionFor(c, t)
	if err := t.State.Add(c.Name(), version); err != nil {
		log.WithError(err).Warn("files copied but state not recorded")
		return Failed("installed files for %s but could not record it in state: %v; run the install again", c.Name(), err)
	}

	log.WithField("version", version).Debug("capability installed")
	return Succeeded("Installed %s %s: %s (%d %s)", kind, c.Name(), strings.Join(paths, ", "), files, plural(files, "file"))
}

// uninstall clears state first, then removes exactly the declared paths.
func uninstall(c Capability, t *Target) Result {
	log := fields(c, t)
	var result *multierror.Error

	recorded, err := t.State.Has(c.Name())
	if err != nil {
		result = multierror.Append(result, errors.Wrap(err, "reading state"))
	}
	if err := t.State.Remove(c.Name()); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "clearing state"))
	}

	var removed []string
	for _, a := range c.Artifacts() {
		p := t.path(a.Path)
		if !exists(p) {
			continue
		}
		var rmErr error
		if a.Kind == KindDir {
			rmErr = os.RemoveAll(p)
		} else {
			rmErr = os.Remove(p)
		}
		if rmErr != nil {
			result = multierror.Append(result, errors.Wrapf(rmErr, "removing %s", a.Path))
			continue
		}
		removed = append(removed, a.Path)
		log.WithField("path", a.Path).Debug("artifact removed")
	}

	if err := result.ErrorOrNil(); err != nil {
		return Failed("uninstalling %s: %v", c.Name(), err)
	}
	if len(removed) == 0 {
		if recorded {
			return Succeeded("Removed %s from state; none of its files were present", c.Name())
		}
		return Succeeded("%s was not installed", c.Name())
	}
	return Succeeded("Removed %s: %s", c.Name(), strings.Join(removed, ", "))
}

// checkUnmanaged refuses to overwrite files the capability does not own.
// Once the capability is recorded its paths are managed and re-installs
// replace them. Before that, an existing path is only taken over when its
// content already matches the bundle, which is how a failed state write is
// repaired.
func checkUnmanaged(c Capability, t *Target, roots map[string]bundle.Root) error {
	recorded, err := t.State.Has(c.Name())
	if err != nil {
		return errors.Wrap(err, "reading state")
	}
	if recorded {
		return nil
	}
	for _, a := range c.Artifacts() {
		dst := t.path(a.Path)
		if !exists(dst) {
			continue
		}
		if !present(dst, a.Kind) {
			return &UnmanagedFileError{Capability: c.Name(), Path: a.Path}
		}
		files, err := compareArtifact(roots[a.Category].FS, a, dst)
		if err != nil {
			return err
		}
		for _, f := range files {
			if f.State == FileModified || f.State == FileExtra {
				return &UnmanagedFileError{Capability: c.Name(), Path: f.Path}
			}
		}
	}
	return nil
}

func isInstalled(c Capability, t *Target) bool {
	recorded, err := t.State.Has(c.Name())
	if err != nil {
		fields(c, t).WithError(err).Warn("reading state")
		return false
	}
	if !recorded {
		return false
	}
	for _, a := range c.Artifacts() {
		if !present(t.path(a.Path), a.Kind) {
			return false
		}
	}
	return true
}

func present(p string, kind ArtifactKind) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir() == (kind == KindDir)
}

// checkPrerequisites returns a blocking Result for the first prerequisite
// whose marker path is absent from the target.
func checkPrerequisites(name string, t *Target, reqs []Prerequisite) *Result {
	for _, req := range reqs {
		if exists(t.path(req.Path)) {
			continue
		}
		err := &DependencyUnmetError{Capability: name, Prerequisite: req.Capability}
		r := Failed("%s", err.Error())
		return &r
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
