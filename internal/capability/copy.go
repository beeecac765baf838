package capability

import (
	"bytes"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/agentx-labs/capkit/internal/platform"
)

// excludePatterns are skipped during installation, matched against the path
// relative to the artifact being copied.
var excludePatterns = []string{
	"**/.DS_Store",
	"**/.git",
	"**/node_modules",
	"**/__pycache__",
	"**/*.pyc",
}

const (
	filePerm = 0o644
	execPerm = 0o755
	dirPerm  = 0o755
)

func shouldExclude(rel string) bool {
	for _, pattern := range excludePatterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// walkSource visits the regular files under root in fsys, skipping excluded
// names and anything that is neither a directory nor a regular file. rel is
// relative to root.
func walkSource(fsys fs.FS, root string, fn func(rel string, d fs.DirEntry) error) error {
	return fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := p
		if root != "." {
			if p == root {
				rel = "."
			} else {
				rel = p[len(root)+1:]
			}
		}
		if rel != "." && shouldExclude(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && !d.Type().IsRegular() {
			return nil
		}
		return fn(rel, d)
	})
}

// copyTree copies the directory src in fsys to dst, replacing dst wholesale
// so the result matches the source byte for byte. It returns the number of
// files written.
func copyTree(fsys fs.FS, src, dst string) (int, error) {
	if err := os.RemoveAll(dst); err != nil {
		return 0, errors.Wrapf(err, "removing existing %s", dst)
	}

	count := 0
	err := walkSource(fsys, src, func(rel string, d fs.DirEntry) error {
		target := filepath.Join(dst, filepath.FromSlash(rel))
		if d.IsDir() {
			return os.MkdirAll(target, dirPerm)
		}
		if err := copyFile(fsys, path.Join(src, rel), target); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, errors.Wrapf(err, "copying %s to %s", src, dst)
	}
	return count, nil
}

// copyFile copies one file out of fsys, creating parent directories. The
// executable bit survives; other permission bits are normalized so checkout
// and embedded sources install identically.
func copyFile(fsys fs.FS, src, dst string) error {
	data, err := fs.ReadFile(fsys, src)
	if err != nil {
		return err
	}
	info, err := fs.Stat(fsys, src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return err
	}

	mode := fileMode(info.Mode(), data)
	if err := os.WriteFile(dst, data, mode); err != nil {
		return err
	}
	return platform.Chmod(dst, mode)
}

// fileMode picks the installed mode. Embedded files carry no execute bits,
// so a shebang line also marks a file executable.
func fileMode(src fs.FileMode, data []byte) os.FileMode {
	if src.Perm()&0o111 != 0 || bytes.HasPrefix(data, []byte("#!")) {
		return execPerm
	}
	return filePerm
}

func exists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}
