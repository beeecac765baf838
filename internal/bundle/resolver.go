package bundle

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Mode identifies where bundled content is read from.
type Mode int

const (
	// ModePackaged reads content embedded into the binary.
	ModePackaged Mode = iota
	// ModeCheckout reads content from the bundled/ directory of a source
	// checkout.
	ModeCheckout
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModePackaged:
		return "packaged"
	case ModeCheckout:
		return "checkout"
	default:
		return "unknown"
	}
}

// BundledDir is the directory inside a checkout that holds the content.
const BundledDir = "bundled"

// Root is the bundled content of one category.
type Root struct {
	// FS is rooted at the category directory.
	FS fs.FS
	// Location describes where FS is read from, for messages and logs.
	Location string
}

// Resolver locates the bundled root of a content category.
type Resolver interface {
	Mode() Mode
	Root(category string) (Root, error)
}

// DirResolver reads content from a checkout on disk.
type DirResolver struct {
	checkout string
}

// NewDirResolver returns a resolver for the checkout rooted at dir.
func NewDirResolver(dir string) *DirResolver {
	return &DirResolver{checkout: dir}
}

// Mode implements Resolver.
func (r *DirResolver) Mode() Mode { return ModeCheckout }

// Checkout returns the checkout directory.
func (r *DirResolver) Checkout() string { return r.checkout }

// Root implements Resolver.
func (r *DirResolver) Root(category string) (Root, error) {
	if !fs.ValidPath(category) {
		return Root{}, errors.Errorf("invalid bundle category %q", category)
	}
	dir := filepath.Join(r.checkout, BundledDir, filepath.FromSlash(category))
	info, err := os.Stat(dir)
	if err != nil {
		return Root{}, errors.Wrapf(err, "bundle category %s", category)
	}
	if !info.IsDir() {
		return Root{}, errors.Errorf("bundle category %s: %s is not a directory", category, dir)
	}
	return Root{FS: os.DirFS(dir), Location: dir}, nil
}

// FSResolver reads content from an fs.FS rooted at the category
// directories, normally the embedded bundled.FS.
type FSResolver struct {
	fsys fs.FS
}

// NewFSResolver returns a resolver over fsys.
func NewFSResolver(fsys fs.FS) *FSResolver {
	return &FSResolver{fsys: fsys}
}

// Mode implements Resolver.
func (r *FSResolver) Mode() Mode { return ModePackaged }

// Root implements Resolver.
func (r *FSResolver) Root(category string) (Root, error) {
	if !fs.ValidPath(category) {
		return Root{}, errors.Errorf("invalid bundle category %q", category)
	}
	info, err := fs.Stat(r.fsys, category)
	if err != nil {
		return Root{}, errors.Wrapf(err, "bundle category %s", category)
	}
	if !info.IsDir() {
		return Root{}, errors.Errorf("bundle category %s is not a directory", category)
	}
	sub, err := fs.Sub(r.fsys, category)
	if err != nil {
		return Root{}, errors.Wrapf(err, "bundle category %s", category)
	}
	return Root{FS: sub, Location: "embedded:" + category}, nil
}
