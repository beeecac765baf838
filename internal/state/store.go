package state

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/capkit/internal/branding"
	"github.com/agentx-labs/capkit/internal/platform"
	"github.com/agentx-labs/capkit/internal/userdata"
)

// Store reads and writes the installed.yaml document in one state directory.
// The zero value is not usable; create stores with New.
type Store struct {
	path string
	lock platform.LockOptions
}

// Option configures a Store.
type Option func(*Store)

// WithLockTimeout bounds how long a write waits for another process.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) { s.lock.Timeout = d }
}

// New returns a store for the document inside stateDir. Nothing is read or
// created until an operation needs it.
func New(stateDir string, opts ...Option) *Store {
	s := &Store{path: userdata.StatePath(stateDir)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the document location.
func (s *Store) Path() string { return s.path }

func (s *Store) lockPath() string { return s.path + ".lock" }

// Load reads the document. A missing file is an empty document.
func (s *Store) Load() (*File, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &File{Version: CurrentVersion}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading state file %s", s.path)
	}
	return s.decode(data)
}

func (s *Store) decode(data []byte) (*File, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing state file %s", s.path)
	}
	if raw == nil {
		return &File{Version: CurrentVersion}, nil
	}
	if err := validate(s.path, raw); err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "decoding state file %s", s.path)
	}
	f.dedupe()
	return &f, nil
}

// Has reports whether name is recorded.
func (s *Store) Has(name string) (bool, error) {
	_, ok, err := s.Get(name)
	return ok, err
}

// Get returns the entry for name.
func (s *Store) Get(name string) (Entry, bool, error) {
	f, err := s.Load()
	if err != nil {
		return Entry{}, false, err
	}
	if i := f.index(name); i >= 0 {
		return f.Capabilities[i], true, nil
	}
	return Entry{}, false, nil
}

// Names returns the recorded capability names, sorted.
func (s *Store) Names() ([]string, error) {
	f, err := s.Load()
	if err != nil {
		return nil, err
	}
	names := f.Names()
	sort.Strings(names)
	return names, nil
}

// Add records name at version. Recording an existing name refreshes its
// version and never duplicates the entry.
func (s *Store) Add(name, version string) error {
	if name == "" {
		return errors.New("capability name is required")
	}
	return s.update(func(f *File) bool {
		if i := f.index(name); i >= 0 {
			if f.Capabilities[i].Version == version {
				return false
			}
			f.Capabilities[i].Version = version
			return true
		}
		f.Capabilities = append(f.Capabilities, Entry{Name: name, Version: version})
		return true
	})
}

// Remove forgets name. Removing an unrecorded name is not an error.
func (s *Store) Remove(name string) error {
	if ok, err := s.Has(name); err == nil && !ok {
		return nil
	}
	return s.update(func(f *File) bool {
		kept := f.Capabilities[:0]
		for _, e := range f.Capabilities {
			if e.Name != name {
				kept = append(kept, e)
			}
		}
		changed := len(kept) != len(f.Capabilities)
		f.Capabilities = kept
		return changed
	})
}

// update runs fn on the current document under the lock and writes the
// result when fn reports a change.
func (s *Store) update(fn func(*File) bool) error {
	if err := os.MkdirAll(filepath.Dir(s.path), userdata.DirPermNormal); err != nil {
		return errors.Wrapf(err, "creating state directory for %s", s.path)
	}
	return platform.WithLock(s.lockPath(), s.lock, func() error {
		f, err := s.Load()
		if err != nil {
			return err
		}
		if !fn(f) {
			return nil
		}
		return s.write(f)
	})
}

func (s *Store) write(f *File) error {
	f.Version = CurrentVersion
	if f.Capabilities == nil {
		f.Capabilities = []Entry{}
	}
	sort.Slice(f.Capabilities, func(i, j int) bool {
		return f.Capabilities[i].Name < f.Capabilities[j].Name
	})

	var buf bytes.Buffer
	buf.WriteString("# Managed by " + branding.CLIName() + ". Safe to edit by hand.\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(err, "encoding state")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "encoding state")
	}

	if err := platform.WriteFileAtomic(s.path, buf.Bytes(), userdata.FilePermNormal); err != nil {
		return errors.Wrap(err, "writing state")
	}
	return nil
}
