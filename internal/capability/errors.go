package capability

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/agentx-labs/capkit/internal/branding"
)

var (
	// ErrNotFound is returned when a capability name is not registered.
	ErrNotFound = errors.New("capability not found")
	// ErrRepoRootRequired is returned when a project-scoped capability is
	// addressed without a repository root.
	ErrRepoRootRequired = errors.New("repository root required for project-scoped capability")
)

// ConfigurationError reports bundled content that should exist but does not.
// It is a packaging defect, not a user error.
type ConfigurationError struct {
	Capability string
	Source     string
	Err        error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("packaging defect: bundled source for %s not found at %s", e.Capability, e.Source)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// DependencyUnmetError reports a prerequisite capability that is not
// installed in the target.
type DependencyUnmetError struct {
	Capability   string
	Prerequisite string
}

func (e *DependencyUnmetError) Error() string {
	return fmt.Sprintf("%s requires %s; install it first with `%s add %s`",
		e.Capability, e.Prerequisite, branding.CLIName(), e.Prerequisite)
}

// OwnershipConflictError reports two capabilities claiming the same artifact.
type OwnershipConflictError struct {
	Artifact string
	First    string
	Second   string
}

func (e *OwnershipConflictError) Error() string {
	return fmt.Sprintf("artifact %s is claimed by both %s and %s", e.Artifact, e.First, e.Second)
}

// UnmanagedFileError reports a file at an install path that differs from the
// bundle while the capability is not recorded, so it belongs to the user.
type UnmanagedFileError struct {
	Capability string
	Path       string
}

func (e *UnmanagedFileError) Error() string {
	return fmt.Sprintf("%s already exists and was not installed by %s; move it aside before adding %s",
		e.Path, branding.CLIName(), e.Capability)
}
