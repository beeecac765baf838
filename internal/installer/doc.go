// Package installer resolves capability names to targets and drives their
// lifecycle. It is the single entry point the CLI uses: registry lookup and
// scope checks happen here, everything after that is delegated to the
// capability itself.
package installer
