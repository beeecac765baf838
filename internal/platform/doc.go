// Package platform provides cross-platform filesystem primitives: permission
// changes that are no-ops on Windows, atomic whole-file replacement and an
// advisory lock file used to serialize read-modify-write cycles between
// separate processes.
package platform
