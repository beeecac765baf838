// Package userdata resolves the on-disk locations capkit reads and writes
// outside of the bundle: the global root that holds globally scoped
// capabilities and the per-project state directory.
package userdata
