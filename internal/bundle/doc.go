// Package bundle locates the bundled capability content.
//
// Two strategies serve the same tree: DirResolver reads a development
// checkout from disk so edits are picked up without a rebuild, FSResolver
// reads the copy embedded into a packaged binary. Detect chooses between
// them once per process. A resolver answers where content lives, never what
// it contains.
package bundle
