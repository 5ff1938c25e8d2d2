// Package pipeline assembles target files from their patch directories.
//
// For each patch directory the pipeline opens (or creates) the target,
// seeds the merge with the target's current content when it is not empty,
// folds every fragment on top in listing order, renders the result and
// rewrites the target in place.
//
// Targets are processed one at a time. A failing target does not stop the
// run: Run attempts every target and returns the combined error of those
// that failed. Only failing to enumerate the patch root aborts the run.
package pipeline
