// Package merge implements the merge engine: the typed configuration value,
// parser dispatch by format tag, the type-directed merge, and rendering back
// to text.
//
// A Value is one of Empty, JSON, TOML or Text. The set is closed: only this
// package can add variants, and every switch over a Value handles all four.
// Empty is the identity for Merge, so a target is built by folding its
// existing content and then its fragments onto Empty:
//
//	v, err := merge.Fold(merge.Empty{}, values)
//	text := merge.Render(v)
//
// Merging two values of different non-empty variants is an
// INCOMPATIBLE_TYPES error; values are never coerced between formats.
package merge
