// Package filesystem provides the filesystem capability dotpatch runs against.
//
// Everything goes through an afero.Fs so the pipeline can run on the real
// disk (NewOS) or fully in memory (NewMemory) in tests.
package filesystem
