package pipeline

import "github.com/arthur-debert/dotpatch/pkg/format"

// Options configures a run
type Options struct {
	// SourceRoot is the directory searched for patch directories
	SourceRoot string

	// TargetRoot is the directory targets are written under
	TargetRoot string
}

// TargetResult describes the outcome for one patch directory
type TargetResult struct {
	PatchDir string
	Target   string
	Format   format.Tag

	// Seeded is true when the target's existing content took part in the merge
	Seeded bool

	// Fragments is the number of fragment files merged
	Fragments int

	// Changed is true when the rendered content differs from what the target held
	Changed bool

	Err error
}

// Result collects the outcome of a run
type Result struct {
	Targets []TargetResult
}

// Failed returns the targets that could not be assembled
func (r *Result) Failed() []TargetResult {
	var failed []TargetResult
	for _, t := range r.Targets {
		if t.Err != nil {
			failed = append(failed, t)
		}
	}
	return failed
}

// Changed returns the number of targets whose content changed
func (r *Result) Changed() int {
	n := 0
	for _, t := range r.Targets {
		if t.Err == nil && t.Changed {
			n++
		}
	}
	return n
}
