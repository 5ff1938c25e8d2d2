package pipeline

import (
	"iter"

	"github.com/arthur-debert/dotpatch/pkg/errors"
	"github.com/arthur-debert/dotpatch/pkg/filesystem"
	"github.com/arthur-debert/dotpatch/pkg/format"
	"github.com/arthur-debert/dotpatch/pkg/logging"
	"github.com/arthur-debert/dotpatch/pkg/merge"
	"github.com/arthur-debert/dotpatch/pkg/patches"
	"github.com/rs/zerolog"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// Run assembles every target found under opts.SourceRoot. The returned
// error combines the errors of all failed targets; the Result is returned
// even then, so callers can report on each target.
func Run(fsys afero.Fs, opts Options) (*Result, error) {
	logger := logging.GetLogger("pipeline")
	done := logging.LogOperationStart(logger, "run")
	defer done()

	dirs, err := patches.FindPatchDirs(fsys, opts.SourceRoot)
	if err != nil {
		return nil, err
	}

	result := &Result{Targets: make([]TargetResult, 0, len(dirs))}
	var errs error
	for _, dir := range dirs {
		tr := ProcessTarget(fsys, opts, dir)
		result.Targets = append(result.Targets, tr)

		if tr.Err != nil {
			logger.Error().Err(tr.Err).Str("patchDir", dir).Msg("Failed to assemble target")
			errs = multierr.Append(errs, errors.Wrapf(tr.Err, errors.GetErrorCode(tr.Err), "patch directory %s", dir))
			continue
		}
		logger.Info().
			Str("target", tr.Target).
			Int("fragments", tr.Fragments).
			Bool("changed", tr.Changed).
			Msg("Target assembled")
	}

	logger.Info().
		Int("targets", len(result.Targets)).
		Int("changed", result.Changed()).
		Int("failed", len(result.Failed())).
		Msg("Run completed")

	return result, errs
}

// ProcessTarget assembles the target of a single patch directory
func ProcessTarget(fsys afero.Fs, opts Options, patchDir string) (tr TargetResult) {
	tr.PatchDir = patchDir

	target, err := patches.TargetPath(opts.SourceRoot, opts.TargetRoot, patchDir)
	if err != nil {
		tr.Err = err
		return tr
	}
	tr.Target = target
	tag, ok := format.Detect(target)
	if !ok {
		tag = format.TagText
	}
	tr.Format = tag

	logger := logging.GetLogger("pipeline").With().
		Str("target", target).
		Str("format", string(tr.Format)).
		Logger()

	logger.Trace().Msg("Opening target")
	f, err := filesystem.OpenTarget(fsys, target)
	if err != nil {
		tr.Err = err
		return tr
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && tr.Err == nil {
			tr.Err = errors.Wrap(cerr, errors.ErrFileWrite, "close target").WithDetail("path", target)
		}
	}()

	size, err := filesystem.Size(f)
	if err != nil {
		tr.Err = err
		return tr
	}

	var existing string
	if size > 0 {
		if existing, err = filesystem.ReadAll(f); err != nil {
			tr.Err = err
			return tr
		}
		tr.Seeded = true
		logger.Trace().Int("bytes", len(existing)).Msg("Seeding with existing content")
	}

	fragments, err := patches.ListFragments(fsys, patchDir)
	if err != nil {
		tr.Err = err
		return tr
	}
	tr.Fragments = len(fragments)

	merged, err := merge.Fold(merge.Empty{}, parsedValues(fsys, logger, tr.Format, target, existing, tr.Seeded, fragments))
	if err != nil {
		tr.Err = err
		return tr
	}

	text := merge.Render(merged)
	tr.Changed = text != existing
	logChange(logger, existing, text)

	if err := filesystem.Rewrite(f, text); err != nil {
		tr.Err = err
		return tr
	}
	return tr
}

// parsedValues yields the existing target content (when seeded) and then
// each fragment, parsed with the target's format. Files are read lazily so a
// failure stops reading the rest.
func parsedValues(fsys afero.Fs, logger zerolog.Logger, tag format.Tag, target, existing string, seeded bool, fragments []string) iter.Seq2[merge.Value, error] {
	return func(yield func(merge.Value, error) bool) {
		if seeded {
			v, err := merge.Parse(tag, existing)
			if err != nil {
				err = errors.Wrap(err, errors.GetErrorCode(err), "parse existing target content").
					WithDetail("path", target)
			}
			if !yield(v, err) {
				return
			}
		}

		for _, path := range fragments {
			logger.Trace().Str("fragment", path).Msg("Opening fragment")
			text, err := filesystem.ReadFile(fsys, path)
			if err != nil {
				yield(nil, err)
				return
			}
			logger.Trace().Str("fragment", path).Int("bytes", len(text)).Msg("Read fragment")

			v, err := merge.Parse(tag, text)
			if err != nil {
				err = errors.Wrap(err, errors.GetErrorCode(err), "parse fragment").
					WithDetail("path", path)
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

// logChange logs how much of the target's text the merge rewrote
func logChange(logger zerolog.Logger, before, after string) {
	if before == after {
		logger.Debug().Msg("Target content unchanged")
		return
	}
	e := logger.Debug()
	if !e.Enabled() {
		return
	}

	dmp := diffpatch.New()
	inserted, deleted := 0, 0
	for _, d := range dmp.DiffMain(before, after, true) {
		switch d.Type {
		case diffpatch.DiffInsert:
			inserted += len(d.Text)
		case diffpatch.DiffDelete:
			deleted += len(d.Text)
		}
	}
	e.Int("inserted", inserted).
		Int("deleted", deleted).
		Int("bytes", len(after)).
		Msg("Target content changed")
}
