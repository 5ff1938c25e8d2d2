package patches

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/dotpatch/pkg/errors"
	"github.com/arthur-debert/dotpatch/pkg/logging"
	"github.com/spf13/afero"
)

// ignoreList holds the basenames that are never fragments. It is not
// modified after initialization.
var ignoreList = map[string]struct{}{
	"AGENTS.md": {},
	"README.md": {},
}

// IsIgnored reports whether a file with this basename is skipped
func IsIgnored(name string) bool {
	_, ok := ignoreList[name]
	return ok
}

// IgnoreList returns the ignored basenames, sorted
func IgnoreList() []string {
	names := make([]string, 0, len(ignoreList))
	for name := range ignoreList {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListFragments returns the fragment files of a patch directory in merge
// order. Subdirectories and ignored files are skipped.
func ListFragments(fsys afero.Fs, dir string) ([]string, error) {
	logger := logging.GetLogger("patches.fragments")

	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDirList, "cannot list fragments").
			WithDetail("path", dir)
	}

	// afero.ReadDir sorts by name already; keep it explicit
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var fragments []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			logger.Trace().Str("name", name).Msg("Skipping directory")
			continue
		}
		if IsIgnored(name) {
			logger.Trace().Str("name", name).Msg("Skipping ignored file")
			continue
		}
		fragments = append(fragments, filepath.Join(dir, name))
	}

	return fragments, nil
}
