package patches

import (
	"os"
	"strings"

	"github.com/arthur-debert/dotpatch/pkg/errors"
	"github.com/arthur-debert/dotpatch/pkg/logging"
	"github.com/spf13/afero"
)

// PatchDirSuffix marks a directory as a patch directory
const PatchDirSuffix = ".d"

// FindPatchDirs returns every patch directory below root, in lexical order.
// The root itself is never a patch directory.
func FindPatchDirs(fsys afero.Fs, root string) ([]string, error) {
	logger := logging.GetLogger("patches.discovery")
	logger.Trace().Str("root", root).Msg("Searching for patch directories")

	info, err := fsys.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrDirList, "patch root does not exist").
				WithDetail("path", root)
		}
		return nil, errors.Wrap(err, errors.ErrDirList, "cannot access patch root").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrDirList, "patch root is not a directory").
			WithDetail("path", root)
	}

	var dirs []string
	err = afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root || !info.IsDir() {
			return nil
		}
		if strings.HasSuffix(info.Name(), PatchDirSuffix) {
			logger.Trace().Str("path", path).Msg("Found patch directory")
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDirList, "cannot walk patch root").
			WithDetail("path", root)
	}

	logger.Debug().Int("count", len(dirs)).Msg("Found patch directories")
	return dirs, nil
}
