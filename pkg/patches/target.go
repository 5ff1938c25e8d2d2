package patches

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotpatch/pkg/errors"
)

// DotPrefix is rewritten to "." at the start of a path component
const DotPrefix = "dot-"

// Canonicalize turns the path of a patch directory, relative to the source
// root, into the path of its target relative to the target root.
func Canonicalize(rel string) string {
	rel = strings.TrimSuffix(filepath.Clean(rel), PatchDirSuffix)

	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i, part := range parts {
		if strings.HasPrefix(part, DotPrefix) {
			parts[i] = "." + strings.TrimPrefix(part, DotPrefix)
		}
	}
	return filepath.FromSlash(strings.Join(parts, "/"))
}

// TargetPath maps patchDir, found under sourceRoot, to the file it produces
// under targetRoot.
func TargetPath(sourceRoot, targetRoot, patchDir string) (string, error) {
	rel, err := filepath.Rel(filepath.Clean(sourceRoot), filepath.Clean(patchDir))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrStripPrefix, "patch directory is not under the patch root").
			WithDetail("path", patchDir).
			WithDetail("root", sourceRoot)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.New(errors.ErrStripPrefix, "patch directory is not under the patch root").
			WithDetail("path", patchDir).
			WithDetail("root", sourceRoot)
	}

	name := Canonicalize(rel)
	if base := filepath.Base(name); base == "" || base == "." || base == ".." {
		return "", errors.Newf(errors.ErrInvalidInput, "patch directory %q does not name a target file", patchDir).
			WithDetail("path", patchDir)
	}

	return filepath.Join(targetRoot, name), nil
}
