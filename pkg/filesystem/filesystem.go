package filesystem

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotpatch/pkg/errors"
	"github.com/spf13/afero"
)

const (
	// DirPerm is used for parent directories created for new targets
	DirPerm os.FileMode = 0755

	// FilePerm is used when a target file is created
	FilePerm os.FileMode = 0644
)

// NewOS returns the operating system filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// OpenTarget opens path for reading and writing, creating it and any missing
// parent directories.
func OpenTarget(fsys afero.Fs, path string) (afero.File, error) {
	if err := fsys.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileOpen, "create target directory").
			WithDetail("path", path)
	}
	f, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE, FilePerm)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileOpen, "open target").
			WithDetail("path", path)
	}
	return f, nil
}

// Size returns the current size of an open file
func Size(f afero.File) (int64, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrFileRead, "stat file").
			WithDetail("path", f.Name())
	}
	return info.Size(), nil
}

// ReadAll reads the rest of an open file as text
func ReadAll(f afero.File) (string, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileRead, "read file").
			WithDetail("path", f.Name())
	}
	return string(data), nil
}

// ReadFile opens path read-only and returns its content
func ReadFile(fsys afero.Fs, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileOpen, "open file").
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()
	return ReadAll(f)
}

// Rewrite replaces the whole content of f with text: it writes from offset
// zero and truncates whatever the previous content left past the new end.
func Rewrite(f afero.File, text string) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "rewind file").
			WithDetail("path", f.Name())
	}
	if _, err := io.WriteString(f, text); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "write file").
			WithDetail("path", f.Name())
	}
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "get file position").
			WithDetail("path", f.Name())
	}
	if err := f.Truncate(pos); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "truncate file").
			WithDetail("path", f.Name())
	}
	return nil
}
