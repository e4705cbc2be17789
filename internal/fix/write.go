package fix

import (
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrWrite wraps every failure to store a migrated file.
	ErrWrite = errors.Base("write failed")
	// ErrSamePath is returned when the sibling output would overwrite its input.
	ErrSamePath = errors.Base("output path equals input path")
	// ErrNotRegular is returned for targets that are not regular files.
	ErrNotRegular = errors.Base("not a regular file")
)

// Target chooses where apply stores the migrated source.
type Target struct {
	InPlace bool
	// Suffix replaces the input extension: tb.py -> tb.migrated.py.
	Suffix string
}

// OutPath returns the output path for path.
func (t Target) OutPath(path string) string {
	if t.InPlace {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + t.Suffix
}

// Write stores content for path and returns the path written.
// The input file's permission bits carry over; the write goes through a
// temporary file and a rename so readers never observe a partial file.
func (t Target) Write(path string, content []byte) (string, error) {
	out := t.OutPath(path)
	if !t.InPlace && filepath.Clean(out) == filepath.Clean(path) {
		return "", errors.WrapWith(errors.Errorf("%s", path), ErrSamePath)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		if !info.Mode().IsRegular() {
			return "", errors.WrapWith(errors.Errorf("%s", path), ErrNotRegular)
		}
		mode = info.Mode().Perm()
	}
	if info, err := os.Lstat(out); err == nil && !info.Mode().IsRegular() {
		return "", errors.WrapWith(errors.Errorf("%s", out), ErrNotRegular)
	}

	if err := writeAtomic(out, content, mode); err != nil {
		return "", errors.WrapWith(err, ErrWrite)
	}
	return out, nil
}

func writeAtomic(path string, content []byte, mode os.FileMode) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".cocomig-*")
	if err != nil {
		return errors.Errorf("write %s: %w", path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()
	if _, err = f.Write(content); err != nil {
		_ = f.Close()
		return errors.Errorf("write %s: %w", path, err)
	}
	if err = f.Chmod(mode); err != nil {
		_ = f.Close()
		return errors.Errorf("chmod %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return errors.Errorf("close %s: %w", path, err)
	}
	// атомарная замена
	if err = os.Rename(tmp, path); err != nil {
		return errors.Errorf("rename %s: %w", path, err)
	}
	return nil
}
