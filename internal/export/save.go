package export

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsafeFilename is returned by WriteFile for names that would escape the
// target directory.
var ErrUnsafeFilename = errors.New("export: filename contains a path separator")

// WriteFile stores a into dir under a.Filename and returns the final path.
// The data goes to a temp file first and is renamed into place, so a failed
// write never leaves a partial file behind.
func WriteFile(dir string, a Artifact) (string, error) {
	if a.Filename == "" || strings.ContainsAny(a.Filename, `/\`) || a.Filename == "." || a.Filename == ".." {
		return "", ErrUnsafeFilename
	}
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+a.Filename+".*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "export: create temp file")
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(a.Data); err != nil {
		cleanup()
		return "", errors.Wrapf(err, "export: write %s", a.Filename)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return "", errors.Wrapf(err, "export: sync %s", a.Filename)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", errors.Wrapf(err, "export: close %s", a.Filename)
	}

	dst := filepath.Join(dir, a.Filename)
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return "", errors.Wrapf(err, "export: rename to %s", dst)
	}
	return dst, nil
}
