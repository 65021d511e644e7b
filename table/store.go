package table

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Save writes a table artifact to the path. Data goes into a temporary
// file in the same directory which is renamed into the path afterwards,
// so readers never see a half-written artifact.
func Save(fs afero.Fs, path string, t *Table) error {
	data, err := t.MarshalBinary()
	if err != nil {
		return errors.Annotate(err, "cannot serialize table")
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.Annotatef(err, "cannot create directory %s", dir)
	}

	tempFile, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp_")
	if err != nil {
		return errors.Annotate(err, "cannot create temporary file")
	}

	defer fs.Remove(tempFile.Name()) // nolint: errcheck

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close() // nolint: errcheck
		return errors.Annotate(err, "cannot write table")
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close() // nolint: errcheck
		return errors.Annotate(err, "cannot sync table")
	}

	if err := tempFile.Close(); err != nil {
		return errors.Annotate(err, "cannot close table")
	}

	if err := fs.Rename(tempFile.Name(), path); err != nil {
		return errors.Annotatef(err, "cannot move table to %s", path)
	}

	log.WithFields(log.Fields{
		"path": path,
		"size": len(data),
	}).Info("Table is saved")

	return nil
}

// Load reads and validates a table artifact.
func Load(fs afero.Fs, path string) (*Table, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(err, "table "+path+" does not exist")
		}

		return nil, errors.Annotatef(err, "cannot read table %s", path)
	}

	t, err := UnmarshalTable(data)
	if err != nil {
		return nil, errors.Annotatef(err, "cannot load table %s", path)
	}

	return t, nil
}
