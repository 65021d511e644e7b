package csvdb

import (
	"archive/zip"
	"bufio"
	"compress/gzip"
	"io"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/afero"
)

// ErrEmptyArchive is returned if zip archive has no files inside.
var ErrEmptyArchive = errors.New("cannot find a database file in archive")

type multiCloser struct {
	io.Reader

	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var rv error

	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && rv == nil {
			rv = err
		}
	}

	return rv
}

// OpenSource opens a source database. Zip archives are read from their
// first entry, .gz files are decompressed, everything else is read as is.
// Any failure is returned as SourceIOError.
func OpenSource(fs afero.Fs, path string) (io.ReadCloser, error) {
	fp, err := fs.Open(path)
	if err != nil {
		return nil, &SourceIOError{Path: path, Err: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		rc, err := openZip(fp)
		if err != nil {
			fp.Close() // nolint: errcheck
			return nil, &SourceIOError{Path: path, Err: err}
		}

		return &multiCloser{Reader: rc, closers: []io.Closer{fp, rc}}, nil
	case ".gz":
		gzipFile, err := gzip.NewReader(bufio.NewReader(fp))
		if err != nil {
			fp.Close() // nolint: errcheck
			return nil, &SourceIOError{Path: path, Err: errors.Annotate(err, "incorrect gzip archive")}
		}

		return &multiCloser{Reader: gzipFile, closers: []io.Closer{fp, gzipFile}}, nil
	}

	return &multiCloser{Reader: bufio.NewReader(fp), closers: []io.Closer{fp}}, nil
}

func openZip(fp afero.File) (io.ReadCloser, error) {
	stat, err := fp.Stat()
	if err != nil {
		return nil, errors.Annotate(err, "cannot stat archive")
	}

	archive, err := zip.NewReader(fp, stat.Size())
	if err != nil {
		return nil, errors.Annotate(err, "incorrect zip archive")
	}

	for _, v := range archive.File {
		if v.FileInfo().IsDir() {
			continue
		}

		rc, err := v.Open()
		if err != nil {
			return nil, errors.Annotatef(err, "cannot open %s in archive", v.Name)
		}

		return rc, nil
	}

	return nil, ErrEmptyArchive
}
