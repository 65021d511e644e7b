package sources

import (
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/iplocator/iplocator/ranges"
)

// Read reads records of the family from the given files, concatenated
// in order. If limit is positive, at most limit records are taken from
// each file.
func Read(fs afero.Fs, family ranges.Family, paths []string, limit int) ([]ranges.SourceRecord, error) {
	rv := []ranges.SourceRecord{}

	for _, path := range paths {
		var (
			records []ranges.SourceRecord
			err     error
		)

		format := DetectFormat(path)

		switch format {
		case FormatMMDB:
			records, err = readMMDB(fs, family, path, limit)
		default:
			records, err = readCSV(fs, path, limit)
		}

		if err != nil {
			return nil, errors.Annotatef(err, "cannot read %s source %s", family, path)
		}

		log.WithFields(log.Fields{
			"path":    path,
			"format":  format,
			"family":  family.String(),
			"records": len(records),
		}).Info("Source is read")

		rv = append(rv, records...)
	}

	return rv, nil
}
