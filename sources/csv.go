package sources

import (
	"io"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/iplocator/iplocator/csvdb"
	"github.com/iplocator/iplocator/ranges"
)

func readCSV(fs afero.Fs, path string, limit int) ([]ranges.SourceRecord, error) {
	file, err := csvdb.OpenSource(fs, path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csvdb.NewCSVReader(file, path, csvdb.MakeCityRecord)
	rv := []ranges.SourceRecord{}

	for limit <= 0 || len(rv) < limit {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.Trace(err)
		}

		rv = append(rv, ranges.SourceRecord{
			Record: *record,
			Source: path,
			Line:   reader.Line(),
		})
	}

	log.WithFields(log.Fields{
		"path":    path,
		"records": len(rv),
		"limit":   limit,
	}).Debug("CSV source is read")

	return rv, nil
}
