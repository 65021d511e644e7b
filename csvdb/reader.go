package csvdb

import (
	"encoding/csv"
	"io"

	log "github.com/sirupsen/logrus"
)

// RecordMaker is a type which converts parsed CSV record to the Record instance.
type RecordMaker func([]string) (*Record, error)

// CSVReader is a wrapper over csv.Reader to convert each row into Record
// instance. Unlike lenient readers, a row which cannot be converted is an
// error: a partially read database must not become an index.
type CSVReader struct {
	reader     *csv.Reader
	makeRecord RecordMaker
	source     string
}

// Read returns the next record or io.EOF.
func (cr *CSVReader) Read() (*Record, error) {
	data, err := cr.next()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}

		line := 0
		if parseErr, ok := err.(*csv.ParseError); ok {
			line = parseErr.Line
		}

		return nil, &SourceParseError{Source: cr.source, Line: line, Err: err}
	}

	record, err := cr.makeRecord(data)
	if err != nil {
		log.WithFields(log.Fields{
			"source": cr.source,
			"line":   cr.Line(),
			"data":   data,
		}).Debug("Cannot parse record")

		return nil, &SourceParseError{Source: cr.source, Line: cr.Line(), Err: err}
	}

	return record, nil
}

func (cr *CSVReader) next() (data []string, err error) {
	for err == nil && len(data) == 0 {
		data, err = cr.reader.Read()
	}

	return
}

// Line returns a line number of the last returned record.
func (cr *CSVReader) Line() int {
	line, _ := cr.reader.FieldPos(0)

	return line
}

// NewCSVReader converts given io.Reader instance into CSVReader. Source
// is a name used in error messages, usually a path.
func NewCSVReader(filefp io.Reader, source string, makeRecord RecordMaker) *CSVReader {
	reader := csv.NewReader(filefp)
	reader.ReuseRecord = true
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	return &CSVReader{
		reader:     reader,
		makeRecord: makeRecord,
		source:     source,
	}
}
