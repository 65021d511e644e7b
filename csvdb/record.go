package csvdb

import (
	"strings"

	"github.com/juju/errors"
)

// Column positions of GeoLite-style city databases:
// begin, end, country, province, <unused>, city.
const (
	ColumnBegin = iota
	ColumnEnd
	ColumnCountry
	ColumnProvince
	columnUnused
	ColumnCity

	ColumnsCount
)

// Record presents an extracted data from CSV record. Addresses are kept
// as text, they are parsed by the ingestor which knows the address family.
type Record struct {
	Begin    string
	End      string
	Country  string
	Province string
	City     string
}

// NewRecord creates new CSV record.
func NewRecord(begin, end, country, province, city string) (*Record, error) {
	begin = strings.TrimSpace(begin)
	end = strings.TrimSpace(end)

	if begin == "" {
		return nil, errors.New("begin address is empty")
	}

	if end == "" {
		return nil, errors.New("end address is empty")
	}

	return &Record{
		Begin:    begin,
		End:      end,
		Country:  country,
		Province: province,
		City:     city,
	}, nil
}

// MakeCityRecord is a RecordMaker for the 6-column city layout. The
// fifth column is ignored.
func MakeCityRecord(data []string) (*Record, error) {
	if len(data) < ColumnsCount {
		return nil, errors.Errorf("expected %d columns, got %d", ColumnsCount, len(data))
	}

	return NewRecord(data[ColumnBegin],
		data[ColumnEnd],
		data[ColumnCountry],
		data[ColumnProvince],
		data[ColumnCity])
}
