package ranges

import (
	"sort"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"lukechampine.com/uint128"

	"github.com/iplocator/iplocator/csvdb"
)

// Range is a contiguous inclusive interval of addresses mapped to one
// location triple. Empty strings mean unknown.
type Range struct {
	Family   Family
	Begin    uint128.Uint128
	End      uint128.Uint128
	Country  string
	Province string
	City     string
}

// Gap tells if this range is a synthesized filler.
func (r Range) Gap() bool {
	return r.Country == "" && r.Province == "" && r.City == ""
}

// SourceRecord is a raw record with its origin, used for error
// reporting.
type SourceRecord struct {
	csvdb.Record

	Source string
	Line   int
}

type parsedRecord struct {
	Range

	source string
	line   int
}

// Ingest converts raw records of a single family into a sorted,
// gap-filled sequence of ranges which covers the whole address space
// of the family.
//
// Records are ordered by their begin address before gaps are computed.
// A record which cannot be parsed, has begin > end or overlaps with a
// previous one fails the whole ingestion.
func Ingest(family Family, records []SourceRecord) ([]Range, error) {
	parsed := make([]parsedRecord, 0, len(records))

	for i := range records {
		rng, err := parseRecord(family, &records[i])
		if err != nil {
			return nil, err
		}

		parsed = append(parsed, parsedRecord{
			Range:  rng,
			source: records[i].Source,
			line:   records[i].Line,
		})
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].Begin.Cmp(parsed[j].Begin) < 0
	})

	rv := make([]Range, 0, 2*len(parsed)+1)
	prevEnd := uint128.Zero
	started := false
	gaps := 0

	for _, current := range parsed {
		var gapBegin uint128.Uint128

		switch {
		case !started:
			gapBegin = uint128.Zero
		case prevEnd.Cmp(current.Begin) >= 0:
			// prevEnd >= begin also covers prevEnd == family max.
			return nil, &csvdb.SourceParseError{
				Source: current.source,
				Line:   current.line,
				Err: errors.Errorf("range %s-%s overlaps with a previous range ending at %s",
					ValueAddr(family, current.Begin),
					ValueAddr(family, current.End),
					ValueAddr(family, prevEnd)),
			}
		default:
			gapBegin = prevEnd.Add64(1)
		}

		if gapBegin.Cmp(current.Begin) < 0 {
			rv = append(rv, Range{
				Family: family,
				Begin:  gapBegin,
				End:    current.Begin.Sub64(1),
			})
			gaps++
		}

		rv = append(rv, current.Range)
		prevEnd = current.End
		started = true
	}

	switch {
	case !started:
		rv = append(rv, Range{Family: family, Begin: uint128.Zero, End: family.Max()})
		gaps++
	case prevEnd.Cmp(family.Max()) < 0:
		rv = append(rv, Range{Family: family, Begin: prevEnd.Add64(1), End: family.Max()})
		gaps++
	}

	sort.SliceStable(rv, func(i, j int) bool {
		return rv[i].End.Cmp(rv[j].End) < 0
	})

	log.WithFields(log.Fields{
		"family":  family.String(),
		"records": len(records),
		"gaps":    gaps,
		"ranges":  len(rv),
	}).Info("Ranges are ingested")

	return rv, nil
}

func parseRecord(family Family, record *SourceRecord) (Range, error) {
	begin, err := ParseAddr(family, record.Begin)
	if err != nil {
		return Range{}, &csvdb.SourceParseError{
			Source: record.Source,
			Line:   record.Line,
			Err:    errors.Annotatef(err, "incorrect begin address %q", record.Begin),
		}
	}

	end, err := ParseAddr(family, record.End)
	if err != nil {
		return Range{}, &csvdb.SourceParseError{
			Source: record.Source,
			Line:   record.Line,
			Err:    errors.Annotatef(err, "incorrect end address %q", record.End),
		}
	}

	if begin.Cmp(end) > 0 {
		return Range{}, &csvdb.SourceParseError{
			Source: record.Source,
			Line:   record.Line,
			Err:    errors.Errorf("begin address %s is greater than end address %s", record.Begin, record.End),
		}
	}

	return Range{
		Family:   family,
		Begin:    begin,
		End:      end,
		Country:  record.Country,
		Province: record.Province,
		City:     record.City,
	}, nil
}
