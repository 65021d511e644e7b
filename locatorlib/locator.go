package locatorlib

import (
	"time"

	"github.com/iplocator/iplocator/ranges"
	"github.com/iplocator/iplocator/table"
)

// Locator resolves addresses using an immutable table. It is safe for
// concurrent use.
type Locator struct {
	table  *table.Table
	logger Logger
	stats  map[ranges.Family]*UsageStats
	loaded time.Time
}

// Lookup returns a location of the address. Addresses which fall into
// gaps resolve to a location with empty fields. An error is returned
// only if address text is malformed.
func (l *Locator) Lookup(address string) (Location, error) {
	family := ranges.DetectFamily(address)
	location, err := l.lookup(family, address)

	l.stats[family].Used(err)

	result := "ok"

	switch {
	case err != nil:
		result = "error"

		l.logger.LookupError(address, err)
	case !location.Known():
		result = "unknown"
	}

	metricLookups.WithLabelValues(family.String(), result).Inc()

	return location, err
}

func (l *Locator) lookup(family ranges.Family, address string) (Location, error) {
	value, err := ranges.ParseAddr(family, address)
	if err != nil {
		return Location{}, &AddressParseError{
			Address: address,
			Err:     err,
		}
	}

	rv := Location{
		IP: address,
	}

	if triple, ok := l.table.Find(family, value); ok {
		rv.Country, rv.Province, rv.City = l.table.Resolve(triple)
	}

	return rv, nil
}

// LookupAll resolves addresses keeping their order. Duplicates are
// resolved once.
func (l *Locator) LookupAll(addresses []string) ([]Location, error) {
	rv := make([]Location, len(addresses))
	seen := make(map[string]int, len(addresses))

	for i, v := range addresses {
		if idx, ok := seen[v]; ok {
			rv[i] = rv[idx]

			continue
		}

		location, err := l.Lookup(v)
		if err != nil {
			return nil, err
		}

		rv[i] = location
		seen[v] = i
	}

	return rv, nil
}

// LoadedAt returns a time when the table was attached to the locator.
func (l *Locator) LoadedAt() time.Time {
	return l.loaded
}

// UsageStats returns lookup statistics per family.
func (l *Locator) UsageStats() []*UsageStats {
	rv := make([]*UsageStats, 0, len(ranges.Families))

	for _, v := range ranges.Families {
		rv = append(rv, l.stats[v])
	}

	return rv
}

// NewLocator creates a new locator over a loaded table.
func NewLocator(t *table.Table, logger Logger) *Locator {
	rv := &Locator{
		table:  t,
		logger: logger,
		stats:  make(map[ranges.Family]*UsageStats, len(ranges.Families)),
		loaded: time.Now(),
	}

	for _, v := range ranges.Families {
		rv.stats[v] = &UsageStats{
			Name:   v.String(),
			Ranges: t.Len(v),
		}

		metricTableRanges.WithLabelValues(v.String()).Set(float64(t.Len(v)))
	}

	return rv
}
