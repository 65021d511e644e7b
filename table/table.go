package table

import (
	"github.com/juju/errors"
	"lukechampine.com/uint128"

	"github.com/iplocator/iplocator/ranges"
)

// ErrCorruptedTable is returned if a table violates its invariants or
// its serialized form cannot be trusted.
var ErrCorruptedTable = errors.New("table is corrupted")

// Triple keeps indices of country, province and city in the string
// tables.
type Triple [3]uint32

// Table is the encoded, immutable index used for lookups. For each
// family, bounds are upper ends of ranges sorted ascending and triples
// are aligned with them by position.
type Table struct {
	Countries []string
	Provinces []string
	Cities    []string

	IPv4Bounds  []uint32
	IPv4Triples []Triple

	IPv6Bounds  []uint128.Uint128
	IPv6Triples []Triple
}

// Len returns a number of ranges of the family.
func (t *Table) Len(family ranges.Family) int {
	if family == ranges.FamilyIPv4 {
		return len(t.IPv4Bounds)
	}

	return len(t.IPv6Bounds)
}

// Bound returns an upper bound of the idx-th range of the family.
func (t *Table) Bound(family ranges.Family, idx int) uint128.Uint128 {
	if family == ranges.FamilyIPv4 {
		return uint128.From64(uint64(t.IPv4Bounds[idx]))
	}

	return t.IPv6Bounds[idx]
}

// Triple returns location indices of the idx-th range of the family.
func (t *Table) Triple(family ranges.Family, idx int) Triple {
	if family == ranges.FamilyIPv4 {
		return t.IPv4Triples[idx]
	}

	return t.IPv6Triples[idx]
}

// Search returns the lowest index i such that bound[i] >= value. If
// there is no such index, Len(family) is returned.
func (t *Table) Search(family ranges.Family, value uint128.Uint128) int {
	if family == ranges.FamilyIPv4 {
		if value.Hi != 0 || value.Lo > 1<<32-1 {
			return len(t.IPv4Bounds)
		}

		return lowerBound32(t.IPv4Bounds, uint32(value.Lo))
	}

	return lowerBound128(t.IPv6Bounds, value)
}

// Find returns a location triple of the range which contains value.
// The second return value is false only if value is out of table
// bounds which is impossible for a valid table.
func (t *Table) Find(family ranges.Family, value uint128.Uint128) (Triple, bool) {
	idx := t.Search(family, value)
	if idx >= t.Len(family) {
		return Triple{}, false
	}

	return t.Triple(family, idx), true
}

// Resolve converts indices into strings. An index without a string
// resolves to an empty string.
func (t *Table) Resolve(triple Triple) (country, province, city string) {
	return decode(t.Countries, triple[0]),
		decode(t.Provinces, triple[1]),
		decode(t.Cities, triple[2])
}

// Validate checks table invariants: aligned arrays, strictly increasing
// bounds, full domain coverage and reserved empty strings.
func (t *Table) Validate() error {
	for name, values := range map[string][]string{
		"countries": t.Countries,
		"provinces": t.Provinces,
		"cities":    t.Cities,
	} {
		if len(values) == 0 || values[0] != "" {
			return errors.Annotatef(ErrCorruptedTable, "%s table has no reserved empty value", name)
		}
	}

	for _, family := range ranges.Families {
		if err := t.validateFamily(family); err != nil {
			return errors.Annotatef(err, "incorrect %s table", family)
		}
	}

	return nil
}

func (t *Table) validateFamily(family ranges.Family) error {
	size := t.Len(family)

	triplesSize := len(t.IPv4Triples)
	if family == ranges.FamilyIPv6 {
		triplesSize = len(t.IPv6Triples)
	}

	switch {
	case size == 0:
		return errors.Annotate(ErrCorruptedTable, "no ranges")
	case size != triplesSize:
		return errors.Annotatef(ErrCorruptedTable, "%d bounds but %d triples", size, triplesSize)
	}

	for i := 1; i < size; i++ {
		if t.Bound(family, i-1).Cmp(t.Bound(family, i)) >= 0 {
			return errors.Annotatef(ErrCorruptedTable, "bound %d is not greater than bound %d", i, i-1)
		}
	}

	if !t.Bound(family, size-1).Equals(family.Max()) {
		return errors.Annotate(ErrCorruptedTable, "last bound is not a maximal address")
	}

	return nil
}

func decode(list []string, key uint32) string {
	if uint64(key) >= uint64(len(list)) {
		return ""
	}

	return list[key]
}

func lowerBound32(bounds []uint32, value uint32) int {
	lo, hi := 0, len(bounds)

	for lo < hi {
		mid := int(uint(lo+hi) >> 1)

		if bounds[mid] < value {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo
}

func lowerBound128(bounds []uint128.Uint128, value uint128.Uint128) int {
	lo, hi := 0, len(bounds)

	for lo < hi {
		mid := int(uint(lo+hi) >> 1)

		if bounds[mid].Cmp(value) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo
}
