package table

import (
	log "github.com/sirupsen/logrus"

	"github.com/iplocator/iplocator/ranges"
)

// Encoder projects ingested ranges into a Table. String dictionaries
// are shared between families.
type Encoder struct {
	countries *Dictionary
	provinces *Dictionary
	cities    *Dictionary
	table     Table
}

// Encode appends ranges of the family to the table. Ranges must be
// already sorted and gap-free, encoder does not merge or reorder them.
// It is expected to be called once per family.
func (e *Encoder) Encode(family ranges.Family, rngs []ranges.Range) {
	for _, v := range rngs {
		triple := Triple{
			e.countries.Intern(v.Country),
			e.provinces.Intern(v.Province),
			e.cities.Intern(v.City),
		}

		if family == ranges.FamilyIPv4 {
			e.table.IPv4Bounds = append(e.table.IPv4Bounds, uint32(v.End.Lo))
			e.table.IPv4Triples = append(e.table.IPv4Triples, triple)
		} else {
			e.table.IPv6Bounds = append(e.table.IPv6Bounds, v.End)
			e.table.IPv6Triples = append(e.table.IPv6Triples, triple)
		}
	}

	log.WithFields(log.Fields{
		"family": family.String(),
		"ranges": len(rngs),
	}).Debug("Family is encoded")
}

// Table finalizes string tables and returns the encoded table.
func (e *Encoder) Table() *Table {
	rv := e.table

	rv.Countries = e.countries.Values()
	rv.Provinces = e.provinces.Values()
	rv.Cities = e.cities.Values()

	log.WithFields(log.Fields{
		"ipv4":      len(rv.IPv4Bounds),
		"ipv6":      len(rv.IPv6Bounds),
		"countries": len(rv.Countries),
		"provinces": len(rv.Provinces),
		"cities":    len(rv.Cities),
	}).Info("Table is encoded")

	return &rv
}

func NewEncoder() *Encoder {
	return &Encoder{
		countries: NewDictionary(),
		provinces: NewDictionary(),
		cities:    NewDictionary(),
	}
}
