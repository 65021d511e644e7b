package table

// Dictionary interns strings into stable indices. Index 0 is always an
// empty string which means unknown. Indices follow first-seen order and
// are never reassigned.
type Dictionary struct {
	values []string
	index  map[string]uint32
}

// Intern returns an index of the value, adding it if this is the first
// time the value is seen.
func (d *Dictionary) Intern(value string) uint32 {
	if idx, ok := d.index[value]; ok {
		return idx
	}

	idx := uint32(len(d.values))

	d.values = append(d.values, value)
	d.index[value] = idx

	return idx
}

// Len returns a number of interned strings including the empty one.
func (d *Dictionary) Len() int {
	return len(d.values)
}

// Values returns a string table where position is an index.
func (d *Dictionary) Values() []string {
	rv := make([]string, len(d.values))
	copy(rv, d.values)

	return rv
}

func NewDictionary() *Dictionary {
	return &Dictionary{
		values: []string{""},
		index:  map[string]uint32{"": 0},
	}
}
