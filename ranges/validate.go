package ranges

import (
	"github.com/juju/errors"
	"lukechampine.com/uint128"
)

// ErrNotCovered is returned by Validate if ranges do not form a complete
// partition of the family address space.
var ErrNotCovered = errors.New("ranges do not cover address space")

// Validate checks that ranges are contiguous, non-overlapping, sorted
// and cover [0, family max].
func Validate(family Family, ranges []Range) error {
	if len(ranges) == 0 {
		return errors.Annotate(ErrNotCovered, "no ranges")
	}

	if !ranges[0].Begin.IsZero() {
		return errors.Annotatef(ErrNotCovered, "first range begins at %s", ValueAddr(family, ranges[0].Begin))
	}

	for i := range ranges {
		current := ranges[i]

		if current.Family != family {
			return errors.Errorf("range %d belongs to %s, expected %s", i, current.Family, family)
		}

		if current.Begin.Cmp(current.End) > 0 {
			return errors.Errorf("range %d has begin > end", i)
		}

		if i == 0 {
			continue
		}

		prevEnd := ranges[i-1].End
		if prevEnd.Equals(uint128.Max) || !prevEnd.Add64(1).Equals(current.Begin) {
			return errors.Annotatef(ErrNotCovered, "range %d does not start right after range %d", i, i-1)
		}
	}

	if last := ranges[len(ranges)-1].End; !last.Equals(family.Max()) {
		return errors.Annotatef(ErrNotCovered, "last range ends at %s", ValueAddr(family, last))
	}

	return nil
}
