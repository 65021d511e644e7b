package ranges

import (
	"net/netip"
	"strings"

	"github.com/juju/errors"
	"lukechampine.com/uint128"
)

// Family is an address family of the range.
type Family uint8

const (
	FamilyIPv4 Family = iota
	FamilyIPv6
)

// Families lists all supported families in the order they are encoded.
var Families = []Family{FamilyIPv4, FamilyIPv6}

var maxIPv4 = uint128.From64(1<<32 - 1)

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	}

	return "unknown"
}

// Max returns the largest address value of the family.
func (f Family) Max() uint128.Uint128 {
	if f == FamilyIPv4 {
		return maxIPv4
	}

	return uint128.Max
}

// ParseFamily converts a family name (ipv4, ipv6, 4, 6) into Family.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(name) {
	case "ipv4", "v4", "4":
		return FamilyIPv4, nil
	case "ipv6", "v6", "6":
		return FamilyIPv6, nil
	}

	return 0, errors.Errorf("unknown address family %q", name)
}

// DetectFamily picks a family of the address text: anything with a colon
// is IPv6.
func DetectFamily(text string) Family {
	if strings.Contains(text, ":") {
		return FamilyIPv6
	}

	return FamilyIPv4
}

// ParseAddr parses text as an address of the given family and returns
// its integer value. IPv4-mapped IPv6 addresses stay in IPv6 domain.
func ParseAddr(family Family, text string) (uint128.Uint128, error) {
	addr, err := netip.ParseAddr(text)
	if err != nil {
		return uint128.Zero, err
	}

	return AddrValue(family, addr)
}

// AddrValue converts a parsed address into integer value of the family.
func AddrValue(family Family, addr netip.Addr) (uint128.Uint128, error) {
	if addr.Zone() != "" {
		return uint128.Zero, errors.Errorf("zoned address %s is not supported", addr)
	}

	switch {
	case family == FamilyIPv4 && addr.Is4():
		raw := addr.As4()

		return uint128.From64(uint64(raw[0])<<24 | uint64(raw[1])<<16 | uint64(raw[2])<<8 | uint64(raw[3])), nil
	case family == FamilyIPv6 && addr.Is6():
		raw := addr.As16()

		return uint128.FromBytesBE(raw[:]), nil
	}

	return uint128.Zero, errors.Errorf("%s is not an %s address", addr, family)
}

// ValueAddr converts integer value back into an address of the family.
func ValueAddr(family Family, value uint128.Uint128) netip.Addr {
	if family == FamilyIPv4 {
		v := uint32(value.Lo)

		return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
	}

	var raw [16]byte

	value.PutBytesBE(raw[:])

	return netip.AddrFrom16(raw)
}
