package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/EvilSuperstars/go-cidrman"
	"github.com/juju/errors"
	"github.com/spf13/afero"
	"lukechampine.com/uint128"

	"github.com/iplocator/iplocator/config"
	"github.com/iplocator/iplocator/ranges"
	"github.com/iplocator/iplocator/table"
)

func mainDump(conf *config.Config, out io.Writer) error {
	t, err := table.Load(afero.NewOsFs(), conf.GetTablePath())
	if err != nil {
		return errors.Annotate(err, "cannot load table")
	}

	family, err := ranges.ParseFamily(*dumpFamily)
	if err != nil {
		return errors.Trace(err)
	}

	return dumpTable(out, t, family)
}

// dumpTable prints one range per line: begin-end country/province/city
// followed by covering CIDRs for IPv4.
func dumpTable(out io.Writer, t *table.Table, family ranges.Family) error {
	begin := uint128.Zero

	for i := 0; i < t.Len(family); i++ {
		end := t.Bound(family, i)
		country, province, city := t.Resolve(t.Triple(family, i))

		beginAddr := ranges.ValueAddr(family, begin).String()
		endAddr := ranges.ValueAddr(family, end).String()
		line := fmt.Sprintf("%s-%s %s/%s/%s", beginAddr, endAddr, country, province, city)

		if family == ranges.FamilyIPv4 {
			cidrs, err := ipv4CIDRs(begin, end)
			if err != nil {
				return errors.Annotatef(err, "cannot convert %s-%s to CIDRs", beginAddr, endAddr)
			}

			line += " " + strings.Join(cidrs, ",")
		}

		if _, err := fmt.Fprintln(out, line); err != nil {
			return errors.Trace(err)
		}

		if end.Equals(family.Max()) {
			break
		}

		begin = end.Add64(1)
	}

	return nil
}

// ipv4CIDRs never passes 255.255.255.255 as a range end to cidrman: the
// last address is added as a separate block and merged back.
func ipv4CIDRs(begin, end uint128.Uint128) ([]string, error) {
	family := ranges.FamilyIPv4

	if !end.Equals(family.Max()) {
		return cidrman.IPRangeToCIDRs(ranges.ValueAddr(family, begin).String(), ranges.ValueAddr(family, end).String())
	}

	rv := []string{}

	if !begin.Equals(end) {
		cidrs, err := cidrman.IPRangeToCIDRs(
			ranges.ValueAddr(family, begin).String(),
			ranges.ValueAddr(family, end.Sub64(1)).String())
		if err != nil {
			return nil, err
		}

		rv = append(rv, cidrs...)
	}

	return cidrman.MergeCIDRs(append(rv, "255.255.255.255/32"))
}
