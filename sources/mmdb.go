package sources

import (
	"net"
	"net/netip"

	"github.com/juju/errors"
	"github.com/oschwald/geoip2-golang"
	"github.com/oschwald/maxminddb-golang"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/iplocator/iplocator/csvdb"
	"github.com/iplocator/iplocator/ranges"
)

const mmdbLanguage = "en"

func readMMDB(fs afero.Fs, family ranges.Family, path string, limit int) ([]ranges.SourceRecord, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &csvdb.SourceIOError{Path: path, Err: err}
	}

	reader, err := maxminddb.FromBytes(data)
	if err != nil {
		return nil, &csvdb.SourceIOError{Path: path, Err: errors.Annotate(err, "incorrect mmdb database")}
	}
	defer reader.Close()

	networks := reader.Networks(maxminddb.SkipAliasedNetworks)
	rv := []ranges.SourceRecord{}
	skipped := 0

	for networks.Next() && (limit <= 0 || len(rv) < limit) {
		city := geoip2.City{}

		network, err := networks.Network(&city)
		if err != nil {
			return nil, &csvdb.SourceParseError{Source: path, Err: err}
		}

		if networkFamily(network) != family {
			skipped++

			continue
		}

		record, err := networkRecord(family, network, &city)
		if err != nil {
			return nil, &csvdb.SourceParseError{Source: path, Err: err}
		}

		rv = append(rv, ranges.SourceRecord{
			Record: *record,
			Source: path,
		})
	}

	if err := networks.Err(); err != nil {
		return nil, &csvdb.SourceIOError{Path: path, Err: err}
	}

	log.WithFields(log.Fields{
		"path":    path,
		"family":  family.String(),
		"records": len(rv),
		"skipped": skipped,
		"limit":   limit,
	}).Debug("MMDB source is read")

	return rv, nil
}

func networkFamily(network *net.IPNet) ranges.Family {
	if len(network.IP) == net.IPv4len {
		return ranges.FamilyIPv4
	}

	return ranges.FamilyIPv6
}

func networkRecord(family ranges.Family, network *net.IPNet, city *geoip2.City) (*csvdb.Record, error) {
	addr, ok := netip.AddrFromSlice(network.IP)
	if !ok {
		return nil, errors.Errorf("incorrect network %s", network)
	}

	ones, _ := network.Mask.Size()

	begin, err := ranges.AddrValue(family, addr)
	if err != nil {
		return nil, errors.Trace(err)
	}

	end := begin.Or(family.Max().Rsh(uint(ones)))
	province := ""

	if len(city.Subdivisions) > 0 {
		province = city.Subdivisions[0].Names[mmdbLanguage]
	}

	return csvdb.NewRecord(
		ranges.ValueAddr(family, begin).String(),
		ranges.ValueAddr(family, end).String(),
		city.Country.Names[mmdbLanguage],
		province,
		city.City.Names[mmdbLanguage])
}
