package table

import (
	"github.com/iplocator/iplocator/csvdb"
	"github.com/iplocator/iplocator/ranges"
)

func makeRecord(begin, end, country, province, city string) ranges.SourceRecord {
	return ranges.SourceRecord{
		Record: csvdb.Record{
			Begin:    begin,
			End:      end,
			Country:  country,
			Province: province,
			City:     city,
		},
		Source: "test.csv",
	}
}

// makeTestTable builds a table where IPv4 has [1000, 1999] -> US/CA/LA
// and [3000, 3999] -> US/NY/NYC; IPv6 has 2001:db8::/32 -> US/CA/SF.
func makeTestTable() *Table {
	ipv4, err := ranges.Ingest(ranges.FamilyIPv4, []ranges.SourceRecord{
		makeRecord("0.0.3.232", "0.0.7.207", "US", "CA", "LA"),
		makeRecord("0.0.11.184", "0.0.15.159", "US", "NY", "NYC"),
	})
	if err != nil {
		panic(err)
	}

	ipv6, err := ranges.Ingest(ranges.FamilyIPv6, []ranges.SourceRecord{
		makeRecord("2001:db8::", "2001:db8:ffff:ffff:ffff:ffff:ffff:ffff", "US", "CA", "SF"),
	})
	if err != nil {
		panic(err)
	}

	encoder := NewEncoder()
	encoder.Encode(ranges.FamilyIPv4, ipv4)
	encoder.Encode(ranges.FamilyIPv6, ipv6)

	return encoder.Table()
}
