package locatorlib_test

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/iplocator/iplocator/csvdb"
	"github.com/iplocator/iplocator/ranges"
	"github.com/iplocator/iplocator/table"
)

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LookupError(address string, err error) {
	m.Called(address, err)
}

func (m *LoggerMock) Access(method, path, remoteAddr string, status int, elapsed time.Duration) {
	m.Called(method, path, remoteAddr, status, elapsed)
}

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

// makeTestTable maps IPv4 [1000, 1999] to US/CA/LA, [3000, 3999] to
// US/NY/NYC and IPv6 2001:db8::/32 to US/CA/SF.
func makeTestTable() *table.Table {
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

	encoder := table.NewEncoder()
	encoder.Encode(ranges.FamilyIPv4, ipv4)
	encoder.Encode(ranges.FamilyIPv6, ipv6)

	return encoder.Table()
}
