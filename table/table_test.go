package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"lukechampine.com/uint128"

	"github.com/iplocator/iplocator/ranges"
)

type TableTestSuite struct {
	suite.Suite

	t *Table
}

func (suite *TableTestSuite) SetupTest() {
	suite.t = makeTestTable()
}

func (suite *TableTestSuite) find(family ranges.Family, value uint128.Uint128) []string {
	triple, ok := suite.t.Find(family, value)
	suite.True(ok)

	country, province, city := suite.t.Resolve(triple)

	return []string{country, province, city}
}

func (suite *TableTestSuite) TestValid() {
	suite.NoError(suite.t.Validate())
	suite.Equal(5, suite.t.Len(ranges.FamilyIPv4))
	suite.Equal(3, suite.t.Len(ranges.FamilyIPv6))
}

func (suite *TableTestSuite) TestStringTables() {
	suite.Equal([]string{"", "US"}, suite.t.Countries)
	suite.Equal([]string{"", "CA", "NY"}, suite.t.Provinces)
	suite.Equal([]string{"", "LA", "NYC", "SF"}, suite.t.Cities)
}

func (suite *TableTestSuite) TestSearchLowerBound() {
	suite.Equal(0, suite.t.Search(ranges.FamilyIPv4, uint128.Zero))
	suite.Equal(0, suite.t.Search(ranges.FamilyIPv4, uint128.From64(999)))
	suite.Equal(1, suite.t.Search(ranges.FamilyIPv4, uint128.From64(1000)))
	suite.Equal(1, suite.t.Search(ranges.FamilyIPv4, uint128.From64(1999)))
	suite.Equal(2, suite.t.Search(ranges.FamilyIPv4, uint128.From64(2000)))
	suite.Equal(4, suite.t.Search(ranges.FamilyIPv4, ranges.FamilyIPv4.Max()))
	suite.Equal(5, suite.t.Search(ranges.FamilyIPv4, uint128.From64(1<<32)))
}

func (suite *TableTestSuite) TestFindEveryAddressOfRange() {
	for v := uint64(1000); v <= 1999; v++ {
		suite.Equal([]string{"US", "CA", "LA"}, suite.find(ranges.FamilyIPv4, uint128.From64(v)))
	}
}

func (suite *TableTestSuite) TestFindGaps() {
	for _, v := range []uint64{0, 999, 2000, 2999, 4000, 1<<32 - 1} {
		suite.Equal([]string{"", "", ""}, suite.find(ranges.FamilyIPv4, uint128.From64(v)))
	}
}

func (suite *TableTestSuite) TestFindIPv6() {
	value, _ := ranges.ParseAddr(ranges.FamilyIPv6, "2001:db8::1")
	suite.Equal([]string{"US", "CA", "SF"}, suite.find(ranges.FamilyIPv6, value))

	suite.Equal([]string{"", "", ""}, suite.find(ranges.FamilyIPv6, uint128.Zero))
	suite.Equal([]string{"", "", ""}, suite.find(ranges.FamilyIPv6, uint128.Max))
}

func (suite *TableTestSuite) TestResolveUnknownIndex() {
	country, province, city := suite.t.Resolve(Triple{1, 100, 1 << 31})

	suite.Equal("US", country)
	suite.Empty(province)
	suite.Empty(city)
}

func (suite *TableTestSuite) TestValidateNotIncreasing() {
	suite.t.IPv4Bounds[1] = suite.t.IPv4Bounds[0]

	suite.True(errors.Is(suite.t.Validate(), ErrCorruptedTable))
}

func (suite *TableTestSuite) TestValidateNotCovered() {
	suite.t.IPv6Bounds = suite.t.IPv6Bounds[:2]
	suite.t.IPv6Triples = suite.t.IPv6Triples[:2]

	suite.True(errors.Is(suite.t.Validate(), ErrCorruptedTable))
}

func (suite *TableTestSuite) TestValidateMisaligned() {
	suite.t.IPv4Triples = suite.t.IPv4Triples[1:]

	suite.True(errors.Is(suite.t.Validate(), ErrCorruptedTable))
}

func (suite *TableTestSuite) TestValidateNoEmptyString() {
	suite.t.Cities[0] = "LA"

	suite.True(errors.Is(suite.t.Validate(), ErrCorruptedTable))
}

func TestTable(t *testing.T) {
	suite.Run(t, &TableTestSuite{})
}
