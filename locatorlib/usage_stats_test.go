package locatorlib_test

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/iplocator/iplocator/locatorlib"
)

type usageStatsJSON struct {
	Name         string `json:"name"`
	Ranges       int    `json:"ranges"`
	LastUsed     int64  `json:"last_used"`
	SuccessCount uint64 `json:"success_count"`
	FailureCount uint64 `json:"failure_count"`
}

type UsageStatsTestSuite struct {
	suite.Suite

	u *locatorlib.UsageStats
}

func (suite *UsageStatsTestSuite) SetupTest() {
	suite.u = &locatorlib.UsageStats{
		Name:   "test",
		Ranges: 10,
	}
}

func (suite *UsageStatsTestSuite) Verify(lastUsed time.Time, success, failure int) {
	v, err := json.Marshal(suite.u)

	suite.NoError(err)

	raw := usageStatsJSON{}

	suite.NoError(json.Unmarshal(v, &raw))
	suite.Equal("test", raw.Name)
	suite.Equal(10, raw.Ranges)
	suite.EqualValues(success, raw.SuccessCount)
	suite.EqualValues(failure, raw.FailureCount)

	if lastUsed.IsZero() {
		suite.EqualValues(0, raw.LastUsed)
	} else {
		suite.WithinDuration(lastUsed, time.Unix(raw.LastUsed, 0), time.Second)
	}
}

func (suite *UsageStatsTestSuite) TestEmpty() {
	suite.Verify(time.Time{}, 0, 0)
}

func (suite *UsageStatsTestSuite) TestUsed() {
	suite.u.Used(nil)
	suite.Verify(time.Now(), 1, 0)

	suite.u.Used(io.EOF)
	suite.Verify(time.Now(), 1, 1)

	suite.u.Used(nil)
	suite.Verify(time.Now(), 2, 1)
}

func TestUsageStats(t *testing.T) {
	suite.Run(t, &UsageStatsTestSuite{})
}

func TestUsageStatsConcurrentUse(t *testing.T) {
	stats := &locatorlib.UsageStats{Name: "test"}

	t.Run("group", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			i := i

			t.Run("worker", func(t *testing.T) {
				t.Parallel()

				for j := 0; j < 100; j++ {
					if (i+j)%2 == 0 {
						stats.Used(nil)
					} else {
						stats.Used(io.EOF)
					}
				}
			})
		}
	})

	assert.EqualValues(t, 400, stats.Successes())
	assert.EqualValues(t, 400, stats.Failures())
	assert.WithinDuration(t, time.Now(), stats.LastUsed(), 2*time.Second)
}
