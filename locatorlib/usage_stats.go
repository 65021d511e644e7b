package locatorlib

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

// UsageStats collects lookup counters of a single address family.
// Counters are atomic, lookups never wait on each other.
type UsageStats struct {
	Name   string
	Ranges int

	lastUsed  atomic.Int64
	successes atomic.Uint64
	failures  atomic.Uint64
}

// Used records an outcome of a single lookup.
func (u *UsageStats) Used(err error) {
	u.lastUsed.Store(time.Now().Unix())

	if err == nil {
		u.successes.Add(1)
	} else {
		u.failures.Add(1)
	}
}

// LastUsed returns a time of the latest lookup or zero time.
func (u *UsageStats) LastUsed() time.Time {
	if value := u.lastUsed.Load(); value != 0 {
		return time.Unix(value, 0)
	}

	return time.Time{}
}

func (u *UsageStats) Successes() uint64 {
	return u.successes.Load()
}

func (u *UsageStats) Failures() uint64 {
	return u.failures.Load()
}

func (u *UsageStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name     string `json:"name"`
		Ranges   int    `json:"ranges"`
		LastUsed int64  `json:"last_used"`
		Success  uint64 `json:"success_count"`
		Failure  uint64 `json:"failure_count"`
	}{
		Name:     u.Name,
		Ranges:   u.Ranges,
		LastUsed: u.lastUsed.Load(),
		Success:  u.successes.Load(),
		Failure:  u.failures.Load(),
	})
}
