package orders

import (
	"strconv"
	"sync/atomic"
	"time"
)

var lastIssuedMs atomic.Int64

// NewOrderID builds an id in the storefront's "TZ-<epoch ms>" format.
// Two calls within the same millisecond tick bump past the last issued
// value, so ids stay unique within the process while keeping the format.
func NewOrderID(now time.Time) string {
	ms := now.UnixMilli()
	for {
		last := lastIssuedMs.Load()
		if ms <= last {
			ms = last + 1
		}
		if lastIssuedMs.CompareAndSwap(last, ms) {
			return "TZ-" + strconv.FormatInt(ms, 10)
		}
	}
}
