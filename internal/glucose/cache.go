package glucose

import (
	"sync"
	"time"
)

const (
	// TrendUnknown is the trend of a missing or stale sample.
	TrendUnknown = -1

	// MaxTrend is the largest trend code with a direction (5 is "left").
	MaxTrend = 5

	// StaleAfter is the age beyond which a sample reads as absent.
	StaleAfter = 15 * time.Minute
)

// Sample is the last reading received from the companion.
// A zero Value means no data, a zero Timestamp means never received.
type Sample struct {
	Value     int
	Trend     int
	Timestamp int64
}

// Cache holds the latest sample. Staleness is applied when reading; the
// stored fields are never cleared.
type Cache struct {
	mu     sync.Mutex
	sample Sample
	now    func() time.Time
}

// NewCache returns an empty cache using now as its clock.
// A nil now uses time.Now.
func NewCache(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		sample: Sample{Trend: TrendUnknown},
		now:    now,
	}
}

// Record stores a sample, replacing the previous one. A zero timestamp
// means now.
func (c *Cache) Record(value, trend int, timestamp int64) Sample {
	if timestamp == 0 {
		timestamp = c.now().Unix()
	}
	s := Sample{Value: value, Trend: trend, Timestamp: timestamp}

	c.mu.Lock()
	c.sample = s
	c.mu.Unlock()
	return s
}

// RecordTrend replaces the stored trend, keeping value and timestamp.
func (c *Cache) RecordTrend(trend int) Sample {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sample.Trend = trend
	return c.sample
}

// ReadCurrent returns the stored value and trend, or 0 and TrendUnknown
// when the sample is missing or older than StaleAfter.
func (c *Cache) ReadCurrent() (value, trend int) {
	c.mu.Lock()
	s := c.sample
	c.mu.Unlock()

	if IsStale(s, c.now()) {
		return 0, TrendUnknown
	}
	return s.Value, s.Trend
}

// Stored returns the raw sample without applying staleness.
func (c *Cache) Stored() Sample {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sample
}

// IsStale reports whether s should read as absent at now.
func IsStale(s Sample, now time.Time) bool {
	if s.Timestamp == 0 {
		return true
	}
	return now.Unix()-s.Timestamp > int64(StaleAfter/time.Second)
}

// ValidTrend reports whether trend is a known direction code.
func ValidTrend(trend int) bool {
	return trend >= 0 && trend <= MaxTrend
}
