package glucose

import (
	"time"

	"go.uber.org/zap"

	"github.com/muurk/textwatch/internal/logging"
	"github.com/muurk/textwatch/internal/protocol"
)

// Sender hands dictionaries to the companion link.
type Sender interface {
	Link
	Send(d *protocol.Dict) error
}

// Service ties the cache and the throttler to the companion link.
type Service struct {
	cache    *Cache
	throttle *Throttler
	sender   Sender
}

// NewService returns a service that requests data through sender.
func NewService(cache *Cache, sender Sender) *Service {
	return &Service{
		cache:    cache,
		throttle: NewThrottler(sender),
		sender:   sender,
	}
}

// Cache returns the sample cache.
func (s *Service) Cache() *Cache {
	return s.cache
}

// Throttler returns the request throttler.
func (s *Service) Throttler() *Throttler {
	return s.throttle
}

// RecordSample stores a sample and clears any request failure.
func (s *Service) RecordSample(value, trend int, timestamp int64) {
	sample := s.cache.Record(value, trend, timestamp)
	s.throttle.ClearFailure()

	logging.Info("Glucose received",
		zap.Int("value", sample.Value),
		zap.Int("trend", sample.Trend),
		zap.Int64("timestamp", sample.Timestamp),
	)
}

// ReadCurrent returns the cached reading with staleness applied.
func (s *Service) ReadCurrent() (value, trend int) {
	return s.cache.ReadCurrent()
}

// MaybeRequest asks the companion for data when the throttler allows it.
// It reports whether a request was handed to the transport.
func (s *Service) MaybeRequest(now time.Time) bool {
	if !s.throttle.ShouldSendRequest(now) {
		logging.Debug("Glucose request throttled",
			zap.Int64("last_request", s.throttle.state.LastRequest),
			zap.Bool("last_failed", s.throttle.state.LastFailed),
		)
		return false
	}

	if err := s.sender.Send(protocol.NewRequest()); err != nil {
		s.throttle.MarkFailed()
		logging.Warn("Failed to request glucose data", zap.Error(err))
		return false
	}

	s.throttle.MarkSent(now)
	logging.Debug("Glucose data requested")
	return true
}

// DeliveryFailed records a request the transport accepted but could not
// deliver.
func (s *Service) DeliveryFailed(err error) {
	s.throttle.MarkFailed()
	logging.Warn("Glucose request not delivered", zap.Error(err))
}

// HandleMessage records the reading carried by d, if any. A missing trend
// reads as unknown and a missing timestamp as now. A trend without a value
// updates the stored trend only. Trend codes outside 0..MaxTrend are stored
// as TrendUnknown.
func (s *Service) HandleMessage(d *protocol.Dict) {
	r, ok := protocol.ReadingFrom(d)
	if !ok {
		if t, ok := d.Int(protocol.KeyTrendValue); ok {
			sample := s.cache.RecordTrend(normalizeTrend(int(t)))
			s.throttle.ClearFailure()
			logging.Info("Trend received", zap.Int("trend", sample.Trend))
		}
		return
	}

	trend := TrendUnknown
	if r.HasTrend {
		trend = normalizeTrend(r.Trend)
	}
	var ts int64
	if r.HasTimestamp {
		ts = r.Timestamp
	}
	s.RecordSample(r.Value, trend, ts)
}

func normalizeTrend(trend int) int {
	if !ValidTrend(trend) {
		return TrendUnknown
	}
	return trend
}
