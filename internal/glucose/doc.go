// Package glucose caches companion readings and paces requests for them.
//
// The Cache keeps one Sample. Readers get the stored value and trend only
// while the sample is younger than 15 minutes; otherwise they get 0 and
// TrendUnknown. The stored fields stay intact, so a corrected clock can make
// an old sample readable again.
//
// The Throttler allows a request every 60 seconds, or every 30 seconds after
// a failure. A failure is remembered until a request goes out or a new
// sample arrives:
//
//	link down               -> no request, failed
//	Send returns an error   -> failed, timestamp kept
//	Send succeeds at now    -> timestamp = now, not failed
//	delivery failure later  -> failed
//	sample received         -> not failed
//
// Service wires both to the transport. Its HandleMessage is registered
// first on the inbound chain so the cache is current before settings
// observers run.
package glucose
