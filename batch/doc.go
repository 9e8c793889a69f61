// Package batch provides concurrent classification of referrer URL sets.
//
// The Pipeline type fans a slice of referrer URLs out over a worker pool,
// classifies each one, and hands results to a caller-supplied sink in
// arbitrary order. Sink calls are serialized, so sinks need no locking
// of their own. An optional ProgressTracker reports throughput while a
// run is in flight.
package batch
