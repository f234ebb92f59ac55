package core

import (
	"sync"
	"sync/atomic"
)

// MetricsState tracks mesh provisioning activity across a resource
// context's lifetime. Counters are monotonic; there is no reset short
// of process exit.
type MetricsState struct {
	CacheHits    atomic.Uint64
	CacheMisses  atomic.Uint64
	BuffersBuilt atomic.Uint64
	PackFailures atomic.Uint64
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func Metrics() *MetricsState {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{}
	})
	return metricsState
}

func MetricsCacheHit() {
	Metrics().CacheHits.Add(1)
}

func MetricsCacheMiss() {
	Metrics().CacheMisses.Add(1)
}

func MetricsBufferBuilt() {
	Metrics().BuffersBuilt.Add(1)
}

func MetricsPackFailure() {
	Metrics().PackFailures.Add(1)
}
