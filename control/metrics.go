// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Ring buffer metrics registry exported through Prometheus.
// Owners push snapshots; scrapes only read the stored copies, so a
// collector never touches a buffer from a foreign goroutine.

package control

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/ringbuf/ring"
)

// MetricsRegistry holds the latest snapshot of every named ring.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]ring.Snapshot
	updated time.Time

	capacity     *prometheus.Desc
	used         *prometheus.Desc
	available    *prometheus.Desc
	full         *prometheus.Desc
	highWater    *prometheus.Desc
	writes       *prometheus.Desc
	reads        *prometheus.Desc
	peeks        *prometheus.Desc
	fullRejects  *prometheus.Desc
	emptyRejects *prometheus.Desc
}

var _ prometheus.Collector = (*MetricsRegistry)(nil)

// NewMetricsRegistry creates an empty registry whose metric names start
// with namespace.
func NewMetricsRegistry(namespace string) *MetricsRegistry {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "ring", name), help, []string{"ring"}, nil)
	}
	return &MetricsRegistry{
		metrics:      make(map[string]ring.Snapshot),
		capacity:     desc("capacity", "Number of slots in the ring."),
		used:         desc("elements_used", "Elements currently stored."),
		available:    desc("elements_available", "Free slots."),
		full:         desc("full", "1 when every slot is occupied."),
		highWater:    desc("high_water", "Largest element count observed."),
		writes:       desc("writes_total", "Successful writes."),
		reads:        desc("reads_total", "Successful reads."),
		peeks:        desc("peeks_total", "Successful peeks."),
		fullRejects:  desc("full_rejects_total", "Writes refused because the ring was full."),
		emptyRejects: desc("empty_rejects_total", "Reads and peeks refused because the ring was empty."),
	}
}

// Set stores the latest snapshot for the ring called name.
func (mr *MetricsRegistry) Set(name string, s ring.Snapshot) {
	mr.mu.Lock()
	mr.metrics[name] = s
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns the latest snapshots by ring name.
func (mr *MetricsRegistry) GetSnapshot() map[string]ring.Snapshot {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]ring.Snapshot, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}

// Updated returns the time of the last Set, zero if none.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}

// Describe implements prometheus.Collector.
func (mr *MetricsRegistry) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		mr.capacity, mr.used, mr.available, mr.full, mr.highWater,
		mr.writes, mr.reads, mr.peeks, mr.fullRejects, mr.emptyRejects,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (mr *MetricsRegistry) Collect(ch chan<- prometheus.Metric) {
	snaps := mr.GetSnapshot()
	names := make([]string, 0, len(snaps))
	for name := range snaps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := snaps[name]
		full := 0.0
		if s.Full {
			full = 1
		}
		gauge := func(d *prometheus.Desc, v float64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, name)
		}
		counter := func(d *prometheus.Desc, v uint64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), name)
		}
		gauge(mr.capacity, float64(s.Capacity))
		gauge(mr.used, float64(s.Used))
		gauge(mr.available, float64(s.Available))
		gauge(mr.full, full)
		gauge(mr.highWater, float64(s.Stats.HighWater))
		counter(mr.writes, s.Stats.Writes)
		counter(mr.reads, s.Stats.Reads)
		counter(mr.peeks, s.Stats.Peeks)
		counter(mr.fullRejects, s.Stats.FullRejects)
		counter(mr.emptyRejects, s.Stats.EmptyRejects)
	}
}
