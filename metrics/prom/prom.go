// Package prom exports cache metrics to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vmarkelov/policycache/cache"
)

// Adapter implements cache.Metrics over Prometheus counters. All
// Prometheus metric types are goroutine-safe, so the adapter is too.
type Adapter struct {
	reg         prometheus.Registerer
	ns, sub     string
	constLabels prometheus.Labels

	hits   prometheus.Counter
	misses prometheus.Counter
}

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		reg:         reg,
		ns:          ns,
		sub:         sub,
		constLabels: constLabels,
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Cache hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Cache misses",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// TrackLen registers a pull-style gauge reporting the cache's resident
// entry count, sampled at scrape time. Pass the cache's Len method.
func (a *Adapter) TrackLen(lenFn func() int) {
	a.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   a.ns,
		Subsystem:   a.sub,
		Name:        "size_entries",
		Help:        "Number of resident entries",
		ConstLabels: a.constLabels,
	}, func() float64 { return float64(lenFn()) }))
}

var _ cache.Metrics = (*Adapter)(nil)
