package sheets

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CallMetrics counts and times the spreadsheet range calls.
type CallMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCallMetrics creates the collectors and registers them on reg.
func NewCallMetrics(reg prometheus.Registerer) (*CallMetrics, error) {
	m := &CallMetrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "investigacion",
				Subsystem: "sheets",
				Name:      "calls_total",
				Help:      "Total number of spreadsheet range calls.",
			},
			[]string{"verb", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "investigacion",
				Subsystem: "sheets",
				Name:      "call_duration_seconds",
				Help:      "Duration of spreadsheet range calls.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
			},
			[]string{"verb"},
		),
	}
	for _, c := range []prometheus.Collector{m.calls, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *CallMetrics) observe(verb string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.calls.WithLabelValues(verb, outcome).Inc()
	m.duration.WithLabelValues(verb).Observe(time.Since(start).Seconds())
}

type instrumented struct {
	next    ValueService
	metrics *CallMetrics
}

// Instrument wraps vs so every call is counted and timed by m.
func Instrument(vs ValueService, m *CallMetrics) ValueService {
	return &instrumented{next: vs, metrics: m}
}

func (i *instrumented) Get(ctx context.Context, rng string) (rows [][]string, err error) {
	defer func(start time.Time) { i.metrics.observe("get", start, err) }(time.Now())
	return i.next.Get(ctx, rng)
}

func (i *instrumented) Append(ctx context.Context, rng string, rows [][]string) (err error) {
	defer func(start time.Time) { i.metrics.observe("append", start, err) }(time.Now())
	return i.next.Append(ctx, rng, rows)
}

func (i *instrumented) Update(ctx context.Context, rng string, rows [][]string) (err error) {
	defer func(start time.Time) { i.metrics.observe("update", start, err) }(time.Now())
	return i.next.Update(ctx, rng, rows)
}

func (i *instrumented) Clear(ctx context.Context, rng string) (err error) {
	defer func(start time.Time) { i.metrics.observe("clear", start, err) }(time.Now())
	return i.next.Clear(ctx, rng)
}
