// Package metrics - Prometheus counters for registry lookups and conversions
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap"
)

const namespace = "units"

// Lookup outcomes
const (
	LookupDirect   = "direct"
	LookupPrefixed = "prefixed"
	LookupMiss     = "miss"
)

// Collector owns a private prometheus registry so that several systems in
// one process (tests) never collide on metric names.
type Collector struct {
	registry    *prometheus.Registry
	lookups     *prometheus.CounterVec
	conversions *prometheus.CounterVec
	definitions *prometheus.GaugeVec
}

// New creates a collector with all metrics registered
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Unit symbol lookups by outcome.",
		}, []string{"outcome"}),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Measure conversions by result.",
		}, []string{"result"}),
		definitions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "definitions",
			Help:      "Registered definitions by kind after freeze.",
		}, []string{"kind"}),
	}
	c.registry.MustRegister(c.lookups, c.conversions, c.definitions)
	return c
}

// ObserveLookup counts one unit lookup
func (c *Collector) ObserveLookup(outcome string) {
	c.lookups.WithLabelValues(outcome).Inc()
}

// ObserveConversion counts one conversion attempt
func (c *Collector) ObserveConversion(err error) {
	if err != nil {
		c.conversions.WithLabelValues("error").Inc()
		return
	}
	c.conversions.WithLabelValues("ok").Inc()
}

// SetDefinitions records registry sizes
func (c *Collector) SetDefinitions(kind string, n int) {
	c.definitions.WithLabelValues(kind).Set(float64(n))
}

// Registry exposes the underlying prometheus registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Dump writes every sample through logger at info level
func (c *Collector) Dump(logger *zap.Logger) error {
	families, err := c.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fields := []zap.Field{zap.Float64("value", sampleValue(mf.GetType(), m))}
			for _, lp := range m.GetLabel() {
				fields = append(fields, zap.String(lp.GetName(), lp.GetValue()))
			}
			logger.Info(mf.GetName(), fields...)
		}
	}
	return nil
}

func sampleValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	default:
		return m.GetUntyped().GetValue()
	}
}
