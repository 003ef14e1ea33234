// Package metrics counts group operations in Prometheus counters. The Collector implements group.Observer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/smartcontractkit/toyecc/internal/curve"
	"github.com/smartcontractkit/toyecc/internal/group"
)

const (
	namespace = "toyecc"
	subsystem = "group"
)

type Collector struct {
	operations *prometheus.CounterVec
}

var _ group.Observer = &Collector{}

// NewCollector creates the operation counters and registers them with reg. A nil reg skips registration.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operations_total",
		Help:      "Number of point additions, doublings and field inversions, by curve.",
	}, []string{"curve", "op"})

	if reg != nil {
		if err := reg.Register(operations); err != nil {
			return nil, err
		}
	}
	return &Collector{operations}, nil
}

func (c *Collector) Observe(cv *curve.Curve, op group.Op) {
	c.operations.WithLabelValues(curveLabel(cv), string(op)).Inc()
}

// Count returns the current value of the counter for the given curve and operation. A missing counter is created
// with value zero.
func (c *Collector) Count(cv *curve.Curve, op group.Op) float64 {
	var m dto.Metric
	if err := c.operations.WithLabelValues(curveLabel(cv), string(op)).Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// Total returns the sum of all counters of the given curve.
func (c *Collector) Total(cv *curve.Curve) float64 {
	total := 0.0
	for _, op := range []group.Op{group.OpAdd, group.OpDouble, group.OpInverse} {
		total += c.Count(cv, op)
	}
	return total
}

// Reset clears all counters.
func (c *Collector) Reset() {
	c.operations.Reset()
}

func curveLabel(cv *curve.Curve) string {
	if cv.Name() != "" {
		return cv.Name()
	}
	return cv.String()
}
