// Package metrics counts the work done by a processing pass.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/redhat-developer/service-binding-properties/pkg/processor"
)

const namespace = "service_binding_properties"

// Recorder updates the processing counters.
type Recorder struct {
	bindingsProcessed  *prometheus.CounterVec
	processorsDisabled *prometheus.CounterVec
	propertiesWritten  prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		bindingsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bindings_processed_total",
			Help:      "Number of bindings mapped to properties, per kind.",
		}, []string{"kind"}),
		processorsDisabled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "processors_disabled_total",
			Help:      "Number of processor runs skipped because the kind is disabled.",
		}, []string{"kind"}),
		propertiesWritten: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "properties",
			Help:      "Number of properties produced by the last pass.",
		}),
	}
	for _, c := range []prometheus.Collector{r.bindingsProcessed, r.processorsDisabled, r.propertiesWritten} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Observe records the report of one processor run.
func (r *Recorder) Observe(report processor.Report) {
	if r == nil {
		return
	}
	if report.Disabled {
		r.processorsDisabled.WithLabelValues(report.Kind).Inc()
		return
	}
	r.bindingsProcessed.WithLabelValues(report.Kind).Add(float64(report.Bindings))
}

// Properties records the size of the property map at the end of a pass.
func (r *Recorder) Properties(n int) {
	if r == nil {
		return
	}
	r.propertiesWritten.Set(float64(n))
}
