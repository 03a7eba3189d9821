package thymeleaf

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// engineMetrics holds the Prometheus collectors of an engine. A nil
// *engineMetrics records nothing.
type engineMetrics struct {
	processTotal         *prometheus.CounterVec
	processDuration      prometheus.Histogram
	processorInvocations *prometheus.CounterVec
}

// newEngineMetrics registers the engine collectors with registerer. Engines
// sharing a registerer share the already registered collectors.
func newEngineMetrics(registerer prometheus.Registerer) *engineMetrics {
	if registerer == nil {
		return nil
	}
	return &engineMetrics{
		processTotal: register(registerer, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      MetricProcessTotal,
				Help:      MetricHelpProcessTotal,
			},
			[]string{MetricLabelResult},
		)),
		processDuration: register(registerer, prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: MetricsNamespace,
				Name:      MetricProcessDuration,
				Help:      MetricHelpProcessDuration,
				Buckets:   prometheus.DefBuckets,
			},
		)),
		processorInvocations: register(registerer, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      MetricProcessorInvocations,
				Help:      MetricHelpProcessInvocations,
			},
			[]string{MetricLabelProcessor},
		)),
	}
}

func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	if err := registerer.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return collector
}

func (m *engineMetrics) observeProcess(start time.Time, err error) {
	if m == nil {
		return
	}
	result := MetricResultSuccess
	if err != nil {
		result = MetricResultError
	}
	m.processTotal.WithLabelValues(result).Inc()
	m.processDuration.Observe(time.Since(start).Seconds())
}

func (m *engineMetrics) observeProcessor(name string) {
	if m == nil {
		return
	}
	m.processorInvocations.WithLabelValues(name).Inc()
}
