// Package domain holds the protocol-agnostic metric model shared by
// collectors, encoders, and the pusher.
package domain

import "math"

// Metric names emitted by the collectors. The vocabulary is fixed; a
// collector never invents names at runtime.
const (
	MetricTemperature = "chile_temperature_celsius"
	MetricHumidity    = "chile_humidity_percent"
	MetricQuakeMag    = "chile_earthquake_magnitude"
	MetricQuakeDepth  = "chile_earthquake_depth_km"
	MetricCurrency    = "chile_currency_clp"

	MetricSelfCPU     = "chile_collector_cpu_percent"
	MetricSelfMemory  = "chile_collector_memory_used_bytes"
	MetricSelfRuntime = "chile_collector_run_seconds"
)

// Label is a single key/value dimension attached to a Metric.
type Label struct {
	Key   string
	Value string
}

// Metric is a named numeric observation with an ordered label set.
// Labels are a slice, not a map, so every encoding of the same Metric
// is byte-identical.
type Metric struct {
	Name   string
	Value  float64
	Labels []Label
}

// NewMetric builds a Metric after checking the value invariant: only
// finite numbers become metrics. It returns false for NaN or ±Inf so
// callers can skip the source record instead.
func NewMetric(name string, value float64, labels ...Label) (Metric, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Metric{}, false
	}
	return Metric{Name: name, Value: value, Labels: labels}, true
}

// RawRecord is one untyped JSON object from an upstream response array.
// Field names are Spanish and differ per API; each collector owns its
// own field contract.
type RawRecord = map[string]any

// Batch is an insertion-ordered metric sequence accumulated over one
// run. A fresh Batch is built per invocation; nothing persists across
// runs.
type Batch []Metric
