// Package metrics exposes bridge counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry creates a dedicated registry with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler returns the HTTP handler serving reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// BridgeMetrics counts what the run loop does with the stream. Failed frame
// validations are not counted: losing sync is normal operation.
//
// All methods are safe on a nil receiver so the loop can run unmetered.
type BridgeMetrics struct {
	BytesRead     prometheus.Counter
	FramesDecoded prometheus.Counter
	Transitions   *prometheus.CounterVec // labels: kind=press|release
	PointerMoves  prometheus.Counter
	SinkErrors    *prometheus.CounterVec // labels: op=move|press|release
	ButtonHeld    prometheus.Gauge
}

// NewBridgeMetrics registers and returns the bridge metrics.
func NewBridgeMetrics(reg prometheus.Registerer) *BridgeMetrics {
	m := &BridgeMetrics{
		BytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchbridge_bytes_read_total",
			Help: "Bytes read from the sensor serial port.",
		}),
		FramesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchbridge_frames_decoded_total",
			Help: "Valid frames decoded.",
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "touchbridge_button_transitions_total",
			Help: "Button edges emitted.",
		}, []string{"kind"}),
		PointerMoves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchbridge_pointer_moves_total",
			Help: "Absolute pointer moves sent to the sink.",
		}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "touchbridge_sink_errors_total",
			Help: "Pointer sink operations that failed.",
		}, []string{"op"}),
		ButtonHeld: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "touchbridge_button_held",
			Help: "1 while a press has been emitted without a release.",
		}),
	}
	reg.MustRegister(
		m.BytesRead,
		m.FramesDecoded,
		m.Transitions,
		m.PointerMoves,
		m.SinkErrors,
		m.ButtonHeld,
	)
	return m
}

func (m *BridgeMetrics) ObserveByte() {
	if m == nil {
		return
	}
	m.BytesRead.Inc()
}

func (m *BridgeMetrics) ObserveFrame() {
	if m == nil {
		return
	}
	m.FramesDecoded.Inc()
}

func (m *BridgeMetrics) ObserveMove() {
	if m == nil {
		return
	}
	m.PointerMoves.Inc()
}

// ObserveTransition records an edge and updates the held gauge.
func (m *BridgeMetrics) ObserveTransition(kind string, held bool) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(kind).Inc()
	if held {
		m.ButtonHeld.Set(1)
	} else {
		m.ButtonHeld.Set(0)
	}
}

func (m *BridgeMetrics) ObserveSinkError(op string) {
	if m == nil {
		return
	}
	m.SinkErrors.WithLabelValues(op).Inc()
}
