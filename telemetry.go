package main

import (
	"log"
	"time"
)

// TelemetryEvent is a discrete occurrence with optional attributes
type TelemetryEvent struct {
	Name      string
	Timestamp time.Time
	Attrs     map[string]string
}

// TelemetryMetric is a named numeric measurement
type TelemetryMetric struct {
	Name  string
	Value float64
	Attrs map[string]string
}

// TelemetrySink receives emitted events and metrics. Backends implement
// this; the facade stays decoupled from any particular one.
type TelemetrySink interface {
	EmitEvent(TelemetryEvent)
	EmitMetric(TelemetryMetric)
}

type nullSink struct{}

func (nullSink) EmitEvent(TelemetryEvent)   {}
func (nullSink) EmitMetric(TelemetryMetric) {}

// logSink writes events and metrics through the application logger
type logSink struct {
	log *log.Logger
}

func (s logSink) EmitEvent(e TelemetryEvent) {
	s.log.Printf("telemetry.event name=%s attrs=%v", e.Name, e.Attrs)
}

func (s logSink) EmitMetric(m TelemetryMetric) {
	s.log.Printf("telemetry.metric name=%s value=%g attrs=%v", m.Name, m.Value, m.Attrs)
}

// MemorySink stores emitted events and metrics for inspection in tests
type MemorySink struct {
	Events  []TelemetryEvent
	Metrics []TelemetryMetric
}

func (s *MemorySink) EmitEvent(e TelemetryEvent)   { s.Events = append(s.Events, e) }
func (s *MemorySink) EmitMetric(m TelemetryMetric) { s.Metrics = append(s.Metrics, m) }

func (s *MemorySink) Clear() {
	s.Events = nil
	s.Metrics = nil
}

// Telemetry is the facade used throughout the application. All methods are
// safe to call when telemetry is disabled.
type Telemetry struct {
	enabled bool
	sink    TelemetrySink
}

func NewTelemetry(enabled bool, sink TelemetrySink) *Telemetry {
	if sink == nil {
		sink = nullSink{}
	}
	return &Telemetry{enabled: enabled, sink: sink}
}

func (t *Telemetry) Event(name string, attrs map[string]string) {
	if !t.enabled {
		return
	}
	t.sink.EmitEvent(TelemetryEvent{
		Name:      name,
		Timestamp: time.Now(),
		Attrs:     attrs,
	})
}

func (t *Telemetry) Counter(name string, value int, attrs map[string]string) {
	if !t.enabled {
		return
	}
	t.sink.EmitMetric(TelemetryMetric{
		Name:  name,
		Value: float64(value),
		Attrs: attrs,
	})
}

// Timer starts timing an operation and returns a stop function that records
// the elapsed milliseconds as a counter.
func (t *Telemetry) Timer(name string, attrs map[string]string) func() {
	start := time.Now()
	return func() {
		t.Counter(name, int(time.Since(start).Milliseconds()), attrs)
	}
}
