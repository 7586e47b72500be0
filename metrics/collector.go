package metrics

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Collector is an in-process metrics sink for the aggregation pipeline:
// collection counts, per-plugin failures, plugin durations.
type Collector struct {
	metrics map[string]*Metric
	mu      sync.RWMutex
}

// Metric is one named series.
type Metric struct {
	Type      string            `json:"type"`
	Value     float64           `json:"value"`
	Labels    map[string]string `json:"labels,omitempty"`
	History   []float64         `json:"history,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

func NewCollector() *Collector {
	return &Collector{metrics: make(map[string]*Metric)}
}

// IncCounter increments a counter by one.
func (c *Collector) IncCounter(name string, labels map[string]string) {
	c.AddCounter(name, 1, labels)
}

// AddCounter adds value to a counter.
func (c *Collector) AddCounter(name string, value float64, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := buildKey(name, labels)
	if m, exists := c.metrics[key]; exists {
		m.Value += value
		m.Timestamp = time.Now().Unix()
		return
	}
	c.metrics[key] = &Metric{Type: "counter", Value: value, Labels: labels, Timestamp: time.Now().Unix()}
}

// SetGauge sets a gauge to value.
func (c *Collector) SetGauge(name string, value float64, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := buildKey(name, labels)
	c.metrics[key] = &Metric{Type: "gauge", Value: value, Labels: labels, Timestamp: time.Now().Unix()}
}

// ObserveDuration records a duration sample in seconds, keeping a bounded
// history window.
func (c *Collector) ObserveDuration(name string, d time.Duration, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := buildKey(name, labels)
	seconds := d.Seconds()
	m, exists := c.metrics[key]
	if !exists {
		m = &Metric{Type: "histogram", Labels: labels}
		c.metrics[key] = m
	}
	m.History = append(m.History, seconds)
	if len(m.History) > 100 {
		m.History = m.History[1:]
	}
	m.Value = seconds
	m.Timestamp = time.Now().Unix()
}

// Get returns one metric by its name and labels.
func (c *Collector) Get(name string, labels map[string]string) (*Metric, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.metrics[buildKey(name, labels)]
	return m, ok
}

// Snapshot copies the current metric set, keyed by name{label=value,...}.
func (c *Collector) Snapshot() map[string]Metric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Metric, len(c.metrics))
	for key, m := range c.metrics {
		copied := *m
		copied.History = append([]float64(nil), m.History...)
		out[key] = copied
	}
	return out
}

func buildKey(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(name)
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(labels[k])
	}
	b.WriteString("}")
	return b.String()
}
