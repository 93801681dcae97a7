package search

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	StartTime time.Time
	Duration  time.Duration
	Nodes     int64
	Leaves    int64
	Cutoffs   int64
}

// NodesPerSecond is the search throughput, zero for an instant search
func (m SearchMetrics) NodesPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Nodes) / m.Duration.Seconds()
}

type MetricsCollector interface {
	Start()
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *metricsCollector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Nodes:     m.nodes.Load(),
		Leaves:    m.leaves.Load(),
		Cutoffs:   m.cutoffs.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                  {}
func (m *noMetricsCollector) AddNode()                {}
func (m *noMetricsCollector) AddLeaf()                {}
func (m *noMetricsCollector) AddCutoff()              {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
