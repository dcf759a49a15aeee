// Package metrics exposes prometheus counters for campaign play.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives play events. A nil *Metrics is a valid no-op Recorder.
type Recorder interface {
	ActionProcessed(kind string)
	CombatEnded(result string)
	OpeningFallback()
	SaveFailed()
}

// Metrics is the prometheus-backed Recorder
type Metrics struct {
	actions          *prometheus.CounterVec
	combats          *prometheus.CounterVec
	openingFallbacks prometheus.Counter
	saveFailures     prometheus.Counter
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mythweaver",
			Name:      "actions_total",
			Help:      "Player actions processed, by outcome kind.",
		}, []string{"kind"}),
		combats: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mythweaver",
			Name:      "combats_ended_total",
			Help:      "Combat encounters that ended, by result.",
		}, []string{"result"}),
		openingFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mythweaver",
			Name:      "opening_fallbacks_total",
			Help:      "Campaigns created with the fallback opening line.",
		}),
		saveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mythweaver",
			Name:      "save_failures_total",
			Help:      "Campaign list saves that failed.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.actions, m.combats, m.openingFallbacks, m.saveFailures)
	}

	return m
}

// ActionProcessed counts one player action
func (m *Metrics) ActionProcessed(kind string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(kind).Inc()
}

// CombatEnded counts a finished encounter ("victory" or "defeat")
func (m *Metrics) CombatEnded(result string) {
	if m == nil {
		return
	}
	m.combats.WithLabelValues(result).Inc()
}

// OpeningFallback counts a degraded opening narration
func (m *Metrics) OpeningFallback() {
	if m == nil {
		return
	}
	m.openingFallbacks.Inc()
}

// SaveFailed counts a failed fire-and-forget save
func (m *Metrics) SaveFailed() {
	if m == nil {
		return
	}
	m.saveFailures.Inc()
}
