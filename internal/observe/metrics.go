// Package observe provides the OpenTelemetry metric instruments recorded by
// the rule engine. Tests should build a [Metrics] with [NewMetrics] over an
// SDK meter provider with a manual reader; production code without an
// exporter uses [Noop].
package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// meterName is the instrumentation scope name used for all apparat metrics.
const meterName = "github.com/talgya/apparat"

// Metrics holds the counters recorded by the engine. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// InteractionsResolved counts executed interactions. Attributes:
	//   category, method, outcome
	InteractionsResolved metric.Int64Counter

	// StatusTransitions counts character status changes. Attributes:
	//   from, to
	StatusTransitions metric.Int64Counter

	// PolicyChanges counts accepted policy changes. Attributes:
	//   slot, route
	PolicyChanges metric.Int64Counter
}

// NewMetrics creates the instruments using mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.InteractionsResolved, err = m.Int64Counter("apparat.interactions.resolved",
		metric.WithDescription("Resolved interactions by category, method, and outcome."),
	); err != nil {
		return nil, err
	}
	if met.StatusTransitions, err = m.Int64Counter("apparat.characters.status_transitions",
		metric.WithDescription("Character status transitions by source and target status."),
	); err != nil {
		return nil, err
	}
	if met.PolicyChanges, err = m.Int64Counter("apparat.policy.changes",
		metric.WithDescription("Accepted policy changes by slot and route."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

// Noop returns metrics backed by the no-op meter provider.
func Noop() *Metrics {
	m, err := NewMetrics(noop.NewMeterProvider())
	if err != nil {
		// The noop provider never fails.
		panic(err)
	}
	return m
}

// RecordInteraction counts one resolved interaction.
func (m *Metrics) RecordInteraction(category, method, outcome string) {
	if m == nil {
		return
	}
	m.InteractionsResolved.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("method", method),
		attribute.String("outcome", outcome),
	))
}

// RecordTransition counts one status transition.
func (m *Metrics) RecordTransition(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

// RecordPolicyChange counts one accepted policy change.
func (m *Metrics) RecordPolicyChange(slot, route string) {
	if m == nil {
		return
	}
	m.PolicyChanges.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("slot", slot),
		attribute.String("route", route),
	))
}
