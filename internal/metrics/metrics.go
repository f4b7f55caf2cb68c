// Package metrics centralizes the prometheus collectors this node exposes:
// validation outcomes per chain, consensus quorum rounds, netio
// reconnections, and bootstrap pull attempts. Each collector is registered
// once at package init via promauto against the default registry, the same
// way a binary wires an HTTP /metrics handler in front of it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ValidationResults counts Validate outcomes per chain type and
	// result code, letting an operator see which invariant is rejecting
	// blocks without grepping logs.
	ValidationResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgernode",
		Subsystem: "persistence",
		Name:      "validation_results_total",
		Help:      "Validate outcomes by chain type and result code.",
	}, []string{"chain", "code"})

	// QuorumRounds counts completed consensus rounds per chain type and
	// phase (prepare/commit), one increment per quorum reached.
	QuorumRounds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgernode",
		Subsystem: "consensus",
		Name:      "quorum_rounds_total",
		Help:      "Consensus rounds that reached quorum, by chain type and phase.",
	}, []string{"chain", "phase"})

	// Reconnects counts peer channel reconnect attempts, by remote
	// delegate.
	Reconnects = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgernode",
		Subsystem: "netio",
		Name:      "reconnects_total",
		Help:      "Peer channel reconnect attempts, by remote delegate.",
	}, []string{"remote"})

	// BootstrapPulls counts PullRange calls issued by the bootstrap
	// puller, by outcome.
	BootstrapPulls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgernode",
		Subsystem: "bootstrap",
		Name:      "pulls_total",
		Help:      "PullRange attempts issued during bootstrap, by outcome.",
	}, []string{"outcome"})
)
