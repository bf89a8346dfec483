// Package metrics exposes Prometheus counters for parse and dispatch
// activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "partscript"

var (
	// LinesParsed counts script lines handed to the parser.
	LinesParsed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lines_parsed_total",
		Help:      "Script lines handed to the parser.",
	})

	// ParseMisses counts lines that yielded no rule.
	ParseMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parse_misses_total",
		Help:      "Script lines that yielded no rule.",
	})

	// RulesFired counts rule firings by event kind.
	RulesFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rules_fired_total",
		Help:      "Rule firings by event kind.",
	}, []string{"event"})

	// ActionsExecuted counts executed actions by kind.
	ActionsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_executed_total",
		Help:      "Executed actions by kind.",
	}, []string{"kind"})

	// CalcDenials counts variable calculations refused by the tick quota.
	CalcDenials = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calc_denials_total",
		Help:      "Variable calculations refused by the tick quota.",
	})

	// TellsRefused counts tell deliveries refused by the tick quota.
	TellsRefused = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tells_refused_total",
		Help:      "Tell deliveries refused by the tick quota.",
	})
)
