package main

import "github.com/prometheus/client_golang/prometheus"

var (
	tokensEmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "htmltokdump_tokens_emitted_total",
		Help: "Number of tokens emitted by the tokenizer, by kind.",
	}, []string{"kind"})

	parseErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "htmltokdump_parse_errors_total",
		Help: "Number of recoverable parse errors encountered, by kind.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(tokensEmitted, parseErrors)
}
