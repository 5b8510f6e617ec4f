// Package logsink adapts htmltok.ErrorSink onto structured logging, the way
// distribution-distribution wires its request middleware through logrus
// fields rather than formatted strings.
package logsink

import (
	"github.com/sirupsen/logrus"

	htmltok "go.htmltok.dev/pkg"
)

// LogrusErrorSink reports parse errors as structured logrus warnings. It never
// returns an error and never aborts a run: parse errors are recoverable by
// definition (spec.md §7).
type LogrusErrorSink struct {
	Logger *logrus.Logger
	Source string
}

// New builds a LogrusErrorSink reporting against the given logger, tagging
// every entry with source for correlation across concurrent runs.
func New(logger *logrus.Logger, source string) *LogrusErrorSink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusErrorSink{Logger: logger, Source: source}
}

// EmitParseError implements htmltok.ErrorSink.
func (s *LogrusErrorSink) EmitParseError(e htmltok.ParseError) {
	s.Logger.WithFields(logrus.Fields{
		"source": s.Source,
		"kind":   string(e.Kind),
		"offset": e.Offset,
	}).Warn("html parse error")
}
