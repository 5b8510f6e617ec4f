// Command htmltokdump drives package htmltok (go.htmltok.dev/pkg) over a file and prints the resulting
// token stream, the way the teacher's cmd/main.go drives the compiler over a
// source file and prints its result. Unlike the teacher's single os.Args
// check, this CLI is built on cobra (grounded on distribution-distribution's
// registry CLI) since it exposes several independent flags.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	htmltok "go.htmltok.dev/pkg"
	"go.htmltok.dev/pkg/logsink"
)

var logger = logrus.StandardLogger()

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.WithError(err).Error("htmltokdump failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "htmltokdump",
		Short: "Tokenize HTML documents and inspect the resulting token stream",
	}
	root.AddCommand(newRunCommand())
	return root
}

func newRunCommand() *cobra.Command {
	var (
		filePath       string
		configPath     string
		metricsAddr    string
		foreignContent bool
	)

	run := &cobra.Command{
		Use:   "run",
		Short: "Tokenize a single HTML file and print its token stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if metricsAddr != "" {
				cfg.MetricsAddr = metricsAddr
			}
			if cmd.Flags().Changed("foreign-content") {
				cfg.ForeignContent = foreignContent
			}
			return runDump(filePath, cfg)
		},
	}

	run.Flags().StringVar(&filePath, "file", "", "path to the HTML file to tokenize (required)")
	run.Flags().StringVar(&configPath, "config", "", "path to an optional INI config file")
	run.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on, e.g. :9090 (disabled if empty)")
	run.Flags().BoolVar(&foreignContent, "foreign-content", false, "treat CDATA sections as foreign content (SVG/MathML) rather than bogus comments")
	run.MarkFlagRequired("file")

	return run
}

func runDump(filePath string, cfg config) error {
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filePath, err)
	}
	defer f.Close()

	errSink := logsink.New(logger, filePath)
	countingErrSink := htmltok.ErrorSinkFunc(func(e htmltok.ParseError) {
		parseErrors.WithLabelValues(string(e.Kind)).Inc()
		errSink.EmitParseError(e)
	})

	t := htmltok.NewTokenizer(f,
		htmltok.WithForeignContent(cfg.ForeignContent),
	)

	// RunBlocking installs its own error sink, so parse errors are reported
	// from its result rather than through WithErrorSink.
	tokens, parseErrs := t.RunBlocking()
	for _, e := range parseErrs {
		countingErrSink.EmitParseError(e)
	}
	for _, tok := range tokens {
		tokensEmitted.WithLabelValues(tok.Type.String()).Inc()
		fmt.Println(describeToken(tok))
	}

	logger.WithFields(logrus.Fields{
		"tokens":      len(tokens),
		"parse_errors": len(parseErrs),
	}).Info("tokenization complete")

	return nil
}

func describeToken(tok htmltok.Token) string {
	switch tok.Type {
	case htmltok.CharacterToken:
		return fmt.Sprintf("Character(%q)", tok.Char())
	case htmltok.StartTagToken:
		return fmt.Sprintf("StartTag(%s, selfClosing=%v, attrs=%v)", tok.Name, tok.SelfClosing, tok.Attr)
	case htmltok.EndTagToken:
		return fmt.Sprintf("EndTag(%s)", tok.Name)
	case htmltok.CommentToken:
		return fmt.Sprintf("Comment(%q)", tok.Data)
	case htmltok.DoctypeToken:
		return fmt.Sprintf("Doctype(name=%q, forceQuirks=%v)", tok.Name, tok.ForceQuirks)
	case htmltok.EndOfFileToken:
		return "EndOfFile"
	default:
		return fmt.Sprintf("Token(%s)", tok.Type)
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.WithField("addr", addr).Info("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.WithError(err).Error("metrics server stopped")
	}
}
