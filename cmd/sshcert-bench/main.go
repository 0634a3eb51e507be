// Command sshcert-bench parses and optionally verifies OpenSSH
// certificates from files of newline-separated textual envelopes,
// reporting throughput.
//
// Usage:
//
//	sshcert-bench parse [--verify] [--metrics-addr :9090] FILE...
//	sshcert-bench selftest
package main

import (
	"bytes"
	"embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/boldsoftware/exe.dev/sshcert"
	"github.com/boldsoftware/exe.dev/sshcert/certverify"
)

//go:embed fixtures/*.pub
var fixtures embed.FS

var (
	parsedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sshcert_bench_parsed_total",
		Help: "Certificates successfully parsed.",
	})
	parseErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sshcert_bench_parse_errors_total",
		Help: "Certificate parse failures, labeled by sshcert.Error value.",
	}, []string{"error"})
	parseDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sshcert_bench_parse_duration_seconds",
		Help:    "Wall-clock time to parse every certificate in one parse invocation's input files.",
		Buckets: prometheus.DefBuckets,
	})
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, nil)))

	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "sshcert-bench: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := &cli.App{
		Name:  "sshcert-bench",
		Usage: "benchmark and smoke-test the sshcert decode pipeline",
		Commands: []*cli.Command{
			parseCmd(),
			selftestCmd(),
		},
	}
	return app.Run(args)
}

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "parse (and optionally verify) every certificate in the given files",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verify", Usage: "verify each certificate's signature against its own SignatureKey"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "if set, serve Prometheus metrics on this address until the process exits"},
		},
		Action: func(c *cli.Context) error {
			if addr := c.String("metrics-addr"); addr != "" {
				go serveMetrics(addr)
			}

			var verifier certverify.Verifier
			if c.Bool("verify") {
				verifier = certverify.Default()
			}

			runID := uuid.New()
			start := time.Now()

			var total, verified int
			for _, path := range c.Args().Slice() {
				data, err := os.ReadFile(path)
				if err != nil {
					return errors.Wrapf(err, "reading %s", path)
				}
				n, v := parseLines(data, verifier)
				total += n
				verified += v
			}

			elapsed := time.Since(start)
			parseDurationSeconds.Observe(elapsed.Seconds())

			rate := float64(0)
			if elapsed > 0 {
				rate = float64(total) / elapsed.Seconds()
			}
			slog.Info("parse complete",
				"run_id", runID,
				"certs", total,
				"verified", verified,
				"elapsed", elapsed,
				"rate_per_sec", rate,
			)
			return nil
		},
	}
}

func selftestCmd() *cli.Command {
	return &cli.Command{
		Name:  "selftest",
		Usage: "parse and verify the certificates embedded in this binary",
		Action: func(c *cli.Context) error {
			entries, err := fixtures.ReadDir("fixtures")
			if err != nil {
				return errors.Wrap(err, "reading embedded fixtures")
			}

			verifier := certverify.Default()
			for _, e := range entries {
				data, err := fixtures.ReadFile("fixtures/" + e.Name())
				if err != nil {
					return errors.Wrapf(err, "reading embedded fixture %s", e.Name())
				}
				n, v := parseLines(data, verifier)
				if n == 0 {
					return errors.Errorf("fixture %s: no certificates parsed", e.Name())
				}
				if v != n {
					return errors.Errorf("fixture %s: %d/%d certificates verified", e.Name(), v, n)
				}
				slog.Info("selftest ok", "fixture", e.Name(), "certs", n)
			}
			return nil
		},
	}
}

// parseLines treats data as newline-separated textual certificate
// envelopes, parsing (and, if verifier is non-nil, verifying) each
// one. Blank lines are skipped; a line that fails to decode or parse
// is counted against the corresponding parseErrorsTotal label and
// otherwise ignored (this is a benchmark tool, not a validator that
// needs to fail the whole run over one bad line).
func parseLines(data []byte, verifier certverify.Verifier) (total, verified int) {
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		env, err := sshcert.DecodeEnvelope(line)
		if err != nil {
			parseErrorsTotal.WithLabelValues(errLabel(err)).Inc()
			continue
		}
		cert, err := sshcert.ParseEnvelope(env)
		if err != nil {
			parseErrorsTotal.WithLabelValues(errLabel(err)).Inc()
			continue
		}

		total++
		parsedTotal.Inc()

		if verifier != nil {
			ok, _ := verifier.Verify(cert.SignedMessage(), cert.SignatureKey(), cert.Signature())
			if ok {
				verified++
			}
		}
	}
	return total, verified
}

func errLabel(err error) string {
	switch err {
	case sshcert.ErrFailToParse:
		return "fail_to_parse"
	case sshcert.ErrInvalidMagicString:
		return "invalid_magic_string"
	case sshcert.ErrMalformedCertificate:
		return "malformed_certificate"
	case sshcert.ErrMalformedInteger:
		return "malformed_integer"
	case sshcert.ErrMalformedString:
		return "malformed_string"
	case sshcert.ErrRepeatedExtension:
		return "repeated_extension"
	case sshcert.ErrUnknownExtension:
		return "unknown_extension"
	default:
		return "unknown"
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics server exited", "err", err)
	}
}
