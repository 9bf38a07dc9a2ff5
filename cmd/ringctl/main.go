// File: cmd/ringctl/main.go
// Package main
// Replays YAML scenarios against a ring buffer and reports every step.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/momentics/ringbuf/control"
	"github.com/momentics/ringbuf/internal/replay"
)

const appName = "ringctl"

// Version is set at build time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run returns the process exit code: 0 when every expectation held,
// 1 when some did not, 2 on usage or setup errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 2
	}
	if cfg.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s %s\n", appName, Version)
		return 0
	}

	logger := setupLogger(stderr, cfg.LogLevel, cfg.LogFormat)

	sc, err := control.LoadScenario(cfg.ScenarioPath)
	if err != nil {
		logger.Error("load scenario", "path", cfg.ScenarioPath, "error", err)
		return 2
	}

	metrics := control.NewMetricsRegistry("ringbuf")
	probes := control.NewDebugProbes()
	control.RegisterPlatformProbes(probes)

	rep, err := replay.Run(ctx, sc,
		replay.WithLogger(logger),
		replay.WithMetrics(metrics),
		replay.WithProbes(probes))
	if err != nil {
		logger.Error("replay", "error", err)
		return 2
	}
	printReport(stdout, rep)

	if cfg.MetricsAddr != "" {
		if err := serveMetrics(ctx, logger, cfg.MetricsAddr, metrics); err != nil {
			logger.Error("metrics server", "error", err)
			return 2
		}
	}

	if !rep.Passed() {
		return 1
	}
	return 0
}

func printReport(w io.Writer, rep *replay.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "STEP\tITER\tOP\tRESULT\tVALUE\tCHECK\n")
	for _, r := range rep.Results {
		value := "-"
		switch {
		case r.HasValue:
			value = fmt.Sprint(r.Value)
		case r.HasCount:
			value = fmt.Sprint(r.Count)
		case r.Status != "":
			value = r.Status
		}
		check := "ok"
		if r.Mismatch != "" {
			check = "FAIL: " + r.Mismatch
		}
		_, _ = fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n", r.Step, r.Iteration, r.Op, r.Code, value, check)
	}
	_ = tw.Flush()

	_, _ = fmt.Fprintf(w, "\n%s: capacity=%d used=%d available=%d high_water=%d failures=%d\n",
		rep.Scenario, rep.Final.Capacity, rep.Final.Used, rep.Final.Available,
		rep.Final.Stats.HighWater, len(rep.Failures()))
}

func serveMetrics(ctx context.Context, logger *slog.Logger, addr string, metrics *control.MetricsRegistry) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(metrics); err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("serving metrics", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return nil
}
