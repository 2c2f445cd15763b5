package commands

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsite/internal/build"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce    time.Duration `help:"Quiet period before a rebuild" default:"300ms"`
	Recheck     time.Duration `help:"Also rebuild periodically (0 disables)" default:"0s"`
	Strict      bool          `help:"Treat broken links as rebuild failures"`
	Pages       bool          `help:"Also check links inside page bodies"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9090)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if w.MetricsAddr != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		srv := &http.Server{Addr: w.MetricsAddr, Handler: metrics.HTTPHandler(reg), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			slog.Info("Serving metrics", slog.String("addr", w.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	service := build.NewService().WithRecorder(recorder)
	watcher, err := watch.New(root.Config, service, watch.Options{
		Debounce: w.Debounce,
		Recheck:  w.Recheck,
		Build:    build.Options{Strict: w.Strict, CheckPages: w.Pages, ResolveComponents: true},
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to start watcher").Build()
	}
	return watcher.Run(ctx)
}
