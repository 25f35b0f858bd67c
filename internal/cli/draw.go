package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/brush/internal/presentation/tui"
	"github.com/aretw0/brush/pkg/draw"
	"github.com/aretw0/brush/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// DrawOptions configures RunDraw.
type DrawOptions struct {
	Options

	// MetricsAddr serves /metrics on this address while drawing.
	MetricsAddr string
	// Deregister says bye after drawing instead of keeping the bot.
	Deregister bool
	// Quiet suppresses the report.
	Quiet bool
	Out   io.Writer
}

// RunDraw connects the configured bot, draws the configured program and
// prints a report. On dry runs the resulting canvas is printed too.
func RunDraw(ctx context.Context, opts DrawOptions) (err error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	tally := observability.NewTally()
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	sessionID := uuid.NewString()
	opts.Hooks = observability.Chain(opts.Hooks, tally.Hooks(), metrics.Hooks())
	opts.SessionOpts = append(opts.SessionOpts, draw.WithSessionID(sessionID))

	setup, err := NewSetup(opts.Options)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, setup.Close())
	}()

	if opts.MetricsAddr != "" {
		stop, err := serveMetrics(opts.MetricsAddr, metrics.Handler(), setup.Logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	program, err := setup.Config.Program()
	if err != nil {
		return err
	}

	start := time.Now()
	final, drawErr := setup.Client.Draw(ctx, program...)
	report := tui.Report{
		Bot:       setup.Client.Identity(),
		SessionID: sessionID,
		Shapes:    len(program),
		Final:     final,
		Commands:  tally.Commands(),
		Failures:  tally.Failures(),
		Elapsed:   time.Since(start),
		Err:       drawErr,
	}

	// finish with a fresh context so an interrupted draw still releases the bot
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	var endErr error
	if opts.Deregister {
		endErr = setup.Client.Deregister(cleanupCtx)
	} else {
		endErr = setup.Client.Close(cleanupCtx)
	}

	if setup.Canvas != nil && !opts.Quiet {
		tui.PrintCanvas(out, setup.Canvas.Render())
	}
	if !opts.Quiet {
		if err := tui.PrintReport(out, report); err != nil {
			setup.Logger.Warn("Failed to print report", "error", err)
		}
	}
	return errors.Join(drawErr, endErr)
}

// RunBye deregisters the configured bot.
func RunBye(ctx context.Context, opts Options) (err error) {
	setup, err := NewSetup(opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, setup.Close())
	}()
	return setup.Client.Deregister(ctx)
}

func serveMetrics(addr string, handler http.Handler, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	r := chi.NewRouter()
	r.Handle("/metrics", handler)
	srv := &http.Server{Handler: r, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "error", err)
		}
	}()
	logger.Info("Serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
