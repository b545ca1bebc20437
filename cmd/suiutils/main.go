package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/thounyy/sui-go-utils/internal/circuitbreaker"
	"github.com/thounyy/sui-go-utils/internal/config"
	"github.com/thounyy/sui-go-utils/internal/ratelimit"
	"github.com/thounyy/sui-go-utils/internal/tracing"
	"github.com/thounyy/sui-go-utils/pkg/client"
	"golang.org/x/sync/errgroup"
)

const serviceName = "sui-go-utils"

// app is the wiring shared by every subcommand. It is built once per
// invocation in the root command's PersistentPreRunE.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	client *client.Client

	shutdownTracing func(context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{}
	err := newRootCommand(a).ExecuteContext(ctx)
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "suiutils",
		Short:         "Assemble, fund, sign and confirm transactions against a Sui GraphQL endpoint",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
	}

	root.AddCommand(
		newObjectCommand(a),
		newCoinCommand(a),
		newGasCommand(a),
		newTxCommand(a),
	)
	return root
}

func (a *app) init(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}
	a.cfg = cfg

	a.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(cfg.Log.Level)}))
	slog.SetDefault(a.logger)

	a.shutdownTracing, err = tracing.Init(ctx, tracing.Config{
		ServiceName: serviceName,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		a.logger.Error("failed to initialize tracing", "error", err)
		return err
	}
	if cfg.Tracing.Endpoint != "" {
		a.logger.Info("tracing enabled", "endpoint", cfg.Tracing.Endpoint)
	}

	opts := []client.Option{
		client.WithHTTPClient(&http.Client{Timeout: cfg.Sui.Timeout}),
		client.WithLimiter(ratelimit.NewLimiter(cfg.Sui.RPS, cfg.Sui.Burst, cfg.Sui.GraphQLURL)),
	}
	if cfg.Sui.BreakerFailures > 0 {
		logger := a.logger
		opts = append(opts, client.WithBreaker(circuitbreaker.New(circuitbreaker.Config{
			Endpoint:         cfg.Sui.GraphQLURL,
			FailureThreshold: cfg.Sui.BreakerFailures,
			OpenTimeout:      cfg.Sui.BreakerOpenTimeout,
			OnStateChange: func(from, to circuitbreaker.State) {
				logger.Warn("graphql endpoint breaker changed state", "from", from.String(), "to", to.String())
			},
		})))
	}
	a.client = client.New(cfg.Sui.GraphQLURL, a.logger, opts...)

	a.logger.Debug("client configured",
		"graphql_url", cfg.Sui.GraphQLURL,
		"network", cfg.Sui.Network,
		"rps", cfg.Sui.RPS,
		"page_size", cfg.Sui.PageSize,
	)
	return nil
}

func (a *app) close() {
	if a.shutdownTracing == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.shutdownTracing(ctx); err != nil {
		a.logger.Warn("tracing shutdown error", "error", err)
	}
}

// run executes fn while, if configured, serving /metrics. The metrics server
// stops as soon as fn returns.
func (a *app) run(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	if addr := a.cfg.Server.MetricsAddr; addr != "" {
		g.Go(func() error {
			return runMetricsServer(gCtx, addr, a.logger)
		})
	}
	g.Go(func() error {
		defer cancel()
		return fn(gCtx)
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("command failed", "error", err)
	}
	return err
}

func runMetricsServer(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
