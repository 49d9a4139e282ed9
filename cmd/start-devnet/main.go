package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meme-bots/uniswap-devnet/config"
	"github.com/meme-bots/uniswap-devnet/node"
	"github.com/meme-bots/uniswap-devnet/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "start-devnet",
		Usage:     "Run ganache as a local fork of Ethereum mainnet",
		ArgsUsage: "[-- extra ganache args]",
		Description: `Reads INFURA_API_KEY and MNEMONIC from the environment (or the env file)
and starts ganache forked from mainnet with 1000 ether on every account.
The node's stdout is relayed with a "stdout: " prefix.`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to read before the environment",
				Value: ".env",
			},
			&cli.BoolFlag{
				Name:    "strict",
				Usage:   "Fail when INFURA_API_KEY or MNEMONIC is unset instead of passing \"undefined\"",
				EnvVars: []string{"STRICT_ENV"},
			},
			&cli.StringFlag{
				Name:    "metrics-addr",
				Usage:   "Serve Prometheus metrics on this address, e.g. :9100",
				EnvVars: []string{"METRICS_ADDR"},
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	v, err := config.New(c.String("env-file"))
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.LogLevel(v)}))
	slog.SetDefault(logger)

	cfg, err := config.LoadNode(v, c.Bool("strict"))
	if err != nil {
		return err
	}
	cfg.ExtraArgs = c.Args().Slice()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *node.Metrics
	var subprocesses utils.Subprocesses
	if addr := c.String("metrics-addr"); addr != "" {
		registry := prometheus.NewRegistry()
		metrics = node.NewMetrics(registry)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		subprocesses.Go(func() {
			logger.Info("serving metrics", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		})
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
			subprocesses.Wait()
		}()
	}

	return node.NewLauncher(cfg, os.Stdout, logger, metrics).Run(ctx)
}
