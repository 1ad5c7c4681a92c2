// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// plasma-mempoold runs the transaction mempool as a standalone daemon: the
// admission/ordering/batching engine from core/mempool, fronted by a
// JSON-RPC + websocket API, with an in-process demo state-keeper stub
// driving batches. There is no option to connect an external state-keeper.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/luxfi/plasma/api"
	"github.com/luxfi/plasma/core/mempool"
)

const clientIdentifier = "plasma-mempoold"

var (
	flagSet = pflag.NewFlagSet(clientIdentifier, pflag.ContinueOnError)
	app     = &cli.App{
		Name:  clientIdentifier,
		Usage: "Plasma payment rollup transaction mempool daemon",
	}
)

func init() {
	bindFlags(flagSet)
	app.Action = run
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cliCtx *cli.Context) error {
	if err := flagSet.Parse(cliCtx.Args().Slice()); err != nil {
		return err
	}
	cfg, err := loadConfig(flagSet)
	if err != nil {
		return err
	}
	setupLogging(cfg)

	registry := prometheus.NewRegistry()
	metrics := mempool.NewMetrics(registry)

	pool, err := mempool.New(cfg.mempoolConfig(), mempool.ChannelStateKeeper(demoStateKeeper()), metrics)
	if err != nil {
		return fmt.Errorf("constructing mempool: %w", err)
	}

	server := api.NewServer(pool, api.Limits{
		RatePerSecond: cfg.RatePerSecond,
		Burst:         cfg.RateBurst,
	})

	mux := http.NewServeMux()
	mux.Handle("/rpc", server.RPCHandler())
	mux.Handle("/ws", server.WebsocketHandler())

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		pool.Run()
		return nil
	})
	group.Go(func() error {
		return serveUntilDone(gctx, cfg.ListenAddr, mux)
	})
	group.Go(func() error {
		return serveUntilDone(gctx, cfg.MetricsAddr, metricsMux)
	})

	<-gctx.Done()
	server.Close()
	pool.Close()
	return group.Wait()
}

func serveUntilDone(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case <-ctx.Done():
		return srv.Close()
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

func setupLogging(cfg daemonConfig) {
	var writer = os.Stderr
	var out interface {
		Write([]byte) (int, error)
	} = writer

	if cfg.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
	}

	logLevel := &slog.LevelVar{}
	var handler slog.Handler
	if cfg.LogJSON {
		handler = log.JSONHandlerWithLevel(out, logLevel)
	} else {
		useColor := !cfg.LogJSON && cfg.LogFile == "" && isatty.IsTerminal(writer.Fd())
		target := out
		if useColor {
			target = colorable.NewColorable(writer)
		}
		handler = log.NewTerminalHandlerWithLevel(target, logLevel, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}
