// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/luxfi/plasma/core/mempool"
)

// daemonConfig is the process-level configuration for plasma-mempoold,
// layered from flags, an optional config file, and environment variables
// (PLASMA_MEMPOOL_*) via spf13/viper, with spf13/pflag binding the flag set
// and spf13/cast coercing the values read back out.
type daemonConfig struct {
	ListenAddr    string
	MetricsAddr   string
	ConfigFile    string
	LogFile       string
	LogJSON       bool
	TransferBatch int
	DoPadding     bool
	RatePerSecond float64
	RateBurst     int
}

func bindFlags(fs *pflag.FlagSet) {
	fs.String("listen", ":8645", "address the JSON-RPC and websocket servers listen on")
	fs.String("metrics-listen", ":9645", "address the Prometheus metrics server listens on")
	fs.String("config", "", "path to a YAML/TOML/JSON config file")
	fs.String("log-file", "", "rotate logs to this file instead of stderr")
	fs.Bool("log-json", false, "emit logs as JSON instead of a terminal-formatted stream")
	fs.Int("transfer-batch-size", mempool.DefaultConfig().TransferBatchSize, "pending-length threshold that triggers a batch")
	fs.Bool("do-padding", false, "request block padding from the state-keeper")
	fs.Float64("rate-per-second", 500, "JSON-RPC request rate limit for the whole server, in requests/second")
	fs.Int("rate-burst", 100, "JSON-RPC request rate limit burst size")
}

func loadConfig(fs *pflag.FlagSet) (daemonConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("PLASMA_MEMPOOL")
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return daemonConfig{}, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return daemonConfig{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := daemonConfig{
		ListenAddr:    v.GetString("listen"),
		MetricsAddr:   v.GetString("metrics-listen"),
		ConfigFile:    v.GetString("config"),
		LogFile:       v.GetString("log-file"),
		LogJSON:       v.GetBool("log-json"),
		TransferBatch: cast.ToInt(v.Get("transfer-batch-size")),
		DoPadding:     v.GetBool("do-padding"),
		RatePerSecond: cast.ToFloat64(v.Get("rate-per-second")),
		RateBurst:     cast.ToInt(v.Get("rate-burst")),
	}
	if cfg.TransferBatch <= 0 {
		return daemonConfig{}, fmt.Errorf("transfer-batch-size must be > 0, got %d", cfg.TransferBatch)
	}
	return cfg, nil
}

func (c daemonConfig) mempoolConfig() mempool.Config {
	cfg := mempool.DefaultConfig()
	cfg.TransferBatchSize = c.TransferBatch
	cfg.DoPadding = c.DoPadding
	return cfg
}
