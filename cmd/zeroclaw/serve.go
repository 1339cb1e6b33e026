package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/yemubit/zeroclaw/gateway"
	"github.com/yemubit/zeroclaw/kernel"
	"github.com/yemubit/zeroclaw/observability"
	"github.com/yemubit/zeroclaw/session"
)

func runServe(ctx context.Context, args []string) error {
	var (
		flags kernelFlags
		addr  string
		token string
	)

	fs := pflag.NewFlagSet("zeroclaw serve", pflag.ContinueOnError)
	flags.AddFlags(fs)
	fs.StringVar(&addr, "addr", "", "listen address (overrides config)")
	fs.StringVar(&token, "token", "", "require this bearer token on /ws and admin calls (overrides config)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cfg, err := flags.load()
	if err != nil {
		return err
	}

	gwCfg := gateway.DefaultConfig()
	if flags.configFile != "" {
		loaded, err := gateway.LoadConfig(flags.configFile)
		if err != nil {
			return fmt.Errorf("failed to load gateway config: %w", err)
		}
		gwCfg = *loaded
	}
	gwCfg.Merge(&gateway.Config{Addr: addr, Token: token})

	logger := flags.logger()
	obs, err := observability.New(cfg.Observer, logger)
	if err != nil {
		return fmt.Errorf("failed to create observer: %w", err)
	}

	metrics := gateway.NewMetrics()
	k, err := newKernel(cfg, logger,
		kernel.WithObserver(observability.NewMultiObserver(obs, metrics)),
	)
	if err != nil {
		return err
	}

	store := session.NewStore(&cfg.Session)
	g := gateway.New(store, k,
		gateway.WithLogger(logger),
		gateway.WithMetrics(metrics),
	)

	return gateway.Run(ctx, &gwCfg, g)
}
