package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/lunarlabs/redpocket/internal/config"
	"github.com/lunarlabs/redpocket/internal/server"
)

// ServeCmd runs the websocket game server.
type ServeCmd struct {
	Addr string `help:"Override the configured listen address"`
	Seed int64  `help:"Deterministic RNG seed for all sessions (0 for random)"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	logger := setupLogger(cli.Debug)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting", "addr", cfg.Server.Address, "seed", seed)

	source := buildSource(cfg, seed, logger)
	srv := server.New(cfg, source, seed, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
