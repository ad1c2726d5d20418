package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/cardroom/zhajinhua/internal/server"
)

// ServeCmd runs the room server.
type ServeCmd struct {
	Config string `kong:"default='zhajinhua.hcl',help='Path to HCL config file'"`
	Addr   string `kong:"help='Override listen address from config (host:port)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		host, port, err := net.SplitHostPort(c.Addr)
		if err != nil {
			return fmt.Errorf("invalid --addr: %w", err)
		}
		cfg.Server.Address = host
		cfg.Server.Port, err = strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid --addr port: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Server.LogLevel, c.Debug)
	logger.Info("Starting server",
		"addr", cfg.GetServerAddress(),
		"rooms", len(cfg.Rooms),
		"commentary", cfg.Commentary != nil && cfg.Commentary.Enabled)

	s := server.NewServer(cfg, quartz.NewReal(), logger)
	ctx := signalContext(logger)

	var g errgroup.Group
	g.Go(s.Start)
	g.Go(func() error {
		<-ctx.Done()
		return s.Stop()
	})
	return g.Wait()
}
