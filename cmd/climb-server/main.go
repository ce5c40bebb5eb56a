// Command climb-server runs climbing sessions against hand tracking streamed
// over a WebSocket and broadcasts the HUD back to connected clients.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"ascent/internal/platform/config"
	"ascent/internal/platform/logger"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		config.Exitf("climb-server: %v", err)
	}
	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("climb-server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewLogger()
	if err := run(ctx, cfg, log); err != nil {
		log.Errorf("Server: %v", err)
		stop()
		os.Exit(1)
	}
}
