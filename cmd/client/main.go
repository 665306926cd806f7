package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"EvidenceKeeper/internal/cli/commands"
	"EvidenceKeeper/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	os.Exit(run())
}

// run отделён от main, чтобы отложенные вызовы успели отработать до os.Exit.
func run() int {
	cfg := config.NewConfig()
	commands.SetBuildInfo(version, buildDate)

	args := flag.Args()
	if cfg.Version {
		args = []string{"version"}
	}

	// Ctrl+C прерывает запрос к серверу, а не процесс посреди записи токена
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return commands.Dispatch(ctx, cfg, args)
}
