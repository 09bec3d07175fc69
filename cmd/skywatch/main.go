package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skywatch/skywatch/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	csvPath := flag.String("csv", "", "aircraft database CSV used to build the local registry (optional)")
	dbPath := flag.String("db", "", "override aircraft registry database path (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		CSVPath:    *csvPath,
		DBPath:     *dbPath,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "skywatch: %v\n", err)
		return 1
	}
	return 0
}
