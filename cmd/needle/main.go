// Package main contains the entrypoint for the needle crawler CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Viderspace/NeedleWhatsappCrawler/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := cli.Execute(ctx)
	stop()
	os.Exit(exitCode)
}
